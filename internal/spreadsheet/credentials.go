package spreadsheet

import (
	"context"
	"errors"
	"fmt"
	"hash/crc32"
	"os"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	log "github.com/sirupsen/logrus"
)

const DefaultCredentialsFile = "config/service_account.json"

type CredentialsParams struct {
	// SecretName is both the env var checked first and the Secret Manager secret.
	SecretName string
	ProjectID  string
	File       string
}

// LoadCredentials returns the service account JSON: from the environment, then
// GCP Secret Manager, then the credentials file.
func LoadCredentials(ctx context.Context, params CredentialsParams) ([]byte, error) {
	if params.SecretName != "" {
		if val := os.Getenv(params.SecretName); val != "" {
			log.Debugf("using service account credentials from env var %s", params.SecretName)
			return []byte(val), nil
		}
	}

	if params.SecretName != "" && params.ProjectID != "" {
		return accessSecret(ctx, params.ProjectID, params.SecretName)
	}

	path := params.File
	if path == "" {
		path = DefaultCredentialsFile
	}

	credentials, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: service account file not found: %s", ErrUnavailable, path)
		}
		return nil, fmt.Errorf("%w: read service account file: %w", ErrUnavailable, err)
	}

	return credentials, nil
}

func accessSecret(ctx context.Context, projectID, secretName string) ([]byte, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create secretmanager client: %w", ErrUnavailable, err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			log.Errorf("close secretmanager client: %s", err)
		}
	}()

	result, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: fmt.Sprintf("projects/%s/secrets/%s/versions/latest", projectID, secretName),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: access secret version: %w", ErrUnavailable, err)
	}

	crc32c := crc32.MakeTable(crc32.Castagnoli)
	checksum := int64(crc32.Checksum(result.Payload.Data, crc32c))
	if result.Payload.DataCrc32C != nil && *result.Payload.DataCrc32C != checksum {
		return nil, fmt.Errorf("%w: secret %s payload checksum mismatch", ErrUnavailable, secretName)
	}

	log.Debugf("using service account credentials from secret %s", secretName)

	return result.Payload.Data, nil
}
