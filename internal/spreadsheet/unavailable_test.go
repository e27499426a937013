package spreadsheet_test

import (
	"context"
	"errors"
	"testing"

	"github.com/2beens/fitnessdash/internal/spreadsheet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnavailableSource(t *testing.T) {
	cause := errors.New("service account file not found")
	src := spreadsheet.NewUnavailableSource("google sheet 'Log'", cause)

	table, err := src.Fetch(context.Background())
	require.Error(t, err)
	assert.Nil(t, table)
	assert.ErrorIs(t, err, spreadsheet.ErrUnavailable)
	assert.ErrorIs(t, err, cause)

	status := spreadsheet.TestConnection(context.Background(), src)
	assert.False(t, status.OK)
	assert.Contains(t, status.Message, "service account file not found")
	assert.Equal(t, "google sheet 'Log'", src.Name())
}
