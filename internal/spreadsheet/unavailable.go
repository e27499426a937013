package spreadsheet

import (
	"context"
	"fmt"
)

// UnavailableSource stands in when the real source could not be created, e.g. missing
// credentials, so the dashboard still starts and reports the cause on every load.
type UnavailableSource struct {
	name  string
	cause error
}

func NewUnavailableSource(name string, cause error) *UnavailableSource {
	return &UnavailableSource{name: name, cause: cause}
}

func (s *UnavailableSource) Fetch(context.Context) (*Table, error) {
	return nil, fmt.Errorf("%w: %w", ErrUnavailable, s.cause)
}

func (s *UnavailableSource) Header(context.Context) ([]string, error) {
	return nil, fmt.Errorf("%w: %w", ErrUnavailable, s.cause)
}

func (s *UnavailableSource) Name() string {
	return s.name
}
