package mocks

import "context"

// OwnerProvider is a mock implementation of ports.OwnerProvider.
type OwnerProvider struct {
	ID  string
	Err error
}

// OwnerID returns the configured id or error.
func (m *OwnerProvider) OwnerID(ctx context.Context) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.ID, nil
}
