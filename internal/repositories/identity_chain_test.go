package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/tutoring-service/internal/models"
)

type stubProvider struct {
	name     string
	identity *models.Identity
	err      error
	calls    int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Authenticate(ctx context.Context, token string) (*models.Identity, error) {
	s.calls++
	return s.identity, s.err
}

func TestIdentityChain_FirstSuccessWins(t *testing.T) {
	failing := &stubProvider{name: "casdoor", err: errors.New("bad token")}
	ok := &stubProvider{name: "google", identity: &models.Identity{Email: "a@example.com"}}
	unused := &stubProvider{name: "other", identity: &models.Identity{Email: "b@example.com"}}

	identity, err := NewIdentityChain(failing, ok, unused).Authenticate(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", identity.Email)
	assert.Equal(t, 1, failing.calls)
	assert.Zero(t, unused.calls)
}

func TestIdentityChain_AllFail(t *testing.T) {
	sentinel := errors.New("expired")
	_, err := NewIdentityChain(&stubProvider{name: "google", err: sentinel}).Authenticate(context.Background(), "tok")
	assert.ErrorIs(t, err, sentinel)
	assert.Contains(t, err.Error(), "google")

	_, err = NewIdentityChain().Authenticate(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrNoIdentityProvider)
}
