package google

import (
	"context"
	"errors"
	"fmt"
	"strings"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"

	"github.com/SAP-F-2025/tutoring-service/internal/config"
	"github.com/SAP-F-2025/tutoring-service/internal/models"
	"github.com/SAP-F-2025/tutoring-service/internal/repositories"
)

var ErrMissingEmail = errors.New("google token has no email")

type verifyFunc func(token string, audience []string) error

type decodeFunc func(token string) (*googleAuthIDTokenVerifier.ClaimSet, error)

// IdentityGoogle resolves Google ID tokens issued for the configured client
type IdentityGoogle struct {
	clientID string
	verify   verifyFunc
	decode   decodeFunc
}

func NewIdentityGoogle(cfg config.GoogleConfig) repositories.IdentityProvider {
	v := googleAuthIDTokenVerifier.Verifier{}
	return &IdentityGoogle{
		clientID: cfg.ClientID,
		verify:   v.VerifyIDToken,
		decode:   googleAuthIDTokenVerifier.Decode,
	}
}

func (p *IdentityGoogle) Name() string {
	return config.ProviderGoogle
}

func (p *IdentityGoogle) Authenticate(ctx context.Context, token string) (*models.Identity, error) {
	if err := p.verify(token, []string{p.clientID}); err != nil {
		return nil, fmt.Errorf("invalid google id token: %w", err)
	}

	claimSet, err := p.decode(token)
	if err != nil {
		return nil, fmt.Errorf("failed to decode google id token: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(claimSet.Email))
	if email == "" {
		return nil, ErrMissingEmail
	}

	return &models.Identity{
		Provider: config.ProviderGoogle,
		Subject:  claimSet.Sub,
		Email:    email,
		Name:     claimSet.Name,
	}, nil
}
