package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/SAP-F-2025/tutoring-service/internal/models"
)

var ErrNoIdentityProvider = errors.New("no identity provider configured")

// IdentityChain asks each provider in order and returns the first identity resolved.
type IdentityChain struct {
	providers []IdentityProvider
}

func NewIdentityChain(providers ...IdentityProvider) *IdentityChain {
	return &IdentityChain{providers: providers}
}

func (c *IdentityChain) Name() string {
	return "chain"
}

func (c *IdentityChain) Authenticate(ctx context.Context, token string) (*models.Identity, error) {
	if len(c.providers) == 0 {
		return nil, ErrNoIdentityProvider
	}

	var errs []error
	for _, p := range c.providers {
		identity, err := p.Authenticate(ctx, token)
		if err == nil {
			return identity, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
	}
	return nil, errors.Join(errs...)
}
