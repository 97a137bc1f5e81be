package casdoor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"

	"github.com/SAP-F-2025/tutoring-service/internal/cache"
	"github.com/SAP-F-2025/tutoring-service/internal/config"
	"github.com/SAP-F-2025/tutoring-service/internal/models"
	"github.com/SAP-F-2025/tutoring-service/internal/repositories"
)

// ErrMissingEmail is returned when neither the token nor the account carries an email.
var ErrMissingEmail = errors.New("casdoor account has no email")

// casdoorClient is the part of the Casdoor SDK the provider needs
type casdoorClient interface {
	ParseJwtToken(token string) (*casdoorsdk.Claims, error)
	GetUser(name string) (*casdoorsdk.User, error)
}

// IdentityCasdoor resolves Casdoor-issued access tokens
type IdentityCasdoor struct {
	client casdoorClient
	cache  *cache.CacheHelper
}

func NewIdentityCasdoor(cfg config.CasdoorConfig, cacheManager *cache.CacheManager) repositories.IdentityProvider {
	client := casdoorsdk.NewClient(
		cfg.Endpoint,
		cfg.ClientID,
		cfg.ClientSecret,
		cfg.Cert,
		cfg.Organization,
		cfg.Application,
	)
	return newIdentityCasdoor(client, cacheManager)
}

func newIdentityCasdoor(client casdoorClient, cacheManager *cache.CacheManager) *IdentityCasdoor {
	if cacheManager == nil {
		cacheManager = cache.NewCacheManager(nil, 0, 0, nil)
	}
	return &IdentityCasdoor{
		client: client,
		cache:  cacheManager.Identity,
	}
}

func (p *IdentityCasdoor) Name() string {
	return config.ProviderCasdoor
}

// Authenticate validates the token signature and maps the embedded user.
// Tokens issued without an email claim fall back to the Casdoor account.
func (p *IdentityCasdoor) Authenticate(ctx context.Context, token string) (*models.Identity, error) {
	claims, err := p.client.ParseJwtToken(token)
	if err != nil {
		return nil, fmt.Errorf("invalid casdoor token: %w", err)
	}

	identity := identityFromUser(&claims.User)
	if identity.Email != "" {
		return identity, nil
	}

	if claims.User.Name == "" {
		return nil, ErrMissingEmail
	}

	var cached models.Identity
	err = p.cache.CacheOrExecute(ctx, "casdoor:"+claims.User.Name, &cached, func() (interface{}, error) {
		user, err := p.client.GetUser(claims.User.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to get casdoor user %s: %w", claims.User.Name, err)
		}
		if user == nil {
			return nil, fmt.Errorf("casdoor user %s: %w", claims.User.Name, repositories.ErrNotFound)
		}
		return identityFromUser(user), nil
	})
	if err != nil {
		return nil, err
	}
	if cached.Email == "" {
		return nil, ErrMissingEmail
	}
	return &cached, nil
}

func identityFromUser(user *casdoorsdk.User) *models.Identity {
	name := user.DisplayName
	if name == "" {
		name = user.Name
	}
	return &models.Identity{
		Provider: config.ProviderCasdoor,
		Subject:  user.Id,
		Email:    strings.ToLower(strings.TrimSpace(user.Email)),
		Name:     name,
		Image:    user.Avatar,
	}
}
