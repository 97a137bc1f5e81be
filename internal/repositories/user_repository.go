package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/tutoring-service/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error)
	Update(ctx context.Context, tx *gorm.DB, user *models.User) error
	ExistsByID(ctx context.Context, tx *gorm.DB, id string) (bool, error)
}

// IdentityProvider turns a bearer token into the identity it asserts.
type IdentityProvider interface {
	Name() string
	Authenticate(ctx context.Context, token string) (*models.Identity, error)
}
