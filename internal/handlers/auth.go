package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/tutoring-service/internal/models"
	"github.com/SAP-F-2025/tutoring-service/internal/repositories"
	"github.com/SAP-F-2025/tutoring-service/internal/services"
	"github.com/SAP-F-2025/tutoring-service/internal/utils"
)

// Gin context keys set by the auth middleware
const (
	ctxIdentity = "identity"
	ctxUser     = "user"
	ctxUserID   = "user_id"
	ctxUserRole = "user_role"
)

// AuthMiddleware authenticates bearer tokens through an IdentityProvider
type AuthMiddleware struct {
	provider repositories.IdentityProvider
	users    services.UserService
	logger   utils.Logger
}

func NewAuthMiddleware(provider repositories.IdentityProvider, users services.UserService, logger utils.Logger) *AuthMiddleware {
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	return &AuthMiddleware{
		provider: provider,
		users:    users,
		logger:   logger,
	}
}

// Authenticate rejects requests without a valid bearer token
func (am *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: msgUnauthorized})
			return
		}

		identity, err := am.provider.Authenticate(c.Request.Context(), token)
		if err != nil {
			utils.FromContext(c, am.logger).Debug("Token rejected", "provider", am.provider.Name(), "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: msgUnauthorized})
			return
		}

		c.Set(ctxIdentity, identity)
		c.Next()
	}
}

// OptionalAuthenticate sets the identity when a valid token is present
func (am *AuthMiddleware) OptionalAuthenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if identity, err := am.provider.Authenticate(c.Request.Context(), token); err == nil {
				c.Set(ctxIdentity, identity)
			}
		}
		c.Next()
	}
}

// RequireUser loads the stored user behind the authenticated identity
func (am *AuthMiddleware) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := GetIdentityFromContext(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: msgUnauthorized})
			return
		}

		user, err := am.users.GetByEmail(c.Request.Context(), identity.Email)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, ErrorResponse{Error: msgUserNotFound})
				return
			}
			utils.FromContext(c, am.logger).Error("Failed to load user", "email", identity.Email, "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: msgInternal})
			return
		}

		c.Set(ctxUser, user)
		c.Set(ctxUserID, user.ID)
		c.Set(ctxUserRole, user.Role)
		c.Next()
	}
}

// RequireRole allows only users holding one of roles; must run after RequireUser
func (am *AuthMiddleware) RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, err := GetUserRoleFromContext(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Error: "Access denied"})
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
			Error:   "Access denied",
			Details: fmt.Sprintf("required role: %v", roles),
		})
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	parts := strings.Fields(c.GetHeader("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

// GetIdentityFromContext returns the identity set by Authenticate
func GetIdentityFromContext(c *gin.Context) (*models.Identity, error) {
	v, exists := c.Get(ctxIdentity)
	if !exists {
		return nil, fmt.Errorf("identity not found in context")
	}
	identity, ok := v.(*models.Identity)
	if !ok || identity == nil {
		return nil, fmt.Errorf("invalid identity type in context")
	}
	return identity, nil
}

// GetUserFromContext extracts user from Gin context
func GetUserFromContext(c *gin.Context) (*models.User, error) {
	v, exists := c.Get(ctxUser)
	if !exists {
		return nil, fmt.Errorf("user not found in context")
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		return nil, fmt.Errorf("invalid user type in context")
	}
	return user, nil
}

// GetUserRoleFromContext extracts user role from Gin context
func GetUserRoleFromContext(c *gin.Context) (models.UserRole, error) {
	v, exists := c.Get(ctxUserRole)
	if !exists {
		return "", fmt.Errorf("user role not found in context")
	}
	role, ok := v.(models.UserRole)
	if !ok {
		return "", fmt.Errorf("invalid user role type in context")
	}
	return role, nil
}

// currentUser returns the caller or writes a 401 and returns false
func (h *BaseHandler) currentUser(c *gin.Context) (*models.User, bool) {
	user, err := GetUserFromContext(c)
	if err != nil {
		h.respondError(c, http.StatusUnauthorized, msgUnauthorized)
		return nil, false
	}
	return user, true
}
