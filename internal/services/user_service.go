package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/SAP-F-2025/tutoring-service/internal/events"
	"github.com/SAP-F-2025/tutoring-service/internal/models"
	"github.com/SAP-F-2025/tutoring-service/internal/repositories"
	"github.com/SAP-F-2025/tutoring-service/internal/utils"
	"github.com/SAP-F-2025/tutoring-service/internal/validator"
)

type userService struct {
	repo      repositories.Repository
	logger    utils.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewUserService(repo repositories.Repository, logger utils.Logger, validator *validator.Validator, publisher events.EventPublisher) UserService {
	return &userService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

func (s *userService) GetOrCreate(ctx context.Context, identity *models.Identity) (*models.User, error) {
	if identity == nil || strings.TrimSpace(identity.Email) == "" {
		return nil, ErrUnauthorized
	}
	email := strings.ToLower(strings.TrimSpace(identity.Email))

	user, err := s.repo.User().GetByEmail(ctx, nil, email)
	if err == nil {
		return user, nil
	}
	if !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user = &models.User{
		Email: email,
		Name:  identity.Name,
		Role:  models.RoleStudent,
	}
	if identity.Image != "" {
		image := identity.Image
		user.Image = &image
	}

	if err := s.repo.User().Create(ctx, nil, user); err != nil {
		// Lost a race with a concurrent first login
		if repositories.IsDuplicateError(err) {
			return s.repo.User().GetByEmail(ctx, nil, email)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User created on first login", "user_id", user.ID, "provider", identity.Provider)
	return user, nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repo.User().GetByEmail(ctx, nil, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, notFoundAs(err, ErrUserNotFound)
	}
	return user, nil
}

func (s *userService) SelectRole(ctx context.Context, userID string, req *SelectRoleRequest) (*models.User, error) {
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	user, err := s.repo.User().GetByID(ctx, nil, userID)
	if err != nil {
		return nil, notFoundAs(err, ErrUserNotFound)
	}

	if user.RoleSelected {
		if user.Role == req.Role {
			return user, nil
		}
		return nil, ErrRoleAlreadySelected
	}

	user.Role = req.Role
	user.RoleSelected = true
	if err := s.repo.User().Update(ctx, nil, user); err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	s.logger.Info("Role selected", "user_id", user.ID, "role", user.Role)
	publishEvent(ctx, s.publisher, s.logger, events.UserRoleSelected, events.UserRoleSelectedData{
		UserID: user.ID,
		Role:   string(user.Role),
	})
	return user, nil
}
