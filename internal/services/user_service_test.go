package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/tutoring-service/internal/events"
	"github.com/SAP-F-2025/tutoring-service/internal/models"
	"github.com/SAP-F-2025/tutoring-service/internal/utils"
	"github.com/SAP-F-2025/tutoring-service/internal/validator"
)

func newUserService(store *memStore, publisher events.EventPublisher) UserService {
	return NewUserService(store, utils.NewNopLogger(), validator.New(), publisher)
}

func TestUserService_GetOrCreate(t *testing.T) {
	store := newMemStore()
	svc := newUserService(store, nil)
	ctx := context.Background()

	identity := &models.Identity{Provider: "google", Email: "New@Example.com", Name: "New User", Image: "https://img/new.png"}

	first, err := svc.GetOrCreate(ctx, identity)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", first.Email)
	assert.Equal(t, models.RoleStudent, first.Role)
	assert.False(t, first.RoleSelected)
	require.NotNil(t, first.Image)
	assert.Equal(t, "https://img/new.png", *first.Image)

	second, err := svc.GetOrCreate(ctx, identity)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, store.users, 1)

	_, err = svc.GetOrCreate(ctx, &models.Identity{})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestUserService_GetByEmail(t *testing.T) {
	store := newMemStore()
	u := store.addUser("dora", models.RoleTeacher)
	svc := newUserService(store, nil)

	got, err := svc.GetByEmail(context.Background(), " DORA@example.com ")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.GetByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_SelectRoleOnce(t *testing.T) {
	store := newMemStore()
	publisher := events.NewMockEventPublisher(nil)
	svc := newUserService(store, publisher)
	ctx := context.Background()
	u := store.addUser("erin", models.RoleStudent)

	updated, err := svc.SelectRole(ctx, u.ID, &SelectRoleRequest{Role: models.RoleTeacher})
	require.NoError(t, err)
	assert.Equal(t, models.RoleTeacher, updated.Role)
	assert.True(t, updated.RoleSelected)
	assert.Len(t, publisher.EventsOfType(events.UserRoleSelected), 1)

	same, err := svc.SelectRole(ctx, u.ID, &SelectRoleRequest{Role: models.RoleTeacher})
	require.NoError(t, err)
	assert.Equal(t, models.RoleTeacher, same.Role)

	_, err = svc.SelectRole(ctx, u.ID, &SelectRoleRequest{Role: models.RoleStudent})
	assert.ErrorIs(t, err, ErrRoleAlreadySelected)
	assert.Equal(t, models.RoleTeacher, store.users[u.ID].Role)

	_, err = svc.SelectRole(ctx, u.ID, &SelectRoleRequest{Role: "admin"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	_, err = svc.SelectRole(ctx, "ghost", &SelectRoleRequest{Role: models.RoleStudent})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
