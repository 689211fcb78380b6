package service

import (
	"context"
	"testing"

	"campus_market/internal/model"
	"campus_market/internal/repository"
	"campus_market/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuth() AuthService {
	jwtUtil := utils.NewJWTUtil("test-secret", 1)
	return NewAuthService(repository.NewMemoryStore(), jwtUtil)
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newAuth()

	user, token, err := svc.Register(ctx, model.RegisterRequest{
		Username: "priya",
		Email:    "priya@campus.edu",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEmpty(t, token)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	require.NotNil(t, user.DisplayName)
	assert.Equal(t, "priya", *user.DisplayName) // Defaults to the username
	assert.Contains(t, user.ExternalID, "local_")

	loggedIn, loginToken, err := svc.Login(ctx, "priya@campus.edu", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, loginToken)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newAuth()

	_, _, err := svc.Register(ctx, model.RegisterRequest{
		Username: "priya",
		Email:    "priya@campus.edu",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, model.RegisterRequest{
		Username: "priya2",
		Email:    "priya@campus.edu",
		Password: "different456",
	})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestAuthService_Register_InitialAdminEmail(t *testing.T) {
	ctx := context.Background()
	svc := newAuth()
	t.Setenv("INITIAL_ADMIN_EMAIL", "admin@campus.edu")

	user, _, err := svc.Register(ctx, model.RegisterRequest{
		Username: "admin",
		Email:    "admin@campus.edu",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, user.Role)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	ctx := context.Background()
	svc := newAuth()

	_, _, err := svc.Register(ctx, model.RegisterRequest{
		Username: "priya",
		Email:    "priya@campus.edu",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "priya@campus.edu", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := newAuth()

	_, _, err := svc.Login(context.Background(), "nobody@campus.edu", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_GetUser(t *testing.T) {
	ctx := context.Background()
	svc := newAuth()

	user, _, err := svc.Register(ctx, model.RegisterRequest{
		Username: "priya",
		Email:    "priya@campus.edu",
		Password: "secret123",
	})
	require.NoError(t, err)

	got, err := svc.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "priya", got.Username)

	got, err = svc.GetUserByEmail(ctx, "priya@campus.edu")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.GetUser(ctx, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
