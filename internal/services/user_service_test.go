package services

import (
	"context"
	"path/filepath"
	"testing"

	"cotton-backend/internal/auth"
	"cotton-backend/internal/config"
	"cotton-backend/internal/db"
	"cotton-backend/internal/models"
	"cotton-backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) *UserService {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, db.InitSchema(database))

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 1
	cfg.JWT.Issuer = "cotton-backend-test"

	return NewUserService(repositories.NewUserRepository(database), auth.NewJWTManager(cfg))
}

func TestUserService_SignupAndLogin(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	user, err := svc.Signup(ctx, &models.SignupRequest{
		Name:     "Asif",
		Email:    "asif@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, "broker", user.Role, "role defaults to broker")
	assert.True(t, user.IsActive)

	t.Run("duplicate email is rejected", func(t *testing.T) {
		_, err := svc.Signup(ctx, &models.SignupRequest{
			Email:    "asif@example.com",
			Password: "whatever",
		})
		assert.Error(t, err)
	})

	t.Run("valid credentials return a token", func(t *testing.T) {
		resp, err := svc.Login(ctx, &models.LoginRequest{Email: "asif@example.com", Password: "hunter2hunter2"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, user.ID, resp.User.ID)
	})

	t.Run("wrong password fails the same as unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, &models.LoginRequest{Email: "asif@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = svc.Login(ctx, &models.LoginRequest{Email: "ghost@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
