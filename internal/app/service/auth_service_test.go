package service

import (
	"testing"
	"time"

	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/internal/app/repository"
	"github.com/ikkim/storefront-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthServiceTest(t *testing.T) AuthService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	return NewAuthService(userRepo, "test-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestAuthService_Register_Success(t *testing.T) {
	authService := setupAuthServiceTest(t)

	user, tokens, err := authService.Register("new@example.com", "password123", "New User", "010-1111-2222")
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.NotEqual(t, "password123", user.PasswordHash)

	require.NotNil(t, tokens)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	authService := setupAuthServiceTest(t)

	_, _, err := authService.Register("dup@example.com", "password123", "First", "")
	require.NoError(t, err)

	_, _, err = authService.Register("dup@example.com", "password456", "Second", "")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestAuthService_Login_Success(t *testing.T) {
	authService := setupAuthServiceTest(t)

	registered, _, err := authService.Register("login@example.com", "password123", "Login User", "")
	require.NoError(t, err)

	user, tokens, err := authService.Login("login@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, tokens.AccessToken)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	authService := setupAuthServiceTest(t)

	_, _, err := authService.Register("wrong@example.com", "password123", "User", "")
	require.NoError(t, err)

	_, _, err = authService.Login("wrong@example.com", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	authService := setupAuthServiceTest(t)

	_, _, err := authService.Login("nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_GetUserByID_NotFound(t *testing.T) {
	authService := setupAuthServiceTest(t)

	_, err := authService.GetUserByID(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
