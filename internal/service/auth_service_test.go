package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uservault/backend/internal/auth"
	"github.com/uservault/backend/internal/config"
	"github.com/uservault/backend/internal/constants"
	"github.com/uservault/backend/internal/models"
	"github.com/uservault/backend/internal/repository"
	"github.com/uservault/backend/internal/utils"
)

var _ repository.UserRepository = (*MockUserRepository)(nil)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(&config.JWTSettings{
		Secret:        "service-test-secret",
		Expiry:        15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
		Issuer:        "uservault-test",
	})
}

func seedUser(t *testing.T, repo *MockUserRepository, email, password string, isAdmin bool) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	return repo.Seed(&models.User{
		Name:         "Seeded",
		Email:        email,
		Phone:        "1234567890",
		PasswordHash: hash,
		IsAdmin:      isAdmin,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	})
}

func TestAuthService_Register(t *testing.T) {
	repo := NewMockUserRepository()
	svc := NewAuthService(repo, newTestJWTService())

	user, err := svc.Register(context.Background(), &models.UserRegistration{
		Name:     "Alice",
		Email:    "Alice@Example.com",
		Phone:    "1234567890",
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice@example.com", user.Email) // normalized
	assert.False(t, user.IsAdmin)                    // registration never creates admins
	assert.Empty(t, user.PasswordHash)               // sanitized

	// The stored record carries a hash, not the plaintext
	stored, err := repo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := NewMockUserRepository()
	svc := NewAuthService(repo, newTestJWTService())
	seedUser(t, repo, "taken@example.com", "whatever1", false)

	_, err := svc.Register(context.Background(), &models.UserRegistration{
		Name:     "Bob",
		Email:    "taken@example.com",
		Phone:    "1234567890",
		Password: "secret123",
	})

	require.Error(t, err)
	assert.True(t, utils.IsDuplicateError(err))
}

func TestAuthService_Login(t *testing.T) {
	repo := NewMockUserRepository()
	jwtSvc := newTestJWTService()
	svc := NewAuthService(repo, jwtSvc)
	seeded := seedUser(t, repo, "alice@example.com", "secret123", false)

	result, err := svc.Login(context.Background(), &models.UserCredentials{
		Email:    "alice@example.com",
		Password: "secret123",
	}, models.RoleUser)

	require.NoError(t, err)
	assert.Equal(t, seeded.ID, result.User.ID)
	assert.Empty(t, result.User.PasswordHash)
	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.NotEmpty(t, result.Tokens.RefreshToken)

	// Issued tokens carry the principal's identity
	claims, err := jwtSvc.ValidateToken(result.Tokens.AccessToken, constants.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, claims.UserID)
	assert.False(t, claims.IsAdmin)
}

func TestAuthService_Login_Failures(t *testing.T) {
	repo := NewMockUserRepository()
	svc := NewAuthService(repo, newTestJWTService())
	seedUser(t, repo, "alice@example.com", "secret123", false)
	seedUser(t, repo, "root@example.com", "admin-secret", true)

	tests := []struct {
		name  string
		email string
		pass  string
		role  models.Role
	}{
		{"Unknown email", "nobody@example.com", "secret123", models.RoleUser},
		{"Wrong password", "alice@example.com", "wrong", models.RoleUser},
		{"User credentials on admin login", "alice@example.com", "secret123", models.RoleAdmin},
		{"Admin credentials on user login", "root@example.com", "admin-secret", models.RoleUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), &models.UserCredentials{
				Email:    tt.email,
				Password: tt.pass,
			}, tt.role)

			require.Error(t, err)

			// Every failure yields the same message and status
			appErr := utils.ParseError(err)
			assert.Equal(t, constants.MsgInvalidCredentials, appErr.Message)
			assert.Equal(t, 401, appErr.StatusCode)
		})
	}
}

func TestAuthService_Refresh(t *testing.T) {
	repo := NewMockUserRepository()
	jwtSvc := newTestJWTService()
	svc := NewAuthService(repo, jwtSvc)
	seeded := seedUser(t, repo, "alice@example.com", "secret123", false)

	pair, err := jwtSvc.IssueTokenPair(seeded)
	require.NoError(t, err)

	newPair, err := svc.Refresh(context.Background(), pair.RefreshToken, models.RoleUser)

	require.NoError(t, err)
	assert.NotEmpty(t, newPair.AccessToken)
	assert.NotEmpty(t, newPair.RefreshToken)

	claims, err := jwtSvc.ValidateToken(newPair.AccessToken, constants.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, claims.UserID)
}

func TestAuthService_Refresh_Failures(t *testing.T) {
	repo := NewMockUserRepository()
	jwtSvc := newTestJWTService()
	svc := NewAuthService(repo, jwtSvc)
	user := seedUser(t, repo, "alice@example.com", "secret123", false)
	admin := seedUser(t, repo, "root@example.com", "admin-secret", true)

	userPair, err := jwtSvc.IssueTokenPair(user)
	require.NoError(t, err)
	adminPair, err := jwtSvc.IssueTokenPair(admin)
	require.NoError(t, err)

	t.Run("Garbage token", func(t *testing.T) {
		_, err := svc.Refresh(context.Background(), "not-a-token", models.RoleUser)
		require.Error(t, err)
		assert.Equal(t, constants.MsgInvalidRefreshToken, utils.ParseError(err).Message)
	})

	t.Run("Access token is not a refresh token", func(t *testing.T) {
		_, err := svc.Refresh(context.Background(), userPair.AccessToken, models.RoleUser)
		require.Error(t, err)
	})

	t.Run("Deleted principal", func(t *testing.T) {
		require.NoError(t, repo.Delete(context.Background(), user.ID))
		_, err := svc.Refresh(context.Background(), userPair.RefreshToken, models.RoleUser)
		require.Error(t, err)
		assert.Equal(t, constants.MsgInvalidRefreshToken, utils.ParseError(err).Message)
	})

	t.Run("Demoted admin on admin refresh", func(t *testing.T) {
		// Demote after issuance; the still-valid token must be refused
		repo.Seed(&models.User{ID: admin.ID, Email: admin.Email, PasswordHash: admin.PasswordHash, IsAdmin: false})

		_, err := svc.Refresh(context.Background(), adminPair.RefreshToken, models.RoleAdmin)
		require.Error(t, err)
		assert.Equal(t, constants.MsgInvalidRefreshToken, utils.ParseError(err).Message)
	})
}
