package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/uservault/backend/internal/models"
)

func TestNewUser(t *testing.T) {
	user := models.NewUser("  Alice ", " Alice@Example.COM ", " 1234567890 ")

	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "1234567890", user.Phone)
	assert.False(t, user.IsAdmin)
	assert.False(t, user.CreatedAt.IsZero())
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase unchanged", "a@x.com", "a@x.com"},
		{"uppercase folded", "A@X.COM", "a@x.com"},
		{"surrounding whitespace trimmed", "  a@x.com\t", "a@x.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, models.NormalizeEmail(tt.input))
		})
	}
}

func TestUserSanitize(t *testing.T) {
	user := &models.User{
		ID:           1,
		Name:         "Alice",
		Email:        "a@x.com",
		PasswordHash: "secret-hash",
	}

	sanitized := user.Sanitize()

	assert.Empty(t, sanitized.PasswordHash)
	assert.Equal(t, user.ID, sanitized.ID)
	assert.Equal(t, user.Email, sanitized.Email)

	// The original must not be mutated.
	assert.Equal(t, "secret-hash", user.PasswordHash)
}

func TestUserHasRole(t *testing.T) {
	admin := &models.User{IsAdmin: true}
	user := &models.User{IsAdmin: false}

	assert.True(t, admin.HasRole(models.RoleAdmin))
	assert.False(t, admin.HasRole(models.RoleUser))
	assert.True(t, user.HasRole(models.RoleUser))
	assert.False(t, user.HasRole(models.RoleAdmin))
}
