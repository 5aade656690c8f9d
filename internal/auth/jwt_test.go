package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/uservault/backend/internal/config"
	"github.com/uservault/backend/internal/constants"
	"github.com/uservault/backend/internal/models"
	"github.com/uservault/backend/internal/utils"
)

func testJWTSettings() *config.JWTSettings {
	return &config.JWTSettings{
		Secret:        "test-secret-key",
		Expiry:        15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
		Issuer:        "uservault-test",
	}
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	service := NewJWTService(testJWTSettings())

	token, jwtID, err := service.GenerateAccessToken(42, "alice@example.com", false)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	if token == "" || jwtID == "" {
		t.Fatal("GenerateAccessToken() returned empty token or ID")
	}

	claims, err := service.ValidateToken(token, constants.TokenTypeAccess)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}

	if claims.UserID != 42 {
		t.Errorf("UserID = %v, want 42", claims.UserID)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("Email = %v, want alice@example.com", claims.Email)
	}
	if claims.IsAdmin {
		t.Error("IsAdmin = true, want false")
	}
	if claims.TokenType != constants.TokenTypeAccess {
		t.Errorf("TokenType = %v, want access", claims.TokenType)
	}
	if claims.Issuer != "uservault-test" {
		t.Errorf("Issuer = %v, want uservault-test", claims.Issuer)
	}
	if claims.ID != jwtID {
		t.Errorf("claims.ID = %v, want %v", claims.ID, jwtID)
	}
}

func TestTokenTypeMismatchRejected(t *testing.T) {
	service := NewJWTService(testJWTSettings())

	refreshToken, _, err := service.GenerateRefreshToken(1, "a@x.com", true)
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error = %v", err)
	}

	// A refresh token must not pass as an access token, and vice versa
	if _, err := service.ValidateToken(refreshToken, constants.TokenTypeAccess); err == nil {
		t.Error("ValidateToken(refresh as access) error = nil, want error")
	}

	accessToken, _, err := service.GenerateAccessToken(1, "a@x.com", true)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	if _, err := service.ValidateToken(accessToken, constants.TokenTypeRefresh); err == nil {
		t.Error("ValidateToken(access as refresh) error = nil, want error")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	settings := testJWTSettings()
	settings.Expiry = -1 * time.Minute
	service := NewJWTService(settings)

	token, _, err := service.GenerateAccessToken(1, "a@x.com", false)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	_, err = service.ValidateToken(token, constants.TokenTypeAccess)
	if err == nil {
		t.Fatal("ValidateToken() error = nil, want expired token error")
	}
	if !errors.Is(err, utils.ErrExpiredToken) {
		t.Errorf("error = %v, want wrapped ErrExpiredToken", err)
	}
}

func TestWrongSecretRejected(t *testing.T) {
	service := NewJWTService(testJWTSettings())

	token, _, err := service.GenerateAccessToken(1, "a@x.com", false)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	otherSettings := testJWTSettings()
	otherSettings.Secret = "different-secret"
	otherService := NewJWTService(otherSettings)

	if _, err := otherService.ValidateToken(token, constants.TokenTypeAccess); err == nil {
		t.Error("ValidateToken() with wrong secret error = nil, want error")
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	service := NewJWTService(testJWTSettings())

	tests := []string{
		"",
		"not-a-token",
		"aaa.bbb.ccc",
	}

	for _, token := range tests {
		if _, err := service.ValidateToken(token, constants.TokenTypeAccess); err == nil {
			t.Errorf("ValidateToken(%q) error = nil, want error", token)
		}
	}
}

func TestIssueTokenPair(t *testing.T) {
	service := NewJWTService(testJWTSettings())
	user := &models.User{ID: 7, Email: "admin@x.com", IsAdmin: true}

	pair, err := service.IssueTokenPair(user)
	if err != nil {
		t.Fatalf("IssueTokenPair() error = %v", err)
	}

	accessClaims, err := service.ValidateToken(pair.AccessToken, constants.TokenTypeAccess)
	if err != nil {
		t.Fatalf("ValidateToken(access) error = %v", err)
	}
	refreshClaims, err := service.ValidateToken(pair.RefreshToken, constants.TokenTypeRefresh)
	if err != nil {
		t.Fatalf("ValidateToken(refresh) error = %v", err)
	}

	if accessClaims.UserID != 7 || refreshClaims.UserID != 7 {
		t.Error("token pair claims carry wrong user ID")
	}
	if !accessClaims.IsAdmin || !refreshClaims.IsAdmin {
		t.Error("token pair claims lost the admin flag")
	}
	// Refresh must outlive access
	if !refreshClaims.ExpiresAt.After(accessClaims.ExpiresAt.Time) {
		t.Error("refresh token does not outlive access token")
	}
}

func TestParseTokenWithoutValidation(t *testing.T) {
	service := NewJWTService(testJWTSettings())

	token, jwtID, err := service.GenerateAccessToken(1, "a@x.com", false)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	gotID, err := service.ParseTokenWithoutValidation(token)
	if err != nil {
		t.Fatalf("ParseTokenWithoutValidation() error = %v", err)
	}
	if gotID != jwtID {
		t.Errorf("jwt ID = %v, want %v", gotID, jwtID)
	}
}

func TestExtractUserIDFromToken(t *testing.T) {
	service := NewJWTService(testJWTSettings())

	token, _, err := service.GenerateAccessToken(99, "a@x.com", false)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	userID, err := service.ExtractUserIDFromToken(token)
	if err != nil {
		t.Fatalf("ExtractUserIDFromToken() error = %v", err)
	}
	if userID != 99 {
		t.Errorf("userID = %v, want 99", userID)
	}
}
