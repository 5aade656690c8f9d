package auth

import (
	"github.com/uservault/backend/internal/config"
	"github.com/uservault/backend/internal/models"
)

// JWTValidator defines the interface for JWT validation
type JWTValidator interface {
	// ValidateToken validates a JWT token and returns its claims if valid
	ValidateToken(tokenString string, expectedType string) (*CustomClaims, error)

	// ParseTokenWithoutValidation parses a token without validating it to extract the JWT ID
	ParseTokenWithoutValidation(tokenString string) (string, error)

	// GetConfig returns the JWT settings configuration
	GetConfig() *config.JWTSettings
}

// TokenIssuer defines the interface for minting token pairs
type TokenIssuer interface {
	// IssueTokenPair generates an access/refresh token pair for a user
	IssueTokenPair(user *models.User) (*models.TokenPair, error)
}

// Compile-time checks that JWTService satisfies both interfaces.
var (
	_ JWTValidator = (*JWTService)(nil)
	_ TokenIssuer  = (*JWTService)(nil)
)
