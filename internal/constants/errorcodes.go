// Package constants provides shared constant values used throughout the application.
//
// The errorcodes.go file defines machine-readable error codes and the
// user-facing messages that accompany them. Codes are stable identifiers for
// clients; messages may change without breaking API consumers.
package constants

// Error Codes are machine-readable identifiers included in error responses.
const (
	// CodeBadRequest identifies malformed requests.
	CodeBadRequest = "bad_request"

	// CodeValidationError identifies failed input validation.
	CodeValidationError = "validation_error"

	// CodeUnauthorized identifies missing or failed authentication.
	CodeUnauthorized = "unauthorized"

	// CodeForbidden identifies insufficient privileges.
	CodeForbidden = "forbidden"

	// CodeNotFound identifies missing resources.
	CodeNotFound = "not_found"

	// CodeConflict identifies duplicate-resource conflicts.
	CodeConflict = "conflict"

	// CodeInvalidCredentials identifies failed login attempts.
	CodeInvalidCredentials = "invalid_credentials"

	// CodeTokenExpired identifies expired tokens.
	CodeTokenExpired = "token_expired"

	// CodeTokenInvalid identifies structurally or cryptographically invalid tokens.
	CodeTokenInvalid = "token_invalid"

	// CodeInternalError identifies unexpected server failures.
	CodeInternalError = "internal_error"
)

// Messages are the default human-readable strings for common failures.
const (
	// MsgAuthRequired is returned when authentication is missing or failed.
	MsgAuthRequired = "Authentication required"

	// MsgAdminRequired is returned when an admin route is hit without the admin flag.
	MsgAdminRequired = "Admin access required"

	// MsgInvalidCredentials is the uniform login failure message. It must not
	// distinguish an unknown email from a wrong password.
	MsgInvalidCredentials = "Invalid credentials"

	// MsgInvalidRefreshToken is returned for any refresh-token verification failure.
	MsgInvalidRefreshToken = "Invalid refresh token"

	// MsgTokenExpired is returned when a token is past its expiry.
	MsgTokenExpired = "Token has expired"

	// MsgUserNotFound is returned when a principal lookup fails.
	MsgUserNotFound = "User not found"

	// MsgEmailTaken is returned when a registration or update collides on email.
	MsgEmailTaken = "Email already in use"

	// MsgInternalServerError is the generic message for unexpected failures.
	MsgInternalServerError = "An internal server error occurred"

	// MsgResourceNotFound is the generic message for missing resources.
	MsgResourceNotFound = "The requested resource could not be found"
)
