// Package constants provides shared constant values used throughout the application.
//
// The general_const.go file defines constants related to routing, headers, and
// request context keys. These ensure consistent naming across handlers and
// middleware.
package constants

// Base Routes define the root URL paths for different parts of the API.
const (
	// APIBasePath is the root path prefix for all API endpoints.
	APIBasePath = "/api"

	// HealthPath is the endpoint for health checks and system status.
	HealthPath = "/health"
)

// URL Parameters define path parameter names used in route definitions.
const (
	// ParamUserID is the URL parameter for user identifiers on admin routes.
	ParamUserID = "userID"
)

// Headers define HTTP header names used by the auth layer.
const (
	// HeaderAuthorization carries the bearer access token.
	HeaderAuthorization = "Authorization"

	// HeaderContentType identifies the request or response media type.
	HeaderContentType = "Content-Type"

	// HeaderXRequestID carries the per-request correlation identifier.
	HeaderXRequestID = "X-Request-ID"

	// BearerTokenPrefix is the required scheme prefix in the Authorization header.
	BearerTokenPrefix = "Bearer "
)

// Content Types define media type values for responses.
const (
	// ContentTypeJSON is the media type for JSON responses.
	ContentTypeJSON = "application/json"
)

// Security Headers are attached to every response by the security middleware.
const (
	// HeaderXContentTypeOptions controls MIME type sniffing.
	HeaderXContentTypeOptions = "X-Content-Type-Options"

	// HeaderXFrameOptions controls whether the page can be displayed in a frame.
	HeaderXFrameOptions = "X-Frame-Options"

	// HeaderXXSSProtection enables the XSS filter in older browsers.
	HeaderXXSSProtection = "X-XSS-Protection"

	// HeaderReferrerPolicy controls how much referrer information is sent.
	HeaderReferrerPolicy = "Referrer-Policy"

	// HeaderContentSecurityPolicy restricts approved content sources.
	HeaderContentSecurityPolicy = "Content-Security-Policy"

	// ContentTypeOptionsNoSniff prevents MIME type sniffing.
	ContentTypeOptionsNoSniff = "nosniff"

	// FrameOptionsDeny prevents the page from being displayed in a frame.
	FrameOptionsDeny = "DENY"

	// XSSProtectionModeBlock blocks page rendering if an attack is detected.
	XSSProtectionModeBlock = "1; mode=block"

	// ReferrerPolicyStrictOrigin limits referrer data on cross-origin requests.
	ReferrerPolicyStrictOrigin = "strict-origin-when-cross-origin"

	// CSPDefaultSrc restricts content sources to the same origin by default.
	CSPDefaultSrc = "default-src 'self'"
)

// Context Keys name the values the auth middleware attaches to request contexts.
// The auth package wraps these in its own key type to prevent collisions.
const (
	// UserIDContextKey stores the authenticated principal's ID.
	UserIDContextKey = "user_id"

	// EmailContextKey stores the authenticated principal's email.
	EmailContextKey = "email"

	// IsAdminContextKey stores the authenticated principal's admin flag.
	IsAdminContextKey = "is_admin"

	// RequestIDContextKey stores the unique request ID.
	RequestIDContextKey = "request_id"
)

// Token Types distinguish the two halves of a token pair.
const (
	// TokenTypeAccess marks short-lived per-request tokens.
	TokenTypeAccess = "access"

	// TokenTypeRefresh marks long-lived tokens accepted only by refresh endpoints.
	TokenTypeRefresh = "refresh"
)

// Multipart Form Fields name the parts of upload requests.
const (
	// FormFieldImage is the multipart field carrying the profile image.
	FormFieldImage = "image"
)
