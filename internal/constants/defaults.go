// Package constants provides shared constant values used throughout the application.
//
// The defaults.go file defines default values and limits used as fallbacks when
// configuration does not specify them. Changes to these values may significantly
// impact application behavior and security.
package constants

import "time"

// Default Configuration Values define fallback settings when not specified in configuration.
const (
	// DefaultServerPort is the default HTTP server port.
	DefaultServerPort = 3000

	// DefaultServerHost is the default HTTP server bind address.
	DefaultServerHost = "0.0.0.0"

	// DefaultDBMaxConnections is the default maximum number of database connections.
	DefaultDBMaxConnections = 20

	// DefaultDBMinConnections is the default minimum number of idle database connections.
	DefaultDBMinConnections = 5

	// DefaultLogLevel is the default logging verbosity level.
	DefaultLogLevel = "info"

	// DefaultLogFormat is the default logging output format.
	DefaultLogFormat = "json"
)

// JWT Defaults define the fallback token policy when not configured.
const (
	// DefaultJWTIssuer identifies tokens minted by this service.
	DefaultJWTIssuer = "uservault-api"

	// DefaultAccessExpiry is the default lifetime of an access token.
	DefaultAccessExpiry = 15 * time.Minute

	// DefaultRefreshExpiry is the default lifetime of a refresh token.
	DefaultRefreshExpiry = 7 * 24 * time.Hour
)

// Timeouts define durations for server lifecycle operations.
const (
	// DefaultReadTimeout is the maximum duration for reading an entire request.
	DefaultReadTimeout = 10 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out response writes.
	DefaultWriteTimeout = 30 * time.Second

	// DefaultIdleTimeout is the maximum time to wait for the next request on a kept-alive connection.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultShutdownTimeout is the grace period for in-flight requests on shutdown.
	DefaultShutdownTimeout = 15 * time.Second
)

// Environment Types define the recognized application running environments.
const (
	// EnvDevelopment identifies a development environment.
	EnvDevelopment = "development"

	// EnvTesting identifies a testing environment for automated tests.
	EnvTesting = "testing"

	// EnvProduction identifies a production environment.
	EnvProduction = "production"
)

// Request and Upload Limits bound resource consumption per request.
const (
	// MaxRequestBodySize is the maximum size in bytes for JSON request bodies.
	MaxRequestBodySize = 1 << 20 // 1MB

	// MaxUploadSize is the maximum size in bytes for a profile image upload.
	MaxUploadSize = 5 << 20 // 5MB
)

// Default Upload Settings define where profile images are stored and served from.
const (
	// DefaultUploadDir is the filesystem directory for stored profile images.
	DefaultUploadDir = "public/uploads"

	// DefaultUploadBaseURL is the public URL prefix under which uploads are served.
	DefaultUploadBaseURL = "/uploads"
)

// Validation Limits bound user-supplied principal fields.
const (
	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 8

	// MaxNameLength is the maximum accepted display-name length.
	MaxNameLength = 100
)
