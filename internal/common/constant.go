// Package common contains shared constants and small helpers used across
// authflow components.
package common

// Header names set on every outbound backend request.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
)

// BearerPrefix precedes the session token in the Authorization header.
const BearerPrefix = "Bearer "
