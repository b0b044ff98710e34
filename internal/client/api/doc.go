// Package api is the typed client for the user registration backend.
//
// # Overview
//
// Client lists one method per backend operation: signup, login, email and
// phone verification (with resend), the country list used to build phone
// numbers, and the password reset pair. HTTPClient implements it over
// net/http and JSON.
//
// # Error Handling
//
// Any non-2xx response becomes a *RemoteError carrying the status and the
// backend's message, if it sent one. Conditions callers branch on are also
// reachable through errors.Is: ErrUnauthorized for 401/403, ErrUnavailable
// for 502/503/504 and transport failures. UserMessage picks the text that is
// shown to the user.
//
// All operations accept context.Context and honor cancellation.
package api
