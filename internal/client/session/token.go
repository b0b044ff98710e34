package session

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is what the client can learn from a bearer token without the
// server's key. The signature is NOT verified; never use these values for
// authorization decisions.
type TokenClaims struct {
	Subject   string
	UserID    string
	Role      string
	ExpiresAt time.Time
}

type tokenClaims struct {
	jwt.RegisteredClaims
	UserID  any    `json:"userId,omitempty"`
	UserID2 any    `json:"UserID,omitempty"`
	Role    string `json:"rol,omitempty"`
}

// ParseClaims decodes a JWT token's payload. Opaque tokens yield an error.
func ParseClaims(token string) (*TokenClaims, error) {
	c := &tokenClaims{}
	if _, _, err := jwt.NewParser(jwt.WithJSONNumber()).ParseUnverified(token, c); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	out := &TokenClaims{Subject: c.Subject, Role: c.Role}
	switch {
	case c.UserID != nil:
		out.UserID = claimString(c.UserID)
	case c.UserID2 != nil:
		out.UserID = claimString(c.UserID2)
	default:
		out.UserID = c.Subject
	}
	if c.ExpiresAt != nil {
		out.ExpiresAt = c.ExpiresAt.Time
	}
	return out, nil
}

// claimString renders a string or numeric claim. Numbers keep their exact
// textual form, so 1234567 stays "1234567".
func claimString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

// Expired reports whether the token carries an expiry that is not after now.
func (c *TokenClaims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}
