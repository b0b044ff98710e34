// Package session keeps the client's session state (token, user id, the
// route of the current verification step) behind an injectable Store.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Keys persisted by the client.
const (
	KeyToken  = "token"
	KeyUserID = "userId"
	KeyRoute  = "route"
)

var (
	ErrNotFound   = errors.New("session key not found")
	ErrNoToken    = errors.New("authentication token not found")
	ErrEmptyToken = errors.New("empty session token")
)

// Store is a string key/value store. Implementations must be safe for
// concurrent use.
type Store interface {
	// Get returns ErrNotFound (possibly wrapped) for a missing key.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// SetMany writes all pairs atomically where the backend allows it.
	SetMany(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Close() error
}

// Timestamped is implemented by stores that record write times.
type Timestamped interface {
	UpdatedAt(ctx context.Context, key string) (time.Time, error)
}

// SaveLogin records a successful login. The token is always written; the
// user id only when non-empty, so an earlier id survives a response that
// omits it.
func SaveLogin(ctx context.Context, s Store, token, userID string) error {
	if token == "" {
		return ErrEmptyToken
	}
	values := map[string]string{KeyToken: token}
	if userID != "" {
		values[KeyUserID] = userID
	}
	if err := s.SetMany(ctx, values); err != nil {
		return fmt.Errorf("save login: %w", err)
	}
	return nil
}

// Token returns the stored bearer token or ErrNoToken.
func Token(ctx context.Context, s Store) (string, error) {
	return required(ctx, s, KeyToken)
}

// UserID returns the stored user id or ErrNotFound.
func UserID(ctx context.Context, s Store) (string, error) {
	v, err := s.Get(ctx, KeyUserID)
	if err != nil {
		return "", err
	}
	return v, nil
}

// Logout drops the token and user id. The saved route is kept so the flow
// can resume at the login step.
func Logout(ctx context.Context, s Store) error {
	for _, k := range []string{KeyToken, KeyUserID} {
		if err := s.Delete(ctx, k); err != nil {
			return fmt.Errorf("logout: %w", err)
		}
	}
	return nil
}

func required(ctx context.Context, s Store, key string) (string, error) {
	v, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) || (err == nil && v == "") {
		return "", ErrNoToken
	}
	if err != nil {
		return "", err
	}
	return v, nil
}
