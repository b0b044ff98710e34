package flow

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	ParamUsername = "username"
	ParamPhone    = "phoneNumber"
)

var statePaths = map[State]string{
	Registering:             "/register",
	AwaitingEmailCode:       "/verify-email",
	AwaitingPhoneNumber:     "/send-phone",
	AwaitingPhoneCode:       "/verify-phone",
	LoggingIn:               "/login",
	RequestingPasswordReset: "/forgot-password",
	PasswordChange:          "/change-password",
	AdminHome:               "/admin",
	UserHome:                "/home",
}

var pathStates = func() map[string]State {
	m := make(map[string]State, len(statePaths))
	for s, p := range statePaths {
		m[p] = s
	}
	return m
}()

// Route is a state plus the identity carried into it, rendered like
// "/verify-phone?phoneNumber=%2B573001234567&username=alice".
type Route struct {
	State  State
	Params url.Values
}

// NewRoute builds a route from alternating key/value pairs; empty values
// are skipped.
func NewRoute(s State, kv ...string) Route {
	r := Route{State: s}
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] == "" {
			continue
		}
		if r.Params == nil {
			r.Params = url.Values{}
		}
		r.Params.Set(kv[i], kv[i+1])
	}
	return r
}

func (r Route) Path() string {
	return statePaths[r.State]
}

func (r Route) String() string {
	if len(r.Params) == 0 {
		return r.Path()
	}
	return r.Path() + "?" + r.Params.Encode()
}

func (r Route) Param(key string) string {
	return r.Params.Get(key)
}

func (r Route) Username() string { return r.Param(ParamUsername) }

func (r Route) Phone() string { return r.Param(ParamPhone) }

// Validate checks that the identity a state needs is present.
func (r Route) Validate() error {
	if _, ok := statePaths[r.State]; !ok {
		return fmt.Errorf("%w: state %d", ErrUnknownRoute, int(r.State))
	}
	switch r.State {
	case AwaitingEmailCode, AwaitingPhoneNumber:
		if r.Username() == "" {
			return ErrMissingUsername
		}
	case AwaitingPhoneCode:
		if r.Username() == "" {
			return ErrMissingUsername
		}
		if NormalizePhone(r.Phone()) == "" {
			return ErrMissingPhone
		}
	}
	return nil
}

// ParseRoute reads a route in the String form. A leading slash is optional.
func ParseRoute(s string) (Route, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Route{}, fmt.Errorf("%w: empty", ErrUnknownRoute)
	}
	if !strings.HasPrefix(s, "/") {
		s = "/" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return Route{}, fmt.Errorf("%w: %w", ErrUnknownRoute, err)
	}

	path := strings.TrimRight(u.Path, "/")
	st, ok := pathStates[path]
	if !ok {
		return Route{}, fmt.Errorf("%w: %s", ErrUnknownRoute, u.Path)
	}

	r := Route{State: st}
	if q := u.Query(); len(q) > 0 {
		r.Params = q
	}
	return r, nil
}
