package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/authflow/internal/common"
	"github.com/dmitrijs2005/authflow/internal/logging"
	"github.com/google/uuid"
)

const (
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 1 << 20
	maxBody        = 8 << 20
)

// HTTPClient talks to the backend's REST API under baseURL+prefix.
type HTTPClient struct {
	base  *url.URL
	http  *http.Client
	log   logging.Logger
	newID func() string
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.http = c }
}

func WithLogger(l logging.Logger) Option {
	return func(h *HTTPClient) { h.log = l }
}

// WithTimeout sets the per-request timeout of the default *http.Client.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTPClient) {
		if d > 0 {
			h.http.Timeout = d
		}
	}
}

// NewHTTPClient builds a client for e.g. ("http://localhost:3000", "api/users/").
func NewHTTPClient(baseURL, prefix string, opts ...Option) (*HTTPClient, error) {
	root := strings.TrimRight(baseURL, "/") + "/" + strings.Trim(prefix, "/") + "/"
	if strings.Trim(prefix, "/") == "" {
		root = strings.TrimRight(baseURL, "/") + "/"
	}
	u, err := url.Parse(root)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported base url scheme %q", u.Scheme)
	}

	h := &HTTPClient{
		base:  u,
		http:  &http.Client{Timeout: defaultTimeout},
		log:   logging.Nop(),
		newID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

func (h *HTTPClient) Register(ctx context.Context, user User) error {
	return h.do(ctx, http.MethodPost, "signup", "", user, nil)
}

func (h *HTTPClient) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	var resp loginResponse
	if err := h.do(ctx, http.MethodPost, "login", "", creds, &resp); err != nil {
		return nil, err
	}
	return resp.result(), nil
}

func (h *HTTPClient) VerifyEmail(ctx context.Context, username, code string) error {
	return h.do(ctx, http.MethodPut, "verify/email", "", verifyEmailRequest{
		Username:         username,
		VerificationCode: code,
	}, nil)
}

func (h *HTTPClient) ResendVerificationEmail(ctx context.Context, username string) error {
	return h.do(ctx, http.MethodPost, "verify/email/resend", "", usernameRequest{Username: username}, nil)
}

func (h *HTTPClient) RegisterPhoneNumber(ctx context.Context, username, phone string) error {
	return h.do(ctx, http.MethodPost, "phone/send", "", phoneRequest{
		Username:    username,
		PhoneNumber: phone,
	}, nil)
}

func (h *HTTPClient) VerifyPhoneNumber(ctx context.Context, username, phone, code string) error {
	return h.do(ctx, http.MethodPut, "verify/phone", "", verifyPhoneRequest{
		Username:         username,
		PhoneNumber:      phone,
		VerificationCode: code,
	}, nil)
}

func (h *HTTPClient) ResendVerificationPhone(ctx context.Context, username, phone string) error {
	return h.do(ctx, http.MethodPost, "verify/phone/resend", "", phoneRequest{
		Username:    username,
		PhoneNumber: phone,
	}, nil)
}

func (h *HTTPClient) GetCountries(ctx context.Context) ([]Country, error) {
	var raw []country
	if err := h.do(ctx, http.MethodGet, "countries", "", nil, &raw); err != nil {
		return nil, err
	}
	out := make([]Country, 0, len(raw))
	for _, c := range raw {
		out = append(out, c.toCountry())
	}
	return out, nil
}

func (h *HTTPClient) RequestPasswordReset(ctx context.Context, usernameOrEmail string) error {
	return h.do(ctx, http.MethodPost, "forgotPassword", "", forgotPasswordRequest{
		UsernameOrEmail: usernameOrEmail,
	}, nil)
}

func (h *HTTPClient) ResetPassword(ctx context.Context, usernameOrEmail, randomPassword, newPassword, token string) error {
	return h.do(ctx, http.MethodPost, "resetPassword", token, resetPasswordRequest{
		UsernameOrEmail: usernameOrEmail,
		RandomPassword:  randomPassword,
		NewPassword:     newPassword,
	}, nil)
}

// Ping reports whether the backend answers at all. Any HTTP response,
// including an error status other than 502/503/504, counts as reachable.
func (h *HTTPClient) Ping(ctx context.Context) error {
	err := h.do(ctx, http.MethodGet, "countries", "", nil, nil)
	var re *RemoteError
	if errors.As(err, &re) && !errors.Is(err, ErrUnavailable) {
		return nil
	}
	return err
}

// do sends body as JSON and decodes a 2xx response into out when out is
// non-nil. token, when set, goes into the Authorization header.
func (h *HTTPClient) do(ctx context.Context, method, path, token string, body, out any) error {
	endpoint := h.base.ResolveReference(&url.URL{Path: path})

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", path, err)
		}
		reader = bytes.NewReader(buf)
	}

	reqID := h.newID()
	ctx = logging.WithRequestID(ctx, reqID)

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, reqID)
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	start := time.Now()
	resp, err := h.http.Do(req)
	if err != nil {
		h.log.Debug(ctx, "request failed", "method", method, "path", path, "error", err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	h.log.Debug(ctx, "request done",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return remoteError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func remoteError(resp *http.Response) error {
	re := &RemoteError{Status: resp.StatusCode}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(bytes.TrimSpace(raw)) == 0 {
		return re
	}
	var eb errorBody
	if json.Unmarshal(raw, &eb) == nil {
		re.Message = eb.text()
	}
	return re
}
