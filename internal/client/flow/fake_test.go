package flow

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/authflow/internal/client/api"
)

// fakeAPI records calls and returns the configured error per method name.
type fakeAPI struct {
	mu        sync.Mutex
	calls     []string
	errs      map[string]error
	login     *api.LoginResult
	countries []api.Country
	countryN  int
	lastToken string
	lastUser  api.User

	// block, when set, holds the named call until its context ends.
	block string
	// hold, when set, keeps holdName waiting until the channel is closed,
	// whatever happens to its context.
	holdName string
	hold     chan struct{}
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{errs: map[string]error{}}
}

func (f *fakeAPI) record(ctx context.Context, name string, args ...any) error {
	f.mu.Lock()
	f.calls = append(f.calls, fmt.Sprint(append([]any{name}, args...)...))
	err := f.errs[name]
	block := f.block == name
	var hold chan struct{}
	if f.holdName == name {
		hold = f.hold
	}
	f.mu.Unlock()

	if hold != nil {
		<-hold
		return err
	}
	if block {
		<-ctx.Done()
		return ctx.Err()
	}
	return err
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) setErr(name string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[name] = err
}

func (f *fakeAPI) Register(ctx context.Context, u api.User) error {
	f.mu.Lock()
	f.lastUser = u
	f.mu.Unlock()
	return f.record(ctx, "register", " ", u.Username, " ", u.Password, " ", u.Email)
}

func (f *fakeAPI) Login(ctx context.Context, c api.Credentials) (*api.LoginResult, error) {
	if err := f.record(ctx, "login", " ", c.Username, " ", c.Password); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	res := *f.login
	return &res, nil
}

func (f *fakeAPI) VerifyEmail(ctx context.Context, username, code string) error {
	return f.record(ctx, "verifyEmail", " ", username, " ", code)
}

func (f *fakeAPI) ResendVerificationEmail(ctx context.Context, username string) error {
	return f.record(ctx, "resendEmail", " ", username)
}

func (f *fakeAPI) RegisterPhoneNumber(ctx context.Context, username, phone string) error {
	return f.record(ctx, "registerPhone", " ", username, " ", phone)
}

func (f *fakeAPI) VerifyPhoneNumber(ctx context.Context, username, phone, code string) error {
	return f.record(ctx, "verifyPhone", " ", username, " ", phone, " ", code)
}

func (f *fakeAPI) ResendVerificationPhone(ctx context.Context, username, phone string) error {
	return f.record(ctx, "resendPhone", " ", username, " ", phone)
}

// GetCountries is not recorded in calls: the phone screen prefetches it in
// the background.
func (f *fakeAPI) GetCountries(ctx context.Context) ([]api.Country, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.countryN++
	if err := f.errs["countries"]; err != nil {
		return nil, err
	}
	return f.countries, nil
}

func (f *fakeAPI) RequestPasswordReset(ctx context.Context, usernameOrEmail string) error {
	return f.record(ctx, "forgot", " ", usernameOrEmail)
}

func (f *fakeAPI) ResetPassword(ctx context.Context, usernameOrEmail, randomPassword, newPassword, token string) error {
	f.mu.Lock()
	f.lastToken = token
	f.mu.Unlock()
	return f.record(ctx, "reset", " ", usernameOrEmail, " ", randomPassword, " ", newPassword)
}

func (f *fakeAPI) Ping(ctx context.Context) error {
	return nil
}
