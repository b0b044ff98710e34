package flow

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/dmitrijs2005/authflow/internal/client/api"
	"github.com/dmitrijs2005/authflow/internal/client/countdown"
	"github.com/dmitrijs2005/authflow/internal/client/forms"
	"github.com/dmitrijs2005/authflow/internal/client/notify"
	"github.com/dmitrijs2005/authflow/internal/client/session"
	"github.com/dmitrijs2005/authflow/internal/logging"
)

// Controller owns the current screen and performs the flow operations.
// Its methods are safe for concurrent use, but only one backend request runs
// at a time; a second one fails with ErrBusy.
type Controller struct {
	api       api.Client
	store     session.Store
	notifier  notify.Notifier
	log       logging.Logger
	validator *forms.Validator

	timerSeconds int
	timerOpts    []countdown.Option

	mu        sync.Mutex
	route     Route
	screenCtx context.Context
	cancel    context.CancelFunc
	screenID  uint64
	timer     *countdown.Timer
	code      CodeInput
	countries []api.Country
	busy      bool
	closed    bool

	bg sync.WaitGroup
}

type Option func(*Controller)

func WithLogger(l logging.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithResendSeconds sets the countdown started on code-entry screens.
func WithResendSeconds(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.timerSeconds = n
		}
	}
}

// WithTimerOptions is passed to every countdown the controller creates.
func WithTimerOptions(opts ...countdown.Option) Option {
	return func(c *Controller) { c.timerOpts = append(c.timerOpts, opts...) }
}

// New returns a controller on the registration screen. The route is not
// persisted until the first transition; call Resume to continue a stored
// flow instead.
func New(client api.Client, store session.Store, n notify.Notifier, opts ...Option) *Controller {
	c := &Controller{
		api:          client,
		store:        store,
		notifier:     n,
		log:          logging.Nop(),
		validator:    forms.NewValidator(),
		timerSeconds: countdown.DefaultSeconds,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.mu.Lock()
	c.enterLocked(NewRoute(Registering))
	c.mu.Unlock()
	return c
}

// Route returns the current route.
func (c *Controller) Route() Route {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.route
}

func (c *Controller) State() State {
	return c.Route().State
}

// Timer returns the resend countdown of the current screen, or nil outside
// code entry.
func (c *Controller) Timer() *countdown.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timer
}

// Code renders the code cells of the current screen.
func (c *Controller) Code() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.code.String()
}

// Navigate moves to r directly, as following a link would. Verification
// routes must carry the username (and phone number) they act on.
func (c *Controller) Navigate(ctx context.Context, r Route) error {
	if phone := r.Phone(); phone != "" {
		r = withParam(r, ParamPhone, NormalizePhone(phone))
	}
	if err := r.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrInvalidState
	}
	c.enterLocked(r)
	c.persistLocked(ctx)
	return nil
}

// Resume restores the route saved by a previous run. It reports false when
// nothing usable was stored.
func (c *Controller) Resume(ctx context.Context) (bool, error) {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return false, ErrInvalidState
	}

	raw, err := c.store.Get(ctx, session.KeyRoute)
	if errors.Is(err, session.ErrNotFound) || (err == nil && raw == "") {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read saved route: %w", err)
	}

	r, err := ParseRoute(raw)
	if err == nil {
		err = r.Validate()
	}
	if err != nil {
		c.log.Warn(ctx, "discarding saved route", "route", raw, "error", err)
		if derr := c.store.Delete(ctx, session.KeyRoute); derr != nil {
			c.log.Warn(ctx, "delete saved route", "error", derr)
		}
		return false, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false, ErrInvalidState
	}
	c.enterLocked(r)
	return true, nil
}

// Close leaves the current screen and waits for background work. Responses
// still in flight are dropped with ErrStaleScreen.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.screenID++
	c.leaveLocked()
	c.mu.Unlock()
	c.bg.Wait()
}

// Register signs the user up and moves to email verification.
func (c *Controller) Register(ctx context.Context, form forms.RegisterForm) error {
	if err := c.expect("register", Registering); err != nil {
		return err
	}
	if err := c.validate(form); err != nil {
		return err
	}

	opCtx, id, done, err := c.begin(ctx, "register", Registering)
	if err != nil {
		return err
	}
	defer done()

	err = c.api.Register(opCtx, api.User{
		Username: form.Username,
		Password: form.Password,
		Email:    form.Email,
		Role:     api.RoleUser,
	})
	return c.finish(ctx, "register", id, err, MsgRegisterFailed, func() (Route, string) {
		return NewRoute(AwaitingEmailCode, ParamUsername, form.Username),
			fmt.Sprintf(msgRegistered, form.Username)
	})
}

// TypeDigit enters one character into the code cells. Filling the last cell
// submits the code; submitted reports whether that happened.
func (c *Controller) TypeDigit(ctx context.Context, ch rune) (submitted bool, err error) {
	c.mu.Lock()
	if !c.route.State.CodeEntry() {
		st := c.route.State
		c.mu.Unlock()
		return false, stateError("type digit", st)
	}
	last := c.code.Type(ch)
	c.mu.Unlock()

	if !last {
		return false, nil
	}
	return true, c.SubmitCode(ctx)
}

// Backspace edits the code cells of the current screen.
func (c *Controller) Backspace() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.code.Backspace()
}

// EnterCode fills the cells from s and submits the result. A code with
// fewer or more than six digits is rejected without contacting the backend.
func (c *Controller) EnterCode(ctx context.Context, s string) error {
	c.mu.Lock()
	if !c.route.State.CodeEntry() {
		st := c.route.State
		c.mu.Unlock()
		return stateError("enter code", st)
	}
	_, err := c.code.Fill(s)
	c.mu.Unlock()
	if err != nil {
		c.notifier.Error(MsgCodeTooLong)
		return err
	}

	return c.SubmitCode(ctx)
}

// SubmitCode sends the code in the cells to the verification endpoint of
// the current screen.
func (c *Controller) SubmitCode(ctx context.Context) error {
	c.mu.Lock()
	code, codeErr := c.code.Code()
	c.mu.Unlock()

	opCtx, id, done, err := c.begin(ctx, "submit code", AwaitingEmailCode, AwaitingPhoneCode)
	if err != nil {
		return err
	}
	defer done()

	if codeErr != nil {
		c.notifier.Error(MsgIncompleteCode)
		return codeErr
	}

	r := c.Route()
	username := r.Username()

	if r.State == AwaitingEmailCode {
		err = c.api.VerifyEmail(opCtx, username, code)
		return c.finish(ctx, "verify email", id, err, MsgVerifyEmailFailed, func() (Route, string) {
			return NewRoute(AwaitingPhoneNumber, ParamUsername, username), msgEmailVerified
		})
	}

	err = c.api.VerifyPhoneNumber(opCtx, username, r.Phone(), code)
	return c.finish(ctx, "verify phone", id, err, MsgVerifyPhoneFailed, func() (Route, string) {
		return NewRoute(LoggingIn, ParamUsername, username), msgPhoneVerified
	})
}

// Resend asks for a new code on the current code-entry screen. It is gated
// by the screen's countdown: while the timer is visible it fails with
// ErrResendTooSoon. The countdown restarts after the backend accepts.
func (c *Controller) Resend(ctx context.Context) error {
	opCtx, id, done, err := c.begin(ctx, "resend", AwaitingEmailCode, AwaitingPhoneCode)
	if err != nil {
		return err
	}
	defer done()

	c.mu.Lock()
	r, timer := c.route, c.timer
	c.mu.Unlock()

	if timer != nil && timer.Visible() {
		c.notifier.Error(fmt.Sprintf(msgResendWait, timer.Format()))
		return ErrResendTooSoon
	}

	if r.State == AwaitingEmailCode {
		err = c.api.ResendVerificationEmail(opCtx, r.Username())
	} else {
		err = c.api.ResendVerificationPhone(opCtx, r.Username(), r.Phone())
	}

	if err := c.current(id); err != nil {
		return err
	}
	if err != nil {
		c.fail(ctx, "resend", err, MsgResendFailed)
		return err
	}

	c.mu.Lock()
	if c.screenID == id && c.timer != nil {
		c.timer.Start(c.screenCtx)
	}
	c.mu.Unlock()

	c.notifier.Success(msgCodeResent)
	return nil
}

// Countries returns the country list used to build phone numbers. A
// successful result is cached for the controller's lifetime.
func (c *Controller) Countries(ctx context.Context) ([]api.Country, error) {
	c.mu.Lock()
	cached := c.countries
	c.mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	list, err := c.api.GetCountries(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []api.Country{}
	}

	c.mu.Lock()
	c.countries = list
	c.mu.Unlock()
	return list, nil
}

// RegisterPhone sends the phone number built from dialPrefix and number and
// moves to phone code entry.
func (c *Controller) RegisterPhone(ctx context.Context, dialPrefix, number string) error {
	if err := c.expect("register phone", AwaitingPhoneNumber); err != nil {
		return err
	}
	r := c.Route()
	if err := c.validate(forms.PhoneForm{Username: r.Username(), DialPrefix: dialPrefix, Number: number}); err != nil {
		return err
	}
	phone, err := FormatPhoneNumber(dialPrefix, number)
	if err != nil {
		c.notifier.Error(MsgInvalidPhone)
		return err
	}

	opCtx, id, done, err := c.begin(ctx, "register phone", AwaitingPhoneNumber)
	if err != nil {
		return err
	}
	defer done()

	username := c.Route().Username()
	err = c.api.RegisterPhoneNumber(opCtx, username, phone)
	return c.finish(ctx, "register phone", id, err, MsgSendPhoneFailed, func() (Route, string) {
		return NewRoute(AwaitingPhoneCode, ParamUsername, username, ParamPhone, phone), msgPhoneCodeSent
	})
}

// Login authenticates, stores the session and redirects: admins to
// AdminHome, users holding a server-issued password to PasswordChange, and
// everyone else to UserHome.
func (c *Controller) Login(ctx context.Context, form forms.LoginForm) (*api.LoginResult, error) {
	if err := c.expect("login", LoggingIn); err != nil {
		return nil, err
	}
	if err := c.validate(form); err != nil {
		return nil, err
	}

	opCtx, id, done, err := c.begin(ctx, "login", LoggingIn)
	if err != nil {
		return nil, err
	}
	defer done()

	res, err := c.api.Login(opCtx, api.Credentials{Username: form.Username, Password: form.Password})
	if err == nil && res.Token == "" {
		err = ErrEmptyToken
	}
	if err := c.current(id); err != nil {
		return nil, err
	}
	if err != nil {
		c.fail(ctx, "login", err, MsgLoginFailed)
		return nil, err
	}

	userID := res.UserID
	if userID == "" {
		if claims, cerr := session.ParseClaims(res.Token); cerr == nil {
			userID = claims.UserID
		}
	}
	if err := session.SaveLogin(ctx, c.store, res.Token, userID); err != nil {
		c.log.Error(ctx, "save session", "error", err)
		c.notifier.Error(MsgLoginFailed)
		return nil, fmt.Errorf("save session: %w", err)
	}

	next := NewRoute(UserHome)
	switch {
	case res.IsAdmin():
		next = NewRoute(AdminHome)
	case res.PasswordKind == api.PasswordRandom:
		next = NewRoute(PasswordChange, ParamUsername, form.Username)
	}

	if err := c.transition(ctx, id, next); err != nil {
		return nil, err
	}
	c.notifier.Success(fmt.Sprintf(msgWelcome, form.Username))
	return res, nil
}

// RequestPasswordReset asks the backend to mail a random password and
// returns to the login screen.
func (c *Controller) RequestPasswordReset(ctx context.Context, usernameOrEmail string) error {
	if err := c.expect("request password reset", RequestingPasswordReset); err != nil {
		return err
	}
	if err := c.validate(forms.ResetRequestForm{UsernameOrEmail: usernameOrEmail}); err != nil {
		return err
	}

	opCtx, id, done, err := c.begin(ctx, "request password reset", RequestingPasswordReset)
	if err != nil {
		return err
	}
	defer done()

	err = c.api.RequestPasswordReset(opCtx, usernameOrEmail)
	return c.finish(ctx, "request password reset", id, err, MsgResetRequestFailed, func() (Route, string) {
		return NewRoute(LoggingIn), msgResetRequested
	})
}

// ChangePassword replaces the server-issued password using the stored
// session token, then returns to the login screen.
func (c *Controller) ChangePassword(ctx context.Context, form forms.PasswordChangeForm) error {
	if err := c.expect("change password", PasswordChange); err != nil {
		return err
	}
	if err := c.validate(form); err != nil {
		return err
	}

	opCtx, id, done, err := c.begin(ctx, "change password", PasswordChange)
	if err != nil {
		return err
	}
	defer done()

	token, err := session.Token(ctx, c.store)
	if err != nil {
		c.notifier.Error(MsgNoToken)
		return err
	}

	err = c.api.ResetPassword(opCtx, form.UsernameOrEmail, form.RandomPassword, form.NewPassword, token)
	return c.finish(ctx, "change password", id, err, MsgChangePasswordFailed, func() (Route, string) {
		return NewRoute(LoggingIn, ParamUsername, form.UsernameOrEmail), msgPasswordChange
	})
}

// Logout forgets the session and shows the login screen.
func (c *Controller) Logout(ctx context.Context) error {
	if err := session.Logout(ctx, c.store); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return c.Navigate(ctx, NewRoute(LoggingIn))
}

// expect fails with ErrInvalidState unless the current state is allowed.
func (c *Controller) expect(op string, allowed ...State) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || !stateIn(c.route.State, allowed) {
		return stateError(op, c.route.State)
	}
	return nil
}

// begin checks the state, marks a request in flight and returns a context
// that ends with either the caller's ctx or the current screen.
func (c *Controller) begin(ctx context.Context, op string, allowed ...State) (context.Context, uint64, func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || !stateIn(c.route.State, allowed) {
		return nil, 0, nil, stateError(op, c.route.State)
	}
	if c.busy {
		return nil, 0, nil, ErrBusy
	}
	c.busy = true

	opCtx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(c.screenCtx, cancel)

	done := func() {
		stop()
		cancel()
		c.mu.Lock()
		c.busy = false
		c.mu.Unlock()
	}
	return opCtx, c.screenID, done, nil
}

// finish reports the outcome of a backend call made on screen id and, on
// success, moves to the route returned by next.
func (c *Controller) finish(ctx context.Context, op string, id uint64, err error, fallback string, next func() (Route, string)) error {
	if serr := c.current(id); serr != nil {
		return serr
	}
	if err != nil {
		c.fail(ctx, op, err, fallback)
		return err
	}

	r, msg := next()
	if err := c.transition(ctx, id, r); err != nil {
		return err
	}
	c.notifier.Success(msg)
	return nil
}

func (c *Controller) fail(ctx context.Context, op string, err error, fallback string) {
	c.log.Warn(ctx, "operation failed", "op", op, "state", c.State().String(), "error", err)
	c.notifier.Error(api.UserMessage(err, fallback))
}

// current returns ErrStaleScreen when screen id has been left.
func (c *Controller) current(id uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.screenID != id {
		return ErrStaleScreen
	}
	return nil
}

func (c *Controller) transition(ctx context.Context, id uint64, r Route) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.screenID != id {
		return ErrStaleScreen
	}
	c.log.Info(ctx, "flow transition", "from", c.route.String(), "to", r.String())
	c.enterLocked(r)
	c.persistLocked(ctx)
	return nil
}

func (c *Controller) validate(form any) error {
	if err := c.validator.Validate(form); err != nil {
		msg := err.Error()
		if errors.Is(err, forms.ErrInvalidForm) {
			msg = unwrapFormMessage(err)
		}
		c.notifier.Error(msg)
		return err
	}
	return nil
}

// enterLocked leaves the current screen and opens a new one for r.
func (c *Controller) enterLocked(r Route) {
	if c.closed {
		return
	}
	c.leaveLocked()

	c.route = r
	c.screenID++
	c.screenCtx, c.cancel = context.WithCancel(context.Background())
	c.code.Reset()
	c.timer = nil

	switch {
	case r.State.CodeEntry():
		c.timer = countdown.New(c.timerSeconds, c.timerOpts...)
		c.timer.Start(c.screenCtx)
	case r.State == AwaitingPhoneNumber:
		ctx := c.screenCtx
		c.bg.Go(func() {
			if _, err := c.Countries(ctx); err != nil && ctx.Err() == nil {
				c.log.Warn(ctx, "load countries", "error", err)
			}
		})
	}
}

func (c *Controller) leaveLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if c.timer != nil {
		c.timer.Stop()
	}
}

func (c *Controller) persistLocked(ctx context.Context) {
	if err := c.store.Set(ctx, session.KeyRoute, c.route.String()); err != nil {
		c.log.Warn(ctx, "save route", "error", err)
	}
}

func stateIn(s State, allowed []State) bool {
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}

func stateError(op string, s State) error {
	return fmt.Errorf("%w: %s in %s", ErrInvalidState, op, s)
}

func withParam(r Route, key, value string) Route {
	params := make(url.Values, len(r.Params)+1)
	for k, v := range r.Params {
		params[k] = append([]string(nil), v...)
	}
	r.Params = params
	if value == "" {
		r.Params.Del(key)
	} else {
		r.Params.Set(key, value)
	}
	return r
}

// unwrapFormMessage drops the "invalid form: " prefix for display.
func unwrapFormMessage(err error) string {
	msg := err.Error()
	prefix := forms.ErrInvalidForm.Error() + ": "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}
