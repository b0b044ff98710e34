package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/authflow/internal/client/flow"
	"github.com/dmitrijs2005/authflow/internal/client/forms"
	"github.com/dmitrijs2005/authflow/internal/client/session"
	"github.com/dmitrijs2005/authflow/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// text prompts for a line. An empty answer yields def, and errEmptyInput
// when def is empty too.
func (a *App) text(prompt, def string) (string, error) {
	v, err := getSimpleText(a.reader, withDefault(prompt, def), a.out)
	if err != nil {
		return "", err
	}
	if v == "" {
		v = def
	}
	if v == "" {
		return "", fmt.Errorf("%w: %s", errEmptyInput, prompt)
	}
	return v, nil
}

// optionalText prompts for a line that may stay empty.
func (a *App) optionalText(prompt string) (string, error) {
	return getSimpleText(a.reader, prompt, a.out)
}

// secret reads a hidden value. The caller wipes the result.
func (a *App) secret(prompt string) ([]byte, error) {
	if a.secretsFromReader {
		line, err := readLine(a.reader)
		return []byte(line), err
	}
	return getPassword(a.out, prompt)
}

// Register prompts for username, email and a confirmed password and signs
// the user up. It switches to the registration screen first if needed.
func (a *App) Register(ctx context.Context) error {
	if err := a.ensure(ctx, flow.Registering); err != nil {
		return a.report(err)
	}

	username, err := a.text("Enter username", "")
	if err != nil {
		return a.report(err)
	}
	email, err := a.optionalText("Enter email (optional)")
	if err != nil {
		return a.report(err)
	}

	password, err := a.secret("Enter password")
	if err != nil {
		return a.report(err)
	}
	defer common.WipeByteArray(password)

	confirm, err := a.secret("Repeat password")
	if err != nil {
		return a.report(err)
	}
	defer common.WipeByteArray(confirm)

	return a.report(a.ctrl.Register(ctx, forms.RegisterForm{
		Username:        username,
		Email:           email,
		Password:        string(password),
		ConfirmPassword: string(confirm),
	}))
}

// Login prompts for credentials. The username carried by the current route
// is offered as the default.
func (a *App) Login(ctx context.Context) error {
	if err := a.ensure(ctx, flow.LoggingIn); err != nil {
		return a.report(err)
	}

	username, err := a.text("Enter username", a.ctrl.Route().Username())
	if err != nil {
		return a.report(err)
	}

	password, err := a.secret("Enter password or the password you received")
	if err != nil {
		return a.report(err)
	}
	defer common.WipeByteArray(password)

	_, err = a.ctrl.Login(ctx, forms.LoginForm{Username: username, Password: string(password)})
	return a.report(err)
}

// ForgotPassword requests a server-issued password for a username or email.
func (a *App) ForgotPassword(ctx context.Context) error {
	if err := a.ensure(ctx, flow.RequestingPasswordReset); err != nil {
		return a.report(err)
	}

	who, err := a.text("Enter username or email", "")
	if err != nil {
		return a.report(err)
	}
	return a.report(a.ctrl.RequestPasswordReset(ctx, who))
}

// ChangePassword replaces the server-issued password with a new one.
func (a *App) ChangePassword(ctx context.Context) error {
	if err := a.ensure(ctx, flow.PasswordChange); err != nil {
		return a.report(err)
	}

	who, err := a.text("Enter username or email", a.ctrl.Route().Username())
	if err != nil {
		return a.report(err)
	}

	random, err := a.secret("Enter the password you received")
	if err != nil {
		return a.report(err)
	}
	defer common.WipeByteArray(random)

	newPassword, err := a.secret("Enter new password")
	if err != nil {
		return a.report(err)
	}
	defer common.WipeByteArray(newPassword)

	repeat, err := a.secret("Repeat new password")
	if err != nil {
		return a.report(err)
	}
	defer common.WipeByteArray(repeat)

	return a.report(a.ctrl.ChangePassword(ctx, forms.PasswordChangeForm{
		UsernameOrEmail:   who,
		RandomPassword:    string(random),
		NewPassword:       string(newPassword),
		RepeatNewPassword: string(repeat),
	}))
}

// Logout clears the stored session and returns to the login screen.
func (a *App) Logout(ctx context.Context) error {
	if err := a.ctrl.Logout(ctx); err != nil {
		a.log.Error(ctx, "logout", "error", err)
		a.notifier.Error("could not clear the session")
		return err
	}
	a.notifier.Success("logged out")
	return nil
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	_, err := session.Token(ctx, a.store)
	return err == nil
}

// ensure switches to the screen for want unless it is already shown. Identity
// the screen needs is taken from the current route or asked for.
func (a *App) ensure(ctx context.Context, want flow.State) error {
	cur := a.ctrl.Route()
	if cur.State == want {
		return nil
	}

	var kv []string
	switch want {
	case flow.AwaitingEmailCode, flow.AwaitingPhoneNumber, flow.AwaitingPhoneCode:
		username, err := a.text("Enter username", cur.Username())
		if err != nil {
			return err
		}
		kv = append(kv, flow.ParamUsername, username)
		if want == flow.AwaitingPhoneCode {
			phone, err := a.text("Enter phone number with country code", cur.Phone())
			if err != nil {
				return err
			}
			kv = append(kv, flow.ParamPhone, phone)
		}
	case flow.LoggingIn, flow.PasswordChange:
		kv = append(kv, flow.ParamUsername, cur.Username())
	}

	return a.ctrl.Navigate(ctx, flow.NewRoute(want, kv...))
}
