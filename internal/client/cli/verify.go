package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/authflow/internal/client/flow"
)

const msgCountriesFailed = "could not load the country list"

// VerifyEmail submits the email code, taken from args or prompted for.
func (a *App) VerifyEmail(ctx context.Context, args []string) error {
	return a.verify(ctx, flow.AwaitingEmailCode, args)
}

// VerifyPhone submits the SMS code, taken from args or prompted for.
func (a *App) VerifyPhone(ctx context.Context, args []string) error {
	return a.verify(ctx, flow.AwaitingPhoneCode, args)
}

func (a *App) verify(ctx context.Context, st flow.State, args []string) error {
	if err := a.ensure(ctx, st); err != nil {
		return a.report(err)
	}

	var code string
	if len(args) > 0 {
		code = strings.Join(args, "")
	} else {
		v, err := a.text(fmt.Sprintf("Enter the %d-digit code", flow.CodeLength), "")
		if err != nil {
			return a.report(err)
		}
		code = v
	}
	return a.report(a.ctrl.EnterCode(ctx, code))
}

// ResendEmail asks for a new email code once the countdown has run out.
func (a *App) ResendEmail(ctx context.Context) error {
	return a.resend(ctx, flow.AwaitingEmailCode)
}

// ResendPhone asks for a new SMS code once the countdown has run out.
func (a *App) ResendPhone(ctx context.Context) error {
	return a.resend(ctx, flow.AwaitingPhoneCode)
}

func (a *App) resend(ctx context.Context, st flow.State) error {
	if err := a.ensure(ctx, st); err != nil {
		return a.report(err)
	}
	return a.report(a.ctrl.Resend(ctx))
}

// Countries prints the dial prefixes accepted by send-phone.
func (a *App) Countries(ctx context.Context) error {
	list, err := a.ctrl.Countries(ctx)
	if err != nil {
		a.log.Warn(ctx, "load countries", "error", err)
		a.notifier.Error(msgCountriesFailed)
		return err
	}
	for _, c := range list {
		fmt.Fprintf(a.out, "%-4s %-6s %s\n", c.Code, c.DialPrefix, c.Name)
	}
	return nil
}

// SendPhone registers a phone number and has the backend text a code to it.
func (a *App) SendPhone(ctx context.Context) error {
	if err := a.ensure(ctx, flow.AwaitingPhoneNumber); err != nil {
		return a.report(err)
	}

	prefix, err := a.text("Enter country dial prefix (e.g. +57, see 'countries')", "")
	if err != nil {
		return a.report(err)
	}
	number, err := a.text("Enter phone number", "")
	if err != nil {
		return a.report(err)
	}
	return a.report(a.ctrl.RegisterPhone(ctx, prefix, number))
}

// Goto jumps to a route such as /verify-email?username=alice.
func (a *App) Goto(ctx context.Context, target string) error {
	r, err := flow.ParseRoute(target)
	if err != nil {
		return a.report(err)
	}
	return a.report(a.ctrl.Navigate(ctx, r))
}
