package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/authflow/internal/client/session"
)

// getStatus renders the prompt status, e.g. "(online) /login?username=alice".
func (a *App) getStatus() string {
	parts := make([]string, 0, 3)
	if m := a.Mode(); m != "" {
		parts = append(parts, "("+string(m)+")")
	}
	parts = append(parts, a.ctrl.Route().String())
	if t := a.ctrl.Timer(); t != nil && t.Visible() {
		parts = append(parts, "["+t.Format()+"]")
	}
	return strings.Join(parts, " ")
}

// Status prints the current step, the code being entered, the resend
// countdown and what is known about the stored session.
func (a *App) Status(ctx context.Context) error {
	r := a.ctrl.Route()
	fmt.Fprintf(a.out, "step:     %s (%s)\n", r.State, r)
	if m := a.Mode(); m != "" {
		fmt.Fprintf(a.out, "backend:  %s\n", m)
	}

	if t := a.ctrl.Timer(); t != nil {
		fmt.Fprintf(a.out, "code:     %s\n", a.ctrl.Code())
		if t.Visible() {
			fmt.Fprintf(a.out, "resend:   in %s\n", t.Format())
		} else {
			fmt.Fprintln(a.out, "resend:   available")
		}
	}

	token, err := session.Token(ctx, a.store)
	switch {
	case errors.Is(err, session.ErrNoToken):
		fmt.Fprintln(a.out, "session:  not logged in")
		return nil
	case err != nil:
		return err
	}

	userID, err := session.UserID(ctx, a.store)
	if err != nil && !errors.Is(err, session.ErrNotFound) {
		return err
	}
	fmt.Fprintf(a.out, "session:  logged in (user %s)\n", orDash(userID))

	if ts, ok := a.store.(session.Timestamped); ok {
		if at, err := ts.UpdatedAt(ctx, session.KeyToken); err == nil && !at.IsZero() {
			fmt.Fprintf(a.out, "saved:    %s\n", at.Format(time.RFC3339))
		}
	}

	claims, err := session.ParseClaims(token)
	if err != nil {
		return nil
	}
	if !claims.ExpiresAt.IsZero() {
		state := "valid"
		if claims.Expired(time.Now()) {
			state = "expired"
		}
		fmt.Fprintf(a.out, "token:    %s until %s\n", state, claims.ExpiresAt.Format(time.RFC3339))
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
