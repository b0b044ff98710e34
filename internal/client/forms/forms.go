// Package forms validates user input before it reaches the backend.
package forms

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrInvalidForm      = errors.New("invalid form")
)

// IsPasswordValid reports whether the password and its confirmation are
// identical. No other rule is enforced on the client.
func IsPasswordValid(password, confirm string) bool {
	return password == confirm
}

type RegisterForm struct {
	Username        string `validate:"required"`
	Email           string `validate:"omitempty,email"`
	Password        string `validate:"required"`
	ConfirmPassword string `validate:"eqfield=Password"`
}

type LoginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type PhoneForm struct {
	Username   string `validate:"required"`
	DialPrefix string `validate:"required"`
	Number     string `validate:"required"`
}

type PasswordChangeForm struct {
	UsernameOrEmail   string `validate:"required"`
	RandomPassword    string `validate:"required"`
	NewPassword       string `validate:"required"`
	RepeatNewPassword string `validate:"eqfield=NewPassword"`
}

type ResetRequestForm struct {
	UsernameOrEmail string `validate:"required"`
}

// Validator checks the form structs above.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{v: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate returns nil for a valid form. A confirmation mismatch yields
// ErrPasswordMismatch alone; other failures wrap ErrInvalidForm with one
// message per field.
func (fv *Validator) Validate(form any) error {
	err := fv.v.Struct(form)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		if fe.Tag() == "eqfield" {
			return ErrPasswordMismatch
		}
		msgs = append(msgs, fieldError(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidForm, strings.Join(msgs, "; "))
}

func fieldError(fe validator.FieldError) string {
	field := fieldName(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

// fieldName turns "UsernameOrEmail" into "username or email".
func fieldName(s string) string {
	var b strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}
