package flow

import "errors"

var (
	ErrInvalidState    = errors.New("operation not allowed in current state")
	ErrMissingUsername = errors.New("username is required")
	ErrMissingPhone    = errors.New("phone number is required")
	ErrIncompleteCode  = errors.New("verification code is incomplete")
	ErrCodeTooLong     = errors.New("verification code is too long")
	ErrInvalidPhone    = errors.New("invalid phone number")
	ErrResendTooSoon   = errors.New("resend not available yet")
	ErrStaleScreen     = errors.New("screen left before the response arrived")
	ErrUnknownRoute    = errors.New("unknown route")
	ErrBusy            = errors.New("another request is in flight")
	ErrEmptyToken      = errors.New("login response has no token")
)

// Messages shown to the user. The Msg*Failed texts are fallbacks used when
// the backend does not explain a failure.
const (
	MsgRegisterFailed       = "could not register the user"
	MsgVerifyEmailFailed    = "could not verify the email"
	MsgResendFailed         = "could not resend the verification code, try again"
	MsgSendPhoneFailed      = "could not send the verification code"
	MsgVerifyPhoneFailed    = "could not verify the phone number"
	MsgLoginFailed          = "could not log in"
	MsgResetRequestFailed   = "could not request a password reset"
	MsgChangePasswordFailed = "could not change the password"
	MsgIncompleteCode       = "enter the complete verification code"
	MsgCodeTooLong          = "the verification code has only 6 digits"
	MsgInvalidPhone         = "enter a country code and a valid phone number"
	MsgNoToken              = "authentication token not found"

	msgRegistered     = "user %s registered, check your email for the code"
	msgEmailVerified  = "email verified"
	msgCodeResent     = "verification code resent"
	msgPhoneCodeSent  = "a verification code was sent to your phone"
	msgPhoneVerified  = "phone number verified"
	msgWelcome        = "welcome, %s!"
	msgResetRequested = "password reset instructions were sent to your email"
	msgPasswordChange = "password changed"
	msgResendWait     = "wait %s before requesting a new code"
)
