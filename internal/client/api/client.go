package api

import "context"

// Client is the backend contract used by the verification flow.
type Client interface {
	Register(ctx context.Context, user User) error
	Login(ctx context.Context, creds Credentials) (*LoginResult, error)
	VerifyEmail(ctx context.Context, username, code string) error
	ResendVerificationEmail(ctx context.Context, username string) error
	RegisterPhoneNumber(ctx context.Context, username, phone string) error
	VerifyPhoneNumber(ctx context.Context, username, phone, code string) error
	ResendVerificationPhone(ctx context.Context, username, phone string) error
	GetCountries(ctx context.Context) ([]Country, error)
	RequestPasswordReset(ctx context.Context, usernameOrEmail string) error
	ResetPassword(ctx context.Context, usernameOrEmail, randomPassword, newPassword, token string) error
	Ping(ctx context.Context) error
}
