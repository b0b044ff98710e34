package api

import (
	"bytes"
	"encoding/json"
	"strconv"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"

	// passwordKindRandom is the login response marker for a server-issued
	// one-time password.
	passwordKindRandom = "randomPassword"
)

// PasswordKind tells whether the user logged in with a chosen password or a
// server-issued random one that must be changed.
type PasswordKind int

const (
	PasswordChosen PasswordKind = iota
	PasswordRandom
)

func (k PasswordKind) String() string {
	if k == PasswordRandom {
		return "random"
	}
	return "chosen"
}

// User is the signup payload.
type User struct {
	Username    string `json:"username"`
	Password    string `json:"password,omitempty"`
	Email       string `json:"email,omitempty"`
	Role        string `json:"rol,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// Credentials carry either the chosen or the random password; the backend
// accepts both under one field.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"passwordorrandomPassword"`
}

type LoginResult struct {
	Token        string
	UserID       string
	Role         string
	PasswordKind PasswordKind
}

func (r *LoginResult) IsAdmin() bool {
	return r.Role == RoleAdmin
}

type Country struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	DialPrefix string `json:"dialPrefix"`
}

// flexString accepts a JSON string or number.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

type loginResponse struct {
	Token        string     `json:"token"`
	UserID       flexString `json:"userId"`
	Role         string     `json:"rol"`
	PasswordKind string     `json:"passwordorrandomPassword"`
}

func (r loginResponse) result() *LoginResult {
	res := &LoginResult{
		Token:  r.Token,
		UserID: string(r.UserID),
		Role:   r.Role,
	}
	if r.PasswordKind == passwordKindRandom {
		res.PasswordKind = PasswordRandom
	}
	return res
}

// country accepts the field spellings seen across backend revisions.
type country struct {
	Code       string     `json:"code"`
	ISO        string     `json:"iso"`
	Name       string     `json:"name"`
	DialPrefix flexString `json:"dialPrefix"`
	DialCode   flexString `json:"dial_code"`
	Phone      flexString `json:"phoneCode"`
}

func (c country) toCountry() Country {
	out := Country{Code: c.Code, Name: c.Name, DialPrefix: string(c.DialPrefix)}
	if out.Code == "" {
		out.Code = c.ISO
	}
	if out.DialPrefix == "" {
		out.DialPrefix = string(c.DialCode)
	}
	if out.DialPrefix == "" {
		out.DialPrefix = string(c.Phone)
	}
	if out.DialPrefix != "" && out.DialPrefix[0] != '+' {
		if _, err := strconv.Atoi(out.DialPrefix); err == nil {
			out.DialPrefix = "+" + out.DialPrefix
		}
	}
	return out
}

// errorBody holds the message fields a backend failure may carry.
type errorBody struct {
	Msg     string `json:"msg"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (b errorBody) text() string {
	switch {
	case b.Msg != "":
		return b.Msg
	case b.Message != "":
		return b.Message
	default:
		return b.Error
	}
}

type verifyEmailRequest struct {
	Username         string `json:"username"`
	VerificationCode string `json:"verificationCode"`
}

type usernameRequest struct {
	Username string `json:"username"`
}

type phoneRequest struct {
	Username    string `json:"username"`
	PhoneNumber string `json:"phoneNumber"`
}

type verifyPhoneRequest struct {
	Username         string `json:"username"`
	PhoneNumber      string `json:"phoneNumber"`
	VerificationCode string `json:"verificationCode"`
}

type forgotPasswordRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
}

type resetPasswordRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	RandomPassword  string `json:"randomPassword"`
	NewPassword     string `json:"newPassword"`
}
