package flow

// State is a step of the flow.
type State int

const (
	Registering State = iota
	AwaitingEmailCode
	AwaitingPhoneNumber
	AwaitingPhoneCode
	LoggingIn
	RequestingPasswordReset
	PasswordChange
	AdminHome
	UserHome
)

var stateNames = map[State]string{
	Registering:             "registering",
	AwaitingEmailCode:       "awaiting-email-code",
	AwaitingPhoneNumber:     "awaiting-phone-number",
	AwaitingPhoneCode:       "awaiting-phone-code",
	LoggingIn:               "logging-in",
	RequestingPasswordReset: "requesting-password-reset",
	PasswordChange:          "password-change",
	AdminHome:               "admin-home",
	UserHome:                "user-home",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "unknown"
}

// CodeEntry reports whether the state collects a verification code.
func (s State) CodeEntry() bool {
	return s == AwaitingEmailCode || s == AwaitingPhoneCode
}

// Terminal reports whether the flow is finished in this state.
func (s State) Terminal() bool {
	return s == AdminHome || s == UserHome
}
