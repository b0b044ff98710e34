// Package flow drives a user through registration, email and phone
// verification, login and password reset.
//
// # Overview
//
// Controller is a state machine over State. Each operation is allowed in a
// fixed set of states; it validates input locally, calls the backend through
// api.Client and on success moves to the next Route. A failure leaves the
// state untouched and is reported through the notifier, using the backend's
// message when it sent one and a fixed per-operation text otherwise.
//
// # Screens
//
// Every state entered is a screen with its own context. Leaving the screen
// (a transition, Navigate, Logout or Close) cancels that context, which
// aborts in-flight requests and stops the screen's countdown.Timer. A
// response that arrives after its screen was left is dropped with
// ErrStaleScreen.
//
// Code-entry screens own a CodeInput with six cells and a resend timer.
// Filling the last cell submits the code.
//
// The current Route is written to the session store under session.KeyRoute
// so that Resume can continue an interrupted flow.
package flow
