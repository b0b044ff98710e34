// Package cli provides the interactive authflow command-line client.
//
// It wires configuration, the session store, the backend client and a
// flow.Controller behind a REPL. The user walks through registration, email
// and phone verification, login and password reset one command at a time;
// each command switches to its step first when needed, asking for the
// username or phone number that step carries.
//
// A background watcher pings the backend and shows online/offline in the
// prompt. Passwords are read without echo and wiped after use.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
