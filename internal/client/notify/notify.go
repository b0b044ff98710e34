// Package notify delivers short success and error notices to the user.
package notify

import (
	"fmt"
	"io"
	"sync"
)

// Notifier receives one line of user-facing text per event.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Writer prints notices as tagged lines.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (n *Writer) Success(msg string) { n.print("[ok] ", msg) }

func (n *Writer) Error(msg string) { n.print("[error] ", msg) }

func (n *Writer) print(tag, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, _ = fmt.Fprintln(n.w, tag+msg)
}

// Kind tells a recorded notice apart.
type Kind int

const (
	KindSuccess Kind = iota
	KindError
)

type Notice struct {
	Kind    Kind
	Message string
}

// Recorder keeps notices in memory. It backs non-interactive callers and
// tests.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *Recorder) Success(msg string) { r.add(KindSuccess, msg) }

func (r *Recorder) Error(msg string) { r.add(KindError, msg) }

func (r *Recorder) add(k Kind, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, Notice{Kind: k, Message: msg})
}

// Notices returns a copy of everything recorded so far.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

// Last returns the most recent notice, if any.
func (r *Recorder) Last() (Notice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return Notice{}, false
	}
	return r.notices[len(r.notices)-1], true
}
