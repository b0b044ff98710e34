// Package countdown implements the resend gate shown on code-entry screens:
// a seconds counter that ticks down to zero and then hides itself.
package countdown

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// DefaultSeconds is the wait before a verification code may be resent.
const DefaultSeconds = 120

// Timer is an owned countdown. Start launches a ticking goroutine that lives
// until the count reaches zero, Stop is called, or the Start context ends.
// Tick can also be driven by hand, which is how tests use it.
type Timer struct {
	mu       sync.Mutex
	seconds  int
	interval time.Duration
	left     int
	visible  bool

	cancel context.CancelFunc
	done   chan struct{}
	onTick func(left int)
}

type Option func(*Timer)

// WithInterval overrides the one second tick.
func WithInterval(d time.Duration) Option {
	return func(t *Timer) {
		if d > 0 {
			t.interval = d
		}
	}
}

// WithOnTick registers a callback run after every tick, outside the lock.
func WithOnTick(fn func(left int)) Option {
	return func(t *Timer) { t.onTick = fn }
}

func New(seconds int, opts ...Option) *Timer {
	if seconds <= 0 {
		seconds = DefaultSeconds
	}
	t := &Timer{seconds: seconds, interval: time.Second}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Reset stops any running countdown and shows the full count again without
// starting the ticker.
func (t *Timer) Reset() {
	t.Stop()
	t.mu.Lock()
	t.left = t.seconds
	t.visible = true
	t.mu.Unlock()
}

// Start resets the count and begins ticking in the background.
func (t *Timer) Start(ctx context.Context) {
	t.Reset()

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	t.mu.Lock()
	t.cancel = cancel
	t.done = done
	interval := t.interval
	t.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if t.Tick() == 0 {
					return
				}
			}
		}
	}()
}

// Tick advances the countdown by one step and returns the seconds left.
// When the count reaches zero the timer hides.
func (t *Timer) Tick() int {
	t.mu.Lock()
	if t.left > 0 {
		t.left--
	}
	if t.left == 0 {
		t.visible = false
	}
	left := t.left
	fn := t.onTick
	t.mu.Unlock()

	if fn != nil {
		fn(left)
	}
	return left
}

// Stop halts the ticking goroutine and waits for it to exit. The current
// count and visibility are left as they are. Safe to call repeatedly.
func (t *Timer) Stop() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.cancel, t.done = nil, nil
	t.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (t *Timer) TimeLeft() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.left
}

func (t *Timer) Visible() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.visible
}

// Running reports whether a ticking goroutine is active.
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancel != nil
}

// Format renders the time left as MM:SS.
func (t *Timer) Format() string {
	left := t.TimeLeft()
	return fmt.Sprintf("%02d:%02d", left/60, left%60)
}
