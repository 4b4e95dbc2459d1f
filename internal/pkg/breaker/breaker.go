// Package breaker implements a minimal circuit breaker used around the
// per-block downstream calls: it opens after a number of consecutive
// failures and lets a single probe through once the cool-down elapsed.
package breaker

import (
	"errors"
	"sync"
	"time"
)

var ErrOpen = errors.New("circuit breaker is open")

type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

type Breaker struct {
	mu           sync.Mutex
	maxFails     int
	resetTimeout time.Duration
	now          func() time.Time

	fails    int
	state    State
	openedAt time.Time
}

func New(maxFails int, resetTimeout time.Duration) *Breaker {
	if maxFails <= 0 {
		maxFails = 5
	}
	return &Breaker{
		maxFails:     maxFails,
		resetTimeout: resetTimeout,
		now:          time.Now,
	}
}

// NewWithClock is used by tests to control time.
func NewWithClock(maxFails int, resetTimeout time.Duration, now func() time.Time) *Breaker {
	b := New(maxFails, resetTimeout)
	b.now = now
	return b
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stateLocked()
}

func (b *Breaker) stateLocked() State {
	if b.state == StateOpen && b.now().Sub(b.openedAt) >= b.resetTimeout {
		b.state = StateHalfOpen
	}
	return b.state
}

// Allow reports whether a call may proceed. In half-open state only the
// first caller gets through until the probe outcome is recorded.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch b.stateLocked() {
	case StateClosed:
		return true
	case StateHalfOpen:
		// Re-open until the probe reports back, so concurrent callers
		// do not pile up on a struggling dependency.
		b.state = StateOpen
		b.openedAt = b.now()
		return true
	default:
		return false
	}
}

func (b *Breaker) Success() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fails = 0
	b.state = StateClosed
}

func (b *Breaker) Failure() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fails++
	if b.fails >= b.maxFails {
		b.state = StateOpen
		b.openedAt = b.now()
	}
}

// Do runs fn under the breaker. ErrOpen is returned without calling fn
// when the breaker is open.
func (b *Breaker) Do(fn func() error) error {
	if !b.Allow() {
		return ErrOpen
	}
	if err := fn(); err != nil {
		b.Failure()
		return err
	}
	b.Success()
	return nil
}
