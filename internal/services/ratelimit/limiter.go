// Package ratelimit provides a fixed-window request counter keyed by
// (identity, action). Core controllers consume it through the Limiter
// interface so deployments can swap in an external store.
package ratelimit

import (
	"sync"
	"time"

	"github.com/aibingo/aibingo-go/internal/dependencies/clock"
)

// Action identifies a rate-limited operation
type Action string

const (
	ActionComplete      Action = "complete"
	ActionUnlock        Action = "unlock"
	ActionJoinSession   Action = "join_session"
	ActionCreateSession Action = "create_session"
	ActionLogin         Action = "login"
)

// Window describes how many requests are allowed per time window
type Window struct {
	MaxRequests int
	Duration    time.Duration
}

// Result reports whether an action is allowed, and if not, how long to wait
type Result struct {
	Allowed    bool
	RetryAfter time.Duration
}

// Limiter checks and consumes rate-limit budget for an identity+action pair
type Limiter interface {
	CheckAndConsume(identity string, action Action) Result
}

// DefaultWindows returns the per-action limits
func DefaultWindows() map[Action]Window {
	return map[Action]Window{
		ActionComplete:      {MaxRequests: 30, Duration: time.Minute},
		ActionUnlock:        {MaxRequests: 10, Duration: time.Minute},
		ActionJoinSession:   {MaxRequests: 10, Duration: time.Minute},
		ActionCreateSession: {MaxRequests: 5, Duration: time.Hour},
		ActionLogin:         {MaxRequests: 5, Duration: 15 * time.Minute},
	}
}

type counter struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter is an in-process Limiter implementation
type MemoryLimiter struct {
	clock   clock.Clock
	windows map[Action]Window

	mu       sync.Mutex
	counters map[string]*counter
}

// Ensure MemoryLimiter implements Limiter
var _ Limiter = (*MemoryLimiter)(nil)

// NewMemory creates a MemoryLimiter with the default windows
func NewMemory(clk clock.Clock) *MemoryLimiter {
	return NewMemoryWithWindows(clk, DefaultWindows())
}

// NewMemoryWithWindows creates a MemoryLimiter with custom windows
func NewMemoryWithWindows(clk clock.Clock, windows map[Action]Window) *MemoryLimiter {
	return &MemoryLimiter{
		clock:    clk,
		windows:  windows,
		counters: make(map[string]*counter),
	}
}

// CheckAndConsume consumes one unit of budget for the identity+action pair.
// Actions with no configured window are always allowed.
func (l *MemoryLimiter) CheckAndConsume(identity string, action Action) Result {
	window, ok := l.windows[action]
	if !ok {
		return Result{Allowed: true}
	}

	key := identity + ":" + string(action)
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.pruneLocked(now)

	c, ok := l.counters[key]
	if !ok || now.After(c.resetAt) {
		l.counters[key] = &counter{count: 1, resetAt: now.Add(window.Duration)}
		return Result{Allowed: true}
	}

	if c.count >= window.MaxRequests {
		return Result{Allowed: false, RetryAfter: c.resetAt.Sub(now)}
	}

	c.count++
	return Result{Allowed: true}
}

// pruneLocked drops expired counters so the map does not grow unbounded
func (l *MemoryLimiter) pruneLocked(now time.Time) {
	for key, c := range l.counters {
		if now.After(c.resetAt) {
			delete(l.counters, key)
		}
	}
}
