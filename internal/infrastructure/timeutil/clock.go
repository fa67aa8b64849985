// Package timeutil provides time-related utilities for testability.
package timeutil

import (
	"sync"
	"time"
)

// Clock abstracts time.Now and timer creation so that components with
// deadline behavior (the fare-calendar watchdog) can be tested without
// real sleeps.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// AfterFunc schedules fn to run after d and returns a stop function.
	AfterFunc(d time.Duration, fn func()) (stop func())
}

// RealClock uses the actual system time.
type RealClock struct{}

// NewRealClock creates a new RealClock instance.
func NewRealClock() *RealClock {
	return &RealClock{}
}

// Now returns the current system time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// AfterFunc delegates to time.AfterFunc.
func (RealClock) AfterFunc(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// MockClock is a controllable clock for tests. Advancing it fires any
// scheduled functions whose deadline has passed, synchronously.
type MockClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*mockTimer
}

type mockTimer struct {
	deadline time.Time
	fn       func()
	stopped  bool
}

// NewMockClock creates a mock clock fixed at the given time.
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{now: t}
}

// Now returns the mock time.
func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// AfterFunc registers fn to fire when the clock advances past d.
func (m *MockClock) AfterFunc(d time.Duration, fn func()) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	timer := &mockTimer{deadline: m.now.Add(d), fn: fn}
	m.timers = append(m.timers, timer)
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		timer.stopped = true
	}
}

// Advance moves the clock forward and fires due timers in deadline order.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)

	var due []*mockTimer
	remaining := m.timers[:0]
	for _, t := range m.timers {
		if !t.stopped && !t.deadline.After(m.now) {
			due = append(due, t)
		} else if !t.stopped {
			remaining = append(remaining, t)
		}
	}
	m.timers = remaining
	m.mu.Unlock()

	// Fire outside the lock so callbacks may schedule or stop timers.
	for _, t := range due {
		t.fn()
	}
}

// Ensure interfaces are implemented.
var (
	_ Clock = (*RealClock)(nil)
	_ Clock = (*MockClock)(nil)
)
