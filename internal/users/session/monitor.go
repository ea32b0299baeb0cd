// Copyright (c) 2026 Loft. All rights reserved.
// Author: van.tran.dev@gmail.com

package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/vantran-dev/loft/internal/platform/constants"
)

// # Background Monitor

// ConsentProbe reports the CURRENT consent state of the session's owner.
//
// The monitor polls it each tick; returning false after a consented login is
// the revocation signal.
type ConsentProbe func() bool

// Monitor watches one live session and ends it when the policy says so.
//
// # Lifecycle
//
// Start launches a single goroutine that re-evaluates the policy every
// [constants.ActivityCheckInterval]. The goroutine stops when the session
// ends, when Stop is called, or when the context is cancelled — whichever
// comes first. Activity arrives through Touch.
type Monitor struct {
	mu    sync.Mutex
	state *State

	consentProbe ConsentProbe
	onEnd        func(EndReason)
	logger       *slog.Logger

	// Interval overrides the tick period; zero means ActivityCheckInterval.
	// Settable before Start, primarily by tests.
	Interval time.Duration

	// now is the clock source; overridable in tests.
	now func() time.Time

	stopOnce sync.Once
	stopped  chan struct{}
}

// NewMonitor creates a Monitor for a session established now.
//
// # Parameters
//   - consentGiven: Consent state at login; fixes which policy branch applies.
//   - consentProbe: Callback returning the owner's current consent state.
//   - onEnd: Invoked exactly once, with the reason, when the session must end.
//   - logger: Structured logger for policy events.
func NewMonitor(consentGiven bool, consentProbe ConsentProbe, onEnd func(EndReason), logger *slog.Logger) *Monitor {
	monitor := &Monitor{
		consentProbe: consentProbe,
		onEnd:        onEnd,
		logger:       logger,
		now:          time.Now,
		stopped:      make(chan struct{}),
	}
	monitor.state = NewState(monitor.now(), consentGiven)
	return monitor
}

// Start launches the evaluation loop. It returns immediately.
func (monitor *Monitor) Start(ctx context.Context) {
	interval := monitor.Interval
	if interval <= 0 {
		interval = constants.ActivityCheckInterval
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if monitor.evaluateOnce() {
					return
				}
			case <-monitor.stopped:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Touch records user activity. Safe for concurrent use; throttled writes are
// silently dropped.
func (monitor *Monitor) Touch() {
	monitor.mu.Lock()
	defer monitor.mu.Unlock()
	monitor.state.Touch(monitor.now())
}

// Stop ends monitoring without ending the session (local logout path: the
// client discards its token, nothing server-side to revoke).
func (monitor *Monitor) Stop() {
	monitor.stopOnce.Do(func() { close(monitor.stopped) })
}

// evaluateOnce runs one policy check. Reports whether the loop should exit.
func (monitor *Monitor) evaluateOnce() bool {
	monitor.mu.Lock()
	reason := monitor.state.Evaluate(monitor.now(), monitor.consentProbe())
	monitor.mu.Unlock()

	if reason == ReasonNone {
		return false
	}

	monitor.logger.Info("session_ended_by_policy", slog.String("reason", string(reason)))

	// Stop first so a concurrent Stop cannot race the callback.
	monitor.Stop()
	monitor.onEnd(reason)
	return true
}
