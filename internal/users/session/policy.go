// Copyright (c) 2026 Loft. All rights reserved.
// Author: van.tran.dev@gmail.com

package session

import (
	"time"

	"github.com/vantran-dev/loft/internal/platform/constants"
)

// # Lifetime Selection

// LifetimeFor returns the session token lifetime for the consent state
// present at login.
//
// The decision is made exactly once; later consent changes never extend or
// shorten an already-issued token's expiry (revocation is the monitor's job).
func LifetimeFor(consentGiven bool) time.Duration {
	if consentGiven {
		return constants.ConsentedSessionLifetime
	}
	return constants.ShortSessionLifetime
}

// # Live Session Evaluation

// EndReason classifies why a live session must terminate.
type EndReason string

const (
	// ReasonConsentRevoked means consent present at login has since been
	// withdrawn.
	ReasonConsentRevoked EndReason = "consent_revoked"

	// ReasonSessionCeiling means a no-consent session exceeded the maximum
	// duration allowed without consent.
	ReasonSessionCeiling EndReason = "session_ceiling"

	// ReasonInactive means the session went too long without user activity.
	ReasonInactive EndReason = "inactive"

	// ReasonNone means the session may continue.
	ReasonNone EndReason = ""
)

// State tracks one live session's policy-relevant timestamps.
type State struct {
	// LoginAt is when the session was established.
	LoginAt time.Time

	// LastActivityAt is the most recent recorded user interaction.
	LastActivityAt time.Time

	// ConsentAtLogin records whether consent was present when the session
	// was established.
	ConsentAtLogin bool
}

// NewState initializes tracking for a freshly established session.
func NewState(loginAt time.Time, consentGiven bool) *State {
	return &State{
		LoginAt:        loginAt,
		LastActivityAt: loginAt,
		ConsentAtLogin: consentGiven,
	}
}

// Touch records user activity at the given instant.
//
// Updates are throttled: a touch within [constants.ActivityTouchThrottle] of
// the previous one is dropped, so bursty interaction (scrolling, typing) does
// not turn into a write storm. Reports whether the touch was recorded.
func (state *State) Touch(now time.Time) bool {
	if now.Sub(state.LastActivityAt) < constants.ActivityTouchThrottle {
		return false
	}
	state.LastActivityAt = now
	return true
}

// Evaluate checks every termination condition and returns the first that
// applies, or [ReasonNone] if the session may continue.
//
// Order matters only for attribution in logs; any single failing condition
// ends the session regardless of the others.
func (state *State) Evaluate(now time.Time, consentGivenNow bool) EndReason {

	// Consent withdrawn after a consented login kills the session outright.
	if state.ConsentAtLogin && !consentGivenNow {
		return ReasonConsentRevoked
	}

	// Sessions established without consent are bounded by the idle ceiling
	// in ABSOLUTE time as well, not just in inactivity.
	if !state.ConsentAtLogin && now.Sub(state.LoginAt) > constants.SessionIdleCeiling {
		return ReasonSessionCeiling
	}

	// Inactivity check applies to every session, consented or not.
	if now.Sub(state.LastActivityAt) > constants.SessionIdleCeiling {
		return ReasonInactive
	}

	return ReasonNone
}
