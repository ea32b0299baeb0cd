// Copyright (c) 2026 Loft. All rights reserved.
// Author: van.tran.dev@gmail.com

/*
Package session implements the consent-gated session lifetime policy and the
background monitor that enforces it on live sessions.

# Policy Model

Cookie consent is the single input to session longevity. Consent present at
login buys the long lifetime; absent consent caps the session at the short
lifetime AND subjects it to the same ceiling as inactivity. Consent revoked
mid-session kills the session on the monitor's next tick.

The policy deliberately evaluates consent at two distinct moments:

  - At login: fixes the token lifetime (never revisited).
  - Continuously: the monitor re-reads consent each tick and treats
    revocation as an immediate logout condition.

[Monitor] is the embeddable client-agent half of the policy. The server
never instantiates it: logout enforcement past the token's own expiry is
deliberately local to the client, the only hard server-side guarantees
being signature validity and the absolute age ceiling.
*/
package session

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/vantran-dev/loft/internal/platform/constants"
)

// # Consent State

// Consent captures the visitor's cookie consent at a point in time.
type Consent struct {
	// Given reports whether the visitor accepted the consent banner at all.
	// Absent cookie means not given; there is no third state.
	Given bool `json:"given"`

	// Preferences are the per-category switches. Necessary is always true
	// regardless of what the stored value claims.
	Preferences Preferences `json:"preferences"`
}

// Preferences are the per-category consent switches.
type Preferences struct {
	Necessary   bool `json:"necessary"`
	Functional  bool `json:"functional"`
	Analytics   bool `json:"analytics"`
	Advertising bool `json:"advertising"`
}

// FromRequest reads the consent state carried by the request's cookies.
//
// A missing or unreadable consent cookie yields the zero state (not given).
// A present marker with an unreadable preferences cookie yields consent given
// with only the necessary category enabled.
func FromRequest(request *http.Request) Consent {
	marker, err := request.Cookie(constants.ConsentCookieName)
	if err != nil || marker.Value != "accepted" {
		return Consent{}
	}

	consent := Consent{
		Given:       true,
		Preferences: Preferences{Necessary: true},
	}

	prefs, err := request.Cookie(constants.ConsentPrefsCookieName)
	if err != nil {
		return consent
	}

	// The frontend stores the preferences JSON URL-encoded, as cookie values
	// cannot carry quotes.
	raw, err := url.QueryUnescape(prefs.Value)
	if err != nil {
		return consent
	}

	var stored Preferences
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return consent
	}

	consent.Preferences = stored
	// Necessary cookies are never opt-out.
	consent.Preferences.Necessary = true

	return consent
}
