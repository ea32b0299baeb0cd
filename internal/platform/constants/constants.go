// Copyright (c) 2026 Loft. All rights reserved.
// Author: van.tran.dev@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, session policy ceilings, rate limits, and
cross-cutting keys that are shared between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Session Policy: Consent-gated lifetimes and the token freshness ceiling.
  - Rate Limiting: Request budgets for public write endpoints.
  - Security: Cookie names and header identifiers.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "loft-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Session Policy

const (
	// ConsentedSessionLifetime is the token lifetime requested when the user
	// had accepted cookie consent at the moment of login (7 days).
	ConsentedSessionLifetime = 7 * 24 * time.Hour

	// ShortSessionLifetime is the token lifetime requested when no cookie
	// consent was present at login (4 hours).
	ShortSessionLifetime = 4 * time.Hour

	// SessionIdleCeiling bounds both the no-consent login duration and the
	// inactivity timeout. The two checks intentionally share one constant;
	// see the session policy tests that pin this.
	SessionIdleCeiling = 4 * time.Hour

	// TokenFreshnessCeiling is the absolute maximum age of a token measured
	// from its issued-at claim, independent of its stated expiry. It bounds
	// the blast radius of a long-lived but not-yet-expired token.
	TokenFreshnessCeiling = 24 * time.Hour

	// ActivityCheckInterval is how often the session monitor re-evaluates
	// its kill conditions.
	ActivityCheckInterval = 1 * time.Minute

	// ActivityTouchThrottle caps how often user interaction updates the
	// last-activity timestamp.
	ActivityTouchThrottle = 1 * time.Minute
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per client key.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// WriteRateLimitWindow is the fixed window for public write endpoints.
	WriteRateLimitWindow = 1 * time.Minute

	// WriteRateLimitMax is the number of writes allowed per window per client.
	WriteRateLimitMax = 5

	// RateLimitCleanupInterval is how often idle client entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication & Cookies

const (
	// AuthIssuer is the standard 'iss' claim in issued tokens.
	AuthIssuer = "loft.blog"

	// ConsentCookieName stores the "accepted" marker written by the consent banner.
	ConsentCookieName = "cookie_consent"

	// ConsentPrefsCookieName stores the per-category consent preference JSON.
	ConsentPrefsCookieName = "cookie_preferences"

	// CSRFCookieName is the HttpOnly cookie holding the CSRF pairing value.
	CSRFCookieName = "csrf_token"

	// CSRFCookieMaxAge bounds the CSRF cookie lifetime (1 hour).
	CSRFCookieMaxAge = 3600
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldChecks  = "checks"
)

// # Database Schemas

const (
	SchemaUsers   = "users"
	SchemaContent = "content"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixRateLimit = "ratelimit:"
)
