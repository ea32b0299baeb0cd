// Copyright (c) 2026 Loft. All rights reserved.
// Author: van.tran.dev@gmail.com

/*
Package ratelimit provides an injectable request-counting abstraction for the
rate-limiting middleware.

# Why an interface?

An earlier iteration of this service kept a process-global map of per-IP
limiters inside the middleware itself. That made the limiter untestable and
wrong the moment a second server instance appeared. The [Store] interface
moves the counting decision behind an explicit dependency: handlers receive
whichever implementation the composition root chose.

Implementations:

  - MemoryStore: token buckets (golang.org/x/time/rate) with idle-entry cleanup.
  - RedisStore: fixed-window INCR+EXPIRE counters shared across instances.
*/
package ratelimit

import "context"

// Store decides whether a request identified by key is allowed right now.
//
// Keys are opaque to the store; the middleware uses the client IP, and write
// endpoints may add a route prefix to keep budgets independent.
type Store interface {
	// Allow reports whether the request fits the budget. Implementations
	// must fail OPEN on infrastructure errors: availability of the blog
	// outranks strictness of the limiter.
	Allow(ctx context.Context, key string) bool
}
