// Copyright (c) 2026 Loft. All rights reserved.
// Author: van.tran.dev@gmail.com

package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vantran-dev/loft/internal/platform/ratelimit"
)

/*
TestMemoryStore_BurstThenThrottle verifies that a key gets its full burst and
is then throttled, while other keys are unaffected.
*/
func TestMemoryStore_BurstThenThrottle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Effectively no refill during the test window.
	store := ratelimit.NewMemoryStore(ctx, 0.001, 3, time.Minute, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, store.Allow(ctx, "10.0.0.1"), "request %d within burst", i+1)
	}
	assert.False(t, store.Allow(ctx, "10.0.0.1"), "burst exhausted")

	// A different client has its own bucket.
	assert.True(t, store.Allow(ctx, "10.0.0.2"))
}

/*
TestMemoryStore_RefillRestoresAllowance verifies token bucket refill over time.
*/
func TestMemoryStore_RefillRestoresAllowance(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 100 tokens/sec: a drained bucket recovers within a few milliseconds.
	store := ratelimit.NewMemoryStore(ctx, 100, 1, time.Minute, time.Minute)

	assert.True(t, store.Allow(ctx, "k"))
	assert.False(t, store.Allow(ctx, "k"))

	time.Sleep(50 * time.Millisecond)
	assert.True(t, store.Allow(ctx, "k"))
}
