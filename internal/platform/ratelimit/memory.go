// Copyright (c) 2026 Loft. All rights reserved.
// Author: van.tran.dev@gmail.com

package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// memoryClient pairs a token bucket with its last-seen timestamp for cleanup.
type memoryClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryStore is a per-process [Store] using token buckets per key.
//
// # Concurrency
//
// All state is guarded by a single mutex; the per-request critical section is
// a map lookup plus a bucket check, which is negligible at this scale.
type MemoryStore struct {
	mu      sync.Mutex
	clients map[string]*memoryClient

	rps       rate.Limit
	burst     int
	clientTTL time.Duration
}

// NewMemoryStore creates a MemoryStore and starts its cleanup goroutine.
//
// The goroutine evicts idle entries every cleanupInterval and stops when ctx
// is cancelled, so the store never leaks key entries for one-off clients.
func NewMemoryStore(ctx context.Context, rps float64, burst int, clientTTL, cleanupInterval time.Duration) *MemoryStore {
	store := &MemoryStore{
		clients:   make(map[string]*memoryClient),
		rps:       rate.Limit(rps),
		burst:     burst,
		clientTTL: clientTTL,
	}

	go func() {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				store.evictIdle()
			case <-ctx.Done():
				return
			}
		}
	}()

	return store
}

// Allow implements [Store] using a token bucket per key.
func (store *MemoryStore) Allow(_ context.Context, key string) bool {
	store.mu.Lock()
	defer store.mu.Unlock()

	client, found := store.clients[key]
	if !found {
		client = &memoryClient{
			limiter: rate.NewLimiter(store.rps, store.burst),
		}
		store.clients[key] = client
	}

	client.lastSeen = time.Now()
	return client.limiter.Allow()
}

// evictIdle removes entries that have been idle longer than the client TTL.
func (store *MemoryStore) evictIdle() {
	store.mu.Lock()
	defer store.mu.Unlock()

	for key, client := range store.clients {
		if time.Since(client.lastSeen) > store.clientTTL {
			delete(store.clients, key)
		}
	}
}
