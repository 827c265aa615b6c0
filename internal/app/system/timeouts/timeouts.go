// internal/app/system/timeouts/timeouts.go
//
// Package timeouts centralizes the context deadlines used for database
// and storage operations. Defaults suit local development; Configure
// lets bootstrap override them from app config.
package timeouts

import (
	"sync"
	"time"
)

var (
	mu sync.RWMutex

	ping   = 2 * time.Second
	short  = 3 * time.Second
	medium = 10 * time.Second
	long   = 30 * time.Second
	batch  = 2 * time.Minute
)

// Ping is the deadline for liveness checks.
func Ping() time.Duration { mu.RLock(); defer mu.RUnlock(); return ping }

// Short is the deadline for single-document reads and writes.
func Short() time.Duration { mu.RLock(); defer mu.RUnlock(); return short }

// Medium is the deadline for multi-document queries.
func Medium() time.Duration { mu.RLock(); defer mu.RUnlock(); return medium }

// Long is the deadline for blob transfers.
func Long() time.Duration { mu.RLock(); defer mu.RUnlock(); return long }

// Batch is the deadline for background sweeps.
func Batch() time.Duration { mu.RLock(); defer mu.RUnlock(); return batch }

// Configure overrides the defaults. Zero values leave the current
// setting unchanged.
func Configure(p, s, m, l, b time.Duration) {
	mu.Lock()
	defer mu.Unlock()
	if p > 0 {
		ping = p
	}
	if s > 0 {
		short = s
	}
	if m > 0 {
		medium = m
	}
	if l > 0 {
		long = l
	}
	if b > 0 {
		batch = b
	}
}
