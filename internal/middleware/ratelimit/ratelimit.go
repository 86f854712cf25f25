// Package ratelimit keeps one token bucket per client so a single feed
// reader polling too often can't turn into a flood of upstream requests.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// bucket is a token bucket refilled continuously at the limiter's rate.
type bucket struct {
	mu         sync.Mutex
	tokens     float64
	lastRefill time.Time
	lastSeen   time.Time
}

func (b *bucket) take(now time.Time, rate, capacity float64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.tokens += now.Sub(b.lastRefill).Seconds() * rate
	if b.tokens > capacity {
		b.tokens = capacity
	}
	b.lastRefill = now
	b.lastSeen = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

func (b *bucket) idleSince(now time.Time) time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return now.Sub(b.lastSeen)
}

// Limiter manages buckets for many clients. Buckets idle for longer than
// the expiration are dropped by Sweep.
type Limiter struct {
	mu         sync.RWMutex
	buckets    map[string]*bucket
	rate       float64 // tokens per second
	capacity   float64
	expiration time.Duration
	now        func() time.Time
}

// New creates a limiter allowing perMinute requests per client with bursts
// of up to burst requests.
func New(perMinute float64, burst int, expiration time.Duration) *Limiter {
	if burst < 1 {
		burst = 1
	}
	return &Limiter{
		buckets:    make(map[string]*bucket),
		rate:       perMinute / 60,
		capacity:   float64(burst),
		expiration: expiration,
		now:        time.Now,
	}
}

// Allow reports whether client may make a request now and consumes a token
// if so.
func (l *Limiter) Allow(client string) bool {
	now := l.now()
	return l.bucket(client, now).take(now, l.rate, l.capacity)
}

func (l *Limiter) bucket(client string, now time.Time) *bucket {
	l.mu.RLock()
	b, ok := l.buckets[client]
	l.mu.RUnlock()
	if ok {
		return b
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	// another request may have created it meanwhile
	if b, ok = l.buckets[client]; ok {
		return b
	}
	b = &bucket{tokens: l.capacity, lastRefill: now, lastSeen: now}
	l.buckets[client] = b
	return b
}

// Sweep drops idle buckets and returns how many were removed.
func (l *Limiter) Sweep() int {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()
	removed := 0
	for client, b := range l.buckets {
		if b.idleSince(now) > l.expiration {
			delete(l.buckets, client)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked clients.
func (l *Limiter) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.buckets)
}

// Run sweeps every interval until ctx is done.
func (l *Limiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.Sweep()
		case <-ctx.Done():
			return
		}
	}
}
