package engine

import (
	"context"
	"sync"
	"time"
)

// AnonymousCustomer is the sentinel bucket key shared by all requests that
// arrive without a customer id.
const AnonymousCustomer = "anonymous"

// RateLimiter enforces a per-customer request quota over a sliding window.
// Allow discards expired timestamps, then atomically checks capacity and
// records the new request: two simultaneous calls for the same customer must
// not both see the last free slot.
type RateLimiter interface {
	Allow(ctx context.Context, customerID string, now time.Time) (bool, error)
}

// SlidingWindowLimiter is the in-process RateLimiter: one ordered timestamp
// slice per customer, guarded by a single mutex so check-and-record is
// atomic.
type SlidingWindowLimiter struct {
	mu         sync.Mutex
	windows    map[string][]time.Time
	windowSize time.Duration
	capacity   int
}

// NewSlidingWindowLimiter creates a limiter admitting at most capacity
// requests per customer within any trailing windowSize interval.
func NewSlidingWindowLimiter(windowSize time.Duration, capacity int) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		windows:    make(map[string][]time.Time),
		windowSize: windowSize,
		capacity:   capacity,
	}
}

// Allow implements RateLimiter. It never returns an error.
func (s *SlidingWindowLimiter) Allow(_ context.Context, customerID string, now time.Time) (bool, error) {
	if customerID == "" {
		customerID = AnonymousCustomer
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := now.Add(-s.windowSize)

	valid := s.windows[customerID][:0]
	for _, t := range s.windows[customerID] {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}

	if len(valid) >= s.capacity {
		s.windows[customerID] = valid
		return false, nil
	}

	s.windows[customerID] = append(valid, now)
	return true, nil
}

// Len reports how many requests are currently recorded for a customer.
func (s *SlidingWindowLimiter) Len(customerID string) int {
	if customerID == "" {
		customerID = AnonymousCustomer
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.windows[customerID])
}

// Cleanup drops customers whose entire window has expired, bounding memory
// for long-running processes.
func (s *SlidingWindowLimiter) Cleanup(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := now.Add(-s.windowSize)
	for key, timestamps := range s.windows {
		if len(timestamps) == 0 || !timestamps[len(timestamps)-1].After(cutoff) {
			delete(s.windows, key)
		}
	}
}

// StartCleanup runs Cleanup on a ticker until ctx is cancelled.
func (s *SlidingWindowLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				s.Cleanup(now)
			}
		}
	}()
}
