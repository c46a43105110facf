// Package audit persists dispatch decisions. The engine only depends on the
// append-only Sink interface; the host application chooses the backing store.
package audit

import (
	"context"
	"sync"

	"github.com/terminal-bench/supportdesk/internal/models"
)

// Sink receives one entry per completed dispatch. Implementations must
// preserve the order of entries for a given customer; global ordering across
// customers is not required.
type Sink interface {
	Record(ctx context.Context, entry models.AuditEntry) error
}

// Counter is implemented by sinks that can aggregate interaction counts for
// status reporting.
type Counter interface {
	CountsByCategory(ctx context.Context) (map[models.Category]int, error)
}

// MemorySink keeps entries in process memory. It serializes appends, which
// also preserves per-customer ordering.
type MemorySink struct {
	mu      sync.Mutex
	entries []models.AuditEntry
	counts  map[models.Category]int
}

// NewMemorySink creates an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{counts: make(map[models.Category]int)}
}

// Record implements Sink. It never fails.
func (s *MemorySink) Record(_ context.Context, entry models.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	s.counts[entry.Category]++
	return nil
}

// Entries returns a copy of everything recorded so far.
func (s *MemorySink) Entries() []models.AuditEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.AuditEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// CountsByCategory implements Counter.
func (s *MemorySink) CountsByCategory(_ context.Context) (map[models.Category]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[models.Category]int, len(s.counts))
	for k, v := range s.counts {
		out[k] = v
	}
	return out, nil
}
