// Package engine implements the support desk decision layer: input
// sanitization, per-customer rate limiting, keyword classification, the
// security gate for sensitive operations, escalation policy, and the
// dispatcher that composes them into one per-request pipeline.
package engine

import (
	"log/slog"
	"strings"
	"sync/atomic"
)

// Sanitizer normalizes and bounds raw input text. Sanitization is
// idempotent: running it twice yields the same string.
type Sanitizer struct {
	maxLength   int
	dangerous   []string
	logger      *slog.Logger
	truncations atomic.Int64
}

// NewSanitizer creates a sanitizer that strips the given character set and
// truncates to maxLength runes.
func NewSanitizer(maxLength int, dangerous []string, logger *slog.Logger) *Sanitizer {
	if maxLength <= 0 {
		maxLength = 1000
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Sanitizer{
		maxLength: maxLength,
		dangerous: dangerous,
		logger:    logger,
	}
}

// Sanitize trims surrounding whitespace, deletes every dangerous character,
// and truncates overlong input. It never fails; an empty result means the
// request carried nothing usable.
func (s *Sanitizer) Sanitize(text string) string {
	sanitized := strings.TrimSpace(text)

	for _, ch := range s.dangerous {
		sanitized = strings.ReplaceAll(sanitized, ch, "")
	}

	if runes := []rune(sanitized); len(runes) > s.maxLength {
		// Truncation can leave trailing whitespace; trim again so a second
		// pass is a no-op.
		sanitized = strings.TrimSpace(string(runes[:s.maxLength]))
		s.truncations.Add(1)
		s.logger.Warn("input truncated due to length limit",
			"max_length", s.maxLength)
	}

	return sanitized
}

// Truncations returns how many inputs have been shortened since startup.
func (s *Sanitizer) Truncations() int64 {
	return s.truncations.Load()
}
