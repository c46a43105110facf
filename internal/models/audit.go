package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditEntry is the persisted record of one completed dispatch decision,
// used for status reporting and compliance review. Exactly one entry is
// written per terminal outcome; rejected requests (rate limit, empty input)
// produce none.
type AuditEntry struct {
	ID             uuid.UUID     `json:"id" db:"id"`
	Timestamp      time.Time     `json:"timestamp" db:"timestamp"`
	Category       Category      `json:"category" db:"category"`
	SanitizedInput string        `json:"sanitized_input" db:"sanitized_input"`
	Outcome        OutcomeStatus `json:"outcome" db:"outcome"`
	CustomerID     string        `json:"customer_id" db:"customer_id"`
}
