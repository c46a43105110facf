package models

import (
	"fmt"
	"time"
)

// OutcomeStatus tags the terminal result of one dispatched request. Callers
// branch on the tag; no engine fault ever crosses the dispatch boundary as a
// raw error.
type OutcomeStatus string

const (
	StatusResolved           OutcomeStatus = "resolved"
	StatusVerificationFailed OutcomeStatus = "verification_failed"
	StatusSuspiciousActivity OutcomeStatus = "suspicious_activity"
	StatusRateLimited        OutcomeStatus = "rate_limited"
	StatusInvalidInput       OutcomeStatus = "invalid_input"
	StatusInternalFailure    OutcomeStatus = "internal_failure"
)

// Outcome is the engine's answer for one inbound message.
type Outcome struct {
	Status   OutcomeStatus `json:"status"`
	Category Category      `json:"category,omitempty"`
	Response string        `json:"response"`
	CaseID   string        `json:"case_id,omitempty"`
}

// Terminal reports whether this outcome is recorded in the audit sink.
// Rate-limit and invalid-input rejections are not completed interactions.
func (o Outcome) Terminal() bool {
	return o.Status != StatusRateLimited && o.Status != StatusInvalidInput
}

// EscalationCase tracks one opened escalation. Cases are created only when an
// escalation request passes the legitimacy check without being urgent, and are
// never mutated afterward; closing them is handled elsewhere.
type EscalationCase struct {
	CaseID     string    `json:"case_id"`
	CustomerID string    `json:"customer_id"`
	CreatedAt  time.Time `json:"created_at"`
	Priority   string    `json:"priority"`
	Status     string    `json:"status"`
}

const (
	CasePriorityHigh = "high"
	CaseStatusOpen   = "open"
)

// NewEscalationCase builds a case with the composite id
// ESC-{customerId}-{YYYYMMDDHHMMSS}. Customer plus second-resolution timestamp
// keeps ids unique without coordination.
func NewEscalationCase(customerID string, now time.Time) EscalationCase {
	if customerID == "" {
		customerID = "UNKNOWN"
	}
	return EscalationCase{
		CaseID:     fmt.Sprintf("ESC-%s-%s", customerID, now.Format("20060102150405")),
		CustomerID: customerID,
		CreatedAt:  now,
		Priority:   CasePriorityHigh,
		Status:     CaseStatusOpen,
	}
}
