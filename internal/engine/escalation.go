package engine

import (
	"log/slog"
	"time"

	"github.com/terminal-bench/supportdesk/internal/config"
	"github.com/terminal-bench/supportdesk/internal/models"
	"github.com/terminal-bench/supportdesk/internal/notify"
)

// EscalationState is the terminal state an escalation request lands in.
// Every request starts fresh; nothing carries over between requests.
type EscalationState string

const (
	// EscalationUrgent is the crisis fast path: canned emergency response,
	// no legitimacy check, no case.
	EscalationUrgent EscalationState = "urgent"
	// EscalationOpen means the request warranted a tracked case.
	EscalationOpen EscalationState = "open"
	// EscalationDeclined means neither urgency nor legitimacy held.
	EscalationDeclined EscalationState = "declined"
)

// EscalationDecision is the manager's verdict for one request. Case is set
// only for EscalationOpen.
type EscalationDecision struct {
	State EscalationState
	Case  *models.EscalationCase
}

// EscalationManager decides whether an escalation request is urgent,
// legitimate, or neither, and opens a case on the legitimate path. The
// urgency check runs strictly first: input matching both keyword sets always
// takes the urgent path.
type EscalationManager struct {
	urgencyKeywords   []string
	indicatorKeywords []string
	logger            *slog.Logger
	notifier          notify.Notifier
}

// NewEscalationManager builds a manager from the configured keyword lists.
// notifier may be nil when nothing subscribes to escalation events.
func NewEscalationManager(kw config.Keywords, logger *slog.Logger, notifier notify.Notifier) *EscalationManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &EscalationManager{
		urgencyKeywords:   kw.Urgency,
		indicatorKeywords: kw.EscalationIndicators,
		logger:            logger,
		notifier:          notifier,
	}
}

// Assess runs the per-request state machine. forceUrgent takes the urgent
// path unconditionally, used by the emergency submission endpoint.
func (m *EscalationManager) Assess(input string, vc models.VerificationContext, now time.Time, forceUrgent bool) EscalationDecision {
	if forceUrgent || m.isUrgent(input) {
		m.logger.Error("urgent situation detected",
			"customer_id", vc.CustomerID,
			"input", input)
		if m.notifier != nil {
			m.notifier.UrgentSituation(vc.CustomerID, input)
		}
		return EscalationDecision{State: EscalationUrgent}
	}

	if m.isLegitimate(input, vc) {
		c := models.NewEscalationCase(vc.CustomerID, now)
		m.logger.Info("escalation case created",
			"case_id", c.CaseID,
			"customer_id", c.CustomerID)
		if m.notifier != nil {
			m.notifier.CaseOpened(c)
		}
		return EscalationDecision{State: EscalationOpen, Case: &c}
	}

	return EscalationDecision{State: EscalationDeclined}
}

func (m *EscalationManager) isUrgent(input string) bool {
	_, ok := matchKeyword(input, m.urgencyKeywords)
	return ok
}

// isLegitimate holds when the input carries an escalation indicator or the
// customer has already tried at least twice.
func (m *EscalationManager) isLegitimate(input string, vc models.VerificationContext) bool {
	if vc.PreviousAttempts >= 2 {
		return true
	}
	_, ok := matchKeyword(input, m.indicatorKeywords)
	return ok
}
