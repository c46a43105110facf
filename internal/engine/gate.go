package engine

import (
	"log/slog"

	"github.com/terminal-bench/supportdesk/internal/config"
	"github.com/terminal-bench/supportdesk/internal/models"
)

// VerificationTier selects how much identity evidence a sensitive operation
// needs before it may proceed.
type VerificationTier int

const (
	// TierBasic requires customer id, email, and phone. Applied to
	// caller-flagged sensitive billing operations.
	TierBasic VerificationTier = iota
	// TierEnhanced additionally requires a verified account. Applied to
	// security-sensitive technical operations.
	TierEnhanced
)

// GateResult is the security gate's verdict for one sensitive request.
type GateResult struct {
	Status models.OutcomeStatus
	// Matched is the suspicious keyword that triggered a refusal, empty
	// otherwise.
	Matched string
}

// SecurityGate verifies identity and screens for suspicious intent before a
// billing or technical request touches anything sensitive. Verification runs
// first; a failed tier short-circuits without the suspicious screen.
type SecurityGate struct {
	sensitiveKeywords   []string
	suspiciousBilling   []string
	suspiciousTechnical []string
	logger              *slog.Logger
}

// NewSecurityGate builds a gate from the configured keyword lists.
func NewSecurityGate(kw config.Keywords, logger *slog.Logger) *SecurityGate {
	if logger == nil {
		logger = slog.Default()
	}
	return &SecurityGate{
		sensitiveKeywords:   kw.SecuritySensitive,
		suspiciousBilling:   kw.SuspiciousBilling,
		suspiciousTechnical: kw.SuspiciousTechnical,
		logger:              logger,
	}
}

// IsSecuritySensitive reports whether a technical request touches
// security-sensitive territory and therefore needs the enhanced tier.
func (g *SecurityGate) IsSecuritySensitive(input string) bool {
	_, ok := matchKeyword(input, g.sensitiveKeywords)
	return ok
}

// Check runs the two-step screen for a sensitive request: the verification
// tier, then (only on success) the suspicious-activity keyword match for the
// category's domain. The returned status is StatusResolved when the request
// may proceed.
func (g *SecurityGate) Check(category models.Category, tier VerificationTier, input string, vc models.VerificationContext) GateResult {
	if !g.verify(tier, vc) {
		g.logger.Warn("identity verification failed",
			"category", string(category),
			"customer_id", vc.CustomerID,
			"tier", int(tier))
		return GateResult{Status: models.StatusVerificationFailed}
	}

	suspicious := g.suspiciousBilling
	if category == models.CategoryTechnical {
		suspicious = g.suspiciousTechnical
	}
	if kw, ok := matchKeyword(input, suspicious); ok {
		g.logger.Warn("suspicious activity detected",
			"category", string(category),
			"customer_id", vc.CustomerID,
			"keyword", kw,
			"input", input)
		return GateResult{Status: models.StatusSuspiciousActivity, Matched: kw}
	}

	return GateResult{Status: models.StatusResolved}
}

func (g *SecurityGate) verify(tier VerificationTier, vc models.VerificationContext) bool {
	if vc.CustomerID == "" || vc.Email == "" || vc.Phone == "" {
		return false
	}
	if tier == TierEnhanced && !vc.AccountVerified {
		return false
	}
	return true
}
