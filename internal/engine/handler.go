package engine

import (
	"context"
	"time"

	"github.com/terminal-bench/supportdesk/internal/models"
	"github.com/terminal-bench/supportdesk/internal/responder"
)

// request bundles one sanitized message with its identity view for the
// category handlers.
type request struct {
	msg       models.InboundMessage
	sanitized string
	vc        models.VerificationContext
	now       time.Time
}

// categoryHandler is the per-category strategy: each variant owns
// verification, screening, and response selection for its category. A
// returned error means processing itself failed; the dispatcher converts it
// to an internal-failure outcome.
type categoryHandler interface {
	category() models.Category
	handle(ctx context.Context, req request) (models.Outcome, error)
}

// billingHandler runs the basic verification tier and the billing suspicious
// screen for caller-flagged sensitive operations, then generates a response.
type billingHandler struct {
	gate *SecurityGate
	gen  responder.Generator
}

func (h *billingHandler) category() models.Category { return models.CategoryBilling }

func (h *billingHandler) handle(ctx context.Context, req request) (models.Outcome, error) {
	if req.msg.Sensitive {
		res := h.gate.Check(models.CategoryBilling, TierBasic, req.sanitized, req.vc)
		if res.Status != models.StatusResolved {
			return models.Outcome{
				Status:   res.Status,
				Category: models.CategoryBilling,
				Response: responder.Refusal(models.CategoryBilling, res.Status),
			}, nil
		}
	}

	body, err := h.gen.Generate(ctx, models.CategoryBilling, req.sanitized, req.msg.Context)
	if err != nil {
		return models.Outcome{}, err
	}
	return models.Outcome{
		Status:   models.StatusResolved,
		Category: models.CategoryBilling,
		Response: body,
	}, nil
}

// technicalHandler detects security sensitivity from the message text and
// applies the enhanced verification tier plus the technical suspicious
// screen before responding.
type technicalHandler struct {
	gate *SecurityGate
	gen  responder.Generator
}

func (h *technicalHandler) category() models.Category { return models.CategoryTechnical }

func (h *technicalHandler) handle(ctx context.Context, req request) (models.Outcome, error) {
	reqCtx := req.msg.Context

	if h.gate.IsSecuritySensitive(req.sanitized) {
		res := h.gate.Check(models.CategoryTechnical, TierEnhanced, req.sanitized, req.vc)
		if res.Status != models.StatusResolved {
			return models.Outcome{
				Status:   res.Status,
				Category: models.CategoryTechnical,
				Response: responder.Refusal(models.CategoryTechnical, res.Status),
			}, nil
		}
		// The generator sees the verified, security-sensitive context.
		reqCtx = withFlag(reqCtx, "security_sensitive", true)
	}

	body, err := h.gen.Generate(ctx, models.CategoryTechnical, req.sanitized, reqCtx)
	if err != nil {
		return models.Outcome{}, err
	}
	return models.Outcome{
		Status:   models.StatusResolved,
		Category: models.CategoryTechnical,
		Response: body,
	}, nil
}

// escalationHandler runs the escalation state machine and formats the
// outcome of each terminal state.
type escalationHandler struct {
	manager *EscalationManager
}

func (h *escalationHandler) category() models.Category { return models.CategoryEscalation }

func (h *escalationHandler) handle(_ context.Context, req request) (models.Outcome, error) {
	decision := h.manager.Assess(req.sanitized, req.vc, req.now, req.msg.Emergency)

	out := models.Outcome{
		Status:   models.StatusResolved,
		Category: models.CategoryEscalation,
	}
	switch decision.State {
	case EscalationUrgent:
		out.Response = responder.Urgent()
	case EscalationOpen:
		out.Response = responder.CaseOpened(*decision.Case)
		out.CaseID = decision.Case.CaseID
	default:
		out.Response = responder.Declined()
	}
	return out, nil
}

// generalHandler answers uncategorized requests with routing guidance.
type generalHandler struct {
	gen responder.Generator
}

func (h *generalHandler) category() models.Category { return models.CategoryGeneral }

func (h *generalHandler) handle(ctx context.Context, req request) (models.Outcome, error) {
	body, err := h.gen.Generate(ctx, models.CategoryGeneral, req.sanitized, req.msg.Context)
	if err != nil {
		return models.Outcome{}, err
	}
	return models.Outcome{
		Status:   models.StatusResolved,
		Category: models.CategoryGeneral,
		Response: body,
	}, nil
}

// withFlag copies the context map with one extra key, leaving the received
// message untouched.
func withFlag(ctx map[string]any, key string, value any) map[string]any {
	out := make(map[string]any, len(ctx)+1)
	for k, v := range ctx {
		out[k] = v
	}
	out[key] = value
	return out
}
