package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/terminal-bench/supportdesk/internal/audit"
	"github.com/terminal-bench/supportdesk/internal/config"
	"github.com/terminal-bench/supportdesk/internal/models"
	"github.com/terminal-bench/supportdesk/internal/notify"
	"github.com/terminal-bench/supportdesk/internal/responder"
)

// Dispatcher composes the pipeline for one request: sanitize, rate limit,
// classify, gate or escalate, respond, audit. It is safe for concurrent use;
// the only shared mutable state is inside the rate limiter and the audit
// sink.
type Dispatcher struct {
	sanitizer  *Sanitizer
	limiter    RateLimiter
	classifier *Classifier
	handlers   map[models.Category]categoryHandler
	sink       audit.Sink
	logger     *slog.Logger
	now        func() time.Time
}

// Option customizes optional dispatcher collaborators.
type Option func(*options)

type options struct {
	notifier notify.Notifier
}

// WithNotifier subscribes a notifier to escalation events.
func WithNotifier(n notify.Notifier) Option {
	return func(o *options) { o.notifier = n }
}

// NewDispatcher wires the engine components from configuration. The rate
// limiter, audit sink, and response generator are injected so hosts can
// choose backends and tests can isolate state.
func NewDispatcher(cfg *config.Config, limiter RateLimiter, sink audit.Sink, gen responder.Generator, logger *slog.Logger, opts ...Option) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	gate := NewSecurityGate(cfg.Keywords, logger)
	manager := NewEscalationManager(cfg.Keywords, logger, o.notifier)

	handlers := make(map[models.Category]categoryHandler)
	for _, h := range []categoryHandler{
		&billingHandler{gate: gate, gen: gen},
		&technicalHandler{gate: gate, gen: gen},
		&escalationHandler{manager: manager},
		&generalHandler{gen: gen},
	} {
		handlers[h.category()] = h
	}

	return &Dispatcher{
		sanitizer:  NewSanitizer(cfg.MaxInputLength, cfg.Keywords.DangerousChars, logger),
		limiter:    limiter,
		classifier: NewClassifier(cfg.Keywords),
		handlers:   handlers,
		sink:       sink,
		logger:     logger,
		now:        time.Now,
	}
}

// Sanitizer exposes the dispatcher's sanitizer for status reporting.
func (d *Dispatcher) Sanitizer() *Sanitizer { return d.sanitizer }

// Dispatch runs the full pipeline with automatic classification.
func (d *Dispatcher) Dispatch(ctx context.Context, msg models.InboundMessage) models.Outcome {
	return d.dispatch(ctx, msg, "")
}

// DispatchCategory skips the classifier and routes directly to the given
// category's handling path. The security gate and escalation policy still
// apply.
func (d *Dispatcher) DispatchCategory(ctx context.Context, msg models.InboundMessage, category models.Category) models.Outcome {
	if !category.Valid() {
		return models.Outcome{
			Status:   models.StatusInvalidInput,
			Response: responder.InvalidInput(),
		}
	}
	return d.dispatch(ctx, msg, category)
}

// DispatchEmergency forces the urgent escalation path regardless of message
// content.
func (d *Dispatcher) DispatchEmergency(ctx context.Context, msg models.InboundMessage) models.Outcome {
	msg.Emergency = true
	return d.dispatch(ctx, msg, models.CategoryEscalation)
}

func (d *Dispatcher) dispatch(ctx context.Context, msg models.InboundMessage, forced models.Category) models.Outcome {
	sanitized := d.sanitizer.Sanitize(msg.RawText)
	if sanitized == "" {
		return models.Outcome{
			Status:   models.StatusInvalidInput,
			Response: responder.InvalidInput(),
		}
	}

	now := d.now()
	allowed, err := d.limiter.Allow(ctx, msg.CustomerID, now)
	if err != nil {
		d.logger.Error("rate limiter failure", "customer_id", msg.CustomerID, "error", err)
		out := internalFailure(models.CategoryGeneral)
		d.record(ctx, sanitized, msg, out)
		return out
	}
	if !allowed {
		return models.Outcome{
			Status:   models.StatusRateLimited,
			Response: responder.RateLimited(),
		}
	}

	category := forced
	if category == "" {
		category = d.classifier.Classify(sanitized).Category
	}

	out := d.run(ctx, category, request{
		msg:       msg,
		sanitized: sanitized,
		vc:        models.ExtractVerification(msg.Context),
		now:       now,
	})

	d.record(ctx, sanitized, msg, out)
	return out
}

// run executes the category handler, converting panics and errors into the
// internal-failure outcome so no fault crosses the dispatch boundary.
func (d *Dispatcher) run(ctx context.Context, category models.Category, req request) (out models.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("panic during dispatch",
				"category", string(category),
				"customer_id", req.msg.CustomerID,
				"panic", r)
			out = internalFailure(category)
		}
	}()

	out, err := d.handlers[category].handle(ctx, req)
	if err != nil {
		d.logger.Error("request processing failed",
			"category", string(category),
			"customer_id", req.msg.CustomerID,
			"error", err)
		return internalFailure(category)
	}
	return out
}

// record writes exactly one audit entry for a terminal outcome. Sink
// failures are logged, never surfaced to the customer.
func (d *Dispatcher) record(ctx context.Context, sanitized string, msg models.InboundMessage, out models.Outcome) {
	if !out.Terminal() {
		return
	}

	customerID := msg.CustomerID
	if customerID == "" {
		customerID = AnonymousCustomer
	}

	entry := models.AuditEntry{
		ID:             uuid.New(),
		Timestamp:      d.now(),
		Category:       out.Category,
		SanitizedInput: sanitized,
		Outcome:        out.Status,
		CustomerID:     customerID,
	}
	if err := d.sink.Record(ctx, entry); err != nil {
		d.logger.Error("failed to record audit entry",
			"customer_id", customerID,
			"outcome", string(out.Status),
			"error", err)
	}
}

func internalFailure(category models.Category) models.Outcome {
	return models.Outcome{
		Status:   models.StatusInternalFailure,
		Category: category,
		Response: responder.InternalFailure(),
	}
}
