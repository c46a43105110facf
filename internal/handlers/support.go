package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/terminal-bench/supportdesk/internal/audit"
	"github.com/terminal-bench/supportdesk/internal/engine"
	"github.com/terminal-bench/supportdesk/internal/models"
)

// SupportRequest is the transport shape of one inbound support message.
type SupportRequest struct {
	Message    string         `json:"message" binding:"required"`
	CustomerID string         `json:"customer_id"`
	Context    map[string]any `json:"context"`
	Emergency  bool           `json:"emergency"`
	Sensitive  bool           `json:"sensitive"`
}

// SupportResponse is the transport shape of one engine outcome.
type SupportResponse struct {
	Status    models.OutcomeStatus `json:"status"`
	Category  models.Category      `json:"category,omitempty"`
	Response  string               `json:"response"`
	CaseID    string               `json:"case_id,omitempty"`
	Timestamp string               `json:"timestamp"`
}

// SupportHandler exposes the decision engine over HTTP.
type SupportHandler struct {
	dispatcher *engine.Dispatcher
	counter    audit.Counter
}

// NewSupportHandler creates a new support handler. counter may be nil when
// the configured sink cannot aggregate.
func NewSupportHandler(dispatcher *engine.Dispatcher, counter audit.Counter) *SupportHandler {
	return &SupportHandler{dispatcher: dispatcher, counter: counter}
}

// Submit handles auto-routed submissions. A request carrying the emergency
// flag takes the urgent escalation path directly.
func (h *SupportHandler) Submit(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}

	var out models.Outcome
	if req.Emergency {
		out = h.dispatcher.DispatchEmergency(c.Request.Context(), req.toMessage())
	} else {
		out = h.dispatcher.Dispatch(c.Request.Context(), req.toMessage())
	}
	h.respond(c, out)
}

// Emergency forces the urgent escalation path regardless of message content.
func (h *SupportHandler) Emergency(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}
	out := h.dispatcher.DispatchEmergency(c.Request.Context(), req.toMessage())
	h.respond(c, out)
}

// Category returns a handler for direct submission to one category,
// bypassing the classifier.
func (h *SupportHandler) Category(category models.Category) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := h.bind(c)
		if !ok {
			return
		}
		out := h.dispatcher.DispatchCategory(c.Request.Context(), req.toMessage(), category)
		h.respond(c, out)
	}
}

// Status reports aggregate interaction counts per category from the audit
// sink plus the sanitizer's truncation counter.
func (h *SupportHandler) Status(c *gin.Context) {
	counts := map[models.Category]int{}
	if h.counter != nil {
		var err error
		counts, err = h.counter.CountsByCategory(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read audit counts"})
			return
		}
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	c.JSON(http.StatusOK, gin.H{
		"status":             "active",
		"interactions":       counts,
		"total_interactions": total,
		"truncated_inputs":   h.dispatcher.Sanitizer().Truncations(),
		"last_updated":       time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *SupportHandler) bind(c *gin.Context) (SupportRequest, bool) {
	var req SupportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return SupportRequest{}, false
	}
	return req, true
}

func (r SupportRequest) toMessage() models.InboundMessage {
	return models.InboundMessage{
		RawText:    r.Message,
		CustomerID: r.CustomerID,
		Context:    r.Context,
		Emergency:  r.Emergency,
		Sensitive:  r.Sensitive,
	}
}

func (h *SupportHandler) respond(c *gin.Context, out models.Outcome) {
	c.JSON(statusCode(out.Status), SupportResponse{
		Status:    out.Status,
		Category:  out.Category,
		Response:  out.Response,
		CaseID:    out.CaseID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func statusCode(status models.OutcomeStatus) int {
	switch status {
	case models.StatusInvalidInput:
		return http.StatusBadRequest
	case models.StatusRateLimited:
		return http.StatusTooManyRequests
	case models.StatusVerificationFailed, models.StatusSuspiciousActivity:
		return http.StatusForbidden
	case models.StatusInternalFailure:
		return http.StatusInternalServerError
	}
	return http.StatusOK
}
