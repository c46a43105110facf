package models

// Category identifies which handling path a message is routed to.
type Category string

const (
	CategoryBilling    Category = "billing"
	CategoryTechnical  Category = "technical"
	CategoryEscalation Category = "escalation"
	CategoryGeneral    Category = "general"
)

// Valid reports whether c is one of the four routable categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryBilling, CategoryTechnical, CategoryEscalation, CategoryGeneral:
		return true
	}
	return false
}

// InboundMessage is one raw support request as received from the transport
// layer. It is never mutated after receipt; the engine works on a sanitized
// copy of RawText.
type InboundMessage struct {
	RawText    string         `json:"message"`
	CustomerID string         `json:"customer_id,omitempty"`
	Context    map[string]any `json:"context,omitempty"`
	Emergency  bool           `json:"emergency"`
	// Sensitive marks a billing operation that requires identity
	// verification before processing. Technical sensitivity is detected
	// from the message text instead.
	Sensitive bool `json:"sensitive"`
}

// VerificationContext is the read-only identity view extracted from an
// InboundMessage's context map. The engine never writes back into it.
type VerificationContext struct {
	CustomerID       string
	Email            string
	Phone            string
	AccountVerified  bool
	PreviousAttempts int
}

// ExtractVerification pulls the identity fields out of a request context map.
// Missing or mistyped fields become zero values; verification tiers treat
// those as absent.
func ExtractVerification(ctx map[string]any) VerificationContext {
	vc := VerificationContext{}
	if ctx == nil {
		return vc
	}
	if v, ok := ctx["customer_id"].(string); ok {
		vc.CustomerID = v
	}
	if v, ok := ctx["email"].(string); ok {
		vc.Email = v
	}
	if v, ok := ctx["phone"].(string); ok {
		vc.Phone = v
	}
	if v, ok := ctx["account_verified"].(bool); ok {
		vc.AccountVerified = v
	}
	switch v := ctx["previous_attempts"].(type) {
	case int:
		vc.PreviousAttempts = v
	case float64:
		// JSON numbers decode as float64.
		vc.PreviousAttempts = int(v)
	}
	return vc
}

// ClassificationResult is the classifier's output: exactly one category plus
// the per-category keyword scores that produced it.
type ClassificationResult struct {
	Category Category         `json:"category"`
	Scores   map[Category]int `json:"scores"`
}
