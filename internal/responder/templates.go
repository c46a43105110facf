package responder

import (
	"context"
	"fmt"
	"strings"

	"github.com/terminal-bench/supportdesk/internal/models"
)

// kindRule maps inquiry keywords to a template kind within a category. Rules
// are evaluated in order; the first match wins, falling back to "general".
type kindRule struct {
	kind     string
	keywords []string
}

type templateKey struct {
	category models.Category
	kind     string
}

// TemplateRegistry is the default Generator: canned response bodies selected
// by category plus a keyword sub-match on the inquiry. It also owns the
// refusal and status texts the dispatcher attaches to non-resolved outcomes.
type TemplateRegistry struct {
	templates map[templateKey]string
	kinds     map[models.Category][]kindRule
}

// NewTemplateRegistry builds the registry with the stock response bodies.
func NewTemplateRegistry() *TemplateRegistry {
	r := &TemplateRegistry{
		templates: make(map[templateKey]string),
		kinds: map[models.Category][]kindRule{
			models.CategoryBilling: {
				{"payment", []string{"payment", "charge", "charged"}},
				{"invoice", []string{"invoice", "bill", "statement"}},
				{"refund", []string{"refund", "return", "credit"}},
				{"subscription", []string{"subscription", "plan", "renewal"}},
			},
			models.CategoryTechnical: {
				{"installation", []string{"install", "setup", "configure"}},
				{"error", []string{"error", "bug", "crash", "not working"}},
				{"performance", []string{"slow", "performance", "lag"}},
				{"network", []string{"network", "connection", "internet"}},
				{"feature", []string{"feature", "how to", "guide"}},
			},
			models.CategoryEscalation: {
				{"complaint", []string{"complaint", "dissatisfied", "unhappy"}},
				{"compensation", []string{"compensation", "refund", "credit"}},
				{"policy", []string{"policy", "rule", "procedure"}},
				{"service", []string{"service", "quality", "failure"}},
			},
		},
	}

	r.register(models.CategoryBilling, "payment", "I can help with your payment question. I can explain unexpected charges, walk through failed payments, and point you at secure payment method updates in your account settings. Please share your account email so I can review your recent payment history.")
	r.register(models.CategoryBilling, "invoice", "I can help with invoices and billing statements: copies of past invoices, line item explanations, due dates, and paperless billing setup. Please share your account information so I can pull up your billing details.")
	r.register(models.CategoryBilling, "refund", "I can review your refund eligibility. Cancellations within the grace period, billing errors, duplicate charges, and unused credits all qualify. Tell me which charge you would like refunded and I will review the request.")
	r.register(models.CategoryBilling, "subscription", "I can help with your subscription: current plan details, upgrades and downgrades, billing cycle dates, and auto-renewal settings. Let me know what you would like to change.")
	r.register(models.CategoryBilling, "general", "I can help with payments, invoices, refunds, and subscription management. Please share your account information and describe your billing question, and I will take it from there.")

	r.register(models.CategoryTechnical, "installation", "Let's get your installation working. First verify the system requirements, download from the official source, and run the installer with administrator rights if prompted. If it still fails, send me the exact error and your system details.")
	r.register(models.CategoryTechnical, "error", "I can help troubleshoot that error. Please share the exact error text, the steps that led to it, and when it started. Common causes are crashes after updates, connection timeouts, and authentication failures, and most have a targeted fix.")
	r.register(models.CategoryTechnical, "performance", "For slowness, start by checking CPU, memory, and disk headroom, close background applications, and clear cached data. If performance does not recover, describe what operation is slow and I will dig further.")
	r.register(models.CategoryTechnical, "network", "For connectivity problems: check physical connections, restart your router and modem, test another device, and check for service outages. If the problem persists, describe your network setup and I will keep troubleshooting.")
	r.register(models.CategoryTechnical, "feature", "Happy to walk you through that feature. Tell me which feature you want to use and what you are trying to accomplish, and I will give you step-by-step guidance with examples.")
	r.register(models.CategoryTechnical, "general", "I can help with installation, errors, performance, connectivity, and feature guidance. Describe the issue and any relevant system details, and I will work through it with you.")
	r.register(models.CategoryTechnical, "security", "I can help with your security-related request through the proper channels. Never share passwords in chat, prefer the secure self-service options in your account, and enable two-factor authentication where available. I will guide you through the safe procedure for your specific request.")

	r.register(models.CategoryEscalation, "complaint", "I'm sorry about the experience you've had, and I want to make this right. I will document your complaint, investigate the root cause, and respond with specific actions within 24 hours. Please share the details of what happened.")
	r.register(models.CategoryEscalation, "compensation", "I understand you are seeking compensation. I will review the circumstances against our policies; possible outcomes include service credits, partial or full refunds, and extended service periods. Please describe the issue, the timeline, and any previous attempts to resolve it.")
	r.register(models.CategoryEscalation, "policy", "I can clarify the policy in question and explain the reasoning behind it. You are entitled to request an exception, appeal a decision, or receive a written explanation. Which policy or procedure would you like me to review?")
	r.register(models.CategoryEscalation, "service", "I apologize for the service problem. I will open an investigation, identify the root cause, and follow up until the issue is resolved. Please describe what failed and when it started.")
	r.register(models.CategoryEscalation, "general", "I understand you want this escalated. Options include senior specialist review, management involvement, and a formal complaint investigation, with regular updates until resolution. Please share the details of your concern so I can route it properly.")

	r.register(models.CategoryGeneral, "general", "Thanks for contacting support. I can help with billing and payments, technical issues, and escalations or complaints. Please share more detail about your concern and I will route you to the right specialist.")

	return r
}

func (r *TemplateRegistry) register(category models.Category, kind, body string) {
	r.templates[templateKey{category, kind}] = body
}

// Generate implements Generator. Kind selection mirrors the inquiry
// sub-matching of each handling path; unmatched inquiries get the category's
// general response.
func (r *TemplateRegistry) Generate(_ context.Context, category models.Category, input string, reqCtx map[string]any) (string, error) {
	if category == models.CategoryTechnical {
		if flag, ok := reqCtx["security_sensitive"].(bool); ok && flag {
			return r.SecurityAware(), nil
		}
	}

	kind := "general"
	lower := strings.ToLower(input)
	for _, rule := range r.kinds[category] {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				kind = rule.kind
				break
			}
		}
		if kind != "general" {
			break
		}
	}

	body, ok := r.templates[templateKey{category, kind}]
	if !ok {
		return "", fmt.Errorf("no template for category %q kind %q", category, kind)
	}
	return body, nil
}

// SecurityAware returns the body for a technical request that passed the
// enhanced gate.
func (r *TemplateRegistry) SecurityAware() string {
	return r.templates[templateKey{models.CategoryTechnical, "security"}]
}

// Refusal returns the customer-facing text for a gate refusal.
func Refusal(category models.Category, status models.OutcomeStatus) string {
	switch status {
	case models.StatusVerificationFailed:
		if category == models.CategoryTechnical {
			return "I'm sorry, but I need to verify your identity before I can assist with this security-sensitive request. Please contact our security team directly."
		}
		return "I'm sorry, but I need to verify your identity before I can assist with this request. Please contact our billing department directly."
	case models.StatusSuspiciousActivity:
		if category == models.CategoryTechnical {
			return "I'm sorry, but I cannot process this request. Please contact our security team for assistance."
		}
		return "I'm sorry, but I cannot process this request. Please contact our billing department for assistance."
	}
	return ""
}

// Urgent is the immediate canned response for the crisis fast path, listing
// the emergency contact channels.
func Urgent() string {
	return "I understand this is an urgent situation that requires immediate attention. " +
		"For safety or security concerns contact emergency services immediately. " +
		"Emergency contacts: Emergency Services 911, Legal Department legal@company.com, " +
		"Technical Emergency tech-emergency@company.com, Security Team security@company.com. " +
		"I am escalating this to our emergency response team and a senior specialist will contact you within 15 minutes."
}

// CaseOpened formats the response accompanying a newly created escalation
// case.
func CaseOpened(c models.EscalationCase) string {
	return fmt.Sprintf("I'm escalating this matter to ensure it receives the attention it deserves. "+
		"Case ID: %s, opened %s, priority high, assigned to a senior specialist. "+
		"You will receive a detailed response within 24 hours and regular updates until resolution. "+
		"Please keep your case ID for reference.",
		c.CaseID, c.CreatedAt.Format("2006-01-02 15:04:05"))
}

// Declined is the generic escalation-options response when neither urgency
// nor legitimacy holds.
func Declined() string {
	return "I understand you need to escalate your concern. Available options include senior specialist review, " +
		"management involvement, and a formal complaint investigation. Please share the details of your concern " +
		"and any previous attempts to resolve it, and I will ensure it receives the proper attention."
}

// InvalidInput is the user-facing prompt for empty-after-sanitization input.
func InvalidInput() string {
	return "I'm sorry, but I couldn't process your request. Please provide a valid message."
}

// InternalFailure is the generic apology emitted when a downstream fault is
// caught at the dispatch boundary.
func InternalFailure() string {
	return "I apologize, but I encountered an error processing your request. Please try again or contact our support team directly."
}

// RateLimited is the throttling message.
func RateLimited() string {
	return "Rate limit exceeded. Please try again later."
}
