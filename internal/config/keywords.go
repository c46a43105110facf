package config

// DefaultKeywords returns the compiled-in rule sets. All matching is
// case-insensitive substring containment; each keyword counts once per
// message no matter how often it repeats.
func DefaultKeywords() Keywords {
	return Keywords{
		Billing: []string{
			"payment", "charge", "billing", "invoice", "bill", "refund",
			"credit", "subscription", "plan", "renewal", "cost", "price",
			"fee", "payment method", "credit card",
		},
		Technical: []string{
			"install", "setup", "configure", "error", "bug", "crash",
			"not working", "broken", "issue", "problem", "troubleshoot",
			"slow", "performance", "lag", "network", "connection",
			"internet", "login", "password", "access", "feature",
			"how to", "guide", "tutorial", "help", "support",
		},
		// Escalation keywords always win classification; "refund" and
		// "credit" deliberately appear in both this list and the billing
		// list, matching upstream routing policy.
		Escalation: []string{
			"complaint", "dissatisfied", "unhappy", "angry", "frustrated",
			"escalate", "manager", "supervisor", "higher authority",
			"compensation", "refund", "credit", "policy", "rule",
			"procedure", "service", "quality", "failure", "emergency",
			"urgent", "crisis", "immediate", "critical", "legal",
			"lawyer", "police", "threat", "danger", "harm",
		},
		SecuritySensitive: []string{
			"password", "reset", "login", "authentication", "access",
			"admin", "root", "privilege", "permission", "security",
			"encryption", "decrypt", "key", "token", "api key",
		},
		SuspiciousBilling: []string{
			"urgent", "emergency", "immediate", "wire transfer", "bitcoin",
			"gift card", "prepaid card", "anonymous", "secret",
		},
		SuspiciousTechnical: []string{
			"hack", "exploit", "bypass", "crack", "unauthorized",
			"admin access", "root access", "privilege escalation",
			"backdoor", "malware", "virus", "trojan",
		},
		Urgency: []string{
			"emergency", "urgent", "crisis", "immediate", "critical",
			"safety", "security", "legal", "police", "lawyer",
			"threat", "danger", "harm", "injury", "accident",
		},
		EscalationIndicators: []string{
			"multiple attempts", "previous contact", "unresolved",
			"policy violation", "service failure", "compensation",
			"manager", "supervisor", "higher authority",
		},
		DangerousChars: []string{"<", ">", `"`, "'", "&"},
	}
}
