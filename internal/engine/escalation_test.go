package engine

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terminal-bench/supportdesk/internal/config"
	"github.com/terminal-bench/supportdesk/internal/models"
)

var caseIDPattern = regexp.MustCompile(`^ESC-.+-\d{14}$`)

func TestEscalationAssess(t *testing.T) {
	m := NewEscalationManager(config.DefaultKeywords(), nil, nil)
	now := time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC)

	t.Run("urgency keyword takes the fast path", func(t *testing.T) {
		decision := m.Assess("This is an emergency, send help", models.VerificationContext{PreviousAttempts: 5}, now, false)
		assert.Equal(t, EscalationUrgent, decision.State)
		assert.Nil(t, decision.Case)
	})

	t.Run("urgency beats legitimacy when both match", func(t *testing.T) {
		decision := m.Assess("urgent: multiple attempts to reach a manager", models.VerificationContext{}, now, false)
		assert.Equal(t, EscalationUrgent, decision.State)
		assert.Nil(t, decision.Case)
	})

	t.Run("indicator keyword opens a case", func(t *testing.T) {
		decision := m.Assess("I've made multiple attempts to resolve this", models.VerificationContext{CustomerID: "cust-42"}, now, false)
		require.Equal(t, EscalationOpen, decision.State)
		require.NotNil(t, decision.Case)

		assert.Regexp(t, caseIDPattern, decision.Case.CaseID)
		assert.Equal(t, "ESC-cust-42-20240301123045", decision.Case.CaseID)
		assert.Equal(t, "cust-42", decision.Case.CustomerID)
		assert.Equal(t, models.CasePriorityHigh, decision.Case.Priority)
		assert.Equal(t, models.CaseStatusOpen, decision.Case.Status)
	})

	t.Run("repeated attempts open a case without an indicator keyword", func(t *testing.T) {
		decision := m.Assess("nobody answers my question", models.VerificationContext{CustomerID: "c1", PreviousAttempts: 2}, now, false)
		require.Equal(t, EscalationOpen, decision.State)
		require.NotNil(t, decision.Case)
	})

	t.Run("one previous attempt is not enough", func(t *testing.T) {
		decision := m.Assess("nobody answers my question", models.VerificationContext{PreviousAttempts: 1}, now, false)
		assert.Equal(t, EscalationDeclined, decision.State)
		assert.Nil(t, decision.Case)
	})

	t.Run("plain question is declined with no case", func(t *testing.T) {
		decision := m.Assess("I have a question", models.VerificationContext{}, now, false)
		assert.Equal(t, EscalationDeclined, decision.State)
		assert.Nil(t, decision.Case)
	})

	t.Run("forced urgency overrides everything", func(t *testing.T) {
		decision := m.Assess("I have a question", models.VerificationContext{}, now, true)
		assert.Equal(t, EscalationUrgent, decision.State)
	})

	t.Run("missing customer id falls back to UNKNOWN in the case id", func(t *testing.T) {
		decision := m.Assess("this is unresolved", models.VerificationContext{}, now, false)
		require.Equal(t, EscalationOpen, decision.State)
		assert.Equal(t, "ESC-UNKNOWN-20240301123045", decision.Case.CaseID)
	})
}
