package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExtractVerification(t *testing.T) {
	t.Run("nil context yields zero values", func(t *testing.T) {
		vc := ExtractVerification(nil)
		assert.Empty(t, vc.CustomerID)
		assert.False(t, vc.AccountVerified)
		assert.Zero(t, vc.PreviousAttempts)
	})

	t.Run("extracts typed fields", func(t *testing.T) {
		vc := ExtractVerification(map[string]any{
			"customer_id":       "c1",
			"email":             "a@b.com",
			"phone":             "555",
			"account_verified":  true,
			"previous_attempts": 3,
		})
		assert.Equal(t, "c1", vc.CustomerID)
		assert.Equal(t, "a@b.com", vc.Email)
		assert.Equal(t, "555", vc.Phone)
		assert.True(t, vc.AccountVerified)
		assert.Equal(t, 3, vc.PreviousAttempts)
	})

	t.Run("accepts JSON-decoded numbers", func(t *testing.T) {
		vc := ExtractVerification(map[string]any{"previous_attempts": float64(2)})
		assert.Equal(t, 2, vc.PreviousAttempts)
	})

	t.Run("ignores mistyped fields", func(t *testing.T) {
		vc := ExtractVerification(map[string]any{
			"customer_id":      42,
			"account_verified": "yes",
		})
		assert.Empty(t, vc.CustomerID)
		assert.False(t, vc.AccountVerified)
	})
}

func TestNewEscalationCase(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC)

	t.Run("formats the composite case id", func(t *testing.T) {
		c := NewEscalationCase("cust-7", now)
		assert.Equal(t, "ESC-cust-7-20240301123045", c.CaseID)
		assert.Equal(t, CasePriorityHigh, c.Priority)
		assert.Equal(t, CaseStatusOpen, c.Status)
		assert.Equal(t, now, c.CreatedAt)
	})

	t.Run("distinct customers never collide", func(t *testing.T) {
		a := NewEscalationCase("a", now)
		b := NewEscalationCase("b", now)
		assert.NotEqual(t, a.CaseID, b.CaseID)
	})
}

func TestOutcomeTerminal(t *testing.T) {
	assert.True(t, Outcome{Status: StatusResolved}.Terminal())
	assert.True(t, Outcome{Status: StatusVerificationFailed}.Terminal())
	assert.True(t, Outcome{Status: StatusSuspiciousActivity}.Terminal())
	assert.True(t, Outcome{Status: StatusInternalFailure}.Terminal())
	assert.False(t, Outcome{Status: StatusRateLimited}.Terminal())
	assert.False(t, Outcome{Status: StatusInvalidInput}.Terminal())
}

func TestCategoryValid(t *testing.T) {
	assert.True(t, CategoryBilling.Valid())
	assert.True(t, CategoryGeneral.Valid())
	assert.False(t, Category("bogus").Valid())
	assert.False(t, Category("").Valid())
}
