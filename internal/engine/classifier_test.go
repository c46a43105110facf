package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/terminal-bench/supportdesk/internal/config"
	"github.com/terminal-bench/supportdesk/internal/models"
)

func TestClassify(t *testing.T) {
	c := NewClassifier(config.DefaultKeywords())

	t.Run("billing question routes to billing", func(t *testing.T) {
		result := c.Classify("I have a question about my payment")
		assert.Equal(t, models.CategoryBilling, result.Category)
		assert.Equal(t, 1, result.Scores[models.CategoryBilling])
		assert.Equal(t, 0, result.Scores[models.CategoryTechnical])
		assert.Equal(t, 0, result.Scores[models.CategoryEscalation])
	})

	t.Run("technical issue routes to technical", func(t *testing.T) {
		result := c.Classify("My software crashed during setup")
		assert.Equal(t, models.CategoryTechnical, result.Category)
	})

	t.Run("no keyword at all routes to general", func(t *testing.T) {
		result := c.Classify("Tell me about your company")
		assert.Equal(t, models.CategoryGeneral, result.Category)
		for _, score := range result.Scores {
			assert.Zero(t, score)
		}
	})

	t.Run("any escalation keyword wins regardless of other scores", func(t *testing.T) {
		// "refund" is both a billing and an escalation keyword; "urgent"
		// seals the escalation score.
		result := c.Classify("I want a refund, this is urgent")
		assert.Equal(t, models.CategoryEscalation, result.Category)
		assert.Greater(t, result.Scores[models.CategoryBilling], 0)
	})

	t.Run("billing must strictly beat technical", func(t *testing.T) {
		// One billing keyword, one technical keyword: the tie goes to
		// technical.
		result := c.Classify("the price after the install")
		assert.Equal(t, 1, result.Scores[models.CategoryBilling])
		assert.Equal(t, 1, result.Scores[models.CategoryTechnical])
		assert.Equal(t, models.CategoryTechnical, result.Category)
	})

	t.Run("matching is case-insensitive", func(t *testing.T) {
		result := c.Classify("PAYMENT FAILED ON MY INVOICE")
		assert.Equal(t, models.CategoryBilling, result.Category)
		assert.Equal(t, 2, result.Scores[models.CategoryBilling])
	})

	t.Run("repeated keyword counts once", func(t *testing.T) {
		result := c.Classify("payment payment payment")
		assert.Equal(t, 1, result.Scores[models.CategoryBilling])
	})

	t.Run("classification is deterministic", func(t *testing.T) {
		first := c.Classify("my bill is wrong")
		second := c.Classify("my bill is wrong")
		assert.Equal(t, first, second)
	})
}
