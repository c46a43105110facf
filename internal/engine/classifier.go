package engine

import (
	"strings"

	"github.com/terminal-bench/supportdesk/internal/config"
	"github.com/terminal-bench/supportdesk/internal/models"
)

// Classifier scores input text against the per-category keyword lists and
// picks exactly one category. Classification reads nothing but the text, so
// identical input always yields the identical result.
type Classifier struct {
	billing    []string
	technical  []string
	escalation []string
}

// NewClassifier builds a classifier from the configured keyword lists.
func NewClassifier(kw config.Keywords) *Classifier {
	return &Classifier{
		billing:    kw.Billing,
		technical:  kw.Technical,
		escalation: kw.Escalation,
	}
}

// Classify lower-cases the text once, counts how many keywords of each list
// occur as substrings (each keyword at most once), and applies the routing
// precedence:
//
//  1. any escalation keyword wins, regardless of the other scores
//  2. billing beats technical only on a strictly greater score
//  3. any technical keyword
//  4. otherwise general
func (c *Classifier) Classify(text string) models.ClassificationResult {
	lower := strings.ToLower(text)

	scores := map[models.Category]int{
		models.CategoryBilling:    countMatches(lower, c.billing),
		models.CategoryTechnical:  countMatches(lower, c.technical),
		models.CategoryEscalation: countMatches(lower, c.escalation),
	}

	var category models.Category
	switch {
	case scores[models.CategoryEscalation] > 0:
		category = models.CategoryEscalation
	case scores[models.CategoryBilling] > scores[models.CategoryTechnical]:
		category = models.CategoryBilling
	case scores[models.CategoryTechnical] > 0:
		category = models.CategoryTechnical
	default:
		category = models.CategoryGeneral
	}

	return models.ClassificationResult{Category: category, Scores: scores}
}

// countMatches counts keywords contained in lower, one point per keyword.
func countMatches(lower string, keywords []string) int {
	score := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			score++
		}
	}
	return score
}

// matchKeyword returns the first keyword contained in the text, lower-casing
// the input itself. Shared by the gate and escalation rule evaluation.
func matchKeyword(text string, keywords []string) (string, bool) {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return kw, true
		}
	}
	return "", false
}
