// Package responder turns decisions into customer-facing text. The decision
// engine never embeds prose; it asks a Generator, and the default generator
// is a template registry keyed by category and inquiry kind.
package responder

import (
	"context"

	"github.com/terminal-bench/supportdesk/internal/models"
)

// Generator produces the response body for a resolved request. External
// response services (an LLM gateway, for instance) implement this interface;
// TemplateRegistry is the built-in implementation.
type Generator interface {
	Generate(ctx context.Context, category models.Category, input string, reqCtx map[string]any) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, category models.Category, input string, reqCtx map[string]any) (string, error)

// Generate implements Generator.
func (f GeneratorFunc) Generate(ctx context.Context, category models.Category, input string, reqCtx map[string]any) (string, error) {
	return f(ctx, category, input, reqCtx)
}
