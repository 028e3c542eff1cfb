package recipe

import (
	"context"

	"github.com/alexmuntean1/freshfridge/internal/domain"
)

// LookupNutrition fetches nutrition for recipe and stores it under the
// recipe URI, replacing any earlier entry for that URI. On failure the
// error is reported, nothing is stored and ok is false.
func (b *Browser) LookupNutrition(ctx context.Context, recipe domain.Recipe) (*domain.Nutrition, bool) {
	b.log.Debug("recipes: nutrition for %q", recipe.Label)

	n, err := b.analyzer.Analyze(ctx, recipe.Lines())
	if err != nil {
		b.reporter.Report(ctx, "nutrition lookup", err)
		return nil, false
	}
	if n == nil {
		return nil, false
	}

	b.mu.Lock()
	b.nutrition[recipe.URI] = n
	b.mu.Unlock()
	return n, true
}

// Nutrition returns the stored nutrition for uri.
func (b *Browser) Nutrition(uri string) (*domain.Nutrition, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	n, ok := b.nutrition[uri]
	return n, ok
}

// NutritionAll returns a copy of every stored entry keyed by URI.
func (b *Browser) NutritionAll() map[string]*domain.Nutrition {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make(map[string]*domain.Nutrition, len(b.nutrition))
	for k, v := range b.nutrition {
		out[k] = v
	}
	return out
}
