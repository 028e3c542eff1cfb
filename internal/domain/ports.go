package domain

import "context"

// SessionStorage is session-scoped key/value storage. Values are raw
// bytes; callers encode lists as JSON arrays and always write whole values.
type SessionStorage interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Remove(key string)
}

// IngredientReader is the read-only view of the pantry handed to the
// recipe screen.
type IngredientReader interface {
	Items() []GroceryItem
}

// RecipeSearcher runs a recipe search against the external API.
type RecipeSearcher interface {
	Search(ctx context.Context, q SearchQuery) ([]RecipeHit, error)
}

// NutritionAnalyzer fetches nutrition details for free-text ingredient lines.
type NutritionAnalyzer interface {
	Analyze(ctx context.Context, lines []string) (*Nutrition, error)
}

// ErrorReporter receives every failure the application decides to swallow.
// Changing how failures surface to the user means changing the reporter.
type ErrorReporter interface {
	Report(ctx context.Context, op string, err error)
}
