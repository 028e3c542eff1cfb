package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/alexmuntean1/freshfridge/internal/domain"
	"github.com/alexmuntean1/freshfridge/internal/grocery"
	"github.com/alexmuntean1/freshfridge/internal/logger"
	"github.com/alexmuntean1/freshfridge/internal/recipe"
	"github.com/alexmuntean1/freshfridge/internal/storage"
)

// Session is one user's workspace. The pantry and grocery lists are the
// only writers of their storage keys; the recipe browser reads the pantry
// through a read-only view.
type Session struct {
	ID        string
	Pantry    *grocery.List
	Groceries *grocery.List
	Recipes   *recipe.Browser

	bucket *storage.Bucket

	mu       sync.RWMutex
	route    domain.Route
	openedAt time.Time
	log      *logger.Logger
}

// Route returns the current screen.
func (s *Session) Route() domain.Route {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.route
}

// Navigate switches screens. Entering a screen mounts it: list screens
// re-read storage and the recipe screen reloads the pantry and clears its
// selection. Navigation changes no stored data.
func (s *Session) Navigate(to domain.Route) error {
	if !to.Valid() {
		return fmt.Errorf("engine: navigate to %q: %w", to, domain.ErrNotFound)
	}

	s.mu.Lock()
	from := s.route
	s.route = to
	s.mu.Unlock()

	switch to {
	case domain.RoutePantry:
		s.Pantry.Reload()
	case domain.RouteGroceryList:
		s.Groceries.Reload()
	case domain.RouteRecipes:
		s.Recipes.Mount()
	}
	s.log.Debug("session %s: %s -> %s", s.ID, from, to)
	return nil
}

// List returns the list for a route-style name: "pantry" or "grocery".
func (s *Session) List(name string) (*grocery.List, error) {
	switch name {
	case "pantry", domain.KeyIngredients:
		return s.Pantry, nil
	case "grocery", domain.KeyGroceryItems:
		return s.Groceries, nil
	default:
		return nil, fmt.Errorf("engine: list %q: %w", name, domain.ErrUnknownList)
	}
}

// MergeMissing adds the recipe's foods that are neither in the pantry (as
// the recipe screen loaded it) nor on the grocery list, then moves to the
// grocery screen. It returns the added names.
func (s *Session) MergeMissing(r domain.Recipe) []string {
	added := s.Groceries.MergeMissing(s.Recipes.Ingredients(), r)
	s.Navigate(domain.RouteGroceryList)
	return added
}

// MergeResult merges the recipe with the given URI from the current
// results. Unknown URIs return domain.ErrNotFound.
func (s *Session) MergeResult(uri string) ([]string, error) {
	r, ok := s.Recipes.Recipe(uri)
	if !ok {
		return nil, fmt.Errorf("engine: recipe %q: %w", uri, domain.ErrNotFound)
	}
	return s.MergeMissing(r), nil
}

// LookupNutrition fetches nutrition for the result with the given URI.
func (s *Session) LookupNutrition(ctx context.Context, uri string) (*domain.Nutrition, error) {
	r, ok := s.Recipes.Recipe(uri)
	if !ok {
		return nil, fmt.Errorf("engine: recipe %q: %w", uri, domain.ErrNotFound)
	}
	n, _ := s.Recipes.LookupNutrition(ctx, r)
	return n, nil
}
