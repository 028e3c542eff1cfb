// Package recipe implements the recipe screen: ingredient selection,
// filter facets, recipe search and per-recipe nutrition lookups.
package recipe

import (
	"context"
	"sync"

	"github.com/alexmuntean1/freshfridge/internal/domain"
	"github.com/alexmuntean1/freshfridge/internal/logger"
)

// State is the browser's position in the query cycle.
type State int

const (
	// StateIdle: nothing selected, no results.
	StateIdle State = iota
	// StateSelecting: the user is toggling ingredients or facets.
	StateSelecting
	// StateFetching: a search is outstanding.
	StateFetching
	// StateResults: the last search finished (possibly with no hits).
	StateResults
)

// String returns a human-readable state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSelecting:
		return "selecting"
	case StateFetching:
		return "fetching"
	case StateResults:
		return "results"
	default:
		return "unknown"
	}
}

// Browser holds the state of one recipe screen. It is safe for concurrent
// use; network calls run without holding the lock.
//
// Overlapping fetches are not ordered: whichever response resolves last
// replaces the results.
type Browser struct {
	reader   domain.IngredientReader
	searcher domain.RecipeSearcher
	analyzer domain.NutritionAnalyzer
	reporter domain.ErrorReporter
	log      *logger.Logger

	mu          sync.RWMutex
	state       State
	ingredients []domain.Ingredient
	selected    []domain.Ingredient
	filters     domain.Filters
	results     []domain.RecipeHit
	nutrition   map[string]*domain.Nutrition
	fetches     int
}

// NewBrowser creates a browser reading the pantry through reader. Call
// Mount before use.
func NewBrowser(reader domain.IngredientReader, searcher domain.RecipeSearcher, analyzer domain.NutritionAnalyzer, reporter domain.ErrorReporter, log *logger.Logger) *Browser {
	return &Browser{
		reader:    reader,
		searcher:  searcher,
		analyzer:  analyzer,
		reporter:  reporter,
		log:       log,
		nutrition: make(map[string]*domain.Nutrition),
	}
}

// Mount resets the screen and reads the pantry once. The ingredient list
// is not refreshed until the next Mount.
func (b *Browser) Mount() {
	items := b.reader.Items()

	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = StateIdle
	b.ingredients = items
	b.selected = nil
	b.filters = domain.Filters{}
	b.results = nil
	b.nutrition = make(map[string]*domain.Nutrition)
	b.log.Debug("recipes: mounted with %d ingredient(s)", len(items))
}

// Ingredients returns the pantry as read at mount.
func (b *Browser) Ingredients() []domain.Ingredient {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]domain.Ingredient, len(b.ingredients))
	copy(out, b.ingredients)
	return out
}

// Toggle adds ing to the selection, or removes it when an equal value is
// already selected.
func (b *Browser) Toggle(ing domain.Ingredient) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.toggleLocked(ing)
}

// ToggleAt toggles the ingredient at index. Out-of-range indices are
// ignored and ToggleAt returns false.
func (b *Browser) ToggleAt(index int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if index < 0 || index >= len(b.ingredients) {
		return false
	}
	b.toggleLocked(b.ingredients[index])
	return true
}

func (b *Browser) toggleLocked(ing domain.Ingredient) {
	kept := b.selected[:0:0]
	removed := false
	for _, s := range b.selected {
		if s.Equal(ing) {
			removed = true
			continue
		}
		kept = append(kept, s)
	}
	if !removed {
		kept = append(kept, ing)
	}
	b.selected = kept
	b.touchLocked()
}

// IsSelected reports whether a value equal to ing is selected.
func (b *Browser) IsSelected(ing domain.Ingredient) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, s := range b.selected {
		if s.Equal(ing) {
			return true
		}
	}
	return false
}

// Selected returns the selection in toggle order.
func (b *Browser) Selected() []domain.Ingredient {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]domain.Ingredient, len(b.selected))
	copy(out, b.selected)
	return out
}

// SetFilter sets one facet. Unknown values return domain.ErrInvalidFilter
// and change nothing.
func (b *Browser) SetFilter(f domain.Facet, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	next, err := b.filters.With(f, value)
	if err != nil {
		return err
	}
	b.filters = next
	b.touchLocked()
	return nil
}

// SetFilters replaces all four facets at once.
func (b *Browser) SetFilters(fs domain.Filters) error {
	if err := fs.Validate(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.filters = fs
	b.touchLocked()
	return nil
}

// Filters returns the current facet selection.
func (b *Browser) Filters() domain.Filters {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.filters
}

// touchLocked moves an idle or finished browser back to selecting.
func (b *Browser) touchLocked() {
	if b.state != StateFetching {
		b.state = StateSelecting
	}
}

// Query builds the search for the current selection and facets.
func (b *Browser) Query() domain.SearchQuery {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.queryLocked()
}

func (b *Browser) queryLocked() domain.SearchQuery {
	names := make([]string, len(b.selected))
	for i, s := range b.selected {
		names[i] = s.Name
	}
	return domain.SearchQuery{Ingredients: names, Filters: b.filters}
}

// Fetch runs one search and replaces the results with its hits. A failed
// search is reported, leaves the results empty and is not returned.
func (b *Browser) Fetch(ctx context.Context) []domain.RecipeHit {
	b.mu.Lock()
	q := b.queryLocked()
	b.state = StateFetching
	b.fetches++
	n := b.fetches
	b.mu.Unlock()

	b.log.Debug("recipes: fetch #%d for %v", n, q.Ingredients)
	hits, err := b.searcher.Search(ctx, q)

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.reporter.Report(ctx, "recipe search", err)
		hits = nil
	}
	if hits == nil {
		hits = []domain.RecipeHit{}
	}
	b.results = hits
	b.state = StateResults
	b.log.Info("recipes: fetch #%d returned %d recipe(s)", n, len(hits))
	return b.resultsLocked()
}

// Results returns the hits of the last finished search.
func (b *Browser) Results() []domain.RecipeHit {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.resultsLocked()
}

func (b *Browser) resultsLocked() []domain.RecipeHit {
	out := make([]domain.RecipeHit, len(b.results))
	copy(out, b.results)
	return out
}

// Recipe finds a recipe in the current results by URI.
func (b *Browser) Recipe(uri string) (domain.Recipe, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, h := range b.results {
		if h.Recipe.URI == uri {
			return h.Recipe, true
		}
	}
	return domain.Recipe{}, false
}

// State returns the current state.
func (b *Browser) State() State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}
