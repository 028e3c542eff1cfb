package recipe

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/alexmuntean1/freshfridge/internal/domain"
	"github.com/alexmuntean1/freshfridge/internal/logger"
)

type staticReader []domain.GroceryItem

func (r staticReader) Items() []domain.GroceryItem {
	out := make([]domain.GroceryItem, len(r))
	copy(out, r)
	return out
}

// fakeAPI records queries and returns canned responses.
type fakeAPI struct {
	mu        sync.Mutex
	queries   []domain.SearchQuery
	hits      []domain.RecipeHit
	searchErr error
	lines     [][]string
	nutrition *domain.Nutrition
	nutErr    error
}

func (f *fakeAPI) Search(_ context.Context, q domain.SearchQuery) ([]domain.RecipeHit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	return f.hits, f.searchErr
}

func (f *fakeAPI) Analyze(_ context.Context, lines []string) (*domain.Nutrition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lines = append(f.lines, lines)
	return f.nutrition, f.nutErr
}

type mockReporter struct {
	mu  sync.Mutex
	ops []string
}

func (m *mockReporter) Report(_ context.Context, op string, _ error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, op)
}

func (m *mockReporter) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ops)
}

var pantry = staticReader{
	domain.NewGroceryItem("Apples", 3),
	domain.NewGroceryItem("Bread", 1),
	domain.NewGroceryItem("Eggs", 6),
}

func setupBrowser(t *testing.T, api *fakeAPI) (*Browser, *mockReporter) {
	t.Helper()
	rep := &mockReporter{}
	b := NewBrowser(pantry, api, api, rep, logger.New(logger.LevelOff, nil))
	b.Mount()
	return b, rep
}

func hit(label, uri string, foods ...string) domain.RecipeHit {
	r := domain.Recipe{Label: label, URI: uri}
	for _, f := range foods {
		r.Ingredients = append(r.Ingredients, domain.RecipeIngredient{Food: f, Text: "1 " + f})
	}
	return domain.RecipeHit{Recipe: r}
}

func TestMountReadsPantry(t *testing.T) {
	b, _ := setupBrowser(t, &fakeAPI{})
	if b.State() != StateIdle {
		t.Fatalf("expected idle, got %s", b.State())
	}
	if got := b.Ingredients(); len(got) != 3 || got[1].Name != "Bread" {
		t.Fatalf("unexpected ingredients %+v", got)
	}
}

func TestToggleByValue(t *testing.T) {
	b, _ := setupBrowser(t, &fakeAPI{})

	// A fresh value equal to a pantry entry selects it.
	b.Toggle(domain.NewGroceryItem("Bread", 1))
	if !b.IsSelected(pantry[1]) {
		t.Fatal("expected Bread selected by value")
	}
	if b.State() != StateSelecting {
		t.Fatalf("expected selecting, got %s", b.State())
	}

	// Toggling an equal value again removes it.
	b.ToggleAt(1)
	if b.IsSelected(pantry[1]) || len(b.Selected()) != 0 {
		t.Fatalf("expected empty selection, got %+v", b.Selected())
	}

	if b.ToggleAt(7) {
		t.Fatal("out-of-range toggle should fail")
	}
}

func TestSetFilter(t *testing.T) {
	b, _ := setupBrowser(t, &fakeAPI{})

	if err := b.SetFilter(domain.FacetDiet, "low-carb"); err != nil {
		t.Fatalf("set diet: %v", err)
	}
	if err := b.SetFilter(domain.FacetCuisine, "Martian"); !errors.Is(err, domain.ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got %v", err)
	}
	fs := b.Filters()
	if fs.Diet != "low-carb" || fs.Cuisine != "" {
		t.Fatalf("unexpected filters %+v", fs)
	}

	if err := b.SetFilters(domain.Filters{MealType: "brunch"}); err == nil {
		t.Fatal("expected invalid meal type to be rejected")
	}
	if b.Filters().Diet != "low-carb" {
		t.Fatal("rejected SetFilters changed the filters")
	}
}

func TestFetchBuildsQuery(t *testing.T) {
	api := &fakeAPI{hits: []domain.RecipeHit{hit("Toast", "u1", "bread")}}
	b, rep := setupBrowser(t, api)

	b.ToggleAt(2)
	b.ToggleAt(0)
	b.SetFilter(domain.FacetMealType, "breakfast")

	got := b.Fetch(context.Background())
	if len(got) != 1 || got[0].Recipe.URI != "u1" {
		t.Fatalf("unexpected results %+v", got)
	}
	if b.State() != StateResults {
		t.Fatalf("expected results state, got %s", b.State())
	}
	if rep.count() != 0 {
		t.Fatalf("expected no reports, got %d", rep.count())
	}

	q := api.queries[0]
	if len(q.Ingredients) != 2 || q.Ingredients[0] != "Eggs" || q.Ingredients[1] != "Apples" {
		t.Fatalf("unexpected ingredient names %v", q.Ingredients)
	}
	if q.Filters.MealType != "breakfast" || q.Filters.Diet != "" {
		t.Fatalf("unexpected filters %+v", q.Filters)
	}
}

func TestFetchEmptyHits(t *testing.T) {
	b, rep := setupBrowser(t, &fakeAPI{hits: []domain.RecipeHit{}})

	got := b.Fetch(context.Background())
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil results, got %#v", got)
	}
	if rep.count() != 0 {
		t.Fatalf("empty result should not be reported, got %d", rep.count())
	}
}

func TestFetchFailureClearsResults(t *testing.T) {
	api := &fakeAPI{hits: []domain.RecipeHit{hit("Toast", "u1", "bread")}}
	b, rep := setupBrowser(t, api)

	if len(b.Fetch(context.Background())) != 1 {
		t.Fatal("expected a first successful fetch")
	}

	api.searchErr = errors.New("network unreachable")
	got := b.Fetch(context.Background())
	if len(got) != 0 || len(b.Results()) != 0 {
		t.Fatalf("stale results kept after failure: %+v", b.Results())
	}
	if rep.count() != 1 {
		t.Fatalf("expected exactly one report, got %d", rep.count())
	}
	if b.State() != StateResults {
		t.Fatalf("expected results state, got %s", b.State())
	}
}

func TestLookupNutrition(t *testing.T) {
	api := &fakeAPI{nutrition: &domain.Nutrition{Calories: 100}}
	b, rep := setupBrowser(t, api)
	ctx := context.Background()

	r1 := hit("Toast", "u1", "bread", "butter").Recipe
	r2 := hit("Omelette", "u2", "egg").Recipe

	if _, ok := b.LookupNutrition(ctx, r1); !ok {
		t.Fatal("expected lookup to succeed")
	}
	if got := api.lines[0]; len(got) != 2 || got[0] != "1 bread" {
		t.Fatalf("expected ingredient text lines, got %v", got)
	}

	api.nutrition = &domain.Nutrition{Calories: 200}
	b.LookupNutrition(ctx, r2)

	n1, ok1 := b.Nutrition("u1")
	n2, ok2 := b.Nutrition("u2")
	if !ok1 || !ok2 || n1.Calories != 100 || n2.Calories != 200 {
		t.Fatalf("entries should coexist: %v %v", n1, n2)
	}

	// Same recipe overwrites its own entry.
	api.nutrition = &domain.Nutrition{Calories: 300}
	b.LookupNutrition(ctx, r1)
	if n, _ := b.Nutrition("u1"); n.Calories != 300 {
		t.Fatalf("expected overwrite, got %v", n.Calories)
	}

	// Failure stores nothing and keeps other entries.
	api.nutErr = errors.New("bad gateway")
	r3 := hit("Soup", "u3", "leek").Recipe
	if _, ok := b.LookupNutrition(ctx, r3); ok {
		t.Fatal("expected failed lookup")
	}
	if _, ok := b.Nutrition("u3"); ok {
		t.Fatal("failed lookup stored an entry")
	}
	if len(b.NutritionAll()) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(b.NutritionAll()))
	}
	if rep.count() != 1 {
		t.Fatalf("expected one report, got %d", rep.count())
	}
}

func TestLookupNutritionConcurrent(t *testing.T) {
	api := &fakeAPI{nutrition: &domain.Nutrition{Calories: 1}}
	b, _ := setupBrowser(t, api)

	var wg sync.WaitGroup
	for _, uri := range []string{"a", "b", "c", "d"} {
		wg.Add(1)
		go func(uri string) {
			defer wg.Done()
			b.LookupNutrition(context.Background(), domain.Recipe{URI: uri})
		}(uri)
	}
	wg.Wait()

	if len(b.NutritionAll()) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(b.NutritionAll()))
	}
}

func TestMountResets(t *testing.T) {
	api := &fakeAPI{hits: []domain.RecipeHit{hit("Toast", "u1")}, nutrition: &domain.Nutrition{}}
	b, _ := setupBrowser(t, api)

	b.ToggleAt(0)
	b.SetFilter(domain.FacetDiet, "balanced")
	b.Fetch(context.Background())
	b.LookupNutrition(context.Background(), domain.Recipe{URI: "u1"})

	b.Mount()
	if len(b.Selected()) != 0 || len(b.Results()) != 0 || len(b.NutritionAll()) != 0 {
		t.Fatal("expected mount to clear selection, results and nutrition")
	}
	if b.Filters() != (domain.Filters{}) {
		t.Fatalf("expected cleared filters, got %+v", b.Filters())
	}
	if b.State() != StateIdle {
		t.Fatalf("expected idle, got %s", b.State())
	}
}

func TestRecipeLookup(t *testing.T) {
	api := &fakeAPI{hits: []domain.RecipeHit{hit("Toast", "u1"), hit("Soup", "u2")}}
	b, _ := setupBrowser(t, api)
	b.Fetch(context.Background())

	r, ok := b.Recipe("u2")
	if !ok || r.Label != "Soup" {
		t.Fatalf("unexpected recipe %+v (ok=%v)", r, ok)
	}
	if _, ok := b.Recipe("missing"); ok {
		t.Fatal("expected missing recipe")
	}
}
