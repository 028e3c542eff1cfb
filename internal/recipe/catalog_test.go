package recipe

import (
	"context"
	"testing"

	"github.com/alexmuntean1/freshfridge/internal/domain"
	"github.com/alexmuntean1/freshfridge/internal/logger"
)

func TestCatalogSearch(t *testing.T) {
	cat := NewCatalog(logger.New(logger.LevelOff, nil))
	ctx := context.Background()

	tests := []struct {
		name      string
		query     domain.SearchQuery
		wantFirst string
		wantCount int
	}{
		{"everything", domain.SearchQuery{}, "", 4},
		{"by ingredient", domain.SearchQuery{Ingredients: []string{"Garlic"}}, "", 2},
		{"best match first", domain.SearchQuery{Ingredients: []string{"milk", "egg"}}, "Pancakes", 2},
		{"with filter", domain.SearchQuery{Ingredients: []string{"milk"}, Filters: domain.Filters{Cuisine: "British"}}, "Apple Oat Bake", 1},
		{"no match", domain.SearchQuery{Ingredients: []string{"durian"}}, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits, err := cat.Search(ctx, tt.query)
			if err != nil {
				t.Fatalf("search: %v", err)
			}
			if len(hits) != tt.wantCount {
				t.Fatalf("expected %d hits, got %d", tt.wantCount, len(hits))
			}
			if tt.wantFirst != "" && hits[0].Recipe.Label != tt.wantFirst {
				t.Fatalf("expected %s first, got %s", tt.wantFirst, hits[0].Recipe.Label)
			}
		})
	}
}

func TestCatalogAnalyze(t *testing.T) {
	cat := NewCatalog(logger.New(logger.LevelOff, nil))

	n, err := cat.Analyze(context.Background(), []string{"1 cup rice", "2 tablespoons soy sauce"})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if n.Calories != 702 {
		t.Fatalf("expected 702 kcal, got %v", n.Calories)
	}
	if _, ok := n.Quantity(domain.NutrientCholesterol); ok {
		t.Fatal("expected no cholesterol entry")
	}
	if q, ok := n.Quantity(domain.NutrientSodium); !ok || q != 1800 {
		t.Fatalf("unexpected sodium %v (ok=%v)", q, ok)
	}
}
