package recipe

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/alexmuntean1/freshfridge/internal/domain"
	"github.com/alexmuntean1/freshfridge/internal/logger"
)

// Compile-time interface checks.
var (
	_ domain.RecipeSearcher    = (*Catalog)(nil)
	_ domain.NutritionAnalyzer = (*Catalog)(nil)
)

// entry is a catalog recipe plus the facet values it satisfies.
type entry struct {
	recipe domain.Recipe
	tags   map[string]bool
}

// Catalog serves a fixed set of recipes shaped like Edamam hits. It backs
// the -demo mode and the front-end tests. Safe for concurrent reads.
type Catalog struct {
	mu      sync.RWMutex
	entries []entry
	log     *logger.Logger
}

// NewCatalog creates a catalog preloaded with the built-in recipes.
func NewCatalog(log *logger.Logger) *Catalog {
	c := &Catalog{log: log}
	c.seed()
	return c
}

// Add appends a recipe matching the given facet values.
func (c *Catalog) Add(r domain.Recipe, tags ...string) {
	e := entry{recipe: r, tags: make(map[string]bool, len(tags))}
	for _, t := range tags {
		e.tags[t] = true
	}
	c.mu.Lock()
	c.entries = append(c.entries, e)
	c.mu.Unlock()
}

// Search returns recipes that use at least one queried ingredient (any
// recipe when none are given) and carry every set facet value. Matches are
// ordered by how many queried ingredients they use, then by label.
func (c *Catalog) Search(ctx context.Context, q domain.SearchQuery) ([]domain.RecipeHit, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	wanted := make([]string, 0, len(q.Ingredients))
	for _, name := range q.Ingredients {
		if n := strings.ToLower(strings.TrimSpace(name)); n != "" {
			wanted = append(wanted, n)
		}
	}

	type scored struct {
		hit   domain.RecipeHit
		score int
	}
	var matches []scored
	for _, e := range c.entries {
		if !e.matchesFilters(q.Filters) {
			continue
		}
		score := e.uses(wanted)
		if len(wanted) > 0 && score == 0 {
			continue
		}
		matches = append(matches, scored{domain.RecipeHit{Recipe: e.recipe}, score})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].hit.Recipe.Label < matches[j].hit.Recipe.Label
	})

	out := make([]domain.RecipeHit, len(matches))
	for i, m := range matches {
		out[i] = m.hit
	}
	c.log.Debug("catalog: %d match(es) for %v", len(out), wanted)
	return out, nil
}

func (e entry) matchesFilters(fs domain.Filters) bool {
	for _, f := range domain.Facets {
		if v := fs.Get(f); v != "" && !e.tags[v] {
			return false
		}
	}
	return true
}

func (e entry) uses(wanted []string) int {
	n := 0
	for _, w := range wanted {
		for _, ing := range e.recipe.Ingredients {
			if strings.Contains(strings.ToLower(ing.Food), w) {
				n++
				break
			}
		}
	}
	return n
}

// Analyze estimates nutrition by summing a per-food table over the lines.
// Lines mentioning no known food contribute nothing.
func (c *Catalog) Analyze(ctx context.Context, lines []string) (*domain.Nutrition, error) {
	n := &domain.Nutrition{TotalNutrients: make(map[string]domain.Nutrient)}
	add := func(code, label, unit string, q float64) {
		cur := n.TotalNutrients[code]
		cur.Label, cur.Unit = label, unit
		cur.Quantity += q
		n.TotalNutrients[code] = cur
	}

	for _, line := range lines {
		l := strings.ToLower(line)
		for food, p := range profiles {
			if !strings.Contains(l, food) {
				continue
			}
			n.Calories += p.kcal
			add(domain.NutrientCarbs, "Carbs", "g", p.carbs)
			add(domain.NutrientProtein, "Protein", "g", p.protein)
			add(domain.NutrientFat, "Fat", "g", p.fat)
			if p.cholesterol > 0 {
				add(domain.NutrientCholesterol, "Cholesterol", "mg", p.cholesterol)
			}
			if p.sodium > 0 {
				add(domain.NutrientSodium, "Sodium", "mg", p.sodium)
			}
		}
	}
	return n, nil
}

type profile struct {
	kcal, carbs, protein, fat, cholesterol, sodium float64
}

// profiles are rough per-line values for the catalog's foods.
var profiles = map[string]profile{
	"spaghetti":      {kcal: 890, carbs: 178, protein: 32, fat: 4},
	"chicken breast": {kcal: 330, protein: 62, fat: 7, cholesterol: 170, sodium: 150},
	"creme fraiche":  {kcal: 700, carbs: 6, protein: 5, fat: 74, cholesterol: 230, sodium: 70},
	"gruyere":        {kcal: 470, carbs: 0.4, protein: 34, fat: 37, cholesterol: 125, sodium: 380},
	"garlic":         {kcal: 18, carbs: 4, protein: 0.8},
	"olive oil":      {kcal: 120, fat: 14},
	"bell pepper":    {kcal: 37, carbs: 9, protein: 1.2, fat: 0.4, sodium: 5},
	"broccoli":       {kcal: 62, carbs: 12, protein: 5, fat: 0.7, sodium: 60},
	"carrot":         {kcal: 25, carbs: 6, protein: 0.6, sodium: 42},
	"soy sauce":      {kcal: 17, carbs: 1.6, protein: 2.6, sodium: 1800},
	"rice":           {kcal: 685, carbs: 150, protein: 13, fat: 1.2},
	"egg":            {kcal: 72, carbs: 0.4, protein: 6.3, fat: 4.8, cholesterol: 186, sodium: 71},
	"milk":           {kcal: 103, carbs: 12, protein: 8, fat: 2.4, cholesterol: 12, sodium: 107},
	"flour":          {kcal: 455, carbs: 95, protein: 13, fat: 1.2},
	"butter":         {kcal: 102, fat: 11.5, cholesterol: 31, sodium: 91},
	"apple":          {kcal: 95, carbs: 25, protein: 0.5, fat: 0.3},
	"oats":           {kcal: 307, carbs: 55, protein: 11, fat: 5},
	"banana":         {kcal: 105, carbs: 27, protein: 1.3, fat: 0.4},
}

// seed populates the catalog with built-in recipes.
func (c *Catalog) seed() {
	c.Add(chickenAlfredo(), "dinner", "high-protein", "Italian")
	c.Add(vegetableStirFry(), "dinner", "lunch", "vegan", "vegetarian", "low-fat", "Asian", "Chinese")
	c.Add(pancakes(), "breakfast", "vegetarian", "balanced", "American")
	c.Add(appleOatBake(), "breakfast", "snack", "vegetarian", "balanced", "British")
	c.log.Debug("catalog: seeded %d recipes", len(c.entries))
}

func ing(food, text string) domain.RecipeIngredient {
	return domain.RecipeIngredient{FoodID: "food_" + strings.ReplaceAll(food, " ", "_"), Food: food, Text: text}
}

func chickenAlfredo() domain.Recipe {
	return domain.Recipe{
		Label: "Chicken Alfredo",
		URI:   "freshfridge:recipe:chicken-alfredo",
		Ingredients: []domain.RecipeIngredient{
			ing("spaghetti", "250 grams spaghetti"),
			ing("chicken breast", "2 medium chicken breasts"),
			ing("creme fraiche", "1 cup creme fraiche"),
			ing("gruyere cheese", "1 cup grated gruyere cheese"),
			ing("garlic", "4 cloves garlic"),
			ing("olive oil", "1 tablespoon olive oil"),
			ing("salt", "salt to taste"),
		},
	}
}

func vegetableStirFry() domain.Recipe {
	return domain.Recipe{
		Label: "Vegetable Stir Fry",
		URI:   "freshfridge:recipe:vegetable-stir-fry",
		Ingredients: []domain.RecipeIngredient{
			ing("bell pepper", "1 large bell pepper"),
			ing("broccoli", "2 cups broccoli florets"),
			ing("carrot", "1 medium carrot"),
			ing("garlic", "3 cloves garlic"),
			ing("soy sauce", "2 tablespoons soy sauce"),
			ing("rice", "1 cup rice"),
		},
	}
}

func pancakes() domain.Recipe {
	return domain.Recipe{
		Label: "Pancakes",
		URI:   "freshfridge:recipe:pancakes",
		Ingredients: []domain.RecipeIngredient{
			ing("flour", "1 cup flour"),
			ing("egg", "1 egg"),
			ing("milk", "1 cup milk"),
			ing("butter", "1 tablespoon butter"),
			ing("salt", "1 pinch salt"),
		},
	}
}

func appleOatBake() domain.Recipe {
	return domain.Recipe{
		Label: "Apple Oat Bake",
		URI:   "freshfridge:recipe:apple-oat-bake",
		Ingredients: []domain.RecipeIngredient{
			ing("apple", "2 apples"),
			ing("oats", "1 cup oats"),
			ing("milk", "1 cup milk"),
			ing("banana", "1 banana"),
			ing("butter", "1 tablespoon butter"),
		},
	}
}
