package domain

import "fmt"

// Facet names one of the four recipe-search narrowing dimensions.
type Facet int

const (
	FacetDiet Facet = iota
	FacetMealType
	FacetHealth
	FacetCuisine
)

// Facets lists every facet in display order.
var Facets = []Facet{FacetDiet, FacetMealType, FacetHealth, FacetCuisine}

// String returns the facet's display name.
func (f Facet) String() string {
	switch f {
	case FacetDiet:
		return "diet"
	case FacetMealType:
		return "meal type"
	case FacetHealth:
		return "health label"
	case FacetCuisine:
		return "cuisine type"
	default:
		return "unknown"
	}
}

// Param returns the search query parameter carrying the facet.
func (f Facet) Param() string {
	switch f {
	case FacetDiet:
		return "diet"
	case FacetMealType:
		return "mealType"
	case FacetHealth:
		return "health"
	case FacetCuisine:
		return "cuisineType"
	default:
		return ""
	}
}

// Options returns the allowed values of the facet. The empty value
// (no filter) is always allowed and is not part of the list.
func (f Facet) Options() []string {
	switch f {
	case FacetDiet:
		return DietOptions
	case FacetMealType:
		return MealTypeOptions
	case FacetHealth:
		return HealthOptions
	case FacetCuisine:
		return CuisineOptions
	default:
		return nil
	}
}

// Allows reports whether value is empty or one of the facet's options.
func (f Facet) Allows(value string) bool {
	if value == "" {
		return true
	}
	for _, o := range f.Options() {
		if o == value {
			return true
		}
	}
	return false
}

var DietOptions = []string{"balanced", "high-protein", "low-fat", "low-carb"}

var MealTypeOptions = []string{"breakfast", "lunch", "dinner", "snack"}

var HealthOptions = []string{
	"alcohol-cocktail", "alcohol-free", "celery-free", "crustacean-free", "dairy-free",
	"DASH", "egg-free", "fish-free", "fodmap-free", "gluten-free", "immuno-supportive",
	"keto-friendly", "kidney-friendly", "kosher", "low-fat-abs", "low-potassium",
	"low-sugar", "lupine-free", "Mediterranean", "mollusk-free", "mustard-free",
	"no-oil-added", "paleo", "peanut-free", "pescatarian", "pork-free", "red-meat-free",
	"sesame-free", "shellfish-free", "soy-free", "sugar-conscious", "sulfite-free",
	"tree-nut-free", "vegan", "vegetarian", "wheat-free",
}

var CuisineOptions = []string{
	"American", "Asian", "British", "Caribbean", "Central Europe", "Chinese",
	"Eastern Europe", "French", "Indian", "Italian", "Japanese", "Kosher",
	"Mediterranean", "Mexican", "Middle Eastern", "Nordic", "South American",
	"South East Asian",
}

// Filters is the user's facet selection. Empty fields mean "no filter";
// set fields are combined with AND.
type Filters struct {
	Diet     string `json:"diet"`
	MealType string `json:"mealType"`
	Health   string `json:"health"`
	Cuisine  string `json:"cuisineType"`
}

// Get returns the value of facet f.
func (fs Filters) Get(f Facet) string {
	switch f {
	case FacetDiet:
		return fs.Diet
	case FacetMealType:
		return fs.MealType
	case FacetHealth:
		return fs.Health
	case FacetCuisine:
		return fs.Cuisine
	default:
		return ""
	}
}

// With returns a copy of fs with facet f set to value. Values outside the
// facet's options yield ErrInvalidFilter and leave fs untouched.
func (fs Filters) With(f Facet, value string) (Filters, error) {
	if !f.Allows(value) {
		return fs, fmt.Errorf("%s %q: %w", f, value, ErrInvalidFilter)
	}
	switch f {
	case FacetDiet:
		fs.Diet = value
	case FacetMealType:
		fs.MealType = value
	case FacetHealth:
		fs.Health = value
	case FacetCuisine:
		fs.Cuisine = value
	default:
		return fs, fmt.Errorf("facet %d: %w", f, ErrInvalidFilter)
	}
	return fs, nil
}

// Validate checks every facet value.
func (fs Filters) Validate() error {
	for _, f := range Facets {
		if !f.Allows(fs.Get(f)) {
			return fmt.Errorf("%s %q: %w", f, fs.Get(f), ErrInvalidFilter)
		}
	}
	return nil
}

// SearchQuery is everything a recipe search needs.
type SearchQuery struct {
	Ingredients []string
	Filters     Filters
}
