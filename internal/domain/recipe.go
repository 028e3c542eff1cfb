package domain

// Recipe is the part of an Edamam recipe the application consumes.
// URI is the identity key.
type Recipe struct {
	Label       string             `json:"label"`
	Image       string             `json:"image"`
	URI         string             `json:"uri"`
	Ingredients []RecipeIngredient `json:"ingredients"`
}

// RecipeIngredient is one line of a recipe's ingredient list.
type RecipeIngredient struct {
	FoodID string `json:"foodId"`
	Text   string `json:"text"`
	Food   string `json:"food"`
}

// Foods returns the food names of the recipe's ingredients, in order.
func (r Recipe) Foods() []string {
	out := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		out = append(out, ing.Food)
	}
	return out
}

// Lines returns the free-text ingredient lines, the payload of a
// nutrition lookup.
func (r Recipe) Lines() []string {
	out := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		out = append(out, ing.Text)
	}
	return out
}

// RecipeHit wraps a recipe the way the search endpoint returns it.
type RecipeHit struct {
	Recipe Recipe `json:"recipe"`
}
