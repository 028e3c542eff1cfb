// Package domain defines the core types and interfaces for FreshFridge.
// All other packages depend on domain; domain depends on nothing.
package domain

// GroceryItem is one entry of a pantry or grocery list. Entries are unique
// only by position: two items may share a name.
//
// Quantity is nil for entries created by a recipe merge. Entries added by
// hand always carry a positive quantity.
type GroceryItem struct {
	Name     string `json:"name"`
	Quantity *int   `json:"quantity,omitempty"`
}

// Ingredient is a pantry entry as seen by the recipe screen.
type Ingredient = GroceryItem

// NewGroceryItem returns an item with the given quantity.
func NewGroceryItem(name string, quantity int) GroceryItem {
	q := quantity
	return GroceryItem{Name: name, Quantity: &q}
}

// HasQuantity reports whether the item carries a quantity.
func (g GroceryItem) HasQuantity() bool { return g.Quantity != nil }

// Equal compares two items by value. Quantities match when both are
// absent or both point at the same number.
func (g GroceryItem) Equal(other GroceryItem) bool {
	if g.Name != other.Name {
		return false
	}
	switch {
	case g.Quantity == nil && other.Quantity == nil:
		return true
	case g.Quantity == nil || other.Quantity == nil:
		return false
	default:
		return *g.Quantity == *other.Quantity
	}
}

// Storage keys used by the session store.
const (
	KeyIngredients  = "ingredients"
	KeyGroceryItems = "groceryItems"
)
