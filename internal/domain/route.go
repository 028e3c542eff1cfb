package domain

// Route addresses one of the application's screens.
type Route string

const (
	RoutePantry      Route = "/"
	RouteGroceryList Route = "/grocery-list"
	RouteRecipes     Route = "/recipes"
)

// String returns the route path.
func (r Route) String() string { return string(r) }

// Valid reports whether r is a known route.
func (r Route) Valid() bool {
	switch r {
	case RoutePantry, RouteGroceryList, RouteRecipes:
		return true
	}
	return false
}
