package grocery

import (
	"github.com/alexmuntean1/freshfridge/internal/domain"
)

// Missing returns the foods that appear in neither known nor existing,
// in recipe order and without repeats. Names compare exactly.
func Missing(foods []string, known, existing []domain.GroceryItem) []string {
	have := make(map[string]struct{}, len(known)+len(existing))
	for _, it := range known {
		have[it.Name] = struct{}{}
	}
	for _, it := range existing {
		have[it.Name] = struct{}{}
	}

	var out []string
	for _, food := range foods {
		if _, ok := have[food]; ok {
			continue
		}
		have[food] = struct{}{}
		out = append(out, food)
	}
	return out
}

// MergeMissing re-reads the list from storage, appends every recipe food
// that is neither known nor already on the list (whatever its quantity) as
// an entry without a quantity, and persists the result. It returns the
// appended names.
func (l *List) MergeMissing(known []domain.GroceryItem, recipe domain.Recipe) []string {
	l.Reload()

	l.mu.Lock()
	defer l.mu.Unlock()

	missing := Missing(recipe.Foods(), known, l.items)
	if len(missing) == 0 {
		l.log.Debug("%s: nothing missing for %q", l.key, recipe.Label)
		return nil
	}
	for _, name := range missing {
		l.items = append(l.items, domain.GroceryItem{Name: name})
	}
	l.persistLocked()
	l.log.Info("%s: merged %d missing item(s) from %q", l.key, len(missing), recipe.Label)
	return missing
}
