package storage

import (
	"encoding/json"
	"fmt"

	"github.com/alexmuntean1/freshfridge/internal/domain"
)

// LoadItems decodes the list stored under key. A missing key, an invalid
// JSON document or a JSON value that is not an array all read as an empty
// list; the returned error only describes why, it never replaces the list.
func LoadItems(s domain.SessionStorage, key string) ([]domain.GroceryItem, error) {
	raw, ok := s.Get(key)
	if !ok || len(raw) == 0 {
		return []domain.GroceryItem{}, nil
	}

	var items []domain.GroceryItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return []domain.GroceryItem{}, fmt.Errorf("storage: decode %s: %w", key, err)
	}
	if items == nil {
		items = []domain.GroceryItem{}
	}
	return items, nil
}

// SaveItems replaces the list stored under key.
func SaveItems(s domain.SessionStorage, key string, items []domain.GroceryItem) error {
	if items == nil {
		items = []domain.GroceryItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("storage: encode %s: %w", key, err)
	}
	s.Set(key, raw)
	return nil
}
