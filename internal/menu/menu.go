// Package menu defines the café catalog: categories of orderable items.
//
// The catalog is static data at runtime. It is seeded from the built-in
// default or loaded from a YAML file, and the only mutation is an admin
// item edit which lives in memory for the life of the process. Catalog
// edits are deliberately not written to durable storage; cart and order
// state are the only persisted keys.
package menu

import (
	"fmt"
)

// Item is a single orderable menu entry.
// Identity is ID, unique across the whole catalog.
type Item struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Price       float64 `json:"price" yaml:"price"`
	Description string  `json:"description" yaml:"description"`
	Image       string  `json:"image" yaml:"image"`
	Available   bool    `json:"available" yaml:"available"`
}

// Category groups items for display.
type Category struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Items []Item `json:"items" yaml:"items"`
}

// Catalog is the full menu: an ordered sequence of categories.
type Catalog []Category

// Validate checks that an item is well-formed: non-empty id and name,
// positive price.
func Validate(item Item) error {
	if item.ID == "" {
		return fmt.Errorf("menu item id is required")
	}
	if item.Name == "" {
		return fmt.Errorf("menu item name is required")
	}
	if item.Price <= 0 {
		return fmt.Errorf("menu item price must be greater than 0")
	}
	return nil
}

// Validate checks every item in the catalog and that item ids are unique
// across all categories.
func (c Catalog) Validate() error {
	seen := make(map[string]string) // item id -> category id
	for _, cat := range c {
		if cat.ID == "" {
			return fmt.Errorf("category %q: id is required", cat.Name)
		}
		for _, item := range cat.Items {
			if err := Validate(item); err != nil {
				return fmt.Errorf("category %q: %w", cat.ID, err)
			}
			if prev, ok := seen[item.ID]; ok {
				return fmt.Errorf("duplicate item id %q in categories %q and %q", item.ID, prev, cat.ID)
			}
			seen[item.ID] = cat.ID
		}
	}
	return nil
}

// Find returns the item with the given id, searching all categories.
func (c Catalog) Find(itemID string) (Item, bool) {
	for _, cat := range c {
		for _, item := range cat.Items {
			if item.ID == itemID {
				return item, true
			}
		}
	}
	return Item{}, false
}

// UpdateItem replaces the item matching updated.ID inside the category
// matching categoryID. Returns false if either id is not found; the
// catalog is unchanged in that case.
func (c Catalog) UpdateItem(categoryID string, updated Item) bool {
	for ci := range c {
		if c[ci].ID != categoryID {
			continue
		}
		for ii := range c[ci].Items {
			if c[ci].Items[ii].ID == updated.ID {
				c[ci].Items[ii] = updated
				return true
			}
		}
		return false
	}
	return false
}

// Clone returns a deep copy of the catalog so callers can mutate their
// copy without aliasing the default seed data.
func (c Catalog) Clone() Catalog {
	out := make(Catalog, len(c))
	for i, cat := range c {
		items := make([]Item, len(cat.Items))
		copy(items, cat.Items)
		out[i] = Category{ID: cat.ID, Name: cat.Name, Items: items}
	}
	return out
}
