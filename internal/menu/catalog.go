package menu

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultCatalog returns the built-in menu.
// Each call returns a fresh copy; admin edits never leak into the seed.
func DefaultCatalog() Catalog {
	return defaultCatalog.Clone()
}

var defaultCatalog = Catalog{
	{
		ID:   "cat_1",
		Name: "Coffee Classics",
		Items: []Item{
			{ID: "1", Name: "Espresso", Price: 180, Description: "Rich and bold single shot.", Image: "https://images.unsplash.com/photo-1510707577719-ae7c14805e3a?w=800&q=80", Available: true},
			{ID: "2", Name: "Cappuccino", Price: 240, Description: "Espresso with steamed milk foam.", Image: "https://images.unsplash.com/photo-1572442388796-11668a67e53d?w=800&q=80", Available: true},
			{ID: "3", Name: "Latte", Price: 260, Description: "Creamy espresso with steamed milk.", Image: "https://images.unsplash.com/photo-1461023058943-07fcbe16d735?w=800&q=80", Available: true},
			{ID: "3b", Name: "Mocha", Price: 290, Description: "Espresso with chocolate and milk.", Image: "https://images.unsplash.com/photo-1578314675249-a6910f80cc4e?w=800&q=80", Available: true},
		},
	},
	{
		ID:   "cat_2",
		Name: "Specialty Brews",
		Items: []Item{
			{ID: "4", Name: "Cold Brew", Price: 280, Description: "Steeped for 24h, smooth finish.", Image: "https://images.unsplash.com/photo-1517701604599-bb29b5c73553?w=800&q=80", Available: true},
			{ID: "5", Name: "Matcha Latte", Price: 320, Description: "Premium grade matcha green tea.", Image: "https://images.unsplash.com/photo-1515823662972-da6a2e4d3002?w=800&q=80", Available: true},
		},
	},
	{
		ID:   "cat_3",
		Name: "Bakery & Snacks",
		Items: []Item{
			{ID: "6", Name: "Butter Croissant", Price: 160, Description: "Flaky, buttery, authentic french style.", Image: "https://images.unsplash.com/photo-1555507036-ab1f4038808a?w=800&q=80", Available: true},
			{ID: "7", Name: "Avocado Toast", Price: 450, Description: "Sourdough toast with fresh avocado.", Image: "https://images.unsplash.com/photo-1588137372308-15f75323ca8d?w=800&q=80", Available: true},
		},
	},
}

// catalogFile is the YAML document shape for Load.
type catalogFile struct {
	Categories []Category `yaml:"categories"`
}

// Load reads and validates a catalog from a YAML file.
//
// The file has the shape:
//
//	categories:
//	  - id: cat_1
//	    name: Coffee Classics
//	    items:
//	      - id: "1"
//	        name: Espresso
//	        price: 180
//	        available: true
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if len(file.Categories) == 0 {
		return nil, fmt.Errorf("catalog %s: no categories", path)
	}

	catalog := Catalog(file.Categories)
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return catalog, nil
}
