package domain

// Item is an immutable catalog entry.
type Item struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Catalog is the master item list, keyed by category and item id.
type Catalog map[string]map[string]Item

// Lookup resolves (category, itemID) against the catalog.
func (c Catalog) Lookup(category, itemID string) (Item, bool) {
	items, ok := c[category]
	if !ok {
		return Item{}, false
	}
	item, ok := items[itemID]
	return item, ok
}
