package catalog

import "context"

// ItemRepository provides catalog item lookups
type ItemRepository interface {
	// FindFirst returns the first item matching the query, or
	// shared.ErrNotFound when nothing matches
	FindFirst(ctx context.Context, query ItemQuery) (*Item, error)
	// FindByCode returns the item with the given merchant SKU
	FindByCode(ctx context.Context, code string) (*Item, error)
}
