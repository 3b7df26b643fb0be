package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Item is one sellable catalog entry. Code is the merchant SKU pushed to the
// marketplace; VariationCode and ProductCode group variations under their
// parent product.
type Item struct {
	ID            uuid.UUID
	Code          string
	Name          string
	VariationCode string
	ProductCode   string
	Price         string
	Quantity      int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ItemQuery narrows an item lookup. Empty fields are ignored; a lookup with
// several fields set matches items satisfying all of them.
type ItemQuery struct {
	Code          string
	Name          string
	VariationCode string
	ProductCode   string
}

// IsEmpty returns true when no field of the query is set
func (q ItemQuery) IsEmpty() bool {
	return q == ItemQuery{}
}
