package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/sellerbridge/backend/internal/domain/catalog"
)

// ItemModel is the persistence model for the catalog Item entity.
type ItemModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	Code          string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_items_code_variation"`
	Name          string    `gorm:"type:varchar(255);not null;index:idx_items_name"`
	VariationCode string    `gorm:"type:varchar(100);uniqueIndex:idx_items_code_variation"`
	ProductCode   string    `gorm:"type:varchar(100);index:idx_items_product_code"`
	Price         string    `gorm:"type:varchar(20)"`
	Quantity      int64     `gorm:"not null;default:0"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ItemModel) TableName() string {
	return "items"
}

// ToDomain converts the persistence model to a domain Item entity.
func (m *ItemModel) ToDomain() *catalog.Item {
	return &catalog.Item{
		ID:            m.ID,
		Code:          m.Code,
		Name:          m.Name,
		VariationCode: m.VariationCode,
		ProductCode:   m.ProductCode,
		Price:         m.Price,
		Quantity:      m.Quantity,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Item entity.
func (m *ItemModel) FromDomain(item *catalog.Item) {
	m.ID = item.ID
	m.Code = item.Code
	m.Name = item.Name
	m.VariationCode = item.VariationCode
	m.ProductCode = item.ProductCode
	m.Price = item.Price
	m.Quantity = item.Quantity
	m.CreatedAt = item.CreatedAt
	m.UpdatedAt = item.UpdatedAt
}
