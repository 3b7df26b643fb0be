package persistence

import (
	"context"
	"errors"

	"github.com/sellerbridge/backend/internal/domain/catalog"
	"github.com/sellerbridge/backend/internal/domain/shared"
	"github.com/sellerbridge/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormItemRepository implements catalog.ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindFirst returns the first item matching the query
func (r *GormItemRepository) FindFirst(ctx context.Context, query catalog.ItemQuery) (*catalog.Item, error) {
	if query.IsEmpty() {
		return nil, shared.NewDomainError("INVALID_QUERY", "Item query cannot be empty")
	}

	q := r.db.WithContext(ctx).Model(&models.ItemModel{})
	if query.Code != "" {
		q = q.Where("code = ?", query.Code)
	}
	if query.Name != "" {
		q = q.Where("name = ?", query.Name)
	}
	if query.VariationCode != "" {
		q = q.Where("variation_code = ?", query.VariationCode)
	}
	if query.ProductCode != "" {
		q = q.Where("product_code = ?", query.ProductCode)
	}

	var model models.ItemModel
	if err := q.Order("code ASC").First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode returns the item with the given merchant SKU
func (r *GormItemRepository) FindByCode(ctx context.Context, code string) (*catalog.Item, error) {
	var model models.ItemModel
	if err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}
