package catalog

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/sellerbridge/backend/internal/domain/catalog"
	"github.com/sellerbridge/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Capture group names the lookup pattern may define. Each present group
// narrows the catalog query by the field it names.
const (
	groupItemCode      = "item_code"
	groupItemName      = "item_name"
	groupVariationCode = "variation_code"
	groupProductCode   = "product_code"
)

// SkuLocator resolves marketplace SKU strings back to catalog items. The
// remote side reports problems by SKU; operators configure a pattern
// describing how their SKUs encode catalog coordinates, and the locator
// uses the captured pieces to find the item.
type SkuLocator struct {
	pattern *regexp.Regexp
	repo    catalog.ItemRepository
	logger  *zap.Logger
}

// NewSkuLocator compiles the lookup pattern and returns a locator. The
// pattern must contain at least one of the known named capture groups.
func NewSkuLocator(pattern string, repo catalog.ItemRepository, logger *zap.Logger) (*SkuLocator, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile sku lookup pattern: %w", err)
	}

	known := map[string]bool{
		groupItemCode:      true,
		groupItemName:      true,
		groupVariationCode: true,
		groupProductCode:   true,
	}
	hasKnown := false
	for _, name := range re.SubexpNames() {
		if known[name] {
			hasKnown = true
			break
		}
	}
	if !hasKnown {
		return nil, fmt.Errorf("sku lookup pattern %q has no known capture group", pattern)
	}

	return &SkuLocator{pattern: re, repo: repo, logger: logger}, nil
}

// Locate resolves a SKU to its catalog item. A SKU the pattern does not
// match, or that matches nothing in the catalog, resolves to nil without an
// error; only the repository failing is an error.
func (l *SkuLocator) Locate(ctx context.Context, sku string) (*catalog.Item, error) {
	match := l.pattern.FindStringSubmatch(sku)
	if match == nil {
		l.logger.Debug("sku does not match lookup pattern", zap.String("sku", sku))
		return nil, nil
	}

	query := catalog.ItemQuery{}
	for i, name := range l.pattern.SubexpNames() {
		if i >= len(match) || match[i] == "" {
			continue
		}
		switch name {
		case groupItemCode:
			query.Code = match[i]
		case groupItemName:
			query.Name = match[i]
		case groupVariationCode:
			query.VariationCode = match[i]
		case groupProductCode:
			query.ProductCode = match[i]
		}
	}
	if query.IsEmpty() {
		return nil, nil
	}

	item, err := l.repo.FindFirst(ctx, query)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			l.logger.Debug("no catalog item for sku", zap.String("sku", sku))
			return nil, nil
		}
		return nil, err
	}
	return item, nil
}
