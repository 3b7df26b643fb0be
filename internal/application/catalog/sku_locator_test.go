package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/sellerbridge/backend/internal/domain/catalog"
	"github.com/sellerbridge/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockItemRepository is a mock implementation of catalog.ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindFirst(ctx context.Context, query catalog.ItemQuery) (*catalog.Item, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindByCode(ctx context.Context, code string) (*catalog.Item, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

const lookupPattern = `^(?P<item_code>[A-Z0-9]+)-(?P<variation_code>\d{2})$`

func TestNewSkuLocator(t *testing.T) {
	repo := new(MockItemRepository)

	_, err := NewSkuLocator(lookupPattern, repo, zap.NewNop())
	assert.NoError(t, err)

	_, err = NewSkuLocator(`(`, repo, zap.NewNop())
	assert.Error(t, err)

	// A pattern without known groups can never produce a query
	_, err = NewSkuLocator(`^(?P<other>.+)$`, repo, zap.NewNop())
	assert.Error(t, err)
}

func TestSkuLocator_Locate(t *testing.T) {
	repo := new(MockItemRepository)
	locator, err := NewSkuLocator(lookupPattern, repo, zap.NewNop())
	require.NoError(t, err)

	want := &catalog.Item{Code: "ABC123", VariationCode: "01"}
	repo.On("FindFirst", mock.Anything, catalog.ItemQuery{Code: "ABC123", VariationCode: "01"}).
		Return(want, nil)

	item, err := locator.Locate(context.Background(), "ABC123-01")
	require.NoError(t, err)
	assert.Equal(t, want, item)
	repo.AssertExpectations(t)
}

func TestSkuLocator_Locate_NoPatternMatch(t *testing.T) {
	repo := new(MockItemRepository)
	locator, err := NewSkuLocator(lookupPattern, repo, zap.NewNop())
	require.NoError(t, err)

	item, err := locator.Locate(context.Background(), "does not match")
	require.NoError(t, err)
	assert.Nil(t, item)
	repo.AssertNotCalled(t, "FindFirst", mock.Anything, mock.Anything)
}

func TestSkuLocator_Locate_NotFoundIsNotAnError(t *testing.T) {
	repo := new(MockItemRepository)
	locator, err := NewSkuLocator(lookupPattern, repo, zap.NewNop())
	require.NoError(t, err)

	repo.On("FindFirst", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

	item, err := locator.Locate(context.Background(), "ZZZ999-07")
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestSkuLocator_Locate_RepositoryFailurePropagates(t *testing.T) {
	repo := new(MockItemRepository)
	locator, err := NewSkuLocator(lookupPattern, repo, zap.NewNop())
	require.NoError(t, err)

	dbErr := errors.New("connection refused")
	repo.On("FindFirst", mock.Anything, mock.Anything).Return(nil, dbErr)

	item, err := locator.Locate(context.Background(), "ABC123-01")
	assert.Nil(t, item)
	assert.ErrorIs(t, err, dbErr)
}

func TestSkuLocator_Locate_OptionalGroups(t *testing.T) {
	repo := new(MockItemRepository)
	// variation part optional
	locator, err := NewSkuLocator(`^(?P<item_code>[A-Z0-9]+)(?:-(?P<variation_code>\d{2}))?$`, repo, zap.NewNop())
	require.NoError(t, err)

	want := &catalog.Item{Code: "ABC123"}
	repo.On("FindFirst", mock.Anything, catalog.ItemQuery{Code: "ABC123"}).Return(want, nil)

	item, err := locator.Locate(context.Background(), "ABC123")
	require.NoError(t, err)
	assert.Equal(t, want, item)
}
