package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/woodnest/woodnest-backend/internal/app/model"
	"github.com/woodnest/woodnest-backend/internal/app/repository"
	"github.com/woodnest/woodnest-backend/internal/db"
	"gorm.io/gorm"
)

// seedCatalog inserts one product with two variants and returns it with
// relations loaded.
func seedCatalog(t *testing.T, testDB *gorm.DB) *model.Product {
	require.NoError(t, testDB.Create(&model.Category{Name: "Sofas"}).Error)
	require.NoError(t, testDB.Create(&model.PolishColor{Name: "Walnut", HexCode: "#5D432C"}).Error)

	product := &model.Product{Name: "Oslo Sofa", CategoryID: 1}
	require.NoError(t, testDB.Create(product).Error)

	dims := []model.Dimension{
		{ProductID: product.ID, Name: "Two Seater", Price: 1000},
		{ProductID: product.ID, Name: "Corner", Price: 2500},
	}
	require.NoError(t, testDB.Create(&dims).Error)

	variants := []model.Variant{
		{ProductID: product.ID, DimensionID: dims[0].ID, PolishColorID: 1, StockQuantity: 5},
		{ProductID: product.ID, DimensionID: dims[1].ID, PolishColorID: 1, StockQuantity: 2},
	}
	require.NoError(t, testDB.Create(&variants).Error)

	var loaded model.Product
	require.NoError(t, testDB.Preload("Variants").Preload("Variants.Dimension").First(&loaded, product.ID).Error)
	return &loaded
}

func setupCartServiceTest(t *testing.T) (CartService, *model.Product, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	product := seedCatalog(t, testDB)

	cartService := NewCartService(
		repository.NewCartRepository(testDB),
		repository.NewProductRepository(testDB),
		repository.NewDiscountRepository(testDB),
	)
	return cartService, product, testDB
}

func TestCartService_AddItem(t *testing.T) {
	cartService, product, _ := setupCartServiceTest(t)
	variant := product.Variants[0]

	item, err := cartService.AddItem(1, product.ID, variant.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)

	// Adding the same variant merges quantities.
	merged, err := cartService.AddItem(1, product.ID, variant.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, item.ID, merged.ID)
	assert.Equal(t, 3, merged.Quantity)

	items, err := cartService.GetCart(1)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCartService_AddItem_Checks(t *testing.T) {
	cartService, product, _ := setupCartServiceTest(t)
	variant := product.Variants[1] // stock 2

	_, err := cartService.AddItem(1, product.ID, variant.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = cartService.AddItem(1, product.ID, 9999, 1)
	assert.ErrorIs(t, err, ErrVariantNotFound)

	_, err = cartService.AddItem(1, 9999, variant.ID, 1)
	assert.ErrorIs(t, err, ErrVariantMismatch)

	_, err = cartService.AddItem(1, product.ID, variant.ID, 3)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// Merging past the stock level is refused too.
	_, err = cartService.AddItem(1, product.ID, variant.ID, 2)
	require.NoError(t, err)
	_, err = cartService.AddItem(1, product.ID, variant.ID, 1)
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestCartService_GetCart_Pricing(t *testing.T) {
	cartService, product, testDB := setupCartServiceTest(t)

	// 10% off everything.
	start, end := activeWindow()
	discount := &model.Discount{
		Name:         "Spring Sale",
		DiscountType: model.DiscountTypePercent,
		Scope:        model.ScopeAllItems,
		StartDate:    start,
		EndDate:      end,
		IsActive:     true,
	}
	require.NoError(t, testDB.Create(discount).Error)
	require.NoError(t, testDB.Create(&model.DiscountAllItems{DiscountID: discount.ID, DiscountValue: 10}).Error)

	_, err := cartService.AddItem(1, product.ID, product.Variants[0].ID, 2)
	require.NoError(t, err)

	items, err := cartService.GetCart(1)
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, 1000.0, items[0].UnitPrice)
	assert.Equal(t, 100.0, items[0].UnitDiscount)
	assert.Equal(t, 1800.0, items[0].LineTotal)
}

func TestCartService_UpdateAndRemove(t *testing.T) {
	cartService, product, _ := setupCartServiceTest(t)

	item, err := cartService.AddItem(1, product.ID, product.Variants[0].ID, 1)
	require.NoError(t, err)

	updated, err := cartService.UpdateQuantity(1, item.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity)

	_, err = cartService.UpdateQuantity(1, item.ID, 99)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// Another user cannot touch the line.
	_, err = cartService.UpdateQuantity(2, item.ID, 1)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
	assert.ErrorIs(t, cartService.RemoveItem(2, item.ID), ErrCartItemNotFound)

	require.NoError(t, cartService.RemoveItem(1, item.ID))
	items, err := cartService.GetCart(1)
	require.NoError(t, err)
	assert.Empty(t, items)
}
