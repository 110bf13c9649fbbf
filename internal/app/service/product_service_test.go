package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/woodnest/woodnest-backend/internal/app/model"
	"github.com/woodnest/woodnest-backend/internal/app/repository"
	"github.com/woodnest/woodnest-backend/internal/db"
	"gorm.io/gorm"
)

type fakeStorage struct {
	objects map[string][]byte
	deleted []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (f *fakeStorage) Upload(_ context.Context, key, _ string, data []byte) (string, error) {
	f.objects[key] = data
	return "https://cdn.test/" + key, nil
}

func (f *fakeStorage) Delete(_ context.Context, keys []string) error {
	for _, key := range keys {
		delete(f.objects, key)
		f.deleted = append(f.deleted, key)
	}
	return nil
}

func setupProductServiceTest(t *testing.T) (ProductService, *fakeStorage, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	store := newFakeStorage()
	productRepo := repository.NewProductRepository(testDB)
	productService := NewProductService(productRepo, store, false, 0)

	require.NoError(t, testDB.Create(&model.Category{Name: "Sofas"}).Error)
	require.NoError(t, testDB.Create(&model.PolishColor{Name: "Walnut", HexCode: "#5D432C"}).Error)
	require.NoError(t, testDB.Create(&model.PolishColor{Name: "Ebony", HexCode: "#222222"}).Error)

	return productService, store, testDB
}

func sofaDraft(svc ProductService) *ProductDraft {
	draft := svc.NewDraft()
	draft.Name = "Oslo Sofa"
	draft.Description = "Solid oak frame"
	draft.CategoryID = 1
	draft.ColorIDs = []uint{1, 2}
	draft.AddDimension(DimensionEntry{Name: "Two Seater", Price: 1000})
	draft.AddDimension(DimensionEntry{Name: "Three Seater", Price: 2500})
	draft.Variants = []VariantEntry{
		{DimensionIndex: 0, PolishColorID: 1, StockQuantity: 5},
		{DimensionIndex: 1, PolishColorID: 2, StockQuantity: 2},
	}
	return draft
}

func TestProductService_SaveProduct_Create(t *testing.T) {
	productService, _, _ := setupProductServiceTest(t)

	product, err := productService.SaveProduct(context.Background(), sofaDraft(productService))
	require.NoError(t, err)

	assert.NotZero(t, product.ID)
	require.Len(t, product.Dimensions, 2)
	require.Len(t, product.Variants, 2)
	assert.Len(t, product.Colors, 2)

	min, max := product.PriceRange()
	assert.Equal(t, 1000.0, min)
	assert.Equal(t, 2500.0, max)
}

func TestProductService_SaveProduct_Validates(t *testing.T) {
	productService, _, _ := setupProductServiceTest(t)

	draft := sofaDraft(productService)
	draft.Variants = nil

	_, err := productService.SaveProduct(context.Background(), draft)
	assert.ErrorIs(t, err, ErrInvalidDraft)
}

func TestProductService_SaveProduct_EditRemapsVariants(t *testing.T) {
	productService, _, _ := setupProductServiceTest(t)

	product, err := productService.SaveProduct(context.Background(), sofaDraft(productService))
	require.NoError(t, err)

	draft, err := productService.DraftFor(product.ID)
	require.NoError(t, err)

	// Reshape the dimension list: drop the first entry's variant, add a
	// new dimension and point a variant at it.
	draft.Dimensions[0].Price = 1200
	draft.AddDimension(DimensionEntry{Name: "Corner", Price: 4000})
	draft.Variants = append(draft.Variants, VariantEntry{
		DimensionIndex: 2, PolishColorID: 1, StockQuantity: 1,
	})

	updated, err := productService.SaveProduct(context.Background(), draft)
	require.NoError(t, err)

	// Every variant must reference a dimension row that exists after the
	// replace, and the references must land on the intended entries.
	byID := make(map[uint]model.Dimension, len(updated.Dimensions))
	for _, d := range updated.Dimensions {
		byID[d.ID] = d
	}
	require.Len(t, updated.Variants, 3)
	for _, v := range updated.Variants {
		_, ok := byID[v.DimensionID]
		assert.True(t, ok, "variant references stale dimension %d", v.DimensionID)
	}

	names := make([]string, 0, len(updated.Variants))
	for _, v := range updated.Variants {
		names = append(names, byID[v.DimensionID].Name)
	}
	assert.ElementsMatch(t, []string{"Two Seater", "Three Seater", "Corner"}, names)
	assert.Equal(t, 1200.0, byID[updated.Variants[0].DimensionID].Price)
}

func TestProductService_SaveProduct_Images(t *testing.T) {
	productService, store, _ := setupProductServiceTest(t)

	draft := sofaDraft(productService)
	require.NoError(t, draft.StageImages(1,
		StagedImage{Filename: "front.jpg", ContentType: "image/jpeg", Data: []byte("front")},
		StagedImage{Filename: "side.jpg", ContentType: "image/jpeg", Data: []byte("side")},
	))
	require.NoError(t, draft.SetPrimary(1, 0, false))

	product, err := productService.SaveProduct(context.Background(), draft)
	require.NoError(t, err)

	require.Len(t, product.Images, 2)
	assert.Len(t, store.objects, 2)

	primaries := 0
	for _, img := range product.Images {
		assert.Equal(t, uint(1), img.PolishColorID)
		assert.Contains(t, img.URL, "https://cdn.test/products/")
		if img.IsPrimary {
			primaries++
		}
	}
	assert.Equal(t, 1, primaries)

	// Second edit: keep only the non-primary image, promote it, stage a
	// third file.
	edit, err := productService.DraftFor(product.ID)
	require.NoError(t, err)

	var keptID uint
	droppedKeyCount := len(store.deleted)
	for _, img := range product.Images {
		if !img.IsPrimary {
			keptID = img.ID
		}
	}
	edit.Images[1] = &ColorImages{
		Kept: []KeptImage{{ImageID: keptID, IsPrimary: true}},
		Staged: []StagedImage{
			{Filename: "detail.jpg", ContentType: "image/jpeg", Data: []byte("detail")},
		},
	}

	updated, err := productService.SaveProduct(context.Background(), edit)
	require.NoError(t, err)

	require.Len(t, updated.Images, 2)
	assert.Len(t, store.deleted, droppedKeyCount+1)

	primaries = 0
	for _, img := range updated.Images {
		if img.IsPrimary {
			primaries++
			assert.Equal(t, keptID, img.ID)
		}
	}
	assert.Equal(t, 1, primaries)
}

func TestProductService_DeleteProduct(t *testing.T) {
	productService, store, testDB := setupProductServiceTest(t)

	draft := sofaDraft(productService)
	require.NoError(t, draft.StageImages(1,
		StagedImage{Filename: "front.jpg", ContentType: "image/jpeg", Data: []byte("front")},
	))
	product, err := productService.SaveProduct(context.Background(), draft)
	require.NoError(t, err)

	require.NoError(t, productService.DeleteProduct(context.Background(), product.ID))

	_, err = productService.GetProductByID(product.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Empty(t, store.objects)

	var variantCount int64
	testDB.Model(&model.Variant{}).Where("product_id = ?", product.ID).Count(&variantCount)
	assert.Zero(t, variantCount)
}

func TestProductService_CheckStock(t *testing.T) {
	productService, _, _ := setupProductServiceTest(t)

	product, err := productService.SaveProduct(context.Background(), sofaDraft(productService))
	require.NoError(t, err)

	variant := product.Variants[0]
	assert.NoError(t, productService.CheckStock(variant.ID, variant.StockQuantity))
	assert.ErrorIs(t, productService.CheckStock(variant.ID, variant.StockQuantity+1), ErrInsufficientStock)
	assert.ErrorIs(t, productService.CheckStock(9999, 1), ErrVariantNotFound)
}
