package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/woodnest/woodnest-backend/internal/app/model"
)

func draftWithMatrix(cascade bool) *ProductDraft {
	draft := NewProductDraft(cascade)
	draft.Name = "Oslo Sofa"
	draft.CategoryID = 1
	draft.ColorIDs = []uint{10, 20}
	draft.AddDimension(DimensionEntry{Name: "Two Seater", Price: 1000})
	draft.AddDimension(DimensionEntry{Name: "Three Seater", Price: 1500})
	draft.AddDimension(DimensionEntry{Name: "Corner", Price: 2500})
	draft.Variants = []VariantEntry{
		{DimensionIndex: 0, PolishColorID: 10, StockQuantity: 5},
		{DimensionIndex: 2, PolishColorID: 20, StockQuantity: 3},
	}
	return draft
}

func TestProductDraft_RemoveDimension(t *testing.T) {
	draft := draftWithMatrix(false)

	// Index 1 is unreferenced; variants pointing past it shift down.
	require.NoError(t, draft.RemoveDimension(1))
	assert.Len(t, draft.Dimensions, 2)
	assert.Equal(t, 0, draft.Variants[0].DimensionIndex)
	assert.Equal(t, 1, draft.Variants[1].DimensionIndex)
	assert.Equal(t, "Corner", draft.Dimensions[draft.Variants[1].DimensionIndex].Name)
}

func TestProductDraft_RemoveDimension_InUse(t *testing.T) {
	draft := draftWithMatrix(false)

	err := draft.RemoveDimension(0)
	assert.ErrorIs(t, err, ErrDimensionInUse)
	assert.Len(t, draft.Dimensions, 3)
}

func TestProductDraft_RemoveDimension_Last(t *testing.T) {
	draft := NewProductDraft(false)
	draft.AddDimension(DimensionEntry{Name: "Standard", Price: 100})

	assert.ErrorIs(t, draft.RemoveDimension(0), ErrLastDimension)
}

func TestProductDraft_RemoveVariant_Last(t *testing.T) {
	draft := NewProductDraft(false)
	draft.ColorIDs = []uint{10}
	draft.AddDimension(DimensionEntry{Name: "Standard", Price: 100})
	require.NoError(t, draft.AddVariant(VariantEntry{DimensionIndex: 0, PolishColorID: 10}))

	assert.ErrorIs(t, draft.RemoveVariant(0), ErrLastVariant)
	assert.Len(t, draft.Variants, 1)
}

func TestProductDraft_AddVariant_Checks(t *testing.T) {
	draft := NewProductDraft(false)
	draft.ColorIDs = []uint{10}
	draft.AddDimension(DimensionEntry{Name: "Standard", Price: 100})

	assert.ErrorIs(t, draft.AddVariant(VariantEntry{DimensionIndex: 3, PolishColorID: 10}), ErrInvalidDraft)
	assert.ErrorIs(t, draft.AddVariant(VariantEntry{DimensionIndex: 0, PolishColorID: 99}), ErrColorNotSelected)
	assert.NoError(t, draft.AddVariant(VariantEntry{DimensionIndex: 0, PolishColorID: 10}))
}

func TestProductDraft_ToggleColor_NoCascade(t *testing.T) {
	draft := draftWithMatrix(false)

	draft.ToggleColor(20)

	// The color is deselected but its variants stay put.
	assert.Equal(t, []uint{10}, draft.ColorIDs)
	assert.Len(t, draft.Variants, 2)
}

func TestProductDraft_ToggleColor_Cascade(t *testing.T) {
	draft := draftWithMatrix(true)
	require.NoError(t, draft.StageImages(20, StagedImage{Filename: "corner.jpg"}))

	draft.ToggleColor(20)

	assert.Equal(t, []uint{10}, draft.ColorIDs)
	assert.Len(t, draft.Variants, 1)
	assert.Equal(t, uint(10), draft.Variants[0].PolishColorID)
	assert.Empty(t, draft.Images[20].Staged)
}

func TestProductDraft_ToggleColor_Reselect(t *testing.T) {
	draft := draftWithMatrix(false)

	draft.ToggleColor(20)
	draft.ToggleColor(20)

	assert.ElementsMatch(t, []uint{10, 20}, draft.ColorIDs)
}

func TestProductDraft_SetPrimary_Exclusive(t *testing.T) {
	draft := draftWithMatrix(false)
	require.NoError(t, draft.StageImages(10,
		StagedImage{Filename: "front.jpg"},
		StagedImage{Filename: "side.jpg"},
	))
	draft.Images[10].Kept = []KeptImage{
		{ImageID: 1, IsPrimary: true},
		{ImageID: 2},
	}

	require.NoError(t, draft.SetPrimary(10, 1, false))

	// The staged pick clears the persisted primary.
	assert.False(t, draft.Images[10].Kept[0].IsPrimary)
	assert.False(t, draft.Images[10].Kept[1].IsPrimary)
	assert.False(t, draft.Images[10].Staged[0].IsPrimary)
	assert.True(t, draft.Images[10].Staged[1].IsPrimary)

	require.NoError(t, draft.SetPrimary(10, 0, true))
	assert.True(t, draft.Images[10].Kept[0].IsPrimary)
	assert.False(t, draft.Images[10].Staged[1].IsPrimary)
}

func TestProductDraft_StageImages_RequiresColor(t *testing.T) {
	draft := draftWithMatrix(false)

	err := draft.StageImages(99, StagedImage{Filename: "oops.jpg"})
	assert.ErrorIs(t, err, ErrColorNotSelected)
}

func TestProductDraft_Validate(t *testing.T) {
	t.Run("Valid draft", func(t *testing.T) {
		assert.NoError(t, draftWithMatrix(false).Validate())
	})

	t.Run("Name required", func(t *testing.T) {
		draft := draftWithMatrix(false)
		draft.Name = "  "
		assert.ErrorIs(t, draft.Validate(), ErrInvalidDraft)
	})

	t.Run("Category required", func(t *testing.T) {
		draft := draftWithMatrix(false)
		draft.CategoryID = 0
		assert.ErrorIs(t, draft.Validate(), ErrInvalidDraft)
	})

	t.Run("Needs at least one variant", func(t *testing.T) {
		draft := draftWithMatrix(false)
		draft.Variants = nil
		assert.ErrorIs(t, draft.Validate(), ErrInvalidDraft)
	})

	t.Run("Variant dimension reference in range", func(t *testing.T) {
		draft := draftWithMatrix(false)
		draft.Variants[0].DimensionIndex = 7
		assert.ErrorIs(t, draft.Validate(), ErrInvalidDraft)
	})

	t.Run("Unselected color allowed without cascade", func(t *testing.T) {
		draft := draftWithMatrix(false)
		draft.ToggleColor(20)
		assert.NoError(t, draft.Validate())
	})
}

func TestNewDraftFromProduct_RoundTrip(t *testing.T) {
	product := &model.Product{
		ID:         7,
		Name:       "Oslo Sofa",
		CategoryID: 1,
		Dimensions: []model.Dimension{
			{ID: 101, ProductID: 7, Name: "Two Seater", Price: 1000},
			{ID: 102, ProductID: 7, Name: "Corner", Price: 2500},
		},
		Variants: []model.Variant{
			{ID: 201, ProductID: 7, DimensionID: 102, PolishColorID: 10, StockQuantity: 4},
		},
		Colors: []model.PolishColor{{ID: 10, Name: "Walnut"}},
		Images: []model.ProductImage{
			{ID: 301, ProductID: 7, PolishColorID: 10, FileKey: "products/a.jpg", IsPrimary: true},
		},
	}

	draft := NewDraftFromProduct(product, false)

	require.Len(t, draft.Dimensions, 2)
	require.Len(t, draft.Variants, 1)
	// The variant's dimension ID is converted back into a position.
	assert.Equal(t, 1, draft.Variants[0].DimensionIndex)
	assert.Equal(t, []uint{10}, draft.ColorIDs)
	require.Contains(t, draft.Images, uint(10))
	assert.Equal(t, []KeptImage{{ImageID: 301, IsPrimary: true}}, draft.Images[10].Kept)
	assert.NoError(t, draft.Validate())
}
