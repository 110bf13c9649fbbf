package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/woodnest/woodnest-backend/internal/app/model"
	"github.com/woodnest/woodnest-backend/internal/db"
	"gorm.io/gorm"
)

func setupDiscountRepositoryTest(t *testing.T) (DiscountRepository, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	return NewDiscountRepository(testDB), testDB
}

func createDiscount(t *testing.T, repo DiscountRepository, scope model.DiscountScope, discountType model.DiscountType) *model.Discount {
	discount := &model.Discount{
		Name:         "Test Discount",
		DiscountType: discountType,
		Scope:        scope,
		StartDate:    time.Now().AddDate(0, 0, -1),
		EndDate:      time.Now().AddDate(0, 0, 7),
		IsActive:     true,
	}
	require.NoError(t, repo.Create(discount))
	return discount
}

func TestDiscountRepository_ClearScopeRows(t *testing.T) {
	repo, testDB := setupDiscountRepositoryTest(t)
	discount := createDiscount(t, repo, model.ScopeCategories, model.DiscountTypePercent)

	require.NoError(t, repo.CreateCategories([]model.DiscountCategory{
		{DiscountID: discount.ID, CategoryID: 1, DiscountValue: 10},
		{DiscountID: discount.ID, CategoryID: 2, DiscountValue: 15},
	}))

	require.NoError(t, repo.ClearScopeRows(discount.ID))
	require.NoError(t, repo.CreateAllItems(&model.DiscountAllItems{DiscountID: discount.ID, DiscountValue: 20}))

	found, err := repo.FindByID(discount.ID)
	require.NoError(t, err)
	assert.Empty(t, found.Categories)
	require.NotNil(t, found.AllItems)
	assert.Equal(t, 20.0, found.AllItems.DiscountValue)

	var categoryRows int64
	testDB.Model(&model.DiscountCategory{}).Where("discount_id = ?", discount.ID).Count(&categoryRows)
	assert.Zero(t, categoryRows)
}

func TestDiscountRepository_IncrementCouponUsage(t *testing.T) {
	repo, _ := setupDiscountRepositoryTest(t)
	discount := createDiscount(t, repo, model.ScopeCoupon, model.DiscountTypeCoupon)

	limit := 2
	require.NoError(t, repo.CreateCoupon(&model.DiscountCoupon{
		DiscountID:         discount.ID,
		Code:               "WELCOME10",
		CouponDiscountType: model.CouponValuePercent,
		DiscountValue:      10,
		UsageLimit:         &limit,
	}))

	for i := 0; i < 2; i++ {
		ok, err := repo.IncrementCouponUsage(discount.ID)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	// The limit blocks the third use without an error.
	ok, err := repo.IncrementCouponUsage(discount.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	found, err := repo.FindByCouponCode("WELCOME10")
	require.NoError(t, err)
	assert.Equal(t, 2, found.Coupon.UsageCount)
}

func TestDiscountRepository_IncrementCouponUsage_Unlimited(t *testing.T) {
	repo, _ := setupDiscountRepositoryTest(t)
	discount := createDiscount(t, repo, model.ScopeCoupon, model.DiscountTypeCoupon)

	require.NoError(t, repo.CreateCoupon(&model.DiscountCoupon{
		DiscountID:         discount.ID,
		Code:               "FOREVER",
		CouponDiscountType: model.CouponValueMoney,
		DiscountValue:      500,
	}))

	for i := 0; i < 5; i++ {
		ok, err := repo.IncrementCouponUsage(discount.ID)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestDiscountRepository_DeactivateExpired(t *testing.T) {
	repo, _ := setupDiscountRepositoryTest(t)

	stale := createDiscount(t, repo, model.ScopeAllItems, model.DiscountTypePercent)
	stale.EndDate = time.Now().AddDate(0, 0, -2)
	require.NoError(t, repo.Update(stale))

	endsToday := createDiscount(t, repo, model.ScopeAllItems, model.DiscountTypePercent)
	endsToday.EndDate = time.Now()
	require.NoError(t, repo.Update(endsToday))

	count, err := repo.DeactivateExpired(time.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	found, err := repo.FindByID(stale.ID)
	require.NoError(t, err)
	assert.False(t, found.IsActive)

	// A discount whose end date is today stays active through the day.
	found, err = repo.FindByID(endsToday.ID)
	require.NoError(t, err)
	assert.True(t, found.IsActive)
}

func TestDiscountRepository_SetActive(t *testing.T) {
	repo, _ := setupDiscountRepositoryTest(t)
	discount := createDiscount(t, repo, model.ScopeAllItems, model.DiscountTypePercent)

	require.NoError(t, repo.SetActive(discount.ID, false))

	found, err := repo.FindByID(discount.ID)
	require.NoError(t, err)
	assert.False(t, found.IsActive)

	assert.ErrorIs(t, repo.SetActive(9999, true), gorm.ErrRecordNotFound)
}
