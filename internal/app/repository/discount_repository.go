package repository

import (
	"time"

	"github.com/woodnest/woodnest-backend/internal/app/model"
	"github.com/woodnest/woodnest-backend/pkg/logger"
	"gorm.io/gorm"
)

type DiscountRepository interface {
	Create(discount *model.Discount) error
	FindAll() ([]model.Discount, error)
	FindByID(id uint) (*model.Discount, error)
	Update(discount *model.Discount) error
	Delete(id uint) error
	SetActive(id uint, active bool) error

	// Exactly one scope table holds rows for a discount; edits clear all
	// four and repopulate the one matching the new scope.
	ClearScopeRows(discountID uint) error
	CreateAllItems(row *model.DiscountAllItems) error
	CreateCategories(rows []model.DiscountCategory) error
	CreateProducts(rows []model.DiscountProduct) error
	CreateCoupon(row *model.DiscountCoupon) error

	FindByCouponCode(code string) (*model.Discount, error)
	IncrementCouponUsage(discountID uint) (bool, error)
	DeactivateExpired(before time.Time) (int64, error)
}

type discountRepository struct {
	db *gorm.DB
}

func NewDiscountRepository(db *gorm.DB) DiscountRepository {
	return &discountRepository{db: db}
}

func (r *discountRepository) withChildren() *gorm.DB {
	return r.db.Model(&model.Discount{}).
		Preload("AllItems").
		Preload("Categories").
		Preload("Products").
		Preload("Coupon")
}

func (r *discountRepository) Create(discount *model.Discount) error {
	logger.Debug("Creating discount", map[string]interface{}{
		"name":          discount.Name,
		"discount_type": discount.DiscountType,
		"scope":         discount.Scope,
	})

	if err := r.db.Omit("AllItems", "Categories", "Products", "Coupon").Create(discount).Error; err != nil {
		logger.Error("Failed to create discount", err, map[string]interface{}{
			"name": discount.Name,
		})
		return err
	}

	logger.Debug("Discount created", map[string]interface{}{
		"discount_id": discount.ID,
	})
	return nil
}

func (r *discountRepository) FindAll() ([]model.Discount, error) {
	var discounts []model.Discount
	if err := r.withChildren().Order("created_at DESC").Find(&discounts).Error; err != nil {
		logger.Error("Failed to find discounts", err)
		return nil, err
	}
	return discounts, nil
}

func (r *discountRepository) FindByID(id uint) (*model.Discount, error) {
	var discount model.Discount
	if err := r.withChildren().First(&discount, id).Error; err != nil {
		logger.Error("Failed to find discount by ID", err, map[string]interface{}{
			"discount_id": id,
		})
		return nil, err
	}
	return &discount, nil
}

func (r *discountRepository) Update(discount *model.Discount) error {
	logger.Debug("Updating discount", map[string]interface{}{
		"discount_id": discount.ID,
	})

	if err := r.db.Omit("AllItems", "Categories", "Products", "Coupon").Save(discount).Error; err != nil {
		logger.Error("Failed to update discount", err, map[string]interface{}{
			"discount_id": discount.ID,
		})
		return err
	}
	return nil
}

func (r *discountRepository) Delete(id uint) error {
	logger.Debug("Deleting discount", map[string]interface{}{
		"discount_id": id,
	})

	if err := r.ClearScopeRows(id); err != nil {
		return err
	}
	if err := r.db.Delete(&model.Discount{}, id).Error; err != nil {
		logger.Error("Failed to delete discount", err, map[string]interface{}{
			"discount_id": id,
		})
		return err
	}
	return nil
}

func (r *discountRepository) SetActive(id uint, active bool) error {
	logger.Debug("Toggling discount active flag", map[string]interface{}{
		"discount_id": id,
		"is_active":   active,
	})

	result := r.db.Model(&model.Discount{}).Where("id = ?", id).Update("is_active", active)
	if result.Error != nil {
		logger.Error("Failed to toggle discount active flag", result.Error, map[string]interface{}{
			"discount_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *discountRepository) ClearScopeRows(discountID uint) error {
	logger.Debug("Clearing discount scope rows", map[string]interface{}{
		"discount_id": discountID,
	})

	if err := r.db.Where("discount_id = ?", discountID).Delete(&model.DiscountAllItems{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("discount_id = ?", discountID).Delete(&model.DiscountCategory{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("discount_id = ?", discountID).Delete(&model.DiscountProduct{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("discount_id = ?", discountID).Delete(&model.DiscountCoupon{}).Error; err != nil {
		return err
	}
	return nil
}

func (r *discountRepository) CreateAllItems(row *model.DiscountAllItems) error {
	if err := r.db.Create(row).Error; err != nil {
		logger.Error("Failed to insert all-items discount row", err, map[string]interface{}{
			"discount_id": row.DiscountID,
		})
		return err
	}
	return nil
}

func (r *discountRepository) CreateCategories(rows []model.DiscountCategory) error {
	if len(rows) == 0 {
		return nil
	}
	if err := r.db.Create(&rows).Error; err != nil {
		logger.Error("Failed to insert discount category rows", err, map[string]interface{}{
			"count": len(rows),
		})
		return err
	}
	return nil
}

func (r *discountRepository) CreateProducts(rows []model.DiscountProduct) error {
	if len(rows) == 0 {
		return nil
	}
	if err := r.db.Create(&rows).Error; err != nil {
		logger.Error("Failed to insert discount product rows", err, map[string]interface{}{
			"count": len(rows),
		})
		return err
	}
	return nil
}

func (r *discountRepository) CreateCoupon(row *model.DiscountCoupon) error {
	if err := r.db.Create(row).Error; err != nil {
		logger.Error("Failed to insert discount coupon row", err, map[string]interface{}{
			"discount_id": row.DiscountID,
			"code":        row.Code,
		})
		return err
	}
	return nil
}

func (r *discountRepository) FindByCouponCode(code string) (*model.Discount, error) {
	var coupon model.DiscountCoupon
	if err := r.db.Where("code = ?", code).First(&coupon).Error; err != nil {
		return nil, err
	}
	return r.FindByID(coupon.DiscountID)
}

// IncrementCouponUsage bumps usage_count, refusing when the usage limit
// is already reached. Returns false when the limit blocked the
// redemption.
func (r *discountRepository) IncrementCouponUsage(discountID uint) (bool, error) {
	result := r.db.Model(&model.DiscountCoupon{}).
		Where("discount_id = ? AND (usage_limit IS NULL OR usage_count < usage_limit)", discountID).
		Update("usage_count", gorm.Expr("usage_count + ?", 1))
	if result.Error != nil {
		logger.Error("Failed to increment coupon usage", result.Error, map[string]interface{}{
			"discount_id": discountID,
		})
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeactivateExpired flips is_active off for every active discount whose
// end date has fully passed.
func (r *discountRepository) DeactivateExpired(before time.Time) (int64, error) {
	cutoff := time.Date(before.Year(), before.Month(), before.Day(), 0, 0, 0, 0, before.Location())

	result := r.db.Model(&model.Discount{}).
		Where("is_active = ? AND end_date < ?", true, cutoff).
		Update("is_active", false)
	if result.Error != nil {
		logger.Error("Failed to deactivate expired discounts", result.Error)
		return 0, result.Error
	}

	if result.RowsAffected > 0 {
		logger.Info("Expired discounts deactivated", map[string]interface{}{
			"count": result.RowsAffected,
		})
	}
	return result.RowsAffected, nil
}
