package repository

import (
	"github.com/woodnest/woodnest-backend/internal/app/model"
	"github.com/woodnest/woodnest-backend/pkg/logger"
	"gorm.io/gorm"
)

type CartRepository interface {
	FindByUser(userID uint) ([]model.CartItem, error)
	FindItem(userID, variantID uint) (*model.CartItem, error)
	FindItemByID(id, userID uint) (*model.CartItem, error)
	Create(item *model.CartItem) error
	Update(item *model.CartItem) error
	Delete(id, userID uint) error
	Clear(userID uint) error
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) FindByUser(userID uint) ([]model.CartItem, error) {
	var items []model.CartItem
	err := r.db.Where("user_id = ?", userID).
		Preload("Product").
		Preload("Variant").
		Preload("Variant.Dimension").
		Preload("Variant.PolishColor").
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		logger.Error("Failed to find cart items", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return items, nil
}

func (r *cartRepository) FindItem(userID, variantID uint) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.Where("user_id = ? AND variant_id = ?", userID, variantID).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) FindItemByID(id, userID uint) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) Create(item *model.CartItem) error {
	logger.Debug("Creating cart item", map[string]interface{}{
		"user_id":    item.UserID,
		"product_id": item.ProductID,
		"variant_id": item.VariantID,
		"quantity":   item.Quantity,
	})

	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create cart item", err, map[string]interface{}{
			"user_id": item.UserID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) Update(item *model.CartItem) error {
	if err := r.db.Save(item).Error; err != nil {
		logger.Error("Failed to update cart item", err, map[string]interface{}{
			"cart_item_id": item.ID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) Delete(id, userID uint) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&model.CartItem{})
	if result.Error != nil {
		logger.Error("Failed to delete cart item", result.Error, map[string]interface{}{
			"cart_item_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *cartRepository) Clear(userID uint) error {
	if err := r.db.Where("user_id = ?", userID).Delete(&model.CartItem{}).Error; err != nil {
		logger.Error("Failed to clear cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}
	return nil
}
