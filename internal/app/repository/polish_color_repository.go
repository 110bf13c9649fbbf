package repository

import (
	"github.com/woodnest/woodnest-backend/internal/app/model"
	"github.com/woodnest/woodnest-backend/pkg/logger"
	"gorm.io/gorm"
)

type PolishColorRepository interface {
	Create(color *model.PolishColor) error
	FindAll() ([]model.PolishColor, error)
	FindByID(id uint) (*model.PolishColor, error)
	FindByIDs(ids []uint) ([]model.PolishColor, error)
	Update(color *model.PolishColor) error
	Delete(id uint) error
}

type polishColorRepository struct {
	db *gorm.DB
}

func NewPolishColorRepository(db *gorm.DB) PolishColorRepository {
	return &polishColorRepository{db: db}
}

func (r *polishColorRepository) Create(color *model.PolishColor) error {
	logger.Debug("Creating polish color", map[string]interface{}{
		"name":     color.Name,
		"hex_code": color.HexCode,
	})

	if err := r.db.Create(color).Error; err != nil {
		logger.Error("Failed to create polish color", err, map[string]interface{}{
			"name": color.Name,
		})
		return err
	}

	logger.Debug("Polish color created", map[string]interface{}{
		"color_id": color.ID,
	})
	return nil
}

func (r *polishColorRepository) FindAll() ([]model.PolishColor, error) {
	var colors []model.PolishColor
	if err := r.db.Order("name ASC").Find(&colors).Error; err != nil {
		logger.Error("Failed to find polish colors", err)
		return nil, err
	}
	return colors, nil
}

func (r *polishColorRepository) FindByID(id uint) (*model.PolishColor, error) {
	var color model.PolishColor
	if err := r.db.First(&color, id).Error; err != nil {
		logger.Error("Failed to find polish color by ID", err, map[string]interface{}{
			"color_id": id,
		})
		return nil, err
	}
	return &color, nil
}

func (r *polishColorRepository) FindByIDs(ids []uint) ([]model.PolishColor, error) {
	var colors []model.PolishColor
	if len(ids) == 0 {
		return colors, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&colors).Error; err != nil {
		logger.Error("Failed to find polish colors by IDs", err, map[string]interface{}{
			"count": len(ids),
		})
		return nil, err
	}
	return colors, nil
}

func (r *polishColorRepository) Update(color *model.PolishColor) error {
	logger.Debug("Updating polish color", map[string]interface{}{
		"color_id": color.ID,
	})

	if err := r.db.Save(color).Error; err != nil {
		logger.Error("Failed to update polish color", err, map[string]interface{}{
			"color_id": color.ID,
		})
		return err
	}
	return nil
}

func (r *polishColorRepository) Delete(id uint) error {
	logger.Debug("Deleting polish color", map[string]interface{}{
		"color_id": id,
	})

	if err := r.db.Delete(&model.PolishColor{}, id).Error; err != nil {
		logger.Error("Failed to delete polish color", err, map[string]interface{}{
			"color_id": id,
		})
		return err
	}
	return nil
}
