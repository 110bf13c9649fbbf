package db

import (
	"github.com/woodnest/woodnest-backend/internal/app/model"
	"github.com/woodnest/woodnest-backend/pkg/logger"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.Category{},
		&model.PolishColor{},
		&model.Product{},
		&model.Dimension{},
		&model.Variant{},
		&model.ProductImage{},
		&model.Discount{},
		&model.DiscountAllItems{},
		&model.DiscountCategory{},
		&model.DiscountProduct{},
		&model.DiscountCoupon{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds initial data to the database (optional)
func Seed() error {
	logger.Info("Seeding initial data...")

	if err := seedCategories(); err != nil {
		logger.Error("Failed to seed categories", err)
		return err
	}
	if err := seedPolishColors(); err != nil {
		logger.Error("Failed to seed polish colors", err)
		return err
	}

	logger.Info("Initial data seeded successfully")
	return nil
}

func seedCategories() error {
	var count int64
	if err := DB.Model(&model.Category{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Categories already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	categories := []model.Category{
		{Name: "Sofas", Description: "Sofas and sectionals"},
		{Name: "Tables", Description: "Dining, coffee and side tables"},
		{Name: "Chairs", Description: "Dining and accent chairs"},
		{Name: "Beds", Description: "Bed frames and headboards"},
		{Name: "Storage", Description: "Shelving, cabinets and dressers"},
	}

	for _, category := range categories {
		if err := DB.Create(&category).Error; err != nil {
			logger.Error("Failed to create category", err, map[string]interface{}{
				"category": category.Name,
			})
			return err
		}
	}

	logger.Info("Categories seeded successfully", map[string]interface{}{
		"total_categories": len(categories),
	})
	return nil
}

func seedPolishColors() error {
	var count int64
	if err := DB.Model(&model.PolishColor{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Polish colors already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	colors := []model.PolishColor{
		{Name: "Natural Oak", HexCode: "#C8A165", Description: "Clear matte finish on oak"},
		{Name: "Walnut", HexCode: "#5D432C", Description: "Dark walnut stain"},
		{Name: "Ebony", HexCode: "#222222", Description: "Near-black lacquer"},
		{Name: "White Wash", HexCode: "#F2EFE9", Description: "Whitewashed pine"},
		{Name: "Teak", HexCode: "#A0764B", Description: "Oiled teak finish"},
	}

	for _, color := range colors {
		if err := DB.Create(&color).Error; err != nil {
			logger.Error("Failed to create polish color", err, map[string]interface{}{
				"color": color.Name,
			})
			return err
		}
	}

	logger.Info("Polish colors seeded successfully", map[string]interface{}{
		"total_colors": len(colors),
	})
	return nil
}
