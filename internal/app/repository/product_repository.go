package repository

import (
	"fmt"

	"github.com/woodnest/woodnest-backend/internal/app/model"
	"github.com/woodnest/woodnest-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductSort string

const (
	ProductSortPrice     ProductSort = "price"
	ProductSortCreatedAt ProductSort = "created_at"
	ProductSortName      ProductSort = "name"
)

type ProductFilter struct {
	CategoryID       *uint
	Search           string
	SortBy           ProductSort
	SortAscending    bool
	Limit            int
	Offset           int
	IncludeRelations bool
}

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindWithFilter(filter ProductFilter) ([]model.Product, error)
	FindByID(id uint) (*model.Product, error)
	Update(product *model.Product) error
	Delete(id uint) error

	// Dependent rows are replaced wholesale on every edit.
	ReplaceDimensions(productID uint, dimensions []model.Dimension) ([]model.Dimension, error)
	ReplaceVariants(productID uint, variants []model.Variant) error
	ReplaceColorLinks(productID uint, colorIDs []uint) error

	FindImagesByProduct(productID uint) ([]model.ProductImage, error)
	CreateImages(images []model.ProductImage) error
	DeleteImages(ids []uint) error
	UpdateImagePrimary(id uint, isPrimary bool) error

	FindVariantByID(id uint) (*model.Variant, error)
	AdjustVariantStock(id uint, delta int) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"name":        product.Name,
		"category_id": product.CategoryID,
	})

	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"name":        product.Name,
			"category_id": product.CategoryID,
		})
		return err
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return nil
}

func (r *productRepository) baseQuery(includeRelations bool) *gorm.DB {
	query := r.db.Model(&model.Product{}).Preload("Category")
	if includeRelations {
		query = query.
			Preload("Dimensions").
			Preload("Variants").
			Preload("Variants.Dimension").
			Preload("Variants.PolishColor").
			Preload("Colors").
			Preload("Images")
	}
	return query
}

func (r *productRepository) FindAll() ([]model.Product, error) {
	return r.FindWithFilter(ProductFilter{IncludeRelations: true})
}

func (r *productRepository) FindWithFilter(filter ProductFilter) ([]model.Product, error) {
	logger.Debug("Finding products with filter", map[string]interface{}{
		"category_id": filter.CategoryID,
		"search":      filter.Search,
		"sort_by":     filter.SortBy,
		"ascending":   filter.SortAscending,
		"limit":       filter.Limit,
		"offset":      filter.Offset,
	})

	query := r.baseQuery(filter.IncludeRelations)

	if filter.CategoryID != nil {
		query = query.Where("products.category_id = ?", *filter.CategoryID)
	}

	if filter.Search != "" {
		like := fmt.Sprintf("%%%s%%", filter.Search)
		query = query.Where("products.name LIKE ? OR products.description LIKE ?", like, like)
	}

	direction := "DESC"
	if filter.SortAscending {
		direction = "ASC"
	}
	switch filter.SortBy {
	case ProductSortPrice:
		query = query.Order("products.base_price " + direction)
	case ProductSortName:
		query = query.Order("products.name " + direction)
	case ProductSortCreatedAt:
		fallthrough
	default:
		query = query.Order("products.created_at " + direction)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var products []model.Product
	if err := query.Find(&products).Error; err != nil {
		logger.Error("Failed to find products with filter", err, map[string]interface{}{
			"search": filter.Search,
		})
		return nil, err
	}

	logger.Debug("Products found with filter", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	var product model.Product
	err := r.baseQuery(true).First(&product, id).Error
	if err != nil {
		logger.Error("Failed to find product by ID in database", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Update(product *model.Product) error {
	logger.Debug("Updating product in database", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})

	if err := r.db.Omit("Dimensions", "Variants", "Colors", "Images").Save(product).Error; err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	return nil
}

func (r *productRepository) Delete(id uint) error {
	logger.Debug("Deleting product from database", map[string]interface{}{
		"product_id": id,
	})

	// Dependent rows first; the product row itself is soft deleted.
	if err := r.db.Where("product_id = ?", id).Delete(&model.Variant{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("product_id = ?", id).Delete(&model.Dimension{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("product_id = ?", id).Delete(&model.ProductImage{}).Error; err != nil {
		return err
	}
	if err := r.db.Exec("DELETE FROM product_polish_colors WHERE product_id = ?", id).Error; err != nil {
		return err
	}
	if err := r.db.Delete(&model.Product{}, id).Error; err != nil {
		logger.Error("Failed to delete product from database", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}

	logger.Debug("Product deleted from database", map[string]interface{}{
		"product_id": id,
	})
	return nil
}

// ReplaceDimensions deletes every dimension row of the product and
// inserts the given rows in order, returning them with their newly
// assigned IDs. Dimension IDs never survive an edit; callers remap
// variant references against the returned slice.
func (r *productRepository) ReplaceDimensions(productID uint, dimensions []model.Dimension) ([]model.Dimension, error) {
	logger.Debug("Replacing product dimensions", map[string]interface{}{
		"product_id": productID,
		"count":      len(dimensions),
	})

	if err := r.db.Where("product_id = ?", productID).Delete(&model.Dimension{}).Error; err != nil {
		logger.Error("Failed to delete product dimensions", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}

	for i := range dimensions {
		dimensions[i].ID = 0
		dimensions[i].ProductID = productID
	}
	if len(dimensions) > 0 {
		if err := r.db.Create(&dimensions).Error; err != nil {
			logger.Error("Failed to insert product dimensions", err, map[string]interface{}{
				"product_id": productID,
				"count":      len(dimensions),
			})
			return nil, err
		}
	}

	logger.Debug("Product dimensions replaced", map[string]interface{}{
		"product_id": productID,
		"count":      len(dimensions),
	})
	return dimensions, nil
}

func (r *productRepository) ReplaceVariants(productID uint, variants []model.Variant) error {
	logger.Debug("Replacing product variants", map[string]interface{}{
		"product_id": productID,
		"count":      len(variants),
	})

	if err := r.db.Where("product_id = ?", productID).Delete(&model.Variant{}).Error; err != nil {
		logger.Error("Failed to delete product variants", err, map[string]interface{}{
			"product_id": productID,
		})
		return err
	}

	for i := range variants {
		variants[i].ID = 0
		variants[i].ProductID = productID
	}
	if len(variants) > 0 {
		if err := r.db.Create(&variants).Error; err != nil {
			logger.Error("Failed to insert product variants", err, map[string]interface{}{
				"product_id": productID,
				"count":      len(variants),
			})
			return err
		}
	}
	return nil
}

func (r *productRepository) ReplaceColorLinks(productID uint, colorIDs []uint) error {
	logger.Debug("Replacing product color links", map[string]interface{}{
		"product_id": productID,
		"count":      len(colorIDs),
	})

	if err := r.db.Exec("DELETE FROM product_polish_colors WHERE product_id = ?", productID).Error; err != nil {
		logger.Error("Failed to delete product color links", err, map[string]interface{}{
			"product_id": productID,
		})
		return err
	}

	for _, colorID := range colorIDs {
		if err := r.db.Exec(
			"INSERT INTO product_polish_colors (product_id, polish_color_id) VALUES (?, ?)",
			productID, colorID,
		).Error; err != nil {
			logger.Error("Failed to insert product color link", err, map[string]interface{}{
				"product_id": productID,
				"color_id":   colorID,
			})
			return err
		}
	}
	return nil
}

func (r *productRepository) FindImagesByProduct(productID uint) ([]model.ProductImage, error) {
	var images []model.ProductImage
	if err := r.db.Where("product_id = ?", productID).Order("id ASC").Find(&images).Error; err != nil {
		logger.Error("Failed to find product images", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return images, nil
}

func (r *productRepository) CreateImages(images []model.ProductImage) error {
	if len(images) == 0 {
		return nil
	}
	if err := r.db.Create(&images).Error; err != nil {
		logger.Error("Failed to insert product images", err, map[string]interface{}{
			"count": len(images),
		})
		return err
	}
	return nil
}

func (r *productRepository) DeleteImages(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := r.db.Delete(&model.ProductImage{}, ids).Error; err != nil {
		logger.Error("Failed to delete product images", err, map[string]interface{}{
			"count": len(ids),
		})
		return err
	}
	return nil
}

func (r *productRepository) UpdateImagePrimary(id uint, isPrimary bool) error {
	if err := r.db.Model(&model.ProductImage{}).Where("id = ?", id).
		Update("is_primary", isPrimary).Error; err != nil {
		logger.Error("Failed to update image primary flag", err, map[string]interface{}{
			"image_id": id,
		})
		return err
	}
	return nil
}

func (r *productRepository) FindVariantByID(id uint) (*model.Variant, error) {
	var variant model.Variant
	if err := r.db.Preload("Dimension").Preload("PolishColor").First(&variant, id).Error; err != nil {
		logger.Error("Failed to find variant by ID", err, map[string]interface{}{
			"variant_id": id,
		})
		return nil, err
	}
	return &variant, nil
}

func (r *productRepository) AdjustVariantStock(id uint, delta int) error {
	logger.Debug("Adjusting variant stock", map[string]interface{}{
		"variant_id": id,
		"delta":      delta,
	})

	if err := r.db.Model(&model.Variant{}).Where("id = ?", id).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", delta)).Error; err != nil {
		logger.Error("Failed to adjust variant stock", err, map[string]interface{}{
			"variant_id": id,
			"delta":      delta,
		})
		return err
	}
	return nil
}
