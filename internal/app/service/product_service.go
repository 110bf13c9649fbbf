package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/woodnest/woodnest-backend/internal/app/model"
	"github.com/woodnest/woodnest-backend/internal/app/repository"
	"github.com/woodnest/woodnest-backend/internal/storage"
	"github.com/woodnest/woodnest-backend/pkg/logger"
	"github.com/woodnest/woodnest-backend/pkg/redis"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrVariantNotFound   = errors.New("variant not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

const productCachePrefix = "catalog:products"

// ObjectStorage is the subset of the file store the catalog needs.
type ObjectStorage interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, keys []string) error
}

type ProductService interface {
	ListProducts(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error)
	GetProductByID(id uint) (*model.Product, error)
	NewDraft() *ProductDraft
	DraftFor(id uint) (*ProductDraft, error)
	SaveProduct(ctx context.Context, draft *ProductDraft) (*model.Product, error)
	DeleteProduct(ctx context.Context, id uint) error
	GetVariant(id uint) (*model.Variant, error)
	CheckStock(variantID uint, quantity int) error
}

type productService struct {
	productRepo           repository.ProductRepository
	store                 ObjectStorage
	cascadeOnColorRemoval bool
	cacheTTL              time.Duration
}

func NewProductService(productRepo repository.ProductRepository, store ObjectStorage, cascadeOnColorRemoval bool, cacheTTL time.Duration) ProductService {
	return &productService{
		productRepo:           productRepo,
		store:                 store,
		cascadeOnColorRemoval: cascadeOnColorRemoval,
		cacheTTL:              cacheTTL,
	}
}

func (s *productService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	cacheKey := listCacheKey(filter)

	// Search results are not cached; everything else is, keyed by filter.
	if filter.Search == "" {
		var cached []model.Product
		if hit, err := redis.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			logger.Debug("Product list served from cache", map[string]interface{}{
				"key": cacheKey,
			})
			return cached, nil
		}
	}

	products, err := s.productRepo.FindWithFilter(filter)
	if err != nil {
		return nil, err
	}

	if filter.Search == "" {
		if err := redis.CacheJSON(ctx, cacheKey, products, s.cacheTTL); err != nil {
			logger.Warn("Failed to cache product list", map[string]interface{}{
				"key":   cacheKey,
				"error": err.Error(),
			})
		}
	}
	return products, nil
}

func listCacheKey(filter repository.ProductFilter) string {
	category := uint(0)
	if filter.CategoryID != nil {
		category = *filter.CategoryID
	}
	return fmt.Sprintf("%s:c%d:s%s:a%t:l%d:o%d:r%t",
		productCachePrefix, category, filter.SortBy, filter.SortAscending,
		filter.Limit, filter.Offset, filter.IncludeRelations)
}

func (s *productService) GetProductByID(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) NewDraft() *ProductDraft {
	return NewProductDraft(s.cascadeOnColorRemoval)
}

func (s *productService) DraftFor(id uint) (*ProductDraft, error) {
	product, err := s.GetProductByID(id)
	if err != nil {
		return nil, err
	}
	return NewDraftFromProduct(product, s.cascadeOnColorRemoval), nil
}

// SaveProduct persists a draft: the product row, then dimensions,
// variants, color links and images, each step in order. Dimensions are
// replaced wholesale, so variant rows are rebuilt against the IDs the
// insert just assigned. A failed step aborts the remaining steps and is
// reported to the caller; earlier steps are not rolled back.
func (s *productService) SaveProduct(ctx context.Context, draft *ProductDraft) (*model.Product, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	logger.Info("Saving product", map[string]interface{}{
		"product_id": draft.ProductID,
		"name":       draft.Name,
		"dimensions": len(draft.Dimensions),
		"variants":   len(draft.Variants),
	})

	product := model.Product{
		ID:          draft.ProductID,
		Name:        draft.Name,
		Description: draft.Description,
		CategoryID:  draft.CategoryID,
		BasePrice:   draft.BasePrice,
		Tags:        draft.Tags,
	}

	if draft.ProductID == 0 {
		if err := s.productRepo.Create(&product); err != nil {
			return nil, err
		}
	} else {
		existing, err := s.GetProductByID(draft.ProductID)
		if err != nil {
			return nil, err
		}
		product.CreatedAt = existing.CreatedAt
		if err := s.productRepo.Update(&product); err != nil {
			return nil, err
		}
	}

	dimensions := make([]model.Dimension, 0, len(draft.Dimensions))
	for _, entry := range draft.Dimensions {
		dimensions = append(dimensions, model.Dimension{
			Name:   entry.Name,
			Width:  entry.Width,
			Height: entry.Height,
			Depth:  entry.Depth,
			Length: entry.Length,
			Price:  entry.Price,
		})
	}
	inserted, err := s.productRepo.ReplaceDimensions(product.ID, dimensions)
	if err != nil {
		return nil, err
	}

	// Variant rows reference dimensions by position in the draft; resolve
	// each position to the ID assigned on insert.
	variants := make([]model.Variant, 0, len(draft.Variants))
	for _, entry := range draft.Variants {
		variants = append(variants, model.Variant{
			DimensionID:   inserted[entry.DimensionIndex].ID,
			PolishColorID: entry.PolishColorID,
			StockQuantity: entry.StockQuantity,
		})
	}
	if err := s.productRepo.ReplaceVariants(product.ID, variants); err != nil {
		return nil, err
	}

	if err := s.productRepo.ReplaceColorLinks(product.ID, draft.ColorIDs); err != nil {
		return nil, err
	}

	if err := s.saveImages(ctx, product.ID, draft); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)

	return s.GetProductByID(product.ID)
}

// saveImages reconciles the persisted image rows of each color touched by
// the draft: rows the admin dropped are deleted (record and file), kept
// rows get their primary flag synced, staged files are uploaded and
// inserted. Colors absent from the draft's image map are left untouched.
func (s *productService) saveImages(ctx context.Context, productID uint, draft *ProductDraft) error {
	existing, err := s.productRepo.FindImagesByProduct(productID)
	if err != nil {
		return err
	}

	existingByColor := make(map[uint][]model.ProductImage)
	for _, img := range existing {
		existingByColor[img.PolishColorID] = append(existingByColor[img.PolishColorID], img)
	}

	var removedIDs []uint
	var removedKeys []string
	var newImages []model.ProductImage

	for colorID, set := range draft.Images {
		keptFlags := make(map[uint]bool, len(set.Kept))
		for _, kept := range set.Kept {
			keptFlags[kept.ImageID] = kept.IsPrimary
		}

		for _, img := range existingByColor[colorID] {
			isPrimary, kept := keptFlags[img.ID]
			if !kept {
				removedIDs = append(removedIDs, img.ID)
				removedKeys = append(removedKeys, img.FileKey)
				continue
			}
			if img.IsPrimary != isPrimary {
				if err := s.productRepo.UpdateImagePrimary(img.ID, isPrimary); err != nil {
					return err
				}
			}
		}

		for _, staged := range set.Staged {
			key := storage.NewKey("products", staged.Filename)
			url, err := s.store.Upload(ctx, key, staged.ContentType, staged.Data)
			if err != nil {
				logger.Error("Failed to upload product image", err, map[string]interface{}{
					"product_id": productID,
					"color_id":   colorID,
					"filename":   staged.Filename,
				})
				return err
			}
			newImages = append(newImages, model.ProductImage{
				ProductID:     productID,
				PolishColorID: colorID,
				FileKey:       key,
				URL:           url,
				IsPrimary:     staged.IsPrimary,
			})
		}
	}

	// Remove files best effort; the records go away regardless so the
	// catalog never serves a deleted image.
	if len(removedKeys) > 0 {
		if err := s.store.Delete(ctx, removedKeys); err != nil {
			logger.Warn("Failed to delete image files from storage", map[string]interface{}{
				"product_id": productID,
				"count":      len(removedKeys),
				"error":      err.Error(),
			})
		}
	}
	if err := s.productRepo.DeleteImages(removedIDs); err != nil {
		return err
	}
	return s.productRepo.CreateImages(newImages)
}

func (s *productService) DeleteProduct(ctx context.Context, id uint) error {
	product, err := s.GetProductByID(id)
	if err != nil {
		return err
	}

	logger.Info("Deleting product", map[string]interface{}{
		"product_id": id,
		"name":       product.Name,
	})

	keys := make([]string, 0, len(product.Images))
	for _, img := range product.Images {
		keys = append(keys, img.FileKey)
	}
	if len(keys) > 0 {
		if err := s.store.Delete(ctx, keys); err != nil {
			logger.Warn("Failed to delete image files from storage", map[string]interface{}{
				"product_id": id,
				"count":      len(keys),
				"error":      err.Error(),
			})
		}
	}

	if err := s.productRepo.Delete(id); err != nil {
		return err
	}

	s.invalidateCache(ctx)
	return nil
}

func (s *productService) invalidateCache(ctx context.Context) {
	if err := redis.InvalidatePrefix(ctx, productCachePrefix); err != nil {
		logger.Warn("Failed to invalidate product cache", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (s *productService) GetVariant(id uint) (*model.Variant, error) {
	variant, err := s.productRepo.FindVariantByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVariantNotFound
		}
		return nil, err
	}
	return variant, nil
}

func (s *productService) CheckStock(variantID uint, quantity int) error {
	variant, err := s.GetVariant(variantID)
	if err != nil {
		return err
	}
	if variant.StockQuantity < quantity {
		return ErrInsufficientStock
	}
	return nil
}
