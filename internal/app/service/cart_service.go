package service

import (
	"errors"
	"time"

	"github.com/woodnest/woodnest-backend/internal/app/model"
	"github.com/woodnest/woodnest-backend/internal/app/repository"
	"github.com/woodnest/woodnest-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrInvalidQuantity  = errors.New("quantity must be at least one")
	ErrVariantMismatch  = errors.New("variant does not belong to product")
)

// PricedCartItem is a cart row with its storefront pricing applied: the
// unit price from the variant's dimension and the best automatic
// discount currently covering the product.
type PricedCartItem struct {
	model.CartItem
	UnitPrice    float64 `json:"unit_price"`
	UnitDiscount float64 `json:"unit_discount"`
	LineTotal    float64 `json:"line_total"`
}

type CartService interface {
	GetCart(userID uint) ([]PricedCartItem, error)
	AddItem(userID, productID, variantID uint, quantity int) (*model.CartItem, error)
	UpdateQuantity(userID, itemID uint, quantity int) (*model.CartItem, error)
	RemoveItem(userID, itemID uint) error
	ClearCart(userID uint) error
}

type cartService struct {
	cartRepo     repository.CartRepository
	productRepo  repository.ProductRepository
	discountRepo repository.DiscountRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, discountRepo repository.DiscountRepository) CartService {
	return &cartService{
		cartRepo:     cartRepo,
		productRepo:  productRepo,
		discountRepo: discountRepo,
	}
}

func (s *cartService) GetCart(userID uint) ([]PricedCartItem, error) {
	items, err := s.cartRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	discounts, err := s.discountRepo.FindAll()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	priced := make([]PricedCartItem, 0, len(items))
	for _, item := range items {
		unitPrice := item.Variant.Dimension.Price
		unitDiscount := BestAutomaticDiscount(discounts, item.ProductID, item.Product.CategoryID, unitPrice, now)
		priced = append(priced, PricedCartItem{
			CartItem:     item,
			UnitPrice:    unitPrice,
			UnitDiscount: unitDiscount,
			LineTotal:    (unitPrice - unitDiscount) * float64(item.Quantity),
		})
	}
	return priced, nil
}

// AddItem puts a variant in the cart, merging quantities when the same
// variant is already there.
func (s *cartService) AddItem(userID, productID, variantID uint, quantity int) (*model.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	variant, err := s.productRepo.FindVariantByID(variantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVariantNotFound
		}
		return nil, err
	}
	if variant.ProductID != productID {
		return nil, ErrVariantMismatch
	}

	existing, err := s.cartRepo.FindItem(userID, variantID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	requested := quantity
	if existing != nil {
		requested += existing.Quantity
	}
	if variant.StockQuantity < requested {
		return nil, ErrInsufficientStock
	}

	if existing != nil {
		existing.Quantity = requested
		if err := s.cartRepo.Update(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	item := model.CartItem{
		UserID:    userID,
		ProductID: productID,
		VariantID: variantID,
		Quantity:  quantity,
	}
	if err := s.cartRepo.Create(&item); err != nil {
		return nil, err
	}

	logger.Debug("Cart item added", map[string]interface{}{
		"user_id":    userID,
		"variant_id": variantID,
		"quantity":   quantity,
	})
	return &item, nil
}

func (s *cartService) UpdateQuantity(userID, itemID uint, quantity int) (*model.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	item, err := s.cartRepo.FindItemByID(itemID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}

	variant, err := s.productRepo.FindVariantByID(item.VariantID)
	if err != nil {
		return nil, err
	}
	if variant.StockQuantity < quantity {
		return nil, ErrInsufficientStock
	}

	item.Quantity = quantity
	if err := s.cartRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *cartService) RemoveItem(userID, itemID uint) error {
	if err := s.cartRepo.Delete(itemID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartItemNotFound
		}
		return err
	}
	return nil
}

func (s *cartService) ClearCart(userID uint) error {
	return s.cartRepo.Clear(userID)
}
