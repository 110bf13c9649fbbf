package service

import (
	"errors"
	"strings"
	"time"

	"github.com/woodnest/woodnest-backend/internal/app/model"
	"github.com/woodnest/woodnest-backend/internal/app/repository"
	"github.com/woodnest/woodnest-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrDiscountNotFound     = errors.New("discount not found")
	ErrDiscountNameRequired = errors.New("discount name is required")
	ErrInvalidDateRange     = errors.New("start date must be before end date")
	ErrCouponCodeRequired   = errors.New("coupon code is required")
	ErrCouponTypeRequired   = errors.New("coupon discount type is required")
	ErrValueOutOfRange      = errors.New("discount value out of range")
	ErrNoCategoriesSelected = errors.New("at least one category must be selected")
	ErrNoProductsSelected   = errors.New("at least one product must be selected")
	ErrCouponNotFound       = errors.New("coupon not found")
	ErrCouponNotActive      = errors.New("coupon is not active")
	ErrCouponExhausted      = errors.New("coupon usage limit reached")
)

// ScopeValue targets one category or product with its own value.
type ScopeValue struct {
	ID    uint    `json:"id"`
	Value float64 `json:"value"`
}

type CouponInput struct {
	Code       string                `json:"code"`
	Type       model.CouponValueType `json:"type"`
	Value      float64               `json:"value"`
	UsageLimit *int                  `json:"usage_limit"`
}

// DiscountInput carries every field of the discount form. Exactly one of
// Value, Categories, Products or Coupon is consulted, depending on the
// scope/type combination.
type DiscountInput struct {
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	DiscountType model.DiscountType  `json:"discount_type"`
	Scope        model.DiscountScope `json:"scope"`
	StartDate    time.Time           `json:"start_date"`
	EndDate      time.Time           `json:"end_date"`
	IsActive     bool                `json:"is_active"`
	Value        float64             `json:"value"`
	Categories   []ScopeValue        `json:"categories"`
	Products     []ScopeValue        `json:"products"`
	Coupon       *CouponInput        `json:"coupon"`
}

type DiscountService interface {
	ListDiscounts() ([]model.Discount, error)
	GetDiscountByID(id uint) (*model.Discount, error)
	CreateDiscount(input DiscountInput) (*model.Discount, error)
	UpdateDiscount(id uint, input DiscountInput) (*model.Discount, error)
	DeleteDiscount(id uint) error
	ToggleActive(id uint, active bool) error
	Validate(input DiscountInput) error
	RedeemCoupon(code string) (*model.Discount, error)
	DeactivateExpired() (int64, error)
}

type discountService struct {
	discountRepo repository.DiscountRepository
}

func NewDiscountService(discountRepo repository.DiscountRepository) DiscountService {
	return &discountService{discountRepo: discountRepo}
}

func (s *discountService) ListDiscounts() ([]model.Discount, error) {
	return s.discountRepo.FindAll()
}

func (s *discountService) GetDiscountByID(id uint) (*model.Discount, error) {
	discount, err := s.discountRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDiscountNotFound
		}
		return nil, err
	}
	return discount, nil
}

// Validate applies the discount form rules. The checks run in form order,
// so the caller gets the first failing field.
func (s *discountService) Validate(input DiscountInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrDiscountNameRequired
	}
	if !input.StartDate.Before(input.EndDate) {
		return ErrInvalidDateRange
	}

	if input.DiscountType == model.DiscountTypeCoupon {
		if input.Coupon == nil || strings.TrimSpace(input.Coupon.Code) == "" {
			return ErrCouponCodeRequired
		}
		if input.Coupon.Type != model.CouponValuePercent && input.Coupon.Type != model.CouponValueMoney {
			return ErrCouponTypeRequired
		}
		if !valueWithinBound(model.DiscountType(input.Coupon.Type), input.Coupon.Value) {
			return ErrValueOutOfRange
		}
		return nil
	}

	switch input.Scope {
	case model.ScopeAllItems:
		// Free shipping carries no numeric value.
		if input.DiscountType == model.DiscountTypeFreeShipping {
			return nil
		}
		if input.Value <= 0 || !valueWithinBound(input.DiscountType, input.Value) {
			return ErrValueOutOfRange
		}
	case model.ScopeCategories:
		if len(input.Categories) == 0 {
			return ErrNoCategoriesSelected
		}
		if input.DiscountType == model.DiscountTypeFreeShipping {
			return nil
		}
		for _, sv := range input.Categories {
			if !valueWithinBound(input.DiscountType, sv.Value) {
				return ErrValueOutOfRange
			}
		}
	case model.ScopeProducts:
		if len(input.Products) == 0 {
			return ErrNoProductsSelected
		}
		if input.DiscountType == model.DiscountTypeFreeShipping {
			return nil
		}
		for _, sv := range input.Products {
			if !valueWithinBound(input.DiscountType, sv.Value) {
				return ErrValueOutOfRange
			}
		}
	}
	return nil
}

// valueWithinBound checks a discount value against its type: percent
// values live in [0, 100], money values just have to be non-negative.
func valueWithinBound(discountType model.DiscountType, value float64) bool {
	switch discountType {
	case model.DiscountTypePercent:
		return value >= 0 && value <= 100
	case model.DiscountTypeMoney:
		return value >= 0
	}
	return true
}

func (s *discountService) CreateDiscount(input DiscountInput) (*model.Discount, error) {
	if err := s.Validate(input); err != nil {
		return nil, err
	}

	discount := model.Discount{
		Name:         strings.TrimSpace(input.Name),
		Description:  input.Description,
		DiscountType: input.DiscountType,
		Scope:        input.Scope,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		IsActive:     input.IsActive,
	}
	if err := s.discountRepo.Create(&discount); err != nil {
		return nil, err
	}

	if err := s.writeScopeRows(discount.ID, input); err != nil {
		logger.Error("Failed to write discount scope rows", err, map[string]interface{}{
			"discount_id": discount.ID,
		})
		return nil, err
	}

	return s.GetDiscountByID(discount.ID)
}

// UpdateDiscount replaces the discount and its scope rows. All four
// child tables are cleared first so an edit that moves the discount to a
// different scope never leaves stale rows behind. A coupon edited this
// way restarts its usage count at zero.
func (s *discountService) UpdateDiscount(id uint, input DiscountInput) (*model.Discount, error) {
	if err := s.Validate(input); err != nil {
		return nil, err
	}

	existing, err := s.GetDiscountByID(id)
	if err != nil {
		return nil, err
	}

	existing.Name = strings.TrimSpace(input.Name)
	existing.Description = input.Description
	existing.DiscountType = input.DiscountType
	existing.Scope = input.Scope
	existing.StartDate = input.StartDate
	existing.EndDate = input.EndDate
	existing.IsActive = input.IsActive
	existing.AllItems = nil
	existing.Categories = nil
	existing.Products = nil
	existing.Coupon = nil

	if err := s.discountRepo.Update(existing); err != nil {
		return nil, err
	}
	if err := s.discountRepo.ClearScopeRows(id); err != nil {
		return nil, err
	}
	if err := s.writeScopeRows(id, input); err != nil {
		logger.Error("Failed to write discount scope rows", err, map[string]interface{}{
			"discount_id": id,
		})
		return nil, err
	}

	return s.GetDiscountByID(id)
}

func (s *discountService) writeScopeRows(discountID uint, input DiscountInput) error {
	if input.DiscountType == model.DiscountTypeCoupon {
		return s.discountRepo.CreateCoupon(&model.DiscountCoupon{
			DiscountID:         discountID,
			Code:               strings.ToUpper(strings.TrimSpace(input.Coupon.Code)),
			CouponDiscountType: input.Coupon.Type,
			DiscountValue:      input.Coupon.Value,
			UsageLimit:         input.Coupon.UsageLimit,
			UsageCount:         0,
		})
	}

	switch input.Scope {
	case model.ScopeAllItems:
		return s.discountRepo.CreateAllItems(&model.DiscountAllItems{
			DiscountID:    discountID,
			DiscountValue: input.Value,
		})
	case model.ScopeCategories:
		rows := make([]model.DiscountCategory, 0, len(input.Categories))
		for _, sv := range input.Categories {
			rows = append(rows, model.DiscountCategory{
				DiscountID:    discountID,
				CategoryID:    sv.ID,
				DiscountValue: sv.Value,
			})
		}
		return s.discountRepo.CreateCategories(rows)
	case model.ScopeProducts:
		rows := make([]model.DiscountProduct, 0, len(input.Products))
		for _, sv := range input.Products {
			rows = append(rows, model.DiscountProduct{
				DiscountID:    discountID,
				ProductID:     sv.ID,
				DiscountValue: sv.Value,
			})
		}
		return s.discountRepo.CreateProducts(rows)
	}
	return nil
}

func (s *discountService) DeleteDiscount(id uint) error {
	if _, err := s.GetDiscountByID(id); err != nil {
		return err
	}
	return s.discountRepo.Delete(id)
}

func (s *discountService) ToggleActive(id uint, active bool) error {
	if err := s.discountRepo.SetActive(id, active); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDiscountNotFound
		}
		return err
	}
	return nil
}

// RedeemCoupon looks a coupon up by code, verifies it is currently
// active and consumes one use. The usage increment is conditional on the
// limit, so two concurrent redemptions cannot overshoot it.
func (s *discountService) RedeemCoupon(code string) (*model.Discount, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return nil, ErrCouponNotFound
	}

	discount, err := s.discountRepo.FindByCouponCode(normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}

	if discount.StatusAt(time.Now()) != model.StatusActive {
		return nil, ErrCouponNotActive
	}

	ok, err := s.discountRepo.IncrementCouponUsage(discount.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCouponExhausted
	}

	logger.Info("Coupon redeemed", map[string]interface{}{
		"discount_id": discount.ID,
		"code":        normalized,
	})
	return s.GetDiscountByID(discount.ID)
}

func (s *discountService) DeactivateExpired() (int64, error) {
	return s.discountRepo.DeactivateExpired(time.Now())
}

// DiscountAmount computes the reduction a value takes off a unit price.
// Percent values scale the price; money values are capped at the price
// so a discount never pushes it negative.
func DiscountAmount(valueType model.CouponValueType, value, price float64) float64 {
	switch valueType {
	case model.CouponValuePercent:
		return price * value / 100
	case model.CouponValueMoney:
		if value > price {
			return price
		}
		return value
	}
	return 0
}

// EffectiveValue resolves the discount value applying to a product, or
// false when the discount does not cover it. Coupon and free shipping
// discounts carry no per-item value.
func EffectiveValue(d *model.Discount, productID, categoryID uint) (float64, bool) {
	switch d.Scope {
	case model.ScopeAllItems:
		if d.AllItems != nil {
			return d.AllItems.DiscountValue, true
		}
	case model.ScopeCategories:
		for _, row := range d.Categories {
			if row.CategoryID == categoryID {
				return row.DiscountValue, true
			}
		}
	case model.ScopeProducts:
		for _, row := range d.Products {
			if row.ProductID == productID {
				return row.DiscountValue, true
			}
		}
	}
	return 0, false
}

// BestAutomaticDiscount picks the largest per-unit reduction among the
// given discounts for one product at one unit price. Coupon and free
// shipping discounts never participate; inactive, scheduled and expired
// discounts are skipped.
func BestAutomaticDiscount(discounts []model.Discount, productID, categoryID uint, unitPrice float64, now time.Time) float64 {
	best := 0.0
	for i := range discounts {
		d := &discounts[i]
		if d.DiscountType != model.DiscountTypePercent && d.DiscountType != model.DiscountTypeMoney {
			continue
		}
		if d.StatusAt(now) != model.StatusActive {
			continue
		}
		value, ok := EffectiveValue(d, productID, categoryID)
		if !ok {
			continue
		}
		amount := DiscountAmount(model.CouponValueType(d.DiscountType), value, unitPrice)
		if amount > best {
			best = amount
		}
	}
	return best
}

// FreeShippingApplies reports whether any active free shipping discount
// covers at least one of the given products.
func FreeShippingApplies(discounts []model.Discount, items []model.CartItem, now time.Time) bool {
	for i := range discounts {
		d := &discounts[i]
		if d.DiscountType != model.DiscountTypeFreeShipping {
			continue
		}
		if d.StatusAt(now) != model.StatusActive {
			continue
		}
		if d.Scope == model.ScopeAllItems {
			return true
		}
		for _, item := range items {
			if _, ok := EffectiveValue(d, item.ProductID, item.Product.CategoryID); ok {
				return true
			}
		}
	}
	return false
}
