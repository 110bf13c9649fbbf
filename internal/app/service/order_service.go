package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/woodnest/woodnest-backend/internal/app/model"
	"github.com/woodnest/woodnest-backend/internal/app/repository"
	"github.com/woodnest/woodnest-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrCartEmpty     = errors.New("cart is empty")
)

type CheckoutInput struct {
	CouponCode      string `json:"coupon_code"`
	ShippingAddress string `json:"shipping_address"`
}

type OrderService interface {
	Checkout(userID uint, input CheckoutInput) (*model.Order, error)
	ListOrders(userID uint) ([]model.Order, error)
	GetOrderByID(id, userID uint) (*model.Order, error)
}

type orderService struct {
	orderRepo       repository.OrderRepository
	cartRepo        repository.CartRepository
	productRepo     repository.ProductRepository
	discountRepo    repository.DiscountRepository
	discountService DiscountService
	shippingFee     float64
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	discountRepo repository.DiscountRepository,
	discountService DiscountService,
	shippingFee float64,
) OrderService {
	return &orderService{
		orderRepo:       orderRepo,
		cartRepo:        cartRepo,
		productRepo:     productRepo,
		discountRepo:    discountRepo,
		discountService: discountService,
		shippingFee:     shippingFee,
	}
}

// Checkout turns the user's cart into an order. Every line is repriced
// from its dimension at checkout time, the best automatic discount is
// applied per unit, and an optional coupon is redeemed against the
// discounted subtotal. Stock is decremented per line and the cart is
// cleared once the order row exists.
func (s *orderService) Checkout(userID uint, input CheckoutInput) (*model.Order, error) {
	items, err := s.cartRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	discounts, err := s.discountRepo.FindAll()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var subtotal, discountTotal float64
	orderItems := make([]model.OrderItem, 0, len(items))

	for _, item := range items {
		if item.Variant.StockQuantity < item.Quantity {
			return nil, ErrInsufficientStock
		}

		unitPrice := item.Variant.Dimension.Price
		unitDiscount := BestAutomaticDiscount(discounts, item.ProductID, item.Product.CategoryID, unitPrice, now)

		subtotal += unitPrice * float64(item.Quantity)
		discountTotal += unitDiscount * float64(item.Quantity)

		orderItems = append(orderItems, model.OrderItem{
			ProductID:       item.ProductID,
			VariantID:       item.VariantID,
			Quantity:        item.Quantity,
			UnitPrice:       unitPrice,
			UnitDiscount:    unitDiscount,
			VariantSnapshot: fmt.Sprintf("%s / %s", item.Variant.Dimension.Name, item.Variant.PolishColor.Name),
		})
	}

	var couponCode string
	if input.CouponCode != "" {
		redeemed, err := s.discountService.RedeemCoupon(input.CouponCode)
		if err != nil {
			return nil, err
		}
		coupon := redeemed.Coupon
		couponCode = coupon.Code
		discountTotal += DiscountAmount(coupon.CouponDiscountType, coupon.DiscountValue, subtotal-discountTotal)
	}

	freeShipping := FreeShippingApplies(discounts, items, now)
	shippingFee := s.shippingFee
	if freeShipping {
		shippingFee = 0
	}

	order := model.Order{
		UserID:          userID,
		Subtotal:        subtotal,
		DiscountTotal:   discountTotal,
		ShippingFee:     shippingFee,
		TotalAmount:     subtotal - discountTotal + shippingFee,
		FreeShipping:    freeShipping,
		CouponCode:      couponCode,
		Status:          model.OrderStatusPending,
		ShippingAddress: input.ShippingAddress,
		OrderItems:      orderItems,
	}
	if err := s.orderRepo.Create(&order); err != nil {
		return nil, err
	}

	for _, item := range items {
		if err := s.productRepo.AdjustVariantStock(item.VariantID, -item.Quantity); err != nil {
			logger.Error("Failed to decrement stock after checkout", err, map[string]interface{}{
				"order_id":   order.ID,
				"variant_id": item.VariantID,
			})
			return nil, err
		}
	}

	if err := s.cartRepo.Clear(userID); err != nil {
		logger.Warn("Failed to clear cart after checkout", map[string]interface{}{
			"order_id": order.ID,
			"user_id":  userID,
			"error":    err.Error(),
		})
	}

	logger.Info("Order placed", map[string]interface{}{
		"order_id":     order.ID,
		"user_id":      userID,
		"total_amount": order.TotalAmount,
	})
	return &order, nil
}

func (s *orderService) ListOrders(userID uint) ([]model.Order, error) {
	return s.orderRepo.FindByUser(userID)
}

func (s *orderService) GetOrderByID(id, userID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}
