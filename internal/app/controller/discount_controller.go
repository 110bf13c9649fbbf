package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/woodnest/woodnest-backend/internal/app/model"
	"github.com/woodnest/woodnest-backend/internal/app/service"
	apperrors "github.com/woodnest/woodnest-backend/internal/errors"
	"github.com/woodnest/woodnest-backend/internal/middleware"
)

type DiscountController struct {
	discountService service.DiscountService
}

func NewDiscountController(discountService service.DiscountService) *DiscountController {
	return &DiscountController{
		discountService: discountService,
	}
}

type CouponRequest struct {
	Code       string  `json:"code"`
	Type       string  `json:"type"`
	Value      float64 `json:"value"`
	UsageLimit *int    `json:"usage_limit"`
}

type DiscountRequest struct {
	Name         string               `json:"name" binding:"required"`
	Description  string               `json:"description"`
	DiscountType string               `json:"discount_type" binding:"required,oneof=percent money free_shipping coupon"`
	Scope        string               `json:"scope" binding:"required,oneof=all_items categories products coupon"`
	StartDate    time.Time            `json:"start_date" binding:"required"`
	EndDate      time.Time            `json:"end_date" binding:"required"`
	IsActive     *bool                `json:"is_active"`
	Value        float64              `json:"value"`
	Categories   []service.ScopeValue `json:"categories"`
	Products     []service.ScopeValue `json:"products"`
	Coupon       *CouponRequest       `json:"coupon"`
}

func (req *DiscountRequest) toInput() service.DiscountInput {
	input := service.DiscountInput{
		Name:         req.Name,
		Description:  req.Description,
		DiscountType: model.DiscountType(req.DiscountType),
		Scope:        model.DiscountScope(req.Scope),
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		IsActive:     req.IsActive == nil || *req.IsActive,
		Value:        req.Value,
		Categories:   req.Categories,
		Products:     req.Products,
	}
	if req.Coupon != nil {
		input.Coupon = &service.CouponInput{
			Code:       req.Coupon.Code,
			Type:       model.CouponValueType(req.Coupon.Type),
			Value:      req.Coupon.Value,
			UsageLimit: req.Coupon.UsageLimit,
		}
	}
	return input
}

// discountResponse decorates a discount with its derived status.
func discountResponse(d *model.Discount) gin.H {
	return gin.H{
		"discount": d,
		"status":   d.StatusAt(time.Now()),
	}
}

// GetDiscounts returns all discounts with their derived status (Admin only)
// GET /api/v1/admin/discounts
func (ctrl *DiscountController) GetDiscounts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	discounts, err := ctrl.discountService.ListDiscounts()
	if err != nil {
		log.Error("Failed to fetch discounts", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch discounts",
		})
		return
	}

	now := time.Now()
	listed := make([]gin.H, 0, len(discounts))
	for i := range discounts {
		listed = append(listed, gin.H{
			"discount": discounts[i],
			"status":   discounts[i].StatusAt(now),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"discounts": listed,
		"count":     len(listed),
	})
}

// GetDiscountByID returns one discount (Admin only)
// GET /api/v1/admin/discounts/:id
func (ctrl *DiscountController) GetDiscountByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	discount, err := ctrl.discountService.GetDiscountByID(id)
	if err != nil {
		if errors.Is(err, service.ErrDiscountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Discount not found",
			})
			return
		}
		log.Error("Failed to fetch discount", err, map[string]interface{}{
			"discount_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch discount",
		})
		return
	}

	c.JSON(http.StatusOK, discountResponse(discount))
}

// CreateDiscount creates a discount (Admin only)
// POST /api/v1/admin/discounts
func (ctrl *DiscountController) CreateDiscount(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid discount creation request", map[string]interface{}{
			"error": err.Error(),
		})
		if fields := apperrors.ParseBindingError(err); fields != nil {
			apperrors.RespondWithValidationError(c, fields)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	discount, err := ctrl.discountService.CreateDiscount(req.toInput())
	if err != nil {
		if isDiscountValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
			return
		}
		log.Error("Failed to create discount", err, map[string]interface{}{
			"name": req.Name,
		})
		apperrors.RespondWithParsed(c, apperrors.ParseError(err, "create discount"))
		return
	}

	log.Info("Discount created", map[string]interface{}{
		"discount_id": discount.ID,
		"name":        discount.Name,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Discount created successfully",
		"discount": discount,
		"status":   discount.StatusAt(time.Now()),
	})
}

// UpdateDiscount replaces a discount and its scope rows (Admin only)
// PUT /api/v1/admin/discounts/:id
func (ctrl *DiscountController) UpdateDiscount(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid discount update request", map[string]interface{}{
			"error": err.Error(),
		})
		if fields := apperrors.ParseBindingError(err); fields != nil {
			apperrors.RespondWithValidationError(c, fields)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	discount, err := ctrl.discountService.UpdateDiscount(id, req.toInput())
	if err != nil {
		if errors.Is(err, service.ErrDiscountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Discount not found",
			})
			return
		}
		if isDiscountValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
			return
		}
		log.Error("Failed to update discount", err, map[string]interface{}{
			"discount_id": id,
		})
		apperrors.RespondWithParsed(c, apperrors.ParseError(err, "update discount"))
		return
	}

	log.Info("Discount updated", map[string]interface{}{
		"discount_id": discount.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":  "Discount updated successfully",
		"discount": discount,
		"status":   discount.StatusAt(time.Now()),
	})
}

// DeleteDiscount removes a discount and its scope rows (Admin only)
// DELETE /api/v1/admin/discounts/:id
func (ctrl *DiscountController) DeleteDiscount(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.discountService.DeleteDiscount(id); err != nil {
		if errors.Is(err, service.ErrDiscountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Discount not found",
			})
			return
		}
		log.Error("Failed to delete discount", err, map[string]interface{}{
			"discount_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete discount",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Discount deleted successfully",
	})
}

type ToggleActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// ToggleActive flips the manual active switch (Admin only)
// PATCH /api/v1/admin/discounts/:id/active
func (ctrl *DiscountController) ToggleActive(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ToggleActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := ctrl.discountService.ToggleActive(id, *req.IsActive); err != nil {
		if errors.Is(err, service.ErrDiscountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Discount not found",
			})
			return
		}
		log.Error("Failed to toggle discount", err, map[string]interface{}{
			"discount_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to toggle discount",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Discount toggled successfully",
		"is_active": *req.IsActive,
	})
}

type RedeemCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

// RedeemCoupon validates a coupon code and consumes one use
// POST /api/v1/coupons/redeem
func (ctrl *DiscountController) RedeemCoupon(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RedeemCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	discount, err := ctrl.discountService.RedeemCoupon(req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCouponNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Coupon not found",
			})
		case errors.Is(err, service.ErrCouponNotActive):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Coupon is not active",
			})
		case errors.Is(err, service.ErrCouponExhausted):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Coupon usage limit reached",
			})
		default:
			log.Error("Failed to redeem coupon", err, map[string]interface{}{
				"code": req.Code,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to redeem coupon",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Coupon redeemed successfully",
		"discount": discount,
	})
}

func isDiscountValidationError(err error) bool {
	return errors.Is(err, service.ErrDiscountNameRequired) ||
		errors.Is(err, service.ErrInvalidDateRange) ||
		errors.Is(err, service.ErrCouponCodeRequired) ||
		errors.Is(err, service.ErrCouponTypeRequired) ||
		errors.Is(err, service.ErrValueOutOfRange) ||
		errors.Is(err, service.ErrNoCategoriesSelected) ||
		errors.Is(err, service.ErrNoProductsSelected)
}
