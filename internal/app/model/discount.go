package model

import (
	"time"

	"gorm.io/gorm"
)

type DiscountType string
type DiscountScope string
type DiscountStatus string
type CouponValueType string

const (
	DiscountTypePercent      DiscountType = "percent"
	DiscountTypeMoney        DiscountType = "money"
	DiscountTypeFreeShipping DiscountType = "free_shipping"
	DiscountTypeCoupon       DiscountType = "coupon"

	ScopeAllItems   DiscountScope = "all_items"
	ScopeCategories DiscountScope = "categories"
	ScopeProducts   DiscountScope = "products"
	ScopeCoupon     DiscountScope = "coupon"

	StatusInactive  DiscountStatus = "inactive"
	StatusScheduled DiscountStatus = "scheduled"
	StatusActive    DiscountStatus = "active"
	StatusExpired   DiscountStatus = "expired"

	CouponValuePercent CouponValueType = "percent"
	CouponValueMoney   CouponValueType = "money"
)

// Discount is a promotion applied automatically by scope or gated behind
// a coupon code. Exactly one of the four child records is populated,
// determined by the scope/type combination.
type Discount struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Name         string         `gorm:"not null" json:"name"`
	Description  string         `gorm:"type:text" json:"description"`
	DiscountType DiscountType   `gorm:"type:varchar(20);not null" json:"discount_type"`
	Scope        DiscountScope  `gorm:"type:varchar(20);not null" json:"scope"`
	StartDate    time.Time      `gorm:"not null" json:"start_date"`
	EndDate      time.Time      `gorm:"not null" json:"end_date"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	AllItems   *DiscountAllItems  `gorm:"foreignKey:DiscountID;constraint:OnDelete:CASCADE" json:"all_items,omitempty"`
	Categories []DiscountCategory `gorm:"foreignKey:DiscountID;constraint:OnDelete:CASCADE" json:"categories,omitempty"`
	Products   []DiscountProduct  `gorm:"foreignKey:DiscountID;constraint:OnDelete:CASCADE" json:"products,omitempty"`
	Coupon     *DiscountCoupon    `gorm:"foreignKey:DiscountID;constraint:OnDelete:CASCADE" json:"coupon,omitempty"`
}

func (Discount) TableName() string {
	return "discounts"
}

// StatusAt derives the runtime status of the discount at the given time.
// Comparison is at day granularity: the discount stays active through the
// whole calendar day of its end date.
func (d *Discount) StatusAt(now time.Time) DiscountStatus {
	if !d.IsActive {
		return StatusInactive
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := time.Date(d.StartDate.Year(), d.StartDate.Month(), d.StartDate.Day(), 0, 0, 0, 0, now.Location())
	end := time.Date(d.EndDate.Year(), d.EndDate.Month(), d.EndDate.Day(), 23, 59, 59, 0, now.Location())
	if today.Before(start) {
		return StatusScheduled
	}
	if today.After(end) {
		return StatusExpired
	}
	return StatusActive
}

// DiscountAllItems holds the single value for an all-items discount.
type DiscountAllItems struct {
	ID            uint    `gorm:"primarykey" json:"id"`
	DiscountID    uint    `gorm:"index;not null" json:"discount_id"`
	DiscountValue float64 `gorm:"not null" json:"discount_value"`
}

func (DiscountAllItems) TableName() string {
	return "discount_all_items"
}

// DiscountCategory is one targeted category with its own value override.
type DiscountCategory struct {
	ID            uint    `gorm:"primarykey" json:"id"`
	DiscountID    uint    `gorm:"index;not null" json:"discount_id"`
	CategoryID    uint    `gorm:"index;not null" json:"category_id"`
	DiscountValue float64 `gorm:"not null" json:"discount_value"`

	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (DiscountCategory) TableName() string {
	return "discount_categories"
}

// DiscountProduct is one targeted product with its own value override.
type DiscountProduct struct {
	ID            uint    `gorm:"primarykey" json:"id"`
	DiscountID    uint    `gorm:"index;not null" json:"discount_id"`
	ProductID     uint    `gorm:"index;not null" json:"product_id"`
	DiscountValue float64 `gorm:"not null" json:"discount_value"`

	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (DiscountProduct) TableName() string {
	return "discount_products"
}

// DiscountCoupon gates a discount behind a user-entered code. UsageLimit
// nil means unlimited; UsageCount is incremented on every redemption and
// reset to zero when the discount is edited.
type DiscountCoupon struct {
	ID                 uint            `gorm:"primarykey" json:"id"`
	DiscountID         uint            `gorm:"index;not null" json:"discount_id"`
	Code               string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_discount_coupons_code" json:"code"`
	CouponDiscountType CouponValueType `gorm:"type:varchar(10);not null" json:"coupon_discount_type"`
	DiscountValue      float64         `gorm:"not null" json:"discount_value"`
	UsageLimit         *int            `json:"usage_limit"`
	UsageCount         int             `gorm:"default:0" json:"usage_count"`
}

func (DiscountCoupon) TableName() string {
	return "discount_coupons"
}
