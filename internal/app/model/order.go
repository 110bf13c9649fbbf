package model

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipping  OrderStatus = "shipping"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	UserID          uint           `gorm:"not null;index" json:"user_id"`
	Subtotal        float64        `gorm:"not null" json:"subtotal"`              // sum of unit prices before discounts
	DiscountTotal   float64        `gorm:"not null;default:0" json:"discount_total"`
	ShippingFee     float64        `gorm:"not null;default:0" json:"shipping_fee"`
	TotalAmount     float64        `gorm:"not null" json:"total_amount"`
	FreeShipping    bool           `gorm:"default:false" json:"free_shipping"`
	CouponCode      string         `gorm:"type:varchar(50)" json:"coupon_code,omitempty"`
	Status          OrderStatus    `gorm:"type:varchar(20);default:'pending'" json:"status"`
	ShippingAddress string         `gorm:"type:text" json:"shipping_address"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	OrderItems []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	OrderID         uint           `gorm:"not null;index" json:"order_id"`
	ProductID       uint           `gorm:"not null;index" json:"product_id"`
	VariantID       uint           `gorm:"not null;index" json:"variant_id"`
	Quantity        int            `gorm:"not null" json:"quantity"`
	UnitPrice       float64        `gorm:"not null" json:"unit_price"`     // dimension price at order time
	UnitDiscount    float64        `gorm:"not null;default:0" json:"unit_discount"`
	VariantSnapshot string         `gorm:"type:text" json:"variant_snapshot"` // e.g. "Medium / Walnut"
	CreatedAt       time.Time      `json:"created_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Order   Order   `gorm:"foreignKey:OrderID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Variant Variant `gorm:"foreignKey:VariantID" json:"variant,omitempty"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
