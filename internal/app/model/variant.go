package model

import (
	"time"
)

// Variant is one sellable dimension × polish color combination with its
// own stock count. A variant has no price of its own; it always sells at
// its dimension's price.
type Variant struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	ProductID     uint      `gorm:"index;not null" json:"product_id"`
	DimensionID   uint      `gorm:"index;not null" json:"dimension_id"`
	PolishColorID uint      `gorm:"index;not null" json:"polish_color_id"`
	StockQuantity int       `gorm:"default:0" json:"stock_quantity"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Product     Product     `gorm:"foreignKey:ProductID" json:"-"`
	Dimension   Dimension   `gorm:"foreignKey:DimensionID" json:"dimension,omitempty"`
	PolishColor PolishColor `gorm:"foreignKey:PolishColorID" json:"polish_color,omitempty"`
}

func (Variant) TableName() string {
	return "variant_options"
}
