package model

import (
	"time"
)

// Dimension is one size option of a product, carrying its own price.
// Dimension rows are replaced wholesale on every product edit, so their
// IDs are not stable across edits; variants are remapped against the
// freshly inserted rows on save.
type Dimension struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	ProductID uint      `gorm:"index;not null" json:"product_id"`
	Name      string    `gorm:"not null" json:"name"`
	Width     *float64  `json:"width"`
	Height    *float64  `json:"height"`
	Depth     *float64  `json:"depth"`
	Length    *float64  `json:"length"`
	Price     float64   `gorm:"not null" json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (Dimension) TableName() string {
	return "dimensions"
}
