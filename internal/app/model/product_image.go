package model

import (
	"time"
)

// ProductImage belongs to a product and a polish color; all variants of
// the same color share one image set. At most one image per
// (product, color) pair may be primary.
type ProductImage struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	ProductID     uint      `gorm:"index;not null" json:"product_id"`
	PolishColorID uint      `gorm:"index;not null" json:"polish_color_id"`
	FileKey       string    `gorm:"not null" json:"file_key"`
	URL           string    `gorm:"not null" json:"url"`
	IsPrimary     bool      `gorm:"default:false" json:"is_primary"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Product     Product     `gorm:"foreignKey:ProductID" json:"-"`
	PolishColor PolishColor `gorm:"foreignKey:PolishColorID" json:"-"`
}

func (ProductImage) TableName() string {
	return "product_images"
}
