package model

import (
	"time"

	"gorm.io/gorm"
)

// PolishColor is a catalog-wide finish option. Products reference colors
// through the product_polish_colors join table.
type PolishColor struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"not null;uniqueIndex:idx_polish_colors_name" json:"name"`
	HexCode     string         `gorm:"type:varchar(7)" json:"hex_code"` // "#RRGGBB", optional
	Description string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (PolishColor) TableName() string {
	return "polish_colors"
}
