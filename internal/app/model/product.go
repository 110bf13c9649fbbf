package model

import (
	"strconv"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	CategoryID  uint           `gorm:"index;not null" json:"category_id"`
	BasePrice   float64        `gorm:"default:0" json:"base_price"` // fallback when no variants exist
	Tags        pq.StringArray `gorm:"type:text[]" json:"tags"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category   Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Dimensions []Dimension    `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"dimensions,omitempty"`
	Variants   []Variant      `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants,omitempty"`
	Colors     []PolishColor  `gorm:"many2many:product_polish_colors" json:"colors,omitempty"`
	Images     []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

// PriceRange returns the lowest and highest price across the product's
// variants. Variant prices come from their dimension; a product with no
// variants falls back to BasePrice, or zero.
func (p *Product) PriceRange() (min, max float64) {
	priced := false
	for _, v := range p.Variants {
		price := v.Dimension.Price
		if !priced || price < min {
			min = price
		}
		if !priced || price > max {
			max = price
		}
		priced = true
	}
	if !priced {
		return p.BasePrice, p.BasePrice
	}
	return min, max
}

// DisplayPrice formats the price range for listings, collapsing equal
// bounds to a single value: "1000–2500" or "1000".
func (p *Product) DisplayPrice() string {
	min, max := p.PriceRange()
	if min == max {
		return formatPrice(min)
	}
	return formatPrice(min) + "–" + formatPrice(max)
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
