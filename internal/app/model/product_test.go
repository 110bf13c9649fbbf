package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func variantAt(price float64) Variant {
	return Variant{Dimension: Dimension{Price: price}}
}

func TestProduct_PriceRange(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		wantMin float64
		wantMax float64
	}{
		{
			name: "Spread across variants",
			product: Product{
				Variants: []Variant{variantAt(2500), variantAt(1000), variantAt(1800)},
			},
			wantMin: 1000,
			wantMax: 2500,
		},
		{
			name: "Single variant collapses",
			product: Product{
				Variants: []Variant{variantAt(1000)},
			},
			wantMin: 1000,
			wantMax: 1000,
		},
		{
			name:    "No variants falls back to base price",
			product: Product{BasePrice: 750},
			wantMin: 750,
			wantMax: 750,
		},
		{
			name:    "No variants and no base price",
			product: Product{},
			wantMin: 0,
			wantMax: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			min, max := tt.product.PriceRange()
			assert.Equal(t, tt.wantMin, min)
			assert.Equal(t, tt.wantMax, max)
		})
	}
}

func TestProduct_DisplayPrice(t *testing.T) {
	ranged := Product{Variants: []Variant{variantAt(1000), variantAt(2500)}}
	assert.Equal(t, "1000–2500", ranged.DisplayPrice())

	flat := Product{Variants: []Variant{variantAt(1000), variantAt(1000)}}
	assert.Equal(t, "1000", flat.DisplayPrice())

	empty := Product{}
	assert.Equal(t, "0", empty.DisplayPrice())
}
