package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDiscount_StatusAt(t *testing.T) {
	now := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)
	day := 24 * time.Hour

	tests := []struct {
		name     string
		discount Discount
		want     DiscountStatus
	}{
		{
			name:     "Inactive wins over dates",
			discount: Discount{IsActive: false, StartDate: now.Add(-day), EndDate: now.Add(day)},
			want:     StatusInactive,
		},
		{
			name:     "Starts tomorrow",
			discount: Discount{IsActive: true, StartDate: now.Add(day), EndDate: now.Add(10 * day)},
			want:     StatusScheduled,
		},
		{
			name:     "Ended yesterday",
			discount: Discount{IsActive: true, StartDate: now.Add(-10 * day), EndDate: now.Add(-day)},
			want:     StatusExpired,
		},
		{
			name:     "In window",
			discount: Discount{IsActive: true, StartDate: now.Add(-day), EndDate: now.Add(day)},
			want:     StatusActive,
		},
		{
			name:     "Starts and ends today",
			discount: Discount{IsActive: true, StartDate: now, EndDate: now},
			want:     StatusActive,
		},
		{
			name: "End date earlier today still active",
			discount: Discount{
				IsActive:  true,
				StartDate: now.Add(-10 * day),
				EndDate:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			},
			want: StatusActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.discount.StatusAt(now))
		})
	}
}
