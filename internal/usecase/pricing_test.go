package usecase

import (
	"testing"

	"cinema-tickets/internal/data/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSeatPrice(t *testing.T) {
	base := decimal.NewFromFloat(10.00)

	tests := []struct {
		name     string
		seatType entity.SeatType
		want     string
	}{
		{"regular costs base price", entity.SeatTypeRegular, "10"},
		{"premium costs 1.5x", entity.SeatTypePremium, "15"},
		{"vip costs 2x", entity.SeatTypeVIP, "20"},
		{"accessible costs base price", entity.SeatTypeAccessible, "10"},
		{"unknown type falls back to base price", entity.SeatType("recliner"), "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SeatPrice(base, tt.seatType)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got.String(), tt.want)
		})
	}
}

func TestSeatPriceKeepsCents(t *testing.T) {
	base := decimal.NewFromFloat(10.99)

	vip := SeatPrice(base, entity.SeatTypeVIP)
	assert.True(t, vip.Equal(decimal.RequireFromString("21.98")), "got %s", vip.String())

	premium := SeatPrice(base, entity.SeatTypePremium)
	assert.True(t, premium.Equal(decimal.RequireFromString("16.485")), "got %s", premium.String())
}
