package usecase

import (
	"cinema-tickets/internal/data/entity"

	"github.com/shopspring/decimal"
)

// Seat type multipliers applied to a showtime's base price.
var (
	premiumMultiplier = decimal.NewFromFloat(1.5)
	vipMultiplier     = decimal.NewFromInt(2)
)

// SeatPrice returns the price of a single seat for a showtime with the given
// base price. Regular and accessible seats cost the base price, premium seats
// 1.5x, VIP seats 2x. Unknown seat types fall back to the base price.
func SeatPrice(basePrice decimal.Decimal, seatType entity.SeatType) decimal.Decimal {
	switch seatType {
	case entity.SeatTypePremium:
		return basePrice.Mul(premiumMultiplier)
	case entity.SeatTypeVIP:
		return basePrice.Mul(vipMultiplier)
	default:
		return basePrice
	}
}
