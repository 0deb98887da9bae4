package response

import (
	"time"

	"cinema-tickets/internal/data/entity"

	"github.com/shopspring/decimal"
)

type BookedSeatResponse struct {
	SeatID     string          `json:"seat_id"`
	SeatRow    string          `json:"seat_row"`
	SeatNumber int             `json:"seat_number"`
	SeatType   entity.SeatType `json:"seat_type"`
	Price      decimal.Decimal `json:"price"`
}

type BookingResponse struct {
	ID               string               `json:"id"`
	Reference        string               `json:"booking_reference"`
	UserID           string               `json:"user_id"`
	ShowtimeID       string               `json:"showtime_id"`
	Status           entity.BookingStatus `json:"status"`
	TotalPrice       decimal.Decimal      `json:"total_price"`
	Seats            []BookedSeatResponse `json:"seats,omitempty"`
	Payment          *PaymentResponse     `json:"payment,omitempty"`
	CreatedBySupport bool                 `json:"created_by_support"`
	CreatedAt        time.Time            `json:"created_at"`
}

type PaymentResponse struct {
	ID            string               `json:"id"`
	BookingID     string               `json:"booking_id"`
	Amount        decimal.Decimal      `json:"amount"`
	Method        entity.PaymentMethod `json:"payment_method"`
	Status        entity.PaymentStatus `json:"status"`
	TransactionID *string              `json:"transaction_id,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

func PaymentToResponse(payment *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            payment.ID.String(),
		BookingID:     payment.BookingID.String(),
		Amount:        payment.Amount,
		Method:        payment.Method,
		Status:        payment.Status,
		TransactionID: payment.TransactionID,
		CreatedAt:     payment.CreatedAt,
	}
}

func BookingToResponse(booking *entity.Booking, seats []BookedSeatResponse, payment *entity.Payment) BookingResponse {
	resp := BookingResponse{
		ID:               booking.ID.String(),
		Reference:        booking.Reference,
		UserID:           booking.UserID.String(),
		ShowtimeID:       booking.ShowtimeID.String(),
		Status:           booking.Status,
		TotalPrice:       booking.TotalPrice,
		Seats:            seats,
		CreatedBySupport: booking.CreatedBySupport,
		CreatedAt:        booking.CreatedAt,
	}

	if payment != nil {
		paymentResp := PaymentToResponse(payment)
		resp.Payment = &paymentResp
	}

	return resp
}
