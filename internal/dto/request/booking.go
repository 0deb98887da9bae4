package request

import "github.com/shopspring/decimal"

type CreateBookingRequest struct {
	ShowtimeID string   `json:"showtime_id" validate:"required,uuid4"`
	SeatIDs    []string `json:"seat_ids" validate:"required,min=1,dive,uuid4"`
}

type UpdateBookingRequest struct {
	Status *string `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed cancelled completed"`
}

type CreatePaymentRequest struct {
	BookingID string          `json:"booking_id" validate:"required,uuid4"`
	Amount    decimal.Decimal `json:"amount" validate:"required"`
	Method    string          `json:"payment_method" validate:"required,oneof=credit_card debit_card paypal cash"`
	Details   *string         `json:"payment_details,omitempty"`
}

type UpdatePaymentRequest struct {
	Status        *string `json:"status,omitempty" validate:"omitempty,oneof=pending completed failed refunded"`
	TransactionID *string `json:"transaction_id,omitempty"`
}
