package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// CanTransitionTo enforces the payment state machine:
// pending -> completed | failed, completed -> refunded.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	switch s {
	case PaymentStatusPending:
		return next == PaymentStatusCompleted || next == PaymentStatusFailed
	case PaymentStatusCompleted:
		return next == PaymentStatusRefunded
	default:
		return false
	}
}

type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodDebitCard  PaymentMethod = "debit_card"
	PaymentMethodPaypal     PaymentMethod = "paypal"
	PaymentMethodCash       PaymentMethod = "cash"
)

// Payment is one-to-one with its booking. Amount must equal the booking
// total at creation time.
type Payment struct {
	Base
	BookingID     uuid.UUID       `db:"booking_id"`
	Amount        decimal.Decimal `db:"amount"`
	Method        PaymentMethod   `db:"payment_method"`
	Status        PaymentStatus   `db:"status"`
	TransactionID *string         `db:"transaction_id"`
	Details       *string         `db:"payment_details"`
}

// PaymentPatch lists the payment fields a gateway callback may update.
type PaymentPatch struct {
	Status        *PaymentStatus
	TransactionID *string
}
