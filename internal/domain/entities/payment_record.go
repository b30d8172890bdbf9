package entities

import "time"

// PaymentStatus represents the normalized outcome of a charge attempt.
//
// State machine:
//   - pending  -> approved | declined | error
//   - approved -> cancelled | partially_refunded
//   - declined, error, cancelled are terminal
//
// A record never returns to pending. A declined/error attempt may be
// followed by a brand-new record for the same order; the two are linked
// only by the shared order id.

type PaymentStatus string

const (
	PaymentStatusPending           PaymentStatus = "pending"
	PaymentStatusApproved          PaymentStatus = "approved"
	PaymentStatusDeclined          PaymentStatus = "declined"
	PaymentStatusError             PaymentStatus = "error"
	PaymentStatusCancelled         PaymentStatus = "cancelled"
	PaymentStatusPartiallyRefunded PaymentStatus = "partially_refunded"
)

// Terminal reports whether no further transition is allowed from s.
func (s PaymentStatus) Terminal() bool {
	switch s {
	case PaymentStatusDeclined, PaymentStatusError, PaymentStatusCancelled:
		return true
	}
	return false
}

// Cancellable reports whether a cancel/void may still be issued for s.
func (s PaymentStatus) Cancellable() bool {
	switch s {
	case PaymentStatusApproved, PaymentStatusPending, PaymentStatusPartiallyRefunded:
		return true
	}
	return false
}

// PaymentRecord is the ledger entity persisted for every charge attempt.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (order_id-index): order_id
//   - GSI2 (provider_payment_id-index): provider_payment_id
//
// Monetary representation: integer minor-currency units (centavos).
// Records are never deleted; failed attempts persist with an error/declined
// status so the attempt stays auditable.

type PaymentRecord struct {
	ID                string        `json:"id"`
	ProviderPaymentID string        `json:"provider_payment_id,omitempty"`
	OrderID           string        `json:"order_id"`
	Status            PaymentStatus `json:"status"`
	Amount            int64         `json:"amount"`
	OriginalAmount    int64         `json:"original_amount"`
	Currency          string        `json:"currency"`
	AuthorizationCode string        `json:"authorization_code,omitempty"`
	Description       string        `json:"description,omitempty"`
	Provider          string        `json:"provider"`
	Installments      int           `json:"installments"`
	InstallmentAmount int64         `json:"installment_amount,omitempty"`
	HasInterest       bool          `json:"has_interest"`
	ReversedAmount    int64         `json:"reversed_amount,omitempty"`

	AuthorizedAt time.Time `json:"authorized_at,omitempty"`
	CapturedAt   time.Time `json:"captured_at,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PaymentRecordUpdate carries the partial fields a ledger update may set.
// Nil fields are left untouched.
type PaymentRecordUpdate struct {
	Status            *PaymentStatus
	ProviderPaymentID *string
	AuthorizationCode *string
	ReversedAmount    *int64
	Description       *string
}
