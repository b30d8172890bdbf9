package interfaces

import (
	"context"
	"errors"

	"marketplace_pagamentos/internal/domain/entities"
)

// ErrRecordNotFound is returned by Update when the target record does
// not exist. Reads report absence with a zero-value record instead.
var ErrRecordNotFound = errors.New("payment record not found")

// IPaymentRepository abstracts the ledger persistence for PaymentRecord.
//
// Create assigns the internal id and must reject duplicate ids (dedup
// guard). Lookups return a zero-value record when nothing matches; only
// infrastructure failures surface as errors.

type IPaymentRepository interface {
	Create(ctx context.Context, p entities.PaymentRecord) (entities.PaymentRecord, error)
	GetByID(ctx context.Context, id string) (entities.PaymentRecord, error)
	GetByProviderPaymentID(ctx context.Context, providerPaymentID string) (entities.PaymentRecord, error)
	ListByOrderID(ctx context.Context, orderID string) ([]entities.PaymentRecord, error)
	Update(ctx context.Context, id string, upd entities.PaymentRecordUpdate) (entities.PaymentRecord, error)
}
