package interfaces

import (
	"context"

	"marketplace_pagamentos/internal/domain/entities"
)

// IPaymentProvider abstracts one external payment provider (card acquirer
// or instant-payment rail) behind a uniform contract.
//
// Adapters are stateless translators: they own the provider wire format
// and never expose it past this boundary. Every call must carry a request
// timeout and must not retry internally -- retrying a charge is a caller
// policy because it risks a duplicate capture.
//
// Business declines come back as a ProviderChargeResult with a declined
// status and a nil error; only network/credential/infrastructure failures
// are errors (normalized to the entities.ErrProvider* sentinels).

type IPaymentProvider interface {
	Name() string

	// RequiresTokenization reports whether raw card data must be swapped
	// for an opaque token before charging.
	RequiresTokenization() bool

	// Tokenize exchanges raw card data for an opaque token. Side-effect
	// free on the ledger; idempotent per call.
	Tokenize(ctx context.Context, method entities.PaymentMethod, cred entities.ProviderCredential) (string, error)

	// Charge performs a single charge call. req.Amount is the final total
	// in minor units (interest already applied).
	Charge(ctx context.Context, req entities.ChargeRequest, cred entities.ProviderCredential) (entities.ProviderChargeResult, error)

	// Cancel voids or refunds amountMinorUnits (always > 0; the caller
	// resolves "full" before calling).
	Cancel(ctx context.Context, providerPaymentID string, amountMinorUnits int64, cred entities.ProviderCredential) (entities.ProviderCancelResult, error)

	// QueryStatus is a read-only reconciliation call.
	QueryStatus(ctx context.Context, providerPaymentID string, cred entities.ProviderCredential) (entities.ProviderStatusResult, error)
}
