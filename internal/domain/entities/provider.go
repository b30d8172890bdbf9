package entities

import (
	"errors"
	"time"
)

// Normalized provider failure conditions. Adapters translate every raw
// provider/network error into one of these before it reaches the
// orchestrator; business declines are results, never errors.
var (
	ErrProviderUnavailable      = errors.New("payment provider unavailable")
	ErrProviderUnauthorized     = errors.New("payment provider unauthorized")
	ErrTokenizationFailed       = errors.New("card tokenization failed")
	ErrPartialCancelUnsupported = errors.New("provider does not support partial cancellation")
)

// ProviderCredential is the bearer artifact a provider call authenticates
// with. OAuth providers fill Token/ExpiresAt; key-pair providers fill
// MerchantID/MerchantKey. Memory-only, owned by the credential manager.
type ProviderCredential struct {
	Provider    string
	Token       string
	MerchantID  string
	MerchantKey string
	ExpiresAt   time.Time
}

// Expired reports whether the credential is past expiry minus the given
// safety margin. Zero ExpiresAt means the credential never expires.
func (c ProviderCredential) Expired(now time.Time, margin time.Duration) bool {
	if c.ExpiresAt.IsZero() {
		return c.Token == "" && c.MerchantKey == ""
	}
	return !now.Before(c.ExpiresAt.Add(-margin))
}

// ProviderChargeResult is the normalized outcome of a provider charge
// call. Each adapter is solely responsible for mapping its wire format
// into this shape; the orchestrator never inspects provider-specific
// fields.
type ProviderChargeResult struct {
	ProviderPaymentID string
	Status            PaymentStatus
	AuthorizationCode string
	StatusDescription string
}

// ProviderCancelResult is the normalized outcome of a cancel/void call.
type ProviderCancelResult struct {
	Status            PaymentStatus
	CanceledAmount    int64
	StatusDescription string
}

// ProviderStatusResult is the normalized outcome of a read-only status
// query used for reconciliation.
type ProviderStatusResult struct {
	ProviderPaymentID string
	Status            PaymentStatus
	StatusDescription string
}
