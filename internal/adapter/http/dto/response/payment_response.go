package response

import (
	"time"

	"marketplace_pagamentos/internal/domain/entities"
)

// PaymentResponse is the normalized API shape for a ledger record.
//
// Success reflects the business outcome: approved and pending attempts
// are successful; declined/error/cancelled are not. Callers never see a
// provider-specific error shape.
type PaymentResponse struct {
	Success           bool   `json:"success"`
	PaymentID         string `json:"payment_id"`
	ProviderPaymentID string `json:"provider_payment_id,omitempty"`
	OrderID           string `json:"order_id"`
	Status            string `json:"status"`
	Amount            int64  `json:"amount"`
	OriginalAmount    int64  `json:"original_amount"`
	Currency          string `json:"currency"`
	AuthorizationCode string `json:"authorization_code,omitempty"`
	Description       string `json:"description,omitempty"`
	Provider          string `json:"provider"`
	Installments      int    `json:"installments"`
	InstallmentAmount int64  `json:"installment_amount,omitempty"`
	HasInterest       bool   `json:"has_interest"`
	ReversedAmount    int64  `json:"reversed_amount,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromPaymentRecord(p entities.PaymentRecord) PaymentResponse {
	return PaymentResponse{
		Success:           p.Status == entities.PaymentStatusApproved || p.Status == entities.PaymentStatusPending,
		PaymentID:         p.ID,
		ProviderPaymentID: p.ProviderPaymentID,
		OrderID:           p.OrderID,
		Status:            string(p.Status),
		Amount:            p.Amount,
		OriginalAmount:    p.OriginalAmount,
		Currency:          p.Currency,
		AuthorizationCode: p.AuthorizationCode,
		Description:       p.Description,
		Provider:          p.Provider,
		Installments:      p.Installments,
		InstallmentAmount: p.InstallmentAmount,
		HasInterest:       p.HasInterest,
		ReversedAmount:    p.ReversedAmount,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func FromPaymentRecords(records []entities.PaymentRecord) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(records))
	for _, p := range records {
		out = append(out, FromPaymentRecord(p))
	}
	return out
}

// ProviderStatusResponse is the reconciliation query shape.
type ProviderStatusResponse struct {
	ProviderPaymentID string `json:"provider_payment_id"`
	Status            string `json:"status"`
	StatusDescription string `json:"status_description,omitempty"`
}

func FromProviderStatus(s entities.ProviderStatusResult) ProviderStatusResponse {
	return ProviderStatusResponse{
		ProviderPaymentID: s.ProviderPaymentID,
		Status:            string(s.Status),
		StatusDescription: s.StatusDescription,
	}
}
