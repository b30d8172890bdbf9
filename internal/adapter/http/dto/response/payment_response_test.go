package response

import (
	"testing"
	"time"

	"marketplace_pagamentos/internal/domain/entities"
)

func TestFromPaymentRecord(t *testing.T) {
	now := time.Now().UTC()

	p := entities.PaymentRecord{
		ID:                "led-1",
		ProviderPaymentID: "prov-1",
		OrderID:           "order-1",
		Status:            entities.PaymentStatusApproved,
		Amount:            11440,
		OriginalAmount:    10000,
		Currency:          "BRL",
		AuthorizationCode: "auth-1",
		Provider:          "cielo",
		Installments:      3,
		InstallmentAmount: 3813,
		HasInterest:       true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	res := FromPaymentRecord(p)
	if !res.Success {
		t.Fatalf("approved record must be successful: %+v", res)
	}
	if res.PaymentID != "led-1" || res.ProviderPaymentID != "prov-1" || res.OrderID != "order-1" {
		t.Fatalf("unexpected ids: %+v", res)
	}
	if res.Status != "approved" || res.Amount != 11440 || res.OriginalAmount != 10000 {
		t.Fatalf("unexpected fields: %+v", res)
	}
	if res.Installments != 3 || res.InstallmentAmount != 3813 || !res.HasInterest {
		t.Fatalf("unexpected installment data: %+v", res)
	}
	if !res.CreatedAt.Equal(now) || !res.UpdatedAt.Equal(now) {
		t.Fatalf("unexpected timestamps: %+v", res)
	}
}

func TestFromPaymentRecord_SuccessFlag(t *testing.T) {
	cases := []struct {
		status entities.PaymentStatus
		want   bool
	}{
		{entities.PaymentStatusApproved, true},
		{entities.PaymentStatusPending, true},
		{entities.PaymentStatusDeclined, false},
		{entities.PaymentStatusError, false},
		{entities.PaymentStatusCancelled, false},
		{entities.PaymentStatusPartiallyRefunded, false},
	}
	for _, tc := range cases {
		res := FromPaymentRecord(entities.PaymentRecord{ID: "led-1", Status: tc.status})
		if res.Success != tc.want {
			t.Fatalf("status %s: expected success=%v, got %v", tc.status, tc.want, res.Success)
		}
	}
}

func TestFromPaymentRecords(t *testing.T) {
	if got := FromPaymentRecords(nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", got)
	}

	res := FromPaymentRecords([]entities.PaymentRecord{{ID: "a"}, {ID: "b"}})
	if len(res) != 2 || res[0].PaymentID != "a" || res[1].PaymentID != "b" {
		t.Fatalf("unexpected mapping: %+v", res)
	}
}

func TestFromProviderStatus(t *testing.T) {
	res := FromProviderStatus(entities.ProviderStatusResult{
		ProviderPaymentID: "prov-1",
		Status:            entities.PaymentStatusPending,
		StatusDescription: "ATIVA",
	})
	if res.ProviderPaymentID != "prov-1" || res.Status != "pending" || res.StatusDescription != "ATIVA" {
		t.Fatalf("unexpected mapping: %+v", res)
	}
}
