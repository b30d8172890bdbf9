package request

import (
	"testing"

	"marketplace_pagamentos/internal/domain/entities"
)

func TestChargeCreateRequest_ToEntity(t *testing.T) {
	r := ChargeCreateRequest{
		OrderID:          " order-1 ",
		Amount:           10000,
		Currency:         " brl ",
		Provider:         " cielo ",
		Description:      " Pedido 42 ",
		Installments:     3,
		InstallmentTotal: 11440,
		Customer: CustomerRequest{
			Name:     " Ana Souza ",
			Document: " 12345678900 ",
			Email:    " ana@test.com ",
			Address:  AddressRequest{City: "Sao Paulo", State: "SP"},
		},
		PaymentMethod: PaymentMethodRequest{
			Type:       " Credit ",
			CardNumber: "4111111111111111",
			CardBrand:  "Visa",
		},
	}

	e := r.ToEntity()
	if e.OrderID != "order-1" || e.Provider != "cielo" || e.Description != "Pedido 42" {
		t.Fatalf("unexpected trimming: %+v", e)
	}
	if e.Currency != "BRL" {
		t.Fatalf("expected uppercased currency, got %q", e.Currency)
	}
	if e.Amount != 10000 || e.Installments != 3 || e.InstallmentTotal != 11440 {
		t.Fatalf("unexpected amounts: %+v", e)
	}
	if e.Customer.Name != "Ana Souza" || e.Customer.Document != "12345678900" || e.Customer.Email != "ana@test.com" {
		t.Fatalf("unexpected customer: %+v", e.Customer)
	}
	if e.Customer.Address.City != "Sao Paulo" || e.Customer.Address.State != "SP" {
		t.Fatalf("unexpected address: %+v", e.Customer.Address)
	}
	if e.Method.Type != entities.PaymentMethodCredit {
		t.Fatalf("expected lowercased method type, got %q", e.Method.Type)
	}
	if e.Method.CardNumber != "4111111111111111" || e.Method.CardBrand != "Visa" {
		t.Fatalf("unexpected method: %+v", e.Method)
	}
}
