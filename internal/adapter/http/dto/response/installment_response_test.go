package response

import (
	"testing"

	"marketplace_pagamentos/internal/domain/entities"
)

func TestFromInstallmentCalculation(t *testing.T) {
	calc := entities.InstallmentCalculation{
		OriginalValue: 10000,
		Options: []entities.InstallmentOption{
			{Installments: 1, Total: 10000, InstallmentValue: 10000, Label: "1x de R$ 100,00 sem juros"},
			{Installments: 3, Total: 11440, InstallmentValue: 3813, InterestRate: 14.40, HasInterest: true, Label: "3x de R$ 38,13 com juros"},
		},
	}

	res := FromInstallmentCalculation(calc)
	if res.OriginalValue != 10000 || len(res.Options) != 2 {
		t.Fatalf("unexpected mapping: %+v", res)
	}
	if res.Options[0].Installments != 1 || res.Options[0].HasInterest {
		t.Fatalf("unexpected first option: %+v", res.Options[0])
	}
	last := res.Options[1]
	if last.Total != 11440 || last.InstallmentValue != 3813 || !last.HasInterest || last.InterestRate != 14.40 {
		t.Fatalf("unexpected interest option: %+v", last)
	}
	if last.Label != "3x de R$ 38,13 com juros" {
		t.Fatalf("unexpected label: %q", last.Label)
	}
}

func TestFromInstallmentCalculation_Empty(t *testing.T) {
	res := FromInstallmentCalculation(entities.InstallmentCalculation{OriginalValue: 500})
	if res.OriginalValue != 500 || res.Options == nil || len(res.Options) != 0 {
		t.Fatalf("expected empty non-nil options, got %+v", res)
	}
}
