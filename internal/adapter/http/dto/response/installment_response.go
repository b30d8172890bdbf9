package response

import "marketplace_pagamentos/internal/domain/entities"

type InstallmentOptionResponse struct {
	Installments     int     `json:"installments"`
	Total            int64   `json:"total"`
	InstallmentValue int64   `json:"installment_value"`
	InterestRate     float64 `json:"interest_rate"`
	HasInterest      bool    `json:"has_interest"`
	Label            string  `json:"label"`
}

type InstallmentCalculationResponse struct {
	OriginalValue int64                       `json:"original_value"`
	Options       []InstallmentOptionResponse `json:"options"`
}

func FromInstallmentCalculation(c entities.InstallmentCalculation) InstallmentCalculationResponse {
	out := InstallmentCalculationResponse{
		OriginalValue: c.OriginalValue,
		Options:       make([]InstallmentOptionResponse, 0, len(c.Options)),
	}
	for _, o := range c.Options {
		out.Options = append(out.Options, InstallmentOptionResponse{
			Installments:     o.Installments,
			Total:            o.Total,
			InstallmentValue: o.InstallmentValue,
			InterestRate:     o.InterestRate,
			HasInterest:      o.HasInterest,
			Label:            o.Label,
		})
	}
	return out
}
