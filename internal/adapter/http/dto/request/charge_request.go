package request

import (
	"strings"

	"marketplace_pagamentos/internal/domain/entities"
)

type AddressRequest struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zip_code"`
	Country    string `json:"country"`
}

type CustomerRequest struct {
	Name     string         `json:"name" binding:"required"`
	Document string         `json:"document" binding:"required"`
	Email    string         `json:"email"`
	Phone    string         `json:"phone"`
	Address  AddressRequest `json:"address"`
}

type PaymentMethodRequest struct {
	Type           string `json:"type" binding:"required"`
	CardNumber     string `json:"card_number"`
	CardHolder     string `json:"card_holder"`
	CardExpiration string `json:"card_expiration"`
	CardBrand      string `json:"card_brand"`
	SecurityCode   string `json:"security_code"`
	CardToken      string `json:"card_token"`
}

// ChargeCreateRequest is the inbound payload for POST /payments.
//
// amount is the order total in minor units; installment_total is required
// when installments > 1 and must match the locally computed table.
type ChargeCreateRequest struct {
	OrderID          string               `json:"order_id" binding:"required"`
	Amount           int64                `json:"amount" binding:"required"`
	Currency         string               `json:"currency"`
	Provider         string               `json:"provider" binding:"required"`
	Description      string               `json:"description"`
	Installments     int                  `json:"installments"`
	InstallmentTotal int64                `json:"installment_total"`
	Customer         CustomerRequest      `json:"customer" binding:"required"`
	PaymentMethod    PaymentMethodRequest `json:"payment_method" binding:"required"`
}

func (r ChargeCreateRequest) ToEntity() entities.ChargeRequest {
	return entities.ChargeRequest{
		OrderID:          strings.TrimSpace(r.OrderID),
		Amount:           r.Amount,
		Currency:         strings.ToUpper(strings.TrimSpace(r.Currency)),
		Provider:         strings.TrimSpace(r.Provider),
		Description:      strings.TrimSpace(r.Description),
		Installments:     r.Installments,
		InstallmentTotal: r.InstallmentTotal,
		Customer: entities.Customer{
			Name:     strings.TrimSpace(r.Customer.Name),
			Document: strings.TrimSpace(r.Customer.Document),
			Email:    strings.TrimSpace(r.Customer.Email),
			Phone:    strings.TrimSpace(r.Customer.Phone),
			Address: entities.Address{
				Street:     r.Customer.Address.Street,
				Number:     r.Customer.Address.Number,
				Complement: r.Customer.Address.Complement,
				City:       r.Customer.Address.City,
				State:      r.Customer.Address.State,
				ZipCode:    r.Customer.Address.ZipCode,
				Country:    r.Customer.Address.Country,
			},
		},
		Method: entities.PaymentMethod{
			Type:           entities.PaymentMethodType(strings.ToLower(strings.TrimSpace(r.PaymentMethod.Type))),
			CardNumber:     r.PaymentMethod.CardNumber,
			CardHolder:     r.PaymentMethod.CardHolder,
			CardExpiration: r.PaymentMethod.CardExpiration,
			CardBrand:      r.PaymentMethod.CardBrand,
			SecurityCode:   r.PaymentMethod.SecurityCode,
			CardToken:      r.PaymentMethod.CardToken,
		},
	}
}

// CancelRequest is the optional body for the cancel route. A zero/absent
// amount cancels the full remaining value.
type CancelRequest struct {
	Amount int64 `json:"amount"`
}
