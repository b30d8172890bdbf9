package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"marketplace_pagamentos/internal/domain/entities"
	"marketplace_pagamentos/internal/usecase/interfaces"
)

const ProviderCielo = "cielo"

var ErrMissingCieloBaseURL = errors.New("missing CIELO_BASE_URL")

// Cielo sale status codes.
const (
	cieloStatusNotFinished      = 0
	cieloStatusAuthorized       = 1
	cieloStatusPaymentConfirmed = 2
	cieloStatusDenied           = 3
	cieloStatusVoided           = 10
	cieloStatusRefunded         = 11
	cieloStatusPending          = 12
	cieloStatusAborted          = 13
	cieloStatusScheduled        = 20
)

// CieloGateway charges cards through the Cielo e-commerce API.
//
// Authentication is the MerchantId/MerchantKey header pair carried by the
// credential; raw card data must be swapped for a CardToken before the
// sale call. Amounts are already in centavos on both sides.
type CieloGateway struct {
	baseURL    string
	httpClient *http.Client
}

var _ interfaces.IPaymentProvider = (*CieloGateway)(nil)

func NewCieloGateway(baseURL string) (*CieloGateway, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		log.Printf("[payment][cielo] missing CIELO_BASE_URL")
		return nil, ErrMissingCieloBaseURL
	}
	return &CieloGateway{
		baseURL:    baseURL,
		httpClient: newProviderHTTPClient(chargeTimeout),
	}, nil
}

func (g *CieloGateway) Name() string { return ProviderCielo }

func (g *CieloGateway) RequiresTokenization() bool { return true }

type cieloCardTokenRequest struct {
	CustomerName   string `json:"CustomerName"`
	CardNumber     string `json:"CardNumber"`
	Holder         string `json:"Holder"`
	ExpirationDate string `json:"ExpirationDate"`
	Brand          string `json:"Brand"`
}

type cieloCardTokenResponse struct {
	CardToken string `json:"CardToken"`
}

func (g *CieloGateway) Tokenize(ctx context.Context, method entities.PaymentMethod, cred entities.ProviderCredential) (string, error) {
	log.Printf("[payment][cielo] tokenize start brand=%s", method.CardBrand)
	payload := cieloCardTokenRequest{
		CustomerName:   method.CardHolder,
		CardNumber:     method.CardNumber,
		Holder:         method.CardHolder,
		ExpirationDate: method.CardExpiration,
		Brand:          method.CardBrand,
	}

	var out cieloCardTokenResponse
	if err := g.do(ctx, http.MethodPost, "/1/card/", cred, payload, &out); err != nil {
		return "", errors.Join(entities.ErrTokenizationFailed, err)
	}
	if out.CardToken == "" {
		return "", fmt.Errorf("%w: empty card token", entities.ErrTokenizationFailed)
	}
	log.Printf("[payment][cielo] tokenize success")
	return out.CardToken, nil
}

type cieloSaleRequest struct {
	MerchantOrderID string        `json:"MerchantOrderId"`
	Customer        cieloCustomer `json:"Customer"`
	Payment         cieloPayment  `json:"Payment"`
}

type cieloCustomer struct {
	Name         string `json:"Name"`
	Identity     string `json:"Identity,omitempty"`
	IdentityType string `json:"IdentityType,omitempty"`
	Email        string `json:"Email,omitempty"`
}

type cieloPayment struct {
	Type           string     `json:"Type"`
	Amount         int64      `json:"Amount"`
	Installments   int        `json:"Installments"`
	Capture        bool       `json:"Capture"`
	SoftDescriptor string     `json:"SoftDescriptor,omitempty"`
	CreditCard     *cieloCard `json:"CreditCard,omitempty"`
	DebitCard      *cieloCard `json:"DebitCard,omitempty"`
}

type cieloCard struct {
	CardToken    string `json:"CardToken"`
	SecurityCode string `json:"SecurityCode,omitempty"`
	Brand        string `json:"Brand"`
}

type cieloSaleResponse struct {
	Payment struct {
		PaymentID         string `json:"PaymentId"`
		Status            int    `json:"Status"`
		Amount            int64  `json:"Amount"`
		CapturedAmount    int64  `json:"CapturedAmount"`
		VoidedAmount      int64  `json:"VoidedAmount"`
		AuthorizationCode string `json:"AuthorizationCode"`
		ReturnCode        string `json:"ReturnCode"`
		ReturnMessage     string `json:"ReturnMessage"`
	} `json:"Payment"`
}

func (g *CieloGateway) Charge(ctx context.Context, req entities.ChargeRequest, cred entities.ProviderCredential) (entities.ProviderChargeResult, error) {
	log.Printf("[payment][cielo] charge start order_id=%s amount=%d installments=%d", req.OrderID, req.Amount, req.Installments)

	card := &cieloCard{
		CardToken:    req.Method.CardToken,
		SecurityCode: req.Method.SecurityCode,
		Brand:        req.Method.CardBrand,
	}
	pay := cieloPayment{
		Amount:         req.Amount,
		Installments:   req.Installments,
		Capture:        true,
		SoftDescriptor: softDescriptor(req.Description),
	}
	if req.Method.Type == entities.PaymentMethodDebit {
		pay.Type = "DebitCard"
		pay.DebitCard = card
	} else {
		pay.Type = "CreditCard"
		pay.CreditCard = card
	}

	payload := cieloSaleRequest{
		MerchantOrderID: req.OrderID,
		Customer: cieloCustomer{
			Name:         req.Customer.Name,
			Identity:     req.Customer.Document,
			IdentityType: "CPF",
			Email:        req.Customer.Email,
		},
		Payment: pay,
	}

	var out cieloSaleResponse
	if err := g.do(ctx, http.MethodPost, "/1/sales/", cred, payload, &out); err != nil {
		return entities.ProviderChargeResult{}, err
	}

	status := mapCieloStatus(out.Payment.Status)
	log.Printf("[payment][cielo] charge done order_id=%s payment_id=%s cielo_status=%d status=%s",
		req.OrderID, out.Payment.PaymentID, out.Payment.Status, status)
	return entities.ProviderChargeResult{
		ProviderPaymentID: out.Payment.PaymentID,
		Status:            status,
		AuthorizationCode: out.Payment.AuthorizationCode,
		StatusDescription: out.Payment.ReturnMessage,
	}, nil
}

type cieloVoidResponse struct {
	Status        int    `json:"Status"`
	ReturnCode    string `json:"ReturnCode"`
	ReturnMessage string `json:"ReturnMessage"`
}

func (g *CieloGateway) Cancel(ctx context.Context, providerPaymentID string, amountMinorUnits int64, cred entities.ProviderCredential) (entities.ProviderCancelResult, error) {
	log.Printf("[payment][cielo] cancel start payment_id=%s amount=%d", providerPaymentID, amountMinorUnits)

	path := fmt.Sprintf("/1/sales/%s/void?amount=%d", providerPaymentID, amountMinorUnits)
	var out cieloVoidResponse
	if err := g.do(ctx, http.MethodPut, path, cred, nil, &out); err != nil {
		return entities.ProviderCancelResult{}, err
	}

	status := mapCieloStatus(out.Status)
	if status != entities.PaymentStatusCancelled {
		return entities.ProviderCancelResult{}, fmt.Errorf("%w: void not accepted (status=%d %s)", entities.ErrProviderUnavailable, out.Status, out.ReturnMessage)
	}
	log.Printf("[payment][cielo] cancel done payment_id=%s", providerPaymentID)
	return entities.ProviderCancelResult{
		Status: status,
		// Cielo does not echo the voided amount; it voids what was asked.
		CanceledAmount:    amountMinorUnits,
		StatusDescription: out.ReturnMessage,
	}, nil
}

func (g *CieloGateway) QueryStatus(ctx context.Context, providerPaymentID string, cred entities.ProviderCredential) (entities.ProviderStatusResult, error) {
	var out cieloSaleResponse
	if err := g.do(ctx, http.MethodGet, "/1/sales/"+providerPaymentID, cred, nil, &out); err != nil {
		return entities.ProviderStatusResult{}, err
	}

	status := mapCieloStatus(out.Payment.Status)
	// Status 11 covers both full and partial refunds; the voided amount
	// tells them apart.
	if out.Payment.Status == cieloStatusRefunded &&
		out.Payment.VoidedAmount > 0 && out.Payment.VoidedAmount < out.Payment.Amount {
		status = entities.PaymentStatusPartiallyRefunded
	}
	return entities.ProviderStatusResult{
		ProviderPaymentID: providerPaymentID,
		Status:            status,
		StatusDescription: out.Payment.ReturnMessage,
	}, nil
}

func (g *CieloGateway) do(ctx context.Context, method, path string, cred entities.ProviderCredential, payload, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%w: encoding request: %v", entities.ErrProviderUnavailable, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%w: %v", entities.ErrProviderUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("MerchantId", cred.MerchantID)
	req.Header.Set("MerchantKey", cred.MerchantKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", entities.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: status=%d", entities.ErrProviderUnauthorized, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status=%d body=%s", entities.ErrProviderUnavailable, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", entities.ErrProviderUnavailable, err)
	}
	return nil
}

func mapCieloStatus(status int) entities.PaymentStatus {
	switch status {
	case cieloStatusPaymentConfirmed:
		return entities.PaymentStatusApproved
	case cieloStatusDenied, cieloStatusAborted:
		return entities.PaymentStatusDeclined
	case cieloStatusVoided, cieloStatusRefunded:
		return entities.PaymentStatusCancelled
	case cieloStatusNotFinished, cieloStatusAuthorized, cieloStatusPending, cieloStatusScheduled:
		return entities.PaymentStatusPending
	default:
		return entities.PaymentStatusError
	}
}

// softDescriptor trims the charge description to the 13 chars Cielo
// prints on the customer statement.
func softDescriptor(description string) string {
	d := strings.TrimSpace(description)
	if len(d) > 13 {
		return d[:13]
	}
	return d
}
