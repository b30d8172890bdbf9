package payments

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/refund"

	"marketplace_pagamentos/internal/domain/entities"
	"marketplace_pagamentos/internal/usecase/interfaces"
)

const ProviderMercadoPago = "mercadopago"

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")

// MercadoPagoGateway charges through the Mercado Pago SDK. The card token
// is produced client-side (checkout bricks), so no tokenization step is
// required here. Amounts cross the SDK boundary as decimal reais; the
// internal model stays in centavos.
type MercadoPagoGateway struct {
	payments payment.Client
	refunds  refund.Client
}

var _ interfaces.IPaymentProvider = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken string) (*MercadoPagoGateway, error) {
	if accessToken == "" {
		log.Printf("[payment][mercadopago] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		log.Printf("[payment][mercadopago] failed creating sdk config err=%v", err)
		return nil, err
	}
	log.Printf("[payment][mercadopago] client initialized")

	return &MercadoPagoGateway{
		payments: payment.NewClient(cfg),
		refunds:  refund.NewClient(cfg),
	}, nil
}

func (g *MercadoPagoGateway) Name() string { return ProviderMercadoPago }

func (g *MercadoPagoGateway) RequiresTokenization() bool { return false }

func (g *MercadoPagoGateway) Tokenize(_ context.Context, method entities.PaymentMethod, _ entities.ProviderCredential) (string, error) {
	return method.CardToken, nil
}

func (g *MercadoPagoGateway) Charge(ctx context.Context, req entities.ChargeRequest, _ entities.ProviderCredential) (entities.ProviderChargeResult, error) {
	log.Printf("[payment][mercadopago] charge start order_id=%s amount=%d installments=%d", req.OrderID, req.Amount, req.Installments)

	request := payment.Request{
		TransactionAmount: float64(req.Amount) / 100,
		Token:             req.Method.CardToken,
		Description:       req.Description,
		Installments:      req.Installments,
		PaymentMethodID:   mpPaymentMethodID(req.Method),
		ExternalReference: req.OrderID,
		Payer: &payment.PayerRequest{
			Email:     req.Customer.Email,
			FirstName: req.Customer.Name,
			Identification: &payment.IdentificationRequest{
				Type:   "CPF",
				Number: req.Customer.Document,
			},
		},
	}

	resp, err := g.payments.Create(ctx, request)
	if err != nil {
		log.Printf("[payment][mercadopago] sdk create failed order_id=%s err=%v", req.OrderID, err)
		return entities.ProviderChargeResult{}, normalizeMPError(err)
	}

	status := mapMercadoPagoStatus(resp.Status)
	log.Printf("[payment][mercadopago] charge done order_id=%s payment_id=%d mp_status=%s status=%s", req.OrderID, resp.ID, resp.Status, status)
	return entities.ProviderChargeResult{
		ProviderPaymentID: strconv.Itoa(resp.ID),
		Status:            status,
		AuthorizationCode: resp.AuthorizationCode,
		StatusDescription: resp.StatusDetail,
	}, nil
}

func (g *MercadoPagoGateway) Cancel(ctx context.Context, providerPaymentID string, amountMinorUnits int64, _ entities.ProviderCredential) (entities.ProviderCancelResult, error) {
	log.Printf("[payment][mercadopago] cancel start payment_id=%s amount=%d", providerPaymentID, amountMinorUnits)
	id, err := strconv.Atoi(providerPaymentID)
	if err != nil {
		return entities.ProviderCancelResult{}, fmt.Errorf("%w: malformed payment id %q", entities.ErrProviderUnavailable, providerPaymentID)
	}

	// A refund for the full remaining amount behaves as a cancellation;
	// the partial endpoint covers both cases.
	resp, err := g.refunds.CreatePartialRefund(ctx, id, float64(amountMinorUnits)/100)
	if err != nil {
		log.Printf("[payment][mercadopago] sdk refund failed payment_id=%s err=%v", providerPaymentID, err)
		return entities.ProviderCancelResult{}, normalizeMPError(err)
	}

	log.Printf("[payment][mercadopago] cancel done payment_id=%s refund_id=%d status=%s", providerPaymentID, resp.ID, resp.Status)
	return entities.ProviderCancelResult{
		Status:            entities.PaymentStatusCancelled,
		CanceledAmount:    amountMinorUnits,
		StatusDescription: resp.Status,
	}, nil
}

func (g *MercadoPagoGateway) QueryStatus(ctx context.Context, providerPaymentID string, _ entities.ProviderCredential) (entities.ProviderStatusResult, error) {
	id, err := strconv.Atoi(providerPaymentID)
	if err != nil {
		return entities.ProviderStatusResult{}, fmt.Errorf("%w: malformed payment id %q", entities.ErrProviderUnavailable, providerPaymentID)
	}

	resp, err := g.payments.Get(ctx, id)
	if err != nil {
		return entities.ProviderStatusResult{}, normalizeMPError(err)
	}

	refunded := centavos(resp.TransactionAmountRefunded)
	total := centavos(resp.TransactionAmount)
	status := mapMercadoPagoStatus(resp.Status)
	if status == entities.PaymentStatusApproved && refunded > 0 && refunded < total {
		status = entities.PaymentStatusPartiallyRefunded
	}
	return entities.ProviderStatusResult{
		ProviderPaymentID: providerPaymentID,
		Status:            status,
		StatusDescription: resp.StatusDetail,
	}, nil
}

// centavos converts the SDK's decimal reais to minor units, rounding
// to the nearest centavo.
func centavos(v float64) int64 {
	return int64(math.Round(v * 100))
}

func mpPaymentMethodID(method entities.PaymentMethod) string {
	if method.Type == entities.PaymentMethodPix {
		return "pix"
	}
	return strings.ToLower(method.CardBrand)
}

func mapMercadoPagoStatus(status string) entities.PaymentStatus {
	switch status {
	case "approved":
		return entities.PaymentStatusApproved
	case "rejected":
		return entities.PaymentStatusDeclined
	case "cancelled", "refunded", "charged_back":
		return entities.PaymentStatusCancelled
	case "pending", "in_process", "authorized", "in_mediation":
		return entities.PaymentStatusPending
	default:
		return entities.PaymentStatusError
	}
}

// normalizeMPError classifies SDK errors by the HTTP payload embedded in
// their message, the same shape the API reports.
func normalizeMPError(err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "\"status\":401") || strings.Contains(msg, "unauthorized") {
		return fmt.Errorf("%w: %v", entities.ErrProviderUnauthorized, err)
	}
	return fmt.Errorf("%w: %v", entities.ErrProviderUnavailable, err)
}
