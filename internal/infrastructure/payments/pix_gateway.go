package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"marketplace_pagamentos/internal/domain/entities"
	"marketplace_pagamentos/internal/usecase/interfaces"
)

const ProviderPix = "pix"

var (
	ErrMissingPixBaseURL = errors.New("missing PIX_BASE_URL")
	ErrMissingPixKey     = errors.New("missing PIX_KEY")
)

// PIX charge (cob) statuses on the wire.
const (
	pixStatusActive         = "ATIVA"
	pixStatusCompleted      = "CONCLUIDA"
	pixStatusRemovedByUser  = "REMOVIDA_PELO_USUARIO_RECEBEDOR"
	pixStatusRemovedByPSP   = "REMOVIDA_PELO_PSP"
	pixChargeExpirationSecs = 3600
)

// PixGateway creates instant-payment charges on a PIX PSP (cob API,
// OAuth2 bearer). A created charge starts pending (ATIVA) and completes
// when the customer pays; installments do not apply.
type PixGateway struct {
	baseURL    string
	pixKey     string
	httpClient *http.Client
}

var _ interfaces.IPaymentProvider = (*PixGateway)(nil)

func NewPixGateway(baseURL, pixKey string) (*PixGateway, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		log.Printf("[payment][pix] missing PIX_BASE_URL")
		return nil, ErrMissingPixBaseURL
	}
	pixKey = strings.TrimSpace(pixKey)
	if pixKey == "" {
		log.Printf("[payment][pix] missing PIX_KEY")
		return nil, ErrMissingPixKey
	}
	return &PixGateway{
		baseURL:    baseURL,
		pixKey:     pixKey,
		httpClient: newProviderHTTPClient(chargeTimeout),
	}, nil
}

func (g *PixGateway) Name() string { return ProviderPix }

func (g *PixGateway) RequiresTokenization() bool { return false }

func (g *PixGateway) Tokenize(_ context.Context, method entities.PaymentMethod, _ entities.ProviderCredential) (string, error) {
	// No tokenization step on the PIX rail.
	return method.CardToken, nil
}

type pixChargeRequest struct {
	Calendario struct {
		Expiracao int `json:"expiracao"`
	} `json:"calendario"`
	Devedor struct {
		CPF  string `json:"cpf"`
		Nome string `json:"nome"`
	} `json:"devedor"`
	Valor struct {
		Original string `json:"original"`
	} `json:"valor"`
	Chave              string `json:"chave"`
	SolicitacaoPagador string `json:"solicitacaoPagador,omitempty"`
}

type pixChargeResponse struct {
	TxID  string `json:"txid"`
	Valor struct {
		Original string `json:"original"`
	} `json:"valor"`
	Status string `json:"status"`
}

func (g *PixGateway) Charge(ctx context.Context, req entities.ChargeRequest, cred entities.ProviderCredential) (entities.ProviderChargeResult, error) {
	// PSPs require a 26-35 char alphanumeric txid chosen by the creditor.
	txid := strings.ReplaceAll(uuid.NewString(), "-", "")
	log.Printf("[payment][pix] charge start order_id=%s txid=%s amount=%d", req.OrderID, txid, req.Amount)

	var payload pixChargeRequest
	payload.Calendario.Expiracao = pixChargeExpirationSecs
	payload.Devedor.CPF = req.Customer.Document
	payload.Devedor.Nome = req.Customer.Name
	payload.Valor.Original = decimalAmount(req.Amount)
	payload.Chave = g.pixKey
	payload.SolicitacaoPagador = req.Description

	var out pixChargeResponse
	if err := g.do(ctx, http.MethodPut, "/v2/cob/"+txid, cred, payload, &out); err != nil {
		return entities.ProviderChargeResult{}, err
	}
	if out.TxID == "" {
		out.TxID = txid
	}

	status := mapPixStatus(out.Status)
	log.Printf("[payment][pix] charge created order_id=%s txid=%s pix_status=%s status=%s", req.OrderID, out.TxID, out.Status, status)
	return entities.ProviderChargeResult{
		ProviderPaymentID: out.TxID,
		Status:            status,
		StatusDescription: out.Status,
	}, nil
}

func (g *PixGateway) Cancel(ctx context.Context, providerPaymentID string, amountMinorUnits int64, cred entities.ProviderCredential) (entities.ProviderCancelResult, error) {
	log.Printf("[payment][pix] cancel start txid=%s amount=%d", providerPaymentID, amountMinorUnits)

	// Removing a cob always reverses the whole charge; there is no
	// partial removal on this rail. Fetch the cob first so a partial
	// request is rejected instead of silently removing everything.
	var cob pixChargeResponse
	if err := g.do(ctx, http.MethodGet, "/v2/cob/"+providerPaymentID, cred, nil, &cob); err != nil {
		return entities.ProviderCancelResult{}, err
	}
	total := parseDecimalAmount(cob.Valor.Original)
	if amountMinorUnits > 0 && total > 0 && amountMinorUnits < total {
		log.Printf("[payment][pix] partial cancel rejected txid=%s amount=%d total=%d", providerPaymentID, amountMinorUnits, total)
		return entities.ProviderCancelResult{}, fmt.Errorf("%w: pix charges can only be removed in full (total=%d)", entities.ErrPartialCancelUnsupported, total)
	}

	payload := map[string]string{"status": pixStatusRemovedByUser}
	var out pixChargeResponse
	if err := g.do(ctx, http.MethodPatch, "/v2/cob/"+providerPaymentID, cred, payload, &out); err != nil {
		return entities.ProviderCancelResult{}, err
	}

	canceled := total
	if canceled == 0 {
		canceled = amountMinorUnits
	}
	log.Printf("[payment][pix] cancel done txid=%s pix_status=%s canceled=%d", providerPaymentID, out.Status, canceled)
	return entities.ProviderCancelResult{
		Status:            entities.PaymentStatusCancelled,
		CanceledAmount:    canceled,
		StatusDescription: out.Status,
	}, nil
}

func (g *PixGateway) QueryStatus(ctx context.Context, providerPaymentID string, cred entities.ProviderCredential) (entities.ProviderStatusResult, error) {
	var out pixChargeResponse
	if err := g.do(ctx, http.MethodGet, "/v2/cob/"+providerPaymentID, cred, nil, &out); err != nil {
		return entities.ProviderStatusResult{}, err
	}
	return entities.ProviderStatusResult{
		ProviderPaymentID: providerPaymentID,
		Status:            mapPixStatus(out.Status),
		StatusDescription: out.Status,
	}, nil
}

func (g *PixGateway) do(ctx context.Context, method, path string, cred entities.ProviderCredential, payload, out any) error {
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
	req.Header.Set("Authorization", "Bearer "+cred.Token)

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

func mapPixStatus(status string) entities.PaymentStatus {
	switch status {
	case pixStatusActive:
		return entities.PaymentStatusPending
	case pixStatusCompleted:
		return entities.PaymentStatusApproved
	case pixStatusRemovedByUser, pixStatusRemovedByPSP:
		return entities.PaymentStatusCancelled
	default:
		return entities.PaymentStatusError
	}
}

// decimalAmount renders minor units as the "123.45" decimal string the
// cob API expects.
func decimalAmount(minorUnits int64) string {
	return fmt.Sprintf("%d.%02d", minorUnits/100, minorUnits%100)
}

// parseDecimalAmount converts a cob decimal string back to minor units.
// Malformed input parses to zero.
func parseDecimalAmount(s string) int64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return int64(math.Round(v * 100))
}
