package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"marketplace_pagamentos/internal/domain/entities"
	"marketplace_pagamentos/internal/usecase/interfaces"
	"marketplace_pagamentos/pkg/keylock"
)

var (
	ErrInvalidChargeRequest   = errors.New("invalid charge request")
	ErrInvalidInstallmentData = errors.New("invalid installment data")
	ErrUnknownProvider        = errors.New("unknown payment provider")
	ErrCredentialAcquisition  = errors.New("credential acquisition failed")
	ErrPaymentNotFound        = errors.New("payment not found")
	ErrCancelNotAllowed       = errors.New("payment cannot be cancelled")
	ErrInvalidCancelAmount    = errors.New("invalid cancel amount")
)

// ProviderBinding pairs an adapter with its credential manager. Each
// provider gets its own credential instance and lifecycle; nothing here
// is package-level state.
type ProviderBinding struct {
	Adapter     interfaces.IPaymentProvider
	Credentials interfaces.ICredentialManager
}

// IPaymentUseCase is the charge orchestration boundary.
//
// Business declines are not errors: ProcessCharge returns the persisted
// record (declined/error status) with a nil error so callers never have
// to parse exception text to tell "card declined" from "network failed".
// Errors are reserved for validation, credential and configuration
// failures, none of which leave a ledger record.

type IPaymentUseCase interface {
	ProcessCharge(ctx context.Context, req entities.ChargeRequest) (entities.PaymentRecord, error)
	CancelCharge(ctx context.Context, providerPaymentID string, amountMinorUnits int64) (entities.PaymentRecord, error)
	QueryProviderStatus(ctx context.Context, providerPaymentID string) (entities.ProviderStatusResult, error)
	GetByProviderPaymentID(ctx context.Context, providerPaymentID string) (entities.PaymentRecord, error)
	ListByOrderID(ctx context.Context, orderID string) ([]entities.PaymentRecord, error)
}

type PaymentUseCase struct {
	repo            interfaces.IPaymentRepository
	providers       map[string]ProviderBinding
	installments    IInstallmentUseCase
	maxInstallments int
	defaultCurrency string

	// orderLocks serializes ProcessCharge per order id inside this
	// process. Cross-process callers still need their own serialization.
	orderLocks *keylock.KeyLock
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(
	repo interfaces.IPaymentRepository,
	providers map[string]ProviderBinding,
	installments IInstallmentUseCase,
	maxInstallments int,
	defaultCurrency string,
) *PaymentUseCase {
	if maxInstallments < 1 {
		maxInstallments = 1
	}
	if defaultCurrency == "" {
		defaultCurrency = "BRL"
	}
	return &PaymentUseCase{
		repo:            repo,
		providers:       providers,
		installments:    installments,
		maxInstallments: maxInstallments,
		defaultCurrency: defaultCurrency,
		orderLocks:      keylock.New(),
	}
}

func (u *PaymentUseCase) ProcessCharge(ctx context.Context, req entities.ChargeRequest) (entities.PaymentRecord, error) {
	req.OrderID = strings.TrimSpace(req.OrderID)
	req.Provider = strings.TrimSpace(strings.ToLower(req.Provider))
	log.Printf("[payment][usecase] process-charge start order_id=%q provider=%s amount=%d installments=%d",
		req.OrderID, req.Provider, req.Amount, req.Installments)

	if err := u.validateCharge(&req); err != nil {
		log.Printf("[payment][usecase] charge rejected order_id=%s err=%v", req.OrderID, err)
		return entities.PaymentRecord{}, err
	}

	binding, ok := u.providers[req.Provider]
	if !ok {
		log.Printf("[payment][usecase] unknown provider order_id=%s provider=%s", req.OrderID, req.Provider)
		return entities.PaymentRecord{}, ErrUnknownProvider
	}

	// Installment data is validated before any network call or ledger
	// write; the with-interest total becomes the charged amount.
	chargedAmount := req.Amount
	installmentAmount := int64(0)
	hasInterest := false
	if req.Installments > 1 {
		if !u.installments.Validate(req.Amount, req.Installments, req.InstallmentTotal) {
			log.Printf("[payment][usecase] installment data rejected order_id=%s installments=%d claimed_total=%d",
				req.OrderID, req.Installments, req.InstallmentTotal)
			return entities.PaymentRecord{}, ErrInvalidInstallmentData
		}
		calc, err := u.installments.Compute(req.Amount, req.Installments)
		if err != nil {
			return entities.PaymentRecord{}, fmt.Errorf("%w: %v", ErrInvalidInstallmentData, err)
		}
		opt, _ := calc.Option(req.Installments)
		chargedAmount = opt.Total
		installmentAmount = opt.InstallmentValue
		hasInterest = opt.HasInterest
	}

	release, err := u.orderLocks.Acquire(ctx, req.OrderID)
	if err != nil {
		return entities.PaymentRecord{}, err
	}
	defer release()

	cred, err := binding.Credentials.GetToken(ctx)
	if err != nil {
		// No ledger write: nothing was attempted at the provider.
		log.Printf("[payment][usecase] credential acquisition failed order_id=%s provider=%s err=%v", req.OrderID, req.Provider, err)
		return entities.PaymentRecord{}, errors.Join(ErrCredentialAcquisition, err)
	}

	if binding.Adapter.RequiresTokenization() && req.Method.CardToken == "" && req.Method.Type != entities.PaymentMethodPix {
		token, err := binding.Adapter.Tokenize(ctx, req.Method, cred)
		if err != nil {
			log.Printf("[payment][usecase] tokenization failed order_id=%s provider=%s err=%v", req.OrderID, req.Provider, err)
			return u.persistFailure(ctx, req, chargedAmount, installmentAmount, hasInterest, err)
		}
		req.Method.CardToken = token
		log.Printf("[payment][usecase] card tokenized order_id=%s provider=%s", req.OrderID, req.Provider)
	}

	chargeReq := req
	chargeReq.Amount = chargedAmount

	result, err := binding.Adapter.Charge(ctx, chargeReq, cred)
	if err != nil {
		// Indeterminate or failed provider call: the attempt is still
		// auditable, so exactly one error-status record is persisted. No
		// automatic retry (duplicate-capture risk).
		log.Printf("[payment][usecase] provider charge failed order_id=%s provider=%s err=%v", req.OrderID, req.Provider, err)
		return u.persistFailure(ctx, req, chargedAmount, installmentAmount, hasInterest, err)
	}

	now := time.Now().UTC()
	rec := entities.PaymentRecord{
		ProviderPaymentID: result.ProviderPaymentID,
		OrderID:           req.OrderID,
		Status:            result.Status,
		Amount:            chargedAmount,
		OriginalAmount:    req.Amount,
		Currency:          req.Currency,
		AuthorizationCode: result.AuthorizationCode,
		Description:       descriptionOrDefault(req, result.StatusDescription),
		Provider:          req.Provider,
		Installments:      req.Installments,
		InstallmentAmount: installmentAmount,
		HasInterest:       hasInterest,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if result.Status == entities.PaymentStatusApproved {
		rec.AuthorizedAt = now
		rec.CapturedAt = now
	}

	created, err := u.repo.Create(ctx, rec)
	if err != nil {
		log.Printf("[payment][usecase] ledger create failed order_id=%s provider_payment_id=%s err=%v", req.OrderID, result.ProviderPaymentID, err)
		return entities.PaymentRecord{}, err
	}
	log.Printf("[payment][usecase] process-charge done order_id=%s ledger_id=%s provider_payment_id=%s status=%s",
		req.OrderID, created.ID, created.ProviderPaymentID, created.Status)
	return created, nil
}

// persistFailure records a failed/indeterminate attempt with an error
// status and returns it as a normal (non-error) outcome.
func (u *PaymentUseCase) persistFailure(ctx context.Context, req entities.ChargeRequest, chargedAmount, installmentAmount int64, hasInterest bool, cause error) (entities.PaymentRecord, error) {
	now := time.Now().UTC()
	rec := entities.PaymentRecord{
		OrderID:           req.OrderID,
		Status:            entities.PaymentStatusError,
		Amount:            chargedAmount,
		OriginalAmount:    req.Amount,
		Currency:          req.Currency,
		Description:       cause.Error(),
		Provider:          req.Provider,
		Installments:      req.Installments,
		InstallmentAmount: installmentAmount,
		HasInterest:       hasInterest,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	created, err := u.repo.Create(ctx, rec)
	if err != nil {
		log.Printf("[payment][usecase] ledger create failed for failed attempt order_id=%s err=%v", req.OrderID, err)
		return entities.PaymentRecord{}, err
	}
	log.Printf("[payment][usecase] failed attempt persisted order_id=%s ledger_id=%s", req.OrderID, created.ID)
	return created, nil
}

func (u *PaymentUseCase) CancelCharge(ctx context.Context, providerPaymentID string, amountMinorUnits int64) (entities.PaymentRecord, error) {
	providerPaymentID = strings.TrimSpace(providerPaymentID)
	log.Printf("[payment][usecase] cancel start provider_payment_id=%q amount=%d", providerPaymentID, amountMinorUnits)
	if providerPaymentID == "" {
		return entities.PaymentRecord{}, ErrPaymentNotFound
	}
	if amountMinorUnits < 0 {
		return entities.PaymentRecord{}, ErrInvalidCancelAmount
	}

	rec, err := u.repo.GetByProviderPaymentID(ctx, providerPaymentID)
	if err != nil {
		return entities.PaymentRecord{}, err
	}
	if rec.ID == "" {
		log.Printf("[payment][usecase] cancel target not found provider_payment_id=%s", providerPaymentID)
		return entities.PaymentRecord{}, ErrPaymentNotFound
	}
	if !rec.Status.Cancellable() {
		log.Printf("[payment][usecase] cancel not allowed provider_payment_id=%s status=%s", providerPaymentID, rec.Status)
		return entities.PaymentRecord{}, ErrCancelNotAllowed
	}

	remaining := rec.Amount - rec.ReversedAmount
	if amountMinorUnits == 0 {
		amountMinorUnits = remaining
	}
	if amountMinorUnits > remaining {
		return entities.PaymentRecord{}, ErrInvalidCancelAmount
	}

	binding, ok := u.providers[rec.Provider]
	if !ok {
		return entities.PaymentRecord{}, ErrUnknownProvider
	}
	cred, err := binding.Credentials.GetToken(ctx)
	if err != nil {
		return entities.PaymentRecord{}, errors.Join(ErrCredentialAcquisition, err)
	}

	result, err := binding.Adapter.Cancel(ctx, providerPaymentID, amountMinorUnits, cred)
	if err != nil {
		// A failed cancellation never mutates the record: the ledger must
		// not hide that funds were not returned.
		log.Printf("[payment][usecase] provider cancel failed provider_payment_id=%s err=%v", providerPaymentID, err)
		return entities.PaymentRecord{}, err
	}

	newReversed := rec.ReversedAmount + result.CanceledAmount
	status := entities.PaymentStatusPartiallyRefunded
	if newReversed >= rec.Amount {
		status = entities.PaymentStatusCancelled
	}
	updated, err := u.repo.Update(ctx, rec.ID, entities.PaymentRecordUpdate{
		Status:         &status,
		ReversedAmount: &newReversed,
	})
	if err != nil {
		if errors.Is(err, interfaces.ErrRecordNotFound) {
			log.Printf("[payment][usecase] cancel update target vanished ledger_id=%s err=%v", rec.ID, err)
			return entities.PaymentRecord{}, ErrPaymentNotFound
		}
		return entities.PaymentRecord{}, err
	}
	log.Printf("[payment][usecase] cancel done provider_payment_id=%s ledger_id=%s status=%s reversed=%d",
		providerPaymentID, updated.ID, updated.Status, updated.ReversedAmount)
	return updated, nil
}

// QueryProviderStatus is a read-only reconciliation pass-through; it
// never mutates the ledger by itself.
func (u *PaymentUseCase) QueryProviderStatus(ctx context.Context, providerPaymentID string) (entities.ProviderStatusResult, error) {
	providerPaymentID = strings.TrimSpace(providerPaymentID)
	if providerPaymentID == "" {
		return entities.ProviderStatusResult{}, ErrPaymentNotFound
	}

	rec, err := u.repo.GetByProviderPaymentID(ctx, providerPaymentID)
	if err != nil {
		return entities.ProviderStatusResult{}, err
	}
	if rec.ID == "" {
		return entities.ProviderStatusResult{}, ErrPaymentNotFound
	}
	binding, ok := u.providers[rec.Provider]
	if !ok {
		return entities.ProviderStatusResult{}, ErrUnknownProvider
	}
	cred, err := binding.Credentials.GetToken(ctx)
	if err != nil {
		return entities.ProviderStatusResult{}, errors.Join(ErrCredentialAcquisition, err)
	}
	return binding.Adapter.QueryStatus(ctx, providerPaymentID, cred)
}

func (u *PaymentUseCase) GetByProviderPaymentID(ctx context.Context, providerPaymentID string) (entities.PaymentRecord, error) {
	providerPaymentID = strings.TrimSpace(providerPaymentID)
	if providerPaymentID == "" {
		return entities.PaymentRecord{}, ErrPaymentNotFound
	}
	rec, err := u.repo.GetByProviderPaymentID(ctx, providerPaymentID)
	if err != nil {
		return entities.PaymentRecord{}, err
	}
	if rec.ID == "" {
		// Failed attempts never receive a provider payment id, so accept
		// the internal ledger id as a fallback lookup key.
		rec, err = u.repo.GetByID(ctx, providerPaymentID)
		if err != nil {
			return entities.PaymentRecord{}, err
		}
	}
	if rec.ID == "" {
		return entities.PaymentRecord{}, ErrPaymentNotFound
	}
	return rec, nil
}

func (u *PaymentUseCase) ListByOrderID(ctx context.Context, orderID string) ([]entities.PaymentRecord, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, ErrInvalidChargeRequest
	}
	return u.repo.ListByOrderID(ctx, orderID)
}

func (u *PaymentUseCase) validateCharge(req *entities.ChargeRequest) error {
	if req.OrderID == "" {
		return fmt.Errorf("%w: missing order_id", ErrInvalidChargeRequest)
	}
	if req.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidChargeRequest)
	}
	if req.Currency == "" {
		req.Currency = u.defaultCurrency
	}
	if req.Installments == 0 {
		req.Installments = 1
	}
	if req.Installments < 1 || req.Installments > u.maxInstallments {
		return fmt.Errorf("%w: installments out of range [1,%d]", ErrInvalidChargeRequest, u.maxInstallments)
	}
	switch req.Method.Type {
	case entities.PaymentMethodCredit, entities.PaymentMethodDebit:
		if req.Method.CardToken == "" && req.Method.CardNumber == "" {
			return fmt.Errorf("%w: missing card data", ErrInvalidChargeRequest)
		}
	case entities.PaymentMethodPix:
		if req.Installments != 1 {
			return fmt.Errorf("%w: pix does not support installments", ErrInvalidChargeRequest)
		}
	default:
		return fmt.Errorf("%w: unsupported payment method type %q", ErrInvalidChargeRequest, req.Method.Type)
	}
	if req.Customer.Name == "" || req.Customer.Document == "" {
		return fmt.Errorf("%w: missing customer identification", ErrInvalidChargeRequest)
	}
	return nil
}

func descriptionOrDefault(req entities.ChargeRequest, statusDescription string) string {
	if req.Description != "" {
		return req.Description
	}
	if statusDescription != "" {
		return statusDescription
	}
	return fmt.Sprintf("Order %s", req.OrderID)
}
