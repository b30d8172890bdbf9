package handlers

import (
	"errors"
	"log"
	"net/http"

	request "marketplace_pagamentos/internal/adapter/http/dto/request"
	response "marketplace_pagamentos/internal/adapter/http/dto/response"
	"marketplace_pagamentos/internal/domain/entities"
	"marketplace_pagamentos/internal/usecase"
	"marketplace_pagamentos/pkg"

	"github.com/gin-gonic/gin"
)

// PaymentHandler handles HTTP requests for charge orchestration.

type PaymentHandler struct {
	usecase usecase.IPaymentUseCase
}

func NewPaymentHandler(uc usecase.IPaymentUseCase) *PaymentHandler {
	return &PaymentHandler{usecase: uc}
}

// CreateCharge processes a charge attempt. Business declines and provider
// failures still answer 200 with success=false: a ledger record exists
// for them, and the caller reads the outcome from the body.
func (h *PaymentHandler) CreateCharge(c *gin.Context) {
	var payload request.ChargeCreateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[payment][handler] invalid charge payload err=%v", err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	req := payload.ToEntity()
	log.Printf("[payment][handler] charge start order_id=%s provider=%s", req.OrderID, req.Provider)

	created, err := h.usecase.ProcessCharge(c.Request.Context(), req)
	if err != nil {
		log.Printf("[payment][handler] charge failed order_id=%s err=%v", req.OrderID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] charge done order_id=%s ledger_id=%s status=%s", req.OrderID, created.ID, created.Status)

	c.JSON(http.StatusOK, response.FromPaymentRecord(created))
}

// CancelCharge voids or refunds a payment by provider payment id. The
// optional body carries a partial amount; absent/zero means full.
func (h *PaymentHandler) CancelCharge(c *gin.Context) {
	providerPaymentID := c.Param("provider_payment_id")
	log.Printf("[payment][handler] cancel start provider_payment_id=%s", providerPaymentID)

	var payload request.CancelRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
	}

	updated, err := h.usecase.CancelCharge(c.Request.Context(), providerPaymentID, payload.Amount)
	if err != nil {
		log.Printf("[payment][handler] cancel failed provider_payment_id=%s err=%v", providerPaymentID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] cancel done provider_payment_id=%s status=%s", providerPaymentID, updated.Status)

	c.JSON(http.StatusOK, response.FromPaymentRecord(updated))
}

// GetPayment returns the ledger record for a provider payment id.
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	providerPaymentID := c.Param("provider_payment_id")

	rec, err := h.usecase.GetByProviderPaymentID(c.Request.Context(), providerPaymentID)
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPaymentRecord(rec))
}

// GetProviderStatus queries the provider for the current status of a
// payment. Read-only: the ledger is never touched here.
func (h *PaymentHandler) GetProviderStatus(c *gin.Context) {
	providerPaymentID := c.Param("provider_payment_id")
	log.Printf("[payment][handler] provider-status start provider_payment_id=%s", providerPaymentID)

	status, err := h.usecase.QueryProviderStatus(c.Request.Context(), providerPaymentID)
	if err != nil {
		log.Printf("[payment][handler] provider-status failed provider_payment_id=%s err=%v", providerPaymentID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromProviderStatus(status))
}

// ListPaymentsByOrder returns every attempt recorded for an order.
func (h *PaymentHandler) ListPaymentsByOrder(c *gin.Context) {
	orderID := c.Param("order_id")

	records, err := h.usecase.ListByOrderID(c.Request.Context(), orderID)
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPaymentRecords(records))
}

func mapPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidChargeRequest), errors.Is(err, usecase.ErrInvalidCancelAmount):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidInstallmentData):
		return pkg.NewDomainErrorSimple("INVALID_INSTALLMENT_DATA", "Installment data does not match the computed pricing table", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrUnknownProvider):
		return pkg.NewDomainErrorSimple("UNKNOWN_PROVIDER", "Unknown payment provider", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrCancelNotAllowed):
		return pkg.NewDomainErrorSimple("CANCEL_NOT_ALLOWED", "Payment is in a state that cannot be cancelled", http.StatusConflict)
	case errors.Is(err, entities.ErrPartialCancelUnsupported):
		return pkg.NewDomainErrorSimple("PARTIAL_CANCEL_UNSUPPORTED", "Provider does not support partial cancellation", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrCredentialAcquisition):
		return pkg.NewDomainErrorSimple("PROVIDER_CREDENTIAL_FAILED", "Could not authenticate with the payment provider", http.StatusBadGateway)
	case errors.Is(err, entities.ErrProviderUnauthorized):
		return pkg.NewDomainErrorSimple("PROVIDER_UNAUTHORIZED", "Payment provider rejected the credentials", http.StatusBadGateway)
	case errors.Is(err, entities.ErrProviderUnavailable):
		return pkg.NewDomainErrorSimple("PROVIDER_UNAVAILABLE", "Payment provider unavailable, retry later", http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
