package handlers

import (
	"errors"
	"net/http"
	"strconv"

	response "marketplace_pagamentos/internal/adapter/http/dto/response"
	"marketplace_pagamentos/internal/usecase"
	"marketplace_pagamentos/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidInstallmentQuery = pkg.NewDomainErrorSimple("INVALID_INSTALLMENT_QUERY", "Invalid installment simulation parameters", http.StatusBadRequest)

// InstallmentHandler exposes the installment pricing table used by
// checkout screens before a charge is submitted.

type InstallmentHandler struct {
	usecase         usecase.IInstallmentUseCase
	maxInstallments int
}

func NewInstallmentHandler(uc usecase.IInstallmentUseCase, maxInstallments int) *InstallmentHandler {
	return &InstallmentHandler{usecase: uc, maxInstallments: maxInstallments}
}

// Simulate computes the table for ?amount= (minor units) and an optional
// ?max= capped at the configured maximum.
func (h *InstallmentHandler) Simulate(c *gin.Context) {
	amount, err := strconv.ParseInt(c.Query("amount"), 10, 64)
	if err != nil {
		c.JSON(errInvalidInstallmentQuery.HTTPStatus, errInvalidInstallmentQuery.ToHTTPError())
		return
	}

	max := h.maxInstallments
	if raw := c.Query("max"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(errInvalidInstallmentQuery.HTTPStatus, errInvalidInstallmentQuery.ToHTTPError())
			return
		}
		if v < max {
			max = v
		}
	}

	calc, err := h.usecase.Compute(amount, max)
	if err != nil {
		appErr := mapInstallmentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromInstallmentCalculation(calc))
}

func mapInstallmentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidInstallmentAmount), errors.Is(err, usecase.ErrInvalidMaxInstallments):
		return errInvalidInstallmentQuery
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
