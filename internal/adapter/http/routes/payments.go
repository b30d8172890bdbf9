package routes

import (
	"marketplace_pagamentos/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathPayments     = "/payments"
	PathOrders       = "/orders"
	PathInstallments = "/installments"
)

func addPaymentRoutes(rg *gin.RouterGroup, paymentHandler *handlers.PaymentHandler, installmentHandler *handlers.InstallmentHandler) {
	payments := rg.Group(PathPayments)
	{
		payments.POST("", paymentHandler.CreateCharge)
		payments.POST("/:provider_payment_id/cancel", paymentHandler.CancelCharge)
		payments.GET("/:provider_payment_id", paymentHandler.GetPayment)
		payments.GET("/:provider_payment_id/status", paymentHandler.GetProviderStatus)
	}

	orders := rg.Group(PathOrders)
	{
		orders.GET("/:order_id/payments", paymentHandler.ListPaymentsByOrder)
	}

	installments := rg.Group(PathInstallments)
	{
		installments.GET("", installmentHandler.Simulate)
	}
}
