package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"marketplace_pagamentos/internal/adapter/http/handlers/mocks"
	"marketplace_pagamentos/internal/domain/entities"
	"marketplace_pagamentos/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func chargeBody() string {
	return `{
		"order_id": "order-1",
		"amount": 10000,
		"provider": "cielo",
		"customer": {"name": "Ana Souza", "document": "12345678900"},
		"payment_method": {"type": "credit", "card_number": "4111111111111111", "card_brand": "Visa"}
	}`
}

func newPaymentRouter(h *PaymentHandler) *gin.Engine {
	r := gin.New()
	r.POST("/v1/payments", h.CreateCharge)
	r.POST("/v1/payments/:provider_payment_id/cancel", h.CancelCharge)
	r.GET("/v1/payments/:provider_payment_id", h.GetPayment)
	r.GET("/v1/payments/:provider_payment_id/status", h.GetProviderStatus)
	r.GET("/v1/orders/:order_id/payments", h.ListPaymentsByOrder)
	return r
}

func TestPaymentHandler_CreateCharge(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc))

		req := httptest.NewRequest(http.MethodPost, "/v1/payments", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing required fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc))

		req := httptest.NewRequest(http.MethodPost, "/v1/payments", bytes.NewBufferString(`{"order_id":"order-1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("unknown provider maps to 404", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc))

		uc.EXPECT().ProcessCharge(gomock.Any(), gomock.Any()).Return(entities.PaymentRecord{}, usecase.ErrUnknownProvider)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments", bytes.NewBufferString(chargeBody()))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid error body: %v", err)
		}
		if body["code"] != "UNKNOWN_PROVIDER" {
			t.Fatalf("unexpected error code: %s", body["code"])
		}
	})

	t.Run("credential failure maps to 502", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc))

		uc.EXPECT().ProcessCharge(gomock.Any(), gomock.Any()).Return(entities.PaymentRecord{}, errors.Join(usecase.ErrCredentialAcquisition, errors.New("token endpoint down")))

		req := httptest.NewRequest(http.MethodPost, "/v1/payments", bytes.NewBufferString(chargeBody()))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", w.Code)
		}
	})

	t.Run("declined charge still answers 200", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc))

		uc.EXPECT().ProcessCharge(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ interface{}, req entities.ChargeRequest) (entities.PaymentRecord, error) {
				if req.OrderID != "order-1" || req.Provider != "cielo" {
					t.Fatalf("unexpected request mapping: %+v", req)
				}
				return entities.PaymentRecord{
					ID:       "led-1",
					OrderID:  "order-1",
					Status:   entities.PaymentStatusDeclined,
					Amount:   10000,
					Provider: "cielo",
				}, nil
			},
		)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments", bytes.NewBufferString(chargeBody()))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if body["success"] != false || body["status"] != "declined" {
			t.Fatalf("unexpected body: %v", body)
		}
	})

	t.Run("approved charge", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc))

		now := time.Now().UTC()
		uc.EXPECT().ProcessCharge(gomock.Any(), gomock.Any()).Return(entities.PaymentRecord{
			ID:                "led-1",
			ProviderPaymentID: "prov-1",
			OrderID:           "order-1",
			Status:            entities.PaymentStatusApproved,
			Amount:            10000,
			Currency:          "BRL",
			Provider:          "cielo",
			CreatedAt:         now,
			UpdatedAt:         now,
		}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments", bytes.NewBufferString(chargeBody()))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if body["success"] != true || body["provider_payment_id"] != "prov-1" {
			t.Fatalf("unexpected body: %v", body)
		}
	})
}

func TestPaymentHandler_CancelCharge(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("full cancel without body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc))

		uc.EXPECT().CancelCharge(gomock.Any(), "prov-1", int64(0)).Return(entities.PaymentRecord{
			ID:                "led-1",
			ProviderPaymentID: "prov-1",
			Status:            entities.PaymentStatusCancelled,
			Amount:            10000,
			ReversedAmount:    10000,
		}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/prov-1/cancel", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("partial cancel with body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc))

		uc.EXPECT().CancelCharge(gomock.Any(), "prov-1", int64(3000)).Return(entities.PaymentRecord{
			ID:                "led-1",
			ProviderPaymentID: "prov-1",
			Status:            entities.PaymentStatusPartiallyRefunded,
			Amount:            10000,
			ReversedAmount:    3000,
		}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/prov-1/cancel", bytes.NewBufferString(`{"amount":3000}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if body["status"] != "partially_refunded" {
			t.Fatalf("unexpected status: %v", body["status"])
		}
	})

	t.Run("invalid body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc))

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/prov-1/cancel", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("cancel not allowed maps to 409", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc))

		uc.EXPECT().CancelCharge(gomock.Any(), "prov-1", int64(0)).Return(entities.PaymentRecord{}, usecase.ErrCancelNotAllowed)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/prov-1/cancel", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("partial cancel unsupported maps to 400", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc))

		uc.EXPECT().CancelCharge(gomock.Any(), "prov-1", int64(3000)).Return(entities.PaymentRecord{}, entities.ErrPartialCancelUnsupported)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/prov-1/cancel", bytes.NewBufferString(`{"amount": 3000}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid json body: %v", err)
		}
		if body["code"] != "PARTIAL_CANCEL_UNSUPPORTED" {
			t.Fatalf("unexpected error code: %v", body["code"])
		}
	})

	t.Run("not found maps to 404", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc))

		uc.EXPECT().CancelCharge(gomock.Any(), "prov-x", int64(0)).Return(entities.PaymentRecord{}, usecase.ErrPaymentNotFound)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/prov-x/cancel", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestPaymentHandler_GetPayment(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc))

		uc.EXPECT().GetByProviderPaymentID(gomock.Any(), "prov-1").Return(entities.PaymentRecord{
			ID:                "led-1",
			ProviderPaymentID: "prov-1",
			Status:            entities.PaymentStatusApproved,
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/prov-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc))

		uc.EXPECT().GetByProviderPaymentID(gomock.Any(), "prov-x").Return(entities.PaymentRecord{}, usecase.ErrPaymentNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/prov-x", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestPaymentHandler_GetProviderStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc))

		uc.EXPECT().QueryProviderStatus(gomock.Any(), "prov-1").Return(entities.ProviderStatusResult{
			ProviderPaymentID: "prov-1",
			Status:            entities.PaymentStatusApproved,
			StatusDescription: "CONCLUIDA",
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/prov-1/status", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if body["status"] != "approved" || body["status_description"] != "CONCLUIDA" {
			t.Fatalf("unexpected body: %v", body)
		}
	})

	t.Run("provider unavailable maps to 502", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc))

		uc.EXPECT().QueryProviderStatus(gomock.Any(), "prov-1").Return(entities.ProviderStatusResult{}, entities.ErrProviderUnavailable)

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/prov-1/status", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", w.Code)
		}
	})
}

func TestPaymentHandler_ListPaymentsByOrder(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("returns all attempts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc))

		uc.EXPECT().ListByOrderID(gomock.Any(), "order-1").Return([]entities.PaymentRecord{
			{ID: "led-1", Status: entities.PaymentStatusError},
			{ID: "led-2", Status: entities.PaymentStatusApproved},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/orders/order-1/payments", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body []map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if len(body) != 2 {
			t.Fatalf("expected 2 records, got %d", len(body))
		}
	})

	t.Run("empty list stays a json array", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc))

		uc.EXPECT().ListByOrderID(gomock.Any(), "order-2").Return(nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/orders/order-2/payments", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if body := w.Body.String(); body != "[]" {
			t.Fatalf("expected empty array, got %s", body)
		}
	})
}
