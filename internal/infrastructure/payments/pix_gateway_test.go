package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"marketplace_pagamentos/internal/domain/entities"
)

func pixCredential() entities.ProviderCredential {
	return entities.ProviderCredential{Provider: ProviderPix, Token: "bearer-1"}
}

func TestNewPixGateway(t *testing.T) {
	if _, err := NewPixGateway("", "chave"); err != ErrMissingPixBaseURL {
		t.Fatalf("expected ErrMissingPixBaseURL, got %v", err)
	}
	if _, err := NewPixGateway("https://psp.example.com", " "); err != ErrMissingPixKey {
		t.Fatalf("expected ErrMissingPixKey, got %v", err)
	}
	g, err := NewPixGateway("https://psp.example.com/", "chave-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.RequiresTokenization() || g.Name() != ProviderPix {
		t.Fatalf("unexpected gateway identity")
	}
}

func TestPixGateway_Charge(t *testing.T) {
	t.Run("creates an active charge", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPut, r.Method)
			require.Equal(t, "Bearer bearer-1", r.Header.Get("Authorization"))

			txid := strings.TrimPrefix(r.URL.Path, "/v2/cob/")
			require.Len(t, txid, 32)

			var body pixChargeRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Equal(t, 3600, body.Calendario.Expiracao)
			require.Equal(t, "12345678900", body.Devedor.CPF)
			require.Equal(t, "Ana Souza", body.Devedor.Nome)
			require.Equal(t, "100.00", body.Valor.Original)
			require.Equal(t, "chave-1", body.Chave)

			_, _ = w.Write([]byte(`{"txid":"` + txid + `","status":"ATIVA"}`))
		}))
		defer srv.Close()

		g, err := NewPixGateway(srv.URL, "chave-1")
		require.NoError(t, err)

		result, err := g.Charge(context.Background(), entities.ChargeRequest{
			OrderID:      "order-1",
			Amount:       10000,
			Installments: 1,
			Customer:     entities.Customer{Name: "Ana Souza", Document: "12345678900"},
			Method:       entities.PaymentMethod{Type: entities.PaymentMethodPix},
		}, pixCredential())
		require.NoError(t, err)
		require.Len(t, result.ProviderPaymentID, 32)
		require.Equal(t, entities.PaymentStatusPending, result.Status)
		require.Equal(t, "ATIVA", result.StatusDescription)
	})

	t.Run("txid falls back to the generated one", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"ATIVA"}`))
		}))
		defer srv.Close()

		g, err := NewPixGateway(srv.URL, "chave-1")
		require.NoError(t, err)

		result, err := g.Charge(context.Background(), entities.ChargeRequest{
			OrderID:      "order-1",
			Amount:       1,
			Installments: 1,
			Customer:     entities.Customer{Name: "Ana", Document: "1"},
			Method:       entities.PaymentMethod{Type: entities.PaymentMethodPix},
		}, pixCredential())
		require.NoError(t, err)
		require.Len(t, result.ProviderPaymentID, 32)
	})

	t.Run("unauthorized", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()

		g, err := NewPixGateway(srv.URL, "chave-1")
		require.NoError(t, err)

		_, err = g.Charge(context.Background(), entities.ChargeRequest{
			OrderID:      "order-1",
			Amount:       100,
			Installments: 1,
			Method:       entities.PaymentMethod{Type: entities.PaymentMethodPix},
		}, pixCredential())
		require.ErrorIs(t, err, entities.ErrProviderUnauthorized)
	})
}

func TestPixGateway_Cancel(t *testing.T) {
	// The PSP removes a cob in full; the gateway reads it first to know
	// the total.
	newCancelServer := func(t *testing.T, patches *int) *httptest.Server {
		return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/v2/cob/txid-1", r.URL.Path)
			switch r.Method {
			case http.MethodGet:
				_, _ = w.Write([]byte(`{"txid":"txid-1","valor":{"original":"100.00"},"status":"CONCLUIDA"}`))
			case http.MethodPatch:
				*patches++
				var body map[string]string
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				require.Equal(t, "REMOVIDA_PELO_USUARIO_RECEBEDOR", body["status"])
				_, _ = w.Write([]byte(`{"txid":"txid-1","valor":{"original":"100.00"},"status":"REMOVIDA_PELO_USUARIO_RECEBEDOR"}`))
			default:
				t.Fatalf("unexpected method %s", r.Method)
			}
		}))
	}

	t.Run("removes the full charge", func(t *testing.T) {
		var patches int
		srv := newCancelServer(t, &patches)
		defer srv.Close()

		g, err := NewPixGateway(srv.URL, "chave-1")
		require.NoError(t, err)

		result, err := g.Cancel(context.Background(), "txid-1", 10000, pixCredential())
		require.NoError(t, err)
		require.Equal(t, 1, patches)
		require.Equal(t, entities.PaymentStatusCancelled, result.Status)
		require.EqualValues(t, 10000, result.CanceledAmount)
	})

	t.Run("rejects a partial amount without removing the charge", func(t *testing.T) {
		var patches int
		srv := newCancelServer(t, &patches)
		defer srv.Close()

		g, err := NewPixGateway(srv.URL, "chave-1")
		require.NoError(t, err)

		_, err = g.Cancel(context.Background(), "txid-1", 3000, pixCredential())
		require.ErrorIs(t, err, entities.ErrPartialCancelUnsupported)
		require.Equal(t, 0, patches)
	})
}

func TestPixGateway_QueryStatus(t *testing.T) {
	statuses := []string{"ATIVA", "CONCLUIDA"}
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/v2/cob/txid-1", r.URL.Path)
		_, _ = w.Write([]byte(`{"txid":"txid-1","status":"` + statuses[calls] + `"}`))
		calls++
	}))
	defer srv.Close()

	g, err := NewPixGateway(srv.URL, "chave-1")
	require.NoError(t, err)

	result, err := g.QueryStatus(context.Background(), "txid-1", pixCredential())
	require.NoError(t, err)
	require.Equal(t, entities.PaymentStatusPending, result.Status)

	// The pending charge completes once the customer pays.
	result, err = g.QueryStatus(context.Background(), "txid-1", pixCredential())
	require.NoError(t, err)
	require.Equal(t, entities.PaymentStatusApproved, result.Status)
}

func TestMapPixStatus(t *testing.T) {
	cases := []struct {
		in   string
		want entities.PaymentStatus
	}{
		{"ATIVA", entities.PaymentStatusPending},
		{"CONCLUIDA", entities.PaymentStatusApproved},
		{"REMOVIDA_PELO_USUARIO_RECEBEDOR", entities.PaymentStatusCancelled},
		{"REMOVIDA_PELO_PSP", entities.PaymentStatusCancelled},
		{"???", entities.PaymentStatusError},
	}
	for _, tc := range cases {
		if got := mapPixStatus(tc.in); got != tc.want {
			t.Fatalf("mapPixStatus(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestDecimalAmount(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{10000, "100.00"},
		{11440, "114.40"},
	}
	for _, tc := range cases {
		if got := decimalAmount(tc.in); got != tc.want {
			t.Fatalf("decimalAmount(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseDecimalAmount(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"0.00", 0},
		{"0.05", 5},
		{"100.00", 10000},
		{"114.4", 11440},
		{" 114.40 ", 11440},
		{"", 0},
		{"abc", 0},
	}
	for _, tc := range cases {
		if got := parseDecimalAmount(tc.in); got != tc.want {
			t.Fatalf("parseDecimalAmount(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
