package tools

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAsaasURL(t *testing.T) {
	assert.Equal(t, DefaultAsaasURL, NormalizeAsaasURL(""))
	assert.Equal(t, "https://sandbox.asaas.com/api/v3", NormalizeAsaasURL("https://sandbox.asaas.com/api/"))
	assert.Equal(t, "https://sandbox.asaas.com/api/v3", NormalizeAsaasURL("https://sandbox.asaas.com/api/v3/"))
}

func newTestClient(t *testing.T, h http.HandlerFunc) *AsaasClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c := NewAsaasClient(srv.URL, "key-123")
	c.HTTPClient = srv.Client()
	return c
}

func TestCreateCustomer(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v3/customers", r.URL.Path)
		assert.Equal(t, "key-123", r.Header.Get("access_token"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Ana", body["name"])
		assert.Equal(t, "ana@example.com", body["email"])
		assert.Equal(t, true, body["notificationsDisabled"])
		assert.Equal(t, "12345678901", body["cpfCnpj"])
		_, hasPhone := body["mobilePhone"]
		assert.False(t, hasPhone)

		_, _ = io.WriteString(w, `{"id":"cus_1","name":"Ana"}`)
	})

	cus, err := c.CreateCustomer(context.Background(), CustomerRequest{Name: "Ana", Email: "ana@example.com", CpfCnpj: "12345678901"})
	require.NoError(t, err)
	assert.Equal(t, "cus_1", cus.ID)
}

func TestCreateSubscription(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/subscriptions", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "cus_1", body["customer"])
		assert.Equal(t, "CREDIT_CARD", body["billingType"])
		assert.Equal(t, 49.9, body["value"])
		assert.Equal(t, "YEARLY", body["cycle"])
		assert.Equal(t, "Plano core", body["description"])
		assert.Equal(t, "2025-01-10", body["nextDueDate"])
		_, _ = io.WriteString(w, `{"id":"sub_1","status":"ACTIVE","pix":{"qrCodeUrl":"https://pix"}}`)
	})

	sub, err := c.CreateSubscription(context.Background(), SubscriptionRequest{
		CustomerID:  "cus_1",
		PlanID:      "core",
		AmountCents: 4990,
		Cycle:       "yearly",
		NextDueDate: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "sub_1", sub.ID)
	assert.Equal(t, "ACTIVE", sub.Status)
	assert.Equal(t, "https://pix", sub.PaymentLink)
	assert.JSONEq(t, `{"id":"sub_1","status":"ACTIVE","pix":{"qrCodeUrl":"https://pix"}}`, string(sub.Raw))
}

func TestListSubscriptionPaymentsAcceptsBothShapes(t *testing.T) {
	for name, body := range map[string]string{
		"array": `[{"id":"pay_1","status":"PENDING","dueDate":"2025-01-10","invoiceUrl":"https://inv"}]`,
		"page":  `{"object":"list","data":[{"id":"pay_1","status":"PENDING","dueDate":"2025-01-10","invoiceUrl":"https://inv"}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/v3/subscriptions/sub_1/payments", r.URL.Path)
				_, _ = io.WriteString(w, body)
			})
			pays, err := c.ListSubscriptionPayments(context.Background(), "sub_1")
			require.NoError(t, err)
			require.Len(t, pays, 1)
			assert.Equal(t, "pay_1", pays[0].ID)
			assert.Equal(t, "2025-01-10", pays[0].DueDate)
			assert.Equal(t, "https://inv", pays[0].PaymentLink)
		})
	}
}

func TestAsaasErrorMessages(t *testing.T) {
	cases := []struct {
		body string
		want string
	}{
		{`{"errors":[{"code":"invalid_customer","description":"Cliente inválido"}]}`, "Cliente inválido"},
		{`{"message":"Token inválido"}`, "Token inválido"},
		{`gateway down`, "gateway down"},
		{``, "Erro na Asaas."},
		{`{}`, "Erro na Asaas."},
	}
	for _, tc := range cases {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, tc.body)
		})
		_, err := c.CreateCustomer(context.Background(), CustomerRequest{Name: "x", Email: "x@y.z"})
		var ae *AsaasError
		require.True(t, errors.As(err, &ae), tc.body)
		assert.Equal(t, http.StatusBadRequest, ae.StatusCode)
		assert.Equal(t, tc.want, ae.Message)
	}
}

func TestMissingApiKeyFailsBeforeCalling(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { called = true })
	c.ApiKey = ""
	_, err := c.ListSubscriptionPayments(context.Background(), "sub_1")
	assert.ErrorIs(t, err, ErrAsaasNotConfigured)
	assert.False(t, called)
}
