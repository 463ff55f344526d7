package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const DefaultAsaasURL = "https://www.asaas.com/api/v3"

var ErrAsaasNotConfigured = errors.New("ASAAS_API_KEY não configurada.")

// BillingProvider é o que os controllers e o worker de sync precisam da Asaas.
type BillingProvider interface {
	CreateCustomer(ctx context.Context, req CustomerRequest) (AsaasCustomer, error)
	CreateSubscription(ctx context.Context, req SubscriptionRequest) (AsaasSubscription, error)
	ListSubscriptionPayments(ctx context.Context, subscriptionID string) ([]AsaasPayment, error)
}

type AsaasCustomer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type CustomerRequest struct {
	Name    string
	Email   string
	CpfCnpj string // opcional, só dígitos
	Phone   string // opcional
}

type SubscriptionRequest struct {
	CustomerID  string
	PlanID      string
	AmountCents int64
	Cycle       string // MONTHLY|YEARLY
	NextDueDate time.Time
}

type AsaasSubscription struct {
	ID          string
	Status      string
	PaymentLink string
	Raw         json.RawMessage
}

type AsaasPayment struct {
	ID           string
	Status       string
	DueDate      string // YYYY-MM-DD
	Subscription string
	PaymentLink  string
	Raw          json.RawMessage
}

// AsaasError carrega o status HTTP e a mensagem legível devolvida pela Asaas.
type AsaasError struct {
	StatusCode int
	Message    string
}

func (e *AsaasError) Error() string {
	return e.Message
}

type AsaasClient struct {
	BaseURL    string
	ApiKey     string
	HTTPClient *http.Client
}

func NewAsaasClient(baseURL, apiKey string) *AsaasClient {
	return &AsaasClient{
		BaseURL:    NormalizeAsaasURL(baseURL),
		ApiKey:     strings.TrimSpace(apiKey),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// NormalizeAsaasURL remove a barra final e garante o sufixo /v3.
func NormalizeAsaasURL(raw string) string {
	base := strings.TrimRight(strings.TrimSpace(raw), "/")
	if base == "" {
		return DefaultAsaasURL
	}
	if !strings.HasSuffix(base, "/v3") {
		base += "/v3"
	}
	return base
}

func (c *AsaasClient) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	if c.ApiKey == "" {
		return nil, ErrAsaasNotConfigured
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("access_token", c.ApiKey)

	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("asaas %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("asaas read body: %w", err)
	}

	if resp.StatusCode >= 300 {
		return nil, &AsaasError{StatusCode: resp.StatusCode, Message: asaasErrorMessage(raw)}
	}
	return raw, nil
}

// asaasErrorMessage: errors[0].description, depois message, depois o texto cru.
func asaasErrorMessage(raw []byte) string {
	var parsed struct {
		Errors []struct {
			Description string `json:"description"`
		} `json:"errors"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &parsed); err == nil {
		if len(parsed.Errors) > 0 && strings.TrimSpace(parsed.Errors[0].Description) != "" {
			return parsed.Errors[0].Description
		}
		if strings.TrimSpace(parsed.Message) != "" {
			return parsed.Message
		}
		return "Erro na Asaas."
	}
	if text := strings.TrimSpace(string(raw)); text != "" {
		return text
	}
	return "Erro na Asaas."
}

func (c *AsaasClient) CreateCustomer(ctx context.Context, r CustomerRequest) (AsaasCustomer, error) {
	body := map[string]any{
		"name":                  r.Name,
		"email":                 r.Email,
		"notificationsDisabled": true,
	}
	if r.CpfCnpj != "" {
		body["cpfCnpj"] = r.CpfCnpj
	}
	if r.Phone != "" {
		body["mobilePhone"] = r.Phone
	}
	raw, err := c.do(ctx, http.MethodPost, "/customers", body)
	if err != nil {
		return AsaasCustomer{}, err
	}
	var out AsaasCustomer
	if err := json.Unmarshal(raw, &out); err != nil {
		return AsaasCustomer{}, fmt.Errorf("asaas customer: %w", err)
	}
	if out.ID == "" {
		return AsaasCustomer{}, errors.New("asaas customer: resposta sem id")
	}
	return out, nil
}

func (c *AsaasClient) CreateSubscription(ctx context.Context, r SubscriptionRequest) (AsaasSubscription, error) {
	cycle := "MONTHLY"
	if strings.EqualFold(r.Cycle, "YEARLY") {
		cycle = "YEARLY"
	}
	due := r.NextDueDate
	if due.IsZero() {
		due = time.Now().UTC()
	}

	raw, err := c.do(ctx, http.MethodPost, "/subscriptions", map[string]any{
		"customer":    r.CustomerID,
		"billingType": "CREDIT_CARD",
		"value":       decimal.New(r.AmountCents, -2).Round(2).InexactFloat64(),
		"nextDueDate": due.Format("2006-01-02"),
		"cycle":       cycle,
		"description": "Plano " + r.PlanID,
	})
	if err != nil {
		return AsaasSubscription{}, err
	}

	v, err := DecodePayload(raw)
	if err != nil {
		return AsaasSubscription{}, fmt.Errorf("asaas subscription: %w", err)
	}
	var head struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	_ = json.Unmarshal(raw, &head)
	if head.ID == "" {
		return AsaasSubscription{}, errors.New("asaas subscription: resposta sem id")
	}
	return AsaasSubscription{
		ID:          head.ID,
		Status:      head.Status,
		PaymentLink: PaymentLink(v),
		Raw:         raw,
	}, nil
}

// ListSubscriptionPayments aceita tanto um array puro quanto a lista paginada {data: [...]}.
func (c *AsaasClient) ListSubscriptionPayments(ctx context.Context, subscriptionID string) ([]AsaasPayment, error) {
	if strings.TrimSpace(subscriptionID) == "" {
		return nil, errors.New("subscriptionId é obrigatório")
	}
	raw, err := c.do(ctx, http.MethodGet, "/subscriptions/"+url.PathEscape(subscriptionID)+"/payments", nil)
	if err != nil {
		return nil, err
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		var page struct {
			Data []json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(raw, &page); err != nil {
			return nil, fmt.Errorf("asaas payments: %w", err)
		}
		items = page.Data
	}

	out := make([]AsaasPayment, 0, len(items))
	for _, item := range items {
		var p struct {
			ID           string `json:"id"`
			Status       string `json:"status"`
			DueDate      string `json:"dueDate"`
			Subscription string `json:"subscription"`
		}
		if err := json.Unmarshal(item, &p); err != nil {
			continue
		}
		v, _ := DecodePayload(item)
		out = append(out, AsaasPayment{
			ID:           p.ID,
			Status:       p.Status,
			DueDate:      p.DueDate,
			Subscription: p.Subscription,
			PaymentLink:  PaymentLink(v),
			Raw:          item,
		})
	}
	return out, nil
}
