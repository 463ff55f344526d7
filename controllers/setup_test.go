package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"

	"basix/config"
	dbpkg "basix/db"
	"basix/models"
	"basix/tools"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/require"
)

const testWebhookToken = "whsec-test"

type fakeProvider struct {
	mu            sync.Mutex
	customers     []tools.CustomerRequest
	subscriptions []tools.SubscriptionRequest
	listed        []string

	customerErr     error
	subscriptionErr error
	listErr         error
	subscription    tools.AsaasSubscription
	payments        []tools.AsaasPayment
}

func (f *fakeProvider) CreateCustomer(_ context.Context, req tools.CustomerRequest) (tools.AsaasCustomer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.customers = append(f.customers, req)
	if f.customerErr != nil {
		return tools.AsaasCustomer{}, f.customerErr
	}
	return tools.AsaasCustomer{ID: "cus_1", Name: req.Name, Email: req.Email}, nil
}

func (f *fakeProvider) CreateSubscription(_ context.Context, req tools.SubscriptionRequest) (tools.AsaasSubscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subscriptions = append(f.subscriptions, req)
	if f.subscriptionErr != nil {
		return tools.AsaasSubscription{}, f.subscriptionErr
	}
	sub := f.subscription
	if sub.ID == "" {
		sub.ID = "sub_1"
		sub.Raw = json.RawMessage(`{"id":"sub_1","status":"ACTIVE"}`)
	}
	return sub, nil
}

func (f *fakeProvider) ListSubscriptionPayments(_ context.Context, id string) ([]tools.AsaasPayment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listed = append(f.listed, id)
	return f.payments, f.listErr
}

type testEnv struct {
	r        *gin.Engine
	db       *gorm.DB
	provider *fakeProvider
}

func routes(r gin.IRoutes) {
	r.GET("/api/tenant", GetTenant)
	r.POST("/api/tenant", CreateTenant)
	r.GET("/api/accounts", GetAccounts)
	r.POST("/api/accounts", CreateAccount)
	r.GET("/api/cards", GetCards)
	r.POST("/api/cards", CreateCard)
	r.GET("/api/transactions", GetTransactions)
	r.POST("/api/transactions", CreateTransaction)
	r.PUT("/api/transactions/:id", UpdateTransaction)
	r.DELETE("/api/transactions/:id", DeleteTransaction)
	r.GET("/api/dashboard", GetDashboard)
	r.GET("/api/profile", GetProfile)
	r.POST("/api/profile", UpsertProfile)
	r.GET("/api/plans", GetPlans)
	r.GET("/api/plans/:id", GetPlanByID)
	r.GET("/api/billing", GetBilling)
	r.POST("/api/billing", CreateBilling)
	r.POST("/api/v1/billing-webhook", BillingWebhook)
	r.POST("/api/v1/asaas-webhook", BillingWebhook)
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database, err := dbpkg.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	cfg := config.Configuration{}
	cfg.Asaas.WebhookToken = testWebhookToken
	SetConfigurations(cfg)
	t.Cleanup(func() { SetConfigurations(config.Configuration{}) })

	fp := &fakeProvider{}
	r := gin.New()
	r.Use(dbpkg.SetDBtoContext(database), dbpkg.SetProviderToContext(fp))
	routes(r)

	return &testEnv{r: r, db: database, provider: fp}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	e.r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// seedTenant cria um tenant com uma conta e um cartão.
func (e *testEnv) seedTenant(t *testing.T, owner string) (models.Tenant, models.BankAccount, models.Card) {
	t.Helper()
	tenant := models.Tenant{Name: "Casa " + owner, OwnerID: owner}
	require.NoError(t, e.db.Create(&tenant).Error)
	acc := models.BankAccount{TenantID: tenant.ID, Nickname: "Nubank"}
	require.NoError(t, e.db.Create(&acc).Error)
	card := models.Card{TenantID: tenant.ID, Nickname: "Visa"}
	require.NoError(t, e.db.Create(&card).Error)
	return tenant, acc, card
}

func strPtr(s string) *string { return &s }


func jsonReader(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}
