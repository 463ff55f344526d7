package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTenantRequiresUserID(t *testing.T) {
	e := newEnv(t)
	w := e.do(t, http.MethodGet, "/api/tenant", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "userId é obrigatório", decodeBody(t, w)["error"])
}

func TestGetTenantMissingIsNull(t *testing.T) {
	e := newEnv(t)
	w := e.do(t, http.MethodGet, "/api/tenant?userId=u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Contains(t, body, "tenant")
	assert.Nil(t, body["tenant"])
}

func TestCreateTenantIsIdempotent(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodPost, "/api/tenant", map[string]any{"name": "Casa", "userId": "u1"})
	require.Equal(t, http.StatusCreated, w.Code)
	first := decodeBody(t, w)["tenant"].(map[string]any)
	assert.Equal(t, "Casa", first["name"])
	assert.Equal(t, "u1", first["ownerId"])

	w = e.do(t, http.MethodPost, "/api/tenant", map[string]any{"name": "Outro nome", "userId": "u1"})
	require.Equal(t, http.StatusOK, w.Code)
	second := decodeBody(t, w)["tenant"].(map[string]any)
	assert.Equal(t, first["id"], second["id"])
	assert.Equal(t, "Casa", second["name"])
}

func TestCreateTenantValidation(t *testing.T) {
	e := newEnv(t)
	w := e.do(t, http.MethodPost, "/api/tenant", map[string]any{"name": " ", "userId": "u1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "name e userId são obrigatórios", decodeBody(t, w)["error"])

	w = e.do(t, http.MethodPost, "/api/tenant", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetTenantIncludesAccountsAndCards(t *testing.T) {
	e := newEnv(t)
	tenant, acc, card := e.seedTenant(t, "u1")

	w := e.do(t, http.MethodGet, "/api/tenant?userId=u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeBody(t, w)["tenant"].(map[string]any)
	assert.Equal(t, tenant.ID, got["id"])

	accounts := got["bankAccounts"].([]any)
	require.Len(t, accounts, 1)
	assert.Equal(t, acc.ID, accounts[0].(map[string]any)["id"])

	cards := got["cards"].([]any)
	require.Len(t, cards, 1)
	assert.Equal(t, card.ID, cards[0].(map[string]any)["id"])
}

func TestAccountsAndCards(t *testing.T) {
	e := newEnv(t)
	tenant, _, _ := e.seedTenant(t, "u1")

	w := e.do(t, http.MethodPost, "/api/accounts", map[string]any{"tenantId": tenant.ID, "nickname": "Itaú"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Itaú", decodeBody(t, w)["account"].(map[string]any)["nickname"])

	w = e.do(t, http.MethodGet, "/api/accounts?tenantId="+tenant.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	accounts := decodeBody(t, w)["accounts"].([]any)
	require.Len(t, accounts, 2)
	assert.Equal(t, "Itaú", accounts[0].(map[string]any)["nickname"], "newest first")

	w = e.do(t, http.MethodPost, "/api/cards", map[string]any{"tenantId": tenant.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "tenantId e nickname são obrigatórios", decodeBody(t, w)["error"])

	w = e.do(t, http.MethodPost, "/api/cards", map[string]any{"tenantId": "nope", "nickname": "Master"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = e.do(t, http.MethodPost, "/api/cards", map[string]any{"tenantId": tenant.ID, "nickname": "Master"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = e.do(t, http.MethodGet, "/api/cards?tenantId="+tenant.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["cards"].([]any), 2)

	w = e.do(t, http.MethodGet, "/api/cards", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlans(t *testing.T) {
	e := newEnv(t)
	w := e.do(t, http.MethodGet, "/api/plans", nil)
	require.Equal(t, http.StatusOK, w.Code)
	plans := decodeBody(t, w)["plans"].([]any)
	require.Len(t, plans, 3)
	core := plans[1].(map[string]any)
	assert.Equal(t, "core", core["id"])
	assert.Equal(t, 49.9, core["monthlyPrice"])
	assert.Equal(t, 492.0, core["yearlyPrice"])

	w = e.do(t, http.MethodGet, "/api/plans/pro", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = e.do(t, http.MethodGet, "/api/plans/enterprise", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
