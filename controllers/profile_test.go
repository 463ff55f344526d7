package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileUpsert(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodGet, "/api/profile?userId=u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decodeBody(t, w)["profile"])

	w = e.do(t, http.MethodPost, "/api/profile", map[string]any{
		"userId":   "u1",
		"fullName": "Ana Souza",
		"phone":    "(11) 98765-4321",
		"document": "123.456.789-01",
		"timezone": "America/Sao_Paulo",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	p := decodeBody(t, w)["profile"].(map[string]any)
	assert.Equal(t, "Ana Souza", p["fullName"])
	assert.Equal(t, "5511987654321", p["phone"])
	assert.Equal(t, "12345678901", p["document"])
	assert.Nil(t, p["company"])
	id := p["id"]

	// campos ausentes são mantidos; string vazia limpa
	w = e.do(t, http.MethodPost, "/api/profile", map[string]any{"userId": "u1", "company": "ACME", "timezone": ""})
	require.Equal(t, http.StatusOK, w.Code)
	p = decodeBody(t, w)["profile"].(map[string]any)
	assert.Equal(t, id, p["id"])
	assert.Equal(t, "Ana Souza", p["fullName"])
	assert.Equal(t, "ACME", p["company"])
	assert.Nil(t, p["timezone"])

	w = e.do(t, http.MethodGet, "/api/profile?userId=u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ACME", decodeBody(t, w)["profile"].(map[string]any)["company"])
}

func TestProfileValidation(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodPost, "/api/profile", map[string]any{"fullName": "Sem dono"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "userId é obrigatório", decodeBody(t, w)["error"])

	w = e.do(t, http.MethodPost, "/api/profile", map[string]any{"userId": "u1", "document": "123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(t, http.MethodPost, "/api/profile", map[string]any{"userId": "u1", "phone": "12"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(t, http.MethodGet, "/api/profile", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
