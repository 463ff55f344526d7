package controllers

import (
	"net/http"
	"strings"

	"basix/models"

	"github.com/gin-gonic/gin"
)

type NicknameRequest struct {
	TenantID string `json:"tenantId"`
	Nickname string `json:"nickname"`
}

func (r *NicknameRequest) normalize() bool {
	r.TenantID = strings.TrimSpace(r.TenantID)
	r.Nickname = strings.TrimSpace(r.Nickname)
	return r.TenantID != "" && r.Nickname != ""
}

// GET /api/accounts?tenantId=
func GetAccounts(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}
	tenantID, ok := QueryRequired(c, "tenantId")
	if !ok {
		return
	}

	accounts := []models.BankAccount{}
	if err := db.Where("tenant_id = ?", tenantID).Order("created_at desc").Find(&accounts).Error; err != nil {
		respondStorageError(c, "list accounts", err)
		return
	}
	RespondSuccess(c, gin.H{"accounts": accounts})
}

// POST /api/accounts
func CreateAccount(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}

	var req NicknameRequest
	if !bindJSON(c, &req) {
		return
	}
	if !req.normalize() {
		RespondError(c, "tenantId e nickname são obrigatórios", http.StatusBadRequest)
		return
	}
	if ok, err := tenantExists(db, req.TenantID); err != nil {
		respondStorageError(c, "find tenant", err)
		return
	} else if !ok {
		RespondError(c, "tenant não encontrado", http.StatusNotFound)
		return
	}

	account := models.BankAccount{TenantID: req.TenantID, Nickname: req.Nickname}
	if err := db.Create(&account).Error; err != nil {
		respondStorageError(c, "create account", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"account": account})
}
