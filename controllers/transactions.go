package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"basix/models"
	"basix/period"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

var (
	errAccountNotInTenant = errors.New("conta não pertence a este tenant")
	errCardNotInTenant    = errors.New("cartão não pertence a este tenant")
)

// GET /api/transactions?tenantId=&month=YYYY-MM&bankAccountId=&cardId=
// Mês malformado não é erro: a listagem volta sem filtro de mês.
func GetTransactions(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}
	tenantID, ok := QueryRequired(c, "tenantId")
	if !ok {
		return
	}

	f := period.Filter{
		TenantID:      tenantID,
		Month:         period.ResolveMonth(c.Query("month")),
		BankAccountID: strings.TrimSpace(c.Query("bankAccountId")),
		CardID:        strings.TrimSpace(c.Query("cardId")),
	}

	txs := []models.Transaction{}
	if err := f.Scope(db).Order("created_at desc").Find(&txs).Error; err != nil {
		respondStorageError(c, "list transactions", err)
		return
	}

	totals := period.Aggregate(txs)
	RespondSuccess(c, gin.H{
		"transactions": txs,
		"totals":       totals.View(),
		"balance":      totals.Balance(),
	})
}

// POST /api/transactions
func CreateTransaction(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}

	var in models.TransactionInput
	if !bindJSON(c, &in) {
		return
	}
	in.Normalize()

	cents, err := in.Validate(true)
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	refMonth, ok := parseReferenceMonth(c, in.ReferenceMonth)
	if !ok {
		return
	}

	if exists, err := tenantExists(db, in.TenantID); err != nil {
		respondStorageError(c, "find tenant", err)
		return
	} else if !exists {
		RespondError(c, "tenant não encontrado", http.StatusNotFound)
		return
	}
	if !checkAssociation(c, db, in.TenantID, in) {
		return
	}

	tx := models.Transaction{
		TenantID:       in.TenantID,
		BankAccountID:  in.BankAccountID,
		CardID:         in.CardID,
		AmountCents:    cents,
		Type:           in.Type,
		Category:       in.Category,
		IsFixed:        in.IsFixed,
		ReferenceMonth: refMonth,
	}
	if err := db.Create(&tx).Error; err != nil {
		respondStorageError(c, "create transaction", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": tx})
}

// PUT /api/transactions/:id
// O tenant gravado é mantido; conta/cartão e referenceMonth são substituídos.
func UpdateTransaction(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var in models.TransactionInput
	if !bindJSON(c, &in) {
		return
	}
	in.Normalize()

	cents, err := in.Validate(false)
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	refMonth, ok := parseReferenceMonth(c, in.ReferenceMonth)
	if !ok {
		return
	}

	var tx models.Transaction
	if err := db.Where("id = ?", id).First(&tx).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			RespondError(c, "transação não encontrada", http.StatusNotFound)
			return
		}
		respondStorageError(c, "get transaction", err)
		return
	}
	if !checkAssociation(c, db, tx.TenantID, in) {
		return
	}

	err = db.Model(&tx).Updates(map[string]any{
		"bank_account_id": in.BankAccountID,
		"card_id":         in.CardID,
		"amount_cents":    cents,
		"type":            in.Type,
		"category":        in.Category,
		"is_fixed":        in.IsFixed,
		"reference_month": refMonth,
	}).Error
	if err != nil {
		respondStorageError(c, "update transaction", err)
		return
	}
	if err := db.Where("id = ?", id).First(&tx).Error; err != nil {
		respondStorageError(c, "reload transaction", err)
		return
	}

	RespondSuccess(c, gin.H{"transaction": tx})
}

// DELETE /api/transactions/:id
func DeleteTransaction(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	res := db.Where("id = ?", id).Delete(&models.Transaction{})
	if res.Error != nil {
		respondStorageError(c, "delete transaction", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		RespondError(c, "transação não encontrada", http.StatusNotFound)
		return
	}
	RespondSuccess(c, gin.H{"ok": true})
}

// parseReferenceMonth converte YYYY-MM no primeiro instante do mês em UTC.
func parseReferenceMonth(c *gin.Context, raw *string) (*time.Time, bool) {
	if raw == nil {
		return nil, true
	}
	m, ok := period.ParseMonth(*raw)
	if !ok {
		RespondError(c, models.ErrInvalidReferenceMonth.Error(), http.StatusBadRequest)
		return nil, false
	}
	start := m.Start()
	return &start, true
}

// checkAssociation garante que a conta ou o cartão informado pertence ao tenant.
func checkAssociation(c *gin.Context, db *gorm.DB, tenantID string, in models.TransactionInput) bool {
	var (
		count int64
		err   error
		miss  error
	)
	switch {
	case in.BankAccountID != nil:
		err = db.Model(&models.BankAccount{}).Where("id = ? AND tenant_id = ?", *in.BankAccountID, tenantID).Count(&count).Error
		miss = errAccountNotInTenant
	case in.CardID != nil:
		err = db.Model(&models.Card{}).Where("id = ? AND tenant_id = ?", *in.CardID, tenantID).Count(&count).Error
		miss = errCardNotInTenant
	default:
		return true
	}
	if err != nil {
		respondStorageError(c, "check association", err)
		return false
	}
	if count == 0 {
		RespondError(c, miss.Error(), http.StatusBadRequest)
		return false
	}
	return true
}
