package period

import (
	"sort"

	"basix/models"

	"github.com/jinzhu/gorm"
)

// Filter seleciona as transações de um tenant, opcionalmente por mês e por conta/cartão.
type Filter struct {
	TenantID      string
	Month         *Month
	BankAccountID string
	CardID        string
}

// Match aplica a regra em memória. Sem referenceMonth, vale a data de criação.
func (f Filter) Match(tx models.Transaction) bool {
	if tx.TenantID != f.TenantID {
		return false
	}
	if f.BankAccountID != "" && (tx.BankAccountID == nil || *tx.BankAccountID != f.BankAccountID) {
		return false
	}
	if f.CardID != "" && (tx.CardID == nil || *tx.CardID != f.CardID) {
		return false
	}
	if f.Month == nil {
		return true
	}
	if tx.ReferenceMonth != nil {
		return f.Month.Contains(*tx.ReferenceMonth)
	}
	return f.Month.Contains(tx.CreatedAt)
}

// Scope aplica a mesma regra de Match como cláusula SQL.
func (f Filter) Scope(db *gorm.DB) *gorm.DB {
	q := db.Where("transactions.tenant_id = ?", f.TenantID)
	if f.BankAccountID != "" {
		q = q.Where("transactions.bank_account_id = ?", f.BankAccountID)
	}
	if f.CardID != "" {
		q = q.Where("transactions.card_id = ?", f.CardID)
	}
	if f.Month != nil {
		gte, lt := f.Month.Range()
		q = q.Where(
			"(transactions.reference_month >= ? AND transactions.reference_month < ?) OR "+
				"(transactions.reference_month IS NULL AND transactions.created_at >= ? AND transactions.created_at < ?)",
			gte, lt, gte, lt,
		)
	}
	return q
}

// Classify filtra e ordena por createdAt decrescente.
func Classify(txs []models.Transaction, f Filter) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if f.Match(tx) {
			out = append(out, tx)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
