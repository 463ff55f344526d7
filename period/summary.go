package period

import (
	"context"
	"fmt"

	"basix/models"

	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Totals soma em centavos; a conversão para decimal só acontece na saída.
type Totals struct {
	IncomeCents  int64
	ExpenseCents int64
}

func (t Totals) Income() decimal.Decimal  { return models.CentsToDecimal(t.IncomeCents) }
func (t Totals) Expense() decimal.Decimal { return models.CentsToDecimal(t.ExpenseCents) }
func (t Totals) Balance() decimal.Decimal {
	return models.CentsToDecimal(t.IncomeCents - t.ExpenseCents)
}

func (t Totals) View() TotalsView {
	return TotalsView{Income: t.Income(), Expense: t.Expense()}
}

type TotalsView struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

func Aggregate(txs []models.Transaction) Totals {
	var t Totals
	for _, tx := range txs {
		switch tx.Type {
		case models.TRANSACTION_TYPE_INCOME:
			t.IncomeCents += tx.AmountCents
		case models.TRANSACTION_TYPE_EXPENSE:
			t.ExpenseCents += tx.AmountCents
		}
	}
	return t
}

// Summary é a resposta do dashboard.
type Summary struct {
	AccountsCount int64           `json:"accountsCount"`
	CardsCount    int64           `json:"cardsCount"`
	Balance       decimal.Decimal `json:"balance"`
	Totals        TotalsView      `json:"totals"`
}

func NewSummary(accounts, cards int64, t Totals) Summary {
	return Summary{
		AccountsCount: accounts,
		CardsCount:    cards,
		Balance:       t.Balance(),
		Totals:        t.View(),
	}
}

// SumByType soma amount_cents das transações que passam no filtro, para um tipo.
func SumByType(db *gorm.DB, f Filter, txType string) (int64, error) {
	var sum int64
	row := f.Scope(db.Table("transactions")).
		Select("COALESCE(SUM(transactions.amount_cents), 0)").
		Where("transactions.type = ?", txType).
		Row()
	if err := row.Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum %s: %w", txType, err)
	}
	return sum, nil
}

// Summarize dispara as quatro leituras do dashboard em paralelo.
// Contagens de contas e cartões ignoram o filtro de mês.
func Summarize(ctx context.Context, db *gorm.DB, f Filter) (Summary, error) {
	var accounts, cards int64
	var totals Totals

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := db.Model(&models.BankAccount{}).Where("tenant_id = ?", f.TenantID).Count(&accounts).Error; err != nil {
			return fmt.Errorf("count accounts: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := db.Model(&models.Card{}).Where("tenant_id = ?", f.TenantID).Count(&cards).Error; err != nil {
			return fmt.Errorf("count cards: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		v, err := SumByType(db, f, models.TRANSACTION_TYPE_INCOME)
		totals.IncomeCents = v
		return err
	})
	g.Go(func() error {
		v, err := SumByType(db, f, models.TRANSACTION_TYPE_EXPENSE)
		totals.ExpenseCents = v
		return err
	})
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	return NewSummary(accounts, cards, totals), nil
}
