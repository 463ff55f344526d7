package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	PLAN_FREE = "free"
	PLAN_CORE = "core"
	PLAN_PRO  = "pro"
)

// Plan é um item do catálogo comercial. Preços em centavos (BRL).
type Plan struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	MonthlyPriceCents int64    `json:"-"`
	YearlyPriceCents  int64    `json:"-"`
	Currency          string   `json:"currency"`
	Features          []string `json:"features"`
}

type PlanView struct {
	Plan
	MonthlyPrice decimal.Decimal `json:"monthlyPrice"`
	YearlyPrice  decimal.Decimal `json:"yearlyPrice"`
}

var planCatalog = []Plan{
	{
		ID:          PLAN_FREE,
		Name:        "Free",
		Description: "Para começar a organizar as finanças",
		Currency:    "BRL",
		Features:    []string{"1 workspace", "Contas e cartões", "Resumo mensal"},
	},
	{
		ID:                PLAN_CORE,
		Name:              "Core",
		Description:       "Para quem controla o mês a mês",
		MonthlyPriceCents: 4990,
		YearlyPriceCents:  49200,
		Currency:          "BRL",
		Features:          []string{"Tudo do Free", "Lançamentos fixos", "Histórico completo"},
	},
	{
		ID:                PLAN_PRO,
		Name:              "Pro",
		Description:       "Para negócios e finanças mais complexas",
		MonthlyPriceCents: 7990,
		YearlyPriceCents:  79700,
		Currency:          "BRL",
		Features:          []string{"Tudo do Core", "Suporte prioritário"},
	},
}

func Plans() []Plan {
	out := make([]Plan, len(planCatalog))
	copy(out, planCatalog)
	return out
}

func FindPlan(id string) (Plan, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, p := range planCatalog {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}

// PriceCents devolve o preço do plano no ciclo informado (MONTHLY ou YEARLY).
func (p Plan) PriceCents(cycle string) int64 {
	if cycle == BILLING_CYCLE_YEARLY {
		return p.YearlyPriceCents
	}
	return p.MonthlyPriceCents
}

func (p Plan) IsFree() bool {
	return p.MonthlyPriceCents == 0 && p.YearlyPriceCents == 0
}

func (p Plan) View() PlanView {
	return PlanView{
		Plan:         p,
		MonthlyPrice: CentsToDecimal(p.MonthlyPriceCents),
		YearlyPrice:  CentsToDecimal(p.YearlyPriceCents),
	}
}
