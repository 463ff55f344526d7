package models

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
)

const (
	TRANSACTION_TYPE_INCOME  = "INCOME"
	TRANSACTION_TYPE_EXPENSE = "EXPENSE"
)

var (
	ErrMissingRequired       = errors.New("tenantId, amount e type são obrigatórios")
	ErrMissingUpdateFields   = errors.New("amount, type e category são obrigatórios")
	ErrMissingAssociation    = errors.New("Associe a transação a uma conta ou cartão")
	ErrBothAssociations      = errors.New("Escolha apenas conta OU cartão para a transação")
	ErrInvalidAmount         = errors.New("amount precisa ser um número maior que zero")
	ErrInvalidType           = errors.New("type deve ser INCOME ou EXPENSE")
	ErrMissingCategory       = errors.New("category é obrigatória")
	ErrInvalidReferenceMonth = errors.New("referenceMonth deve estar no formato YYYY-MM")
)

func init() {
	// valores monetários saem como número no JSON, não como string
	decimal.MarshalJSONWithoutQuotes = true
}

// Transaction guarda o valor em centavos; a API expõe "amount" em decimal.
type Transaction struct {
	ID             string     `gorm:"primary_key;type:varchar(36)" json:"id"`
	TenantID       string     `gorm:"not null;index" json:"tenantId"`
	BankAccountID  *string    `gorm:"index" json:"bankAccountId"`
	CardID         *string    `gorm:"index" json:"cardId"`
	AmountCents    int64      `gorm:"not null" json:"-"`
	Type           string     `gorm:"not null;index" json:"type"`
	Category       string     `gorm:"not null" json:"category"`
	IsFixed        bool       `gorm:"not null;default:false" json:"isFixed"`
	ReferenceMonth *time.Time `gorm:"index" json:"referenceMonth"`
	CreatedAt      time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func (t *Transaction) BeforeCreate(scope *gorm.Scope) error {
	return assignID(scope, t.ID)
}

func (t Transaction) Amount() decimal.Decimal {
	return CentsToDecimal(t.AmountCents)
}

func (t Transaction) MarshalJSON() ([]byte, error) {
	type plain Transaction
	return json.Marshal(struct {
		plain
		Amount decimal.Decimal `json:"amount"`
	}{plain(t), t.Amount()})
}

// TransactionInput é o corpo aceito por POST e PUT /api/transactions.
type TransactionInput struct {
	TenantID       string           `json:"tenantId"`
	BankAccountID  *string          `json:"bankAccountId"`
	CardID         *string          `json:"cardId"`
	Amount         *decimal.Decimal `json:"amount"`
	Type           string           `json:"type"`
	Category       string           `json:"category"`
	IsFixed        bool             `json:"isFixed"`
	ReferenceMonth *string          `json:"referenceMonth"`
}

// Normalize apara strings e transforma ids vazios em ausentes.
func (in *TransactionInput) Normalize() {
	in.TenantID = strings.TrimSpace(in.TenantID)
	in.Type = strings.ToUpper(strings.TrimSpace(in.Type))
	in.Category = strings.TrimSpace(in.Category)
	in.BankAccountID = trimOptional(in.BankAccountID)
	in.CardID = trimOptional(in.CardID)
	in.ReferenceMonth = trimOptional(in.ReferenceMonth)
}

// Validate confere as regras de uma transação e devolve o valor em centavos.
// requireTenant é falso no update, onde o tenant gravado é mantido.
func (in TransactionInput) Validate(requireTenant bool) (int64, error) {
	if requireTenant && (in.TenantID == "" || in.Amount == nil || in.Type == "") {
		return 0, ErrMissingRequired
	}
	if !requireTenant && (in.Amount == nil || in.Type == "" || in.Category == "") {
		return 0, ErrMissingUpdateFields
	}
	if in.BankAccountID == nil && in.CardID == nil {
		return 0, ErrMissingAssociation
	}
	if in.BankAccountID != nil && in.CardID != nil {
		return 0, ErrBothAssociations
	}
	cents, err := DecimalToCents(*in.Amount)
	if err != nil {
		return 0, err
	}
	if in.Type != TRANSACTION_TYPE_INCOME && in.Type != TRANSACTION_TYPE_EXPENSE {
		return 0, ErrInvalidType
	}
	if in.Category == "" {
		return 0, ErrMissingCategory
	}
	return cents, nil
}

// MaxAmountCents limita uma transação a 100 bilhões; somas de muitas transações
// continuam cabendo em int64.
const MaxAmountCents int64 = 10_000_000_000_000

var maxAmountCents = decimal.NewFromInt(MaxAmountCents)

// DecimalToCents arredonda para centavos e exige valor positivo até MaxAmountCents.
func DecimalToCents(d decimal.Decimal) (int64, error) {
	cents := d.Round(2).Shift(2)
	if !cents.IsPositive() || !cents.IsInteger() || cents.GreaterThan(maxAmountCents) {
		return 0, ErrInvalidAmount
	}
	return cents.IntPart(), nil
}

func CentsToDecimal(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
