package models

import (
	"strings"
	"time"

	"github.com/jinzhu/gorm"
)

const (
	BILLING_STATUS_PENDING   = "PENDING"
	BILLING_STATUS_ACTIVE    = "ACTIVE"
	BILLING_STATUS_CANCELLED = "CANCELLED"
	BILLING_STATUS_FAILED    = "FAILED"
)

const (
	BILLING_CYCLE_MONTHLY = "MONTHLY"
	BILLING_CYCLE_YEARLY  = "YEARLY"
)

// Billing é uma tentativa de upgrade. O histórico é mantido: cada upgrade cria
// uma linha nova, e webhook/sync só mudam status, link e metadata.
type Billing struct {
	ID                     string    `gorm:"primary_key;type:varchar(36)" json:"id"`
	UserID                 string    `gorm:"not null;index" json:"userId"`
	PlanID                 string    `gorm:"not null" json:"planId"`
	Cycle                  string    `gorm:"not null;default:'MONTHLY'" json:"cycle"`
	Status                 string    `gorm:"not null;default:'PENDING';index" json:"status"`
	ProviderCustomerID     *string   `json:"providerCustomerId"`
	ProviderSubscriptionID *string   `gorm:"index" json:"providerSubscriptionId"`
	ProviderPaymentLink    *string   `json:"providerPaymentLink"`
	PriceCents             *int64    `json:"priceCents"`
	Metadata               string    `gorm:"type:text" json:"metadata,omitempty"`
	CreatedAt              time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

func (b *Billing) BeforeCreate(scope *gorm.Scope) error {
	return assignID(scope, b.ID)
}

// MapBillingStatus converte o status (ou evento) vindo do provedor para o status interno.
// Nunca falha: valores desconhecidos viram FAILED e ausência vira PENDING.
func MapBillingStatus(s string) string {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return BILLING_STATUS_PENDING
	case "CONFIRMED", "RECEIVED", "RECEIVED_IN_CASH", "RECEIVED_AFTER_DUE_DATE", "ACTIVE":
		return BILLING_STATUS_ACTIVE
	case "PENDING", "AWAITING_PAYMENT", "AWAITING":
		return BILLING_STATUS_PENDING
	case "CANCELLED", "DELETED", "REFUNDED":
		return BILLING_STATUS_CANCELLED
	default:
		return BILLING_STATUS_FAILED
	}
}

// NormalizeCycle devolve MONTHLY por padrão; ok é falso para valores desconhecidos.
func NormalizeCycle(s string) (string, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", BILLING_CYCLE_MONTHLY:
		return BILLING_CYCLE_MONTHLY, true
	case BILLING_CYCLE_YEARLY:
		return BILLING_CYCLE_YEARLY, true
	}
	return "", false
}
