package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

// Tenant é o workspace de um usuário. Um por dono (owner_id único).
type Tenant struct {
	ID           string        `gorm:"primary_key;type:varchar(36)" json:"id"`
	Name         string        `gorm:"not null" json:"name"`
	OwnerID      string        `gorm:"not null;unique_index" json:"ownerId"`
	BankAccounts []BankAccount `gorm:"foreignkey:TenantID" json:"bankAccounts,omitempty"`
	Cards        []Card        `gorm:"foreignkey:TenantID" json:"cards,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

func (t *Tenant) BeforeCreate(scope *gorm.Scope) error {
	return assignID(scope, t.ID)
}

// assignID preenche o id com um uuid quando o chamador não informou um.
func assignID(scope *gorm.Scope, current string) error {
	if current != "" {
		return nil
	}
	return scope.SetColumn("ID", uuid.NewString())
}
