package models

import (
	"time"

	"github.com/jinzhu/gorm"
)

type Card struct {
	ID        string    `gorm:"primary_key;type:varchar(36)" json:"id"`
	TenantID  string    `gorm:"not null;index" json:"tenantId"`
	Nickname  string    `gorm:"not null" json:"nickname"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Card) BeforeCreate(scope *gorm.Scope) error {
	return assignID(scope, c.ID)
}
