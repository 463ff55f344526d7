package models

import (
	"time"

	"github.com/jinzhu/gorm"
)

// Profile guarda os dados cadastrais do usuário (um por user_id, upsert).
type Profile struct {
	ID        string    `gorm:"primary_key;type:varchar(36)" json:"id"`
	UserID    string    `gorm:"not null;unique_index" json:"userId"`
	FullName  *string   `json:"fullName"`
	Phone     *string   `json:"phone"`
	Document  *string   `json:"document"`
	Company   *string   `json:"company"`
	Timezone  *string   `json:"timezone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Profile) BeforeCreate(scope *gorm.Scope) error {
	return assignID(scope, p.ID)
}
