package controllers

import (
	"net/http"
	"strings"

	"basix/models"
	"basix/tools"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

// ProfileRequest: campo ausente mantém o valor gravado; string vazia limpa o campo.
type ProfileRequest struct {
	UserID   string  `json:"userId"`
	FullName *string `json:"fullName"`
	Phone    *string `json:"phone"`
	Document *string `json:"document"`
	Company  *string `json:"company"`
	Timezone *string `json:"timezone"`
}

// GET /api/profile?userId=
func GetProfile(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}
	userID, ok := QueryRequired(c, "userId")
	if !ok {
		return
	}

	profile, err := findProfile(db, userID)
	if err != nil {
		respondStorageError(c, "get profile", err)
		return
	}
	RespondSuccess(c, gin.H{"profile": profile})
}

// POST /api/profile (upsert por userId)
func UpsertProfile(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}

	var req ProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	req.UserID = strings.TrimSpace(req.UserID)
	if req.UserID == "" {
		RespondError(c, "userId é obrigatório", http.StatusBadRequest)
		return
	}

	updates := map[string]any{}
	setText := func(column string, v *string) {
		if v != nil {
			updates[column] = emptyToNil(*v)
		}
	}
	setText("full_name", req.FullName)
	setText("company", req.Company)
	setText("timezone", req.Timezone)

	if req.Phone != nil {
		if p := strings.TrimSpace(*req.Phone); p == "" {
			updates["phone"] = nil
		} else {
			phone, err := tools.NormalizePhone(p)
			if err != nil {
				RespondError(c, err.Error(), http.StatusBadRequest)
				return
			}
			updates["phone"] = phone
		}
	}
	if req.Document != nil {
		if d := strings.TrimSpace(*req.Document); d == "" {
			updates["document"] = nil
		} else {
			doc, err := tools.NormalizeDocument(d)
			if err != nil {
				RespondError(c, err.Error(), http.StatusBadRequest)
				return
			}
			updates["document"] = doc
		}
	}

	existing, err := findProfile(db, req.UserID)
	if err != nil {
		respondStorageError(c, "get profile", err)
		return
	}

	if existing == nil {
		profile := models.Profile{UserID: req.UserID}
		if err := db.Create(&profile).Error; err != nil {
			respondStorageError(c, "create profile", err)
			return
		}
		existing = &profile
	}
	if len(updates) > 0 {
		if err := db.Model(existing).Updates(updates).Error; err != nil {
			respondStorageError(c, "update profile", err)
			return
		}
	}

	profile, err := findProfile(db, req.UserID)
	if err != nil {
		respondStorageError(c, "get profile", err)
		return
	}
	RespondSuccess(c, gin.H{"profile": profile})
}

func findProfile(db *gorm.DB, userID string) (*models.Profile, error) {
	var p models.Profile
	err := db.Where("user_id = ?", userID).First(&p).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func emptyToNil(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return s
}
