package controllers

import (
	"net/http"

	"basix/models"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

// GET /api/cards?tenantId=
func GetCards(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}
	tenantID, ok := QueryRequired(c, "tenantId")
	if !ok {
		return
	}

	cards := []models.Card{}
	if err := db.Where("tenant_id = ?", tenantID).Order("created_at desc").Find(&cards).Error; err != nil {
		respondStorageError(c, "list cards", err)
		return
	}
	RespondSuccess(c, gin.H{"cards": cards})
}

// POST /api/cards
func CreateCard(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}

	var req NicknameRequest
	if !bindJSON(c, &req) {
		return
	}
	if !req.normalize() {
		RespondError(c, "tenantId e nickname são obrigatórios", http.StatusBadRequest)
		return
	}
	if ok, err := tenantExists(db, req.TenantID); err != nil {
		respondStorageError(c, "find tenant", err)
		return
	} else if !ok {
		RespondError(c, "tenant não encontrado", http.StatusNotFound)
		return
	}

	card := models.Card{TenantID: req.TenantID, Nickname: req.Nickname}
	if err := db.Create(&card).Error; err != nil {
		respondStorageError(c, "create card", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"card": card})
}

func tenantExists(db *gorm.DB, tenantID string) (bool, error) {
	var count int64
	if err := db.Model(&models.Tenant{}).Where("id = ?", tenantID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
