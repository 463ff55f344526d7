package controllers

import (
	"net/http"
	"strings"

	"basix/models"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

type TenantRequest struct {
	Name   string `json:"name"`
	UserID string `json:"userId"`
}

// GET /api/tenant?userId=
func GetTenant(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}
	userID, ok := QueryRequired(c, "userId")
	if !ok {
		return
	}

	var tenant models.Tenant
	err := db.
		Preload("BankAccounts", func(q *gorm.DB) *gorm.DB { return q.Order("created_at desc") }).
		Preload("Cards", func(q *gorm.DB) *gorm.DB { return q.Order("created_at desc") }).
		Where("owner_id = ?", userID).
		First(&tenant).Error
	if gorm.IsRecordNotFoundError(err) {
		RespondSuccess(c, gin.H{"tenant": nil})
		return
	}
	if err != nil {
		respondStorageError(c, "get tenant", err)
		return
	}

	if tenant.BankAccounts == nil {
		tenant.BankAccounts = []models.BankAccount{}
	}
	if tenant.Cards == nil {
		tenant.Cards = []models.Card{}
	}
	RespondSuccess(c, gin.H{"tenant": tenant})
}

// POST /api/tenant
// Idempotente: se o usuário já tem workspace, devolve o existente com 200.
func CreateTenant(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}

	var req TenantRequest
	if !bindJSON(c, &req) {
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.UserID = strings.TrimSpace(req.UserID)
	if req.Name == "" || req.UserID == "" {
		RespondError(c, "name e userId são obrigatórios", http.StatusBadRequest)
		return
	}

	existing, err := findTenantByOwner(db, req.UserID)
	if err != nil {
		respondStorageError(c, "find tenant", err)
		return
	}
	if existing != nil {
		RespondSuccess(c, gin.H{"tenant": existing})
		return
	}

	tenant := models.Tenant{Name: req.Name, OwnerID: req.UserID}
	if err := db.Create(&tenant).Error; err != nil {
		// corrida com outra requisição do mesmo dono: owner_id é único
		if again, findErr := findTenantByOwner(db, req.UserID); findErr == nil && again != nil {
			RespondSuccess(c, gin.H{"tenant": again})
			return
		}
		respondStorageError(c, "create tenant", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"tenant": tenant})
}

func findTenantByOwner(db *gorm.DB, ownerID string) (*models.Tenant, error) {
	var t models.Tenant
	err := db.Where("owner_id = ?", ownerID).First(&t).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}
