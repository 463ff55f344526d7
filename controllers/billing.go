package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	dbpkg "basix/db"
	"basix/logger"
	"basix/models"
	"basix/tools"
	"basix/workers"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

type BillingRequest struct {
	UserID       string `json:"userId"`
	PlanID       string `json:"planId"`
	BillingCycle string `json:"billingCycle"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Document     string `json:"document"`
}

// GET /api/billing?userId=&sync=true
// Devolve a cobrança mais recente e o histórico. Com sync=true consulta a Asaas antes;
// falha no sync é logada e o estado gravado é devolvido mesmo assim.
func GetBilling(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}
	userID, ok := QueryRequired(c, "userId")
	if !ok {
		return
	}

	billings, err := listBillings(db, userID)
	if err != nil {
		respondStorageError(c, "list billings", err)
		return
	}

	if len(billings) > 0 && strings.EqualFold(c.Query("sync"), "true") {
		latest := &billings[0]
		if _, err := workers.SyncBilling(c.Request.Context(), db, dbpkg.ProviderInstance(c), latest); err != nil {
			log.WithComponent(logger.ComponentBilling).Warn("sync sob demanda falhou",
				logger.FieldBillingID, latest.ID,
				logger.FieldError, err,
			)
		}
	}

	var latest *models.Billing
	if len(billings) > 0 {
		latest = &billings[0]
	}
	RespondSuccess(c, gin.H{"billing": latest, "billings": billings})
}

// POST /api/billing
// Plano gratuito vira ACTIVE sem chamar a Asaas. Planos pagos criam cliente e assinatura
// e ficam PENDING até o webhook ou o sync confirmarem o pagamento.
func CreateBilling(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}
	blog := log.WithComponent(logger.ComponentBilling)

	var req BillingRequest
	if !bindJSON(c, &req) {
		return
	}
	req.UserID = strings.TrimSpace(req.UserID)
	if req.UserID == "" {
		RespondError(c, "userId é obrigatório", http.StatusBadRequest)
		return
	}
	plan, found := models.FindPlan(req.PlanID)
	if !found {
		RespondError(c, "plano inválido", http.StatusBadRequest)
		return
	}
	cycle, ok := models.NormalizeCycle(req.BillingCycle)
	if !ok {
		RespondError(c, "billingCycle deve ser MONTHLY ou YEARLY", http.StatusBadRequest)
		return
	}
	price := plan.PriceCents(cycle)
	blog = blog.WithFields(map[string]any{logger.FieldUserID: req.UserID, "plan": plan.ID})

	if plan.IsFree() {
		billing := models.Billing{
			UserID:     req.UserID,
			PlanID:     plan.ID,
			Cycle:      cycle,
			Status:     models.BILLING_STATUS_ACTIVE,
			PriceCents: &price,
		}
		if err := db.Create(&billing).Error; err != nil {
			respondStorageError(c, "create billing", err)
			return
		}
		billingUpgrades.WithLabelValues(plan.ID, "activated").Inc()
		c.JSON(http.StatusCreated, gin.H{"billing": billing})
		return
	}

	provider := dbpkg.ProviderInstance(c)
	if provider == nil {
		RespondError(c, workers.ErrNoProvider.Error(), http.StatusInternalServerError)
		return
	}

	customer, ok := resolveCustomer(c, db, req)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 60*time.Second)
	defer cancel()

	cus, err := provider.CreateCustomer(ctx, customer)
	if err != nil {
		billingUpgrades.WithLabelValues(plan.ID, "provider_error").Inc()
		respondProviderError(c, blog, "create customer", err)
		return
	}
	sub, err := provider.CreateSubscription(ctx, tools.SubscriptionRequest{
		CustomerID:  cus.ID,
		PlanID:      plan.ID,
		AmountCents: price,
		Cycle:       cycle,
	})
	if err != nil {
		billingUpgrades.WithLabelValues(plan.ID, "provider_error").Inc()
		respondProviderError(c, blog, "create subscription", err)
		return
	}

	link := sub.PaymentLink
	if link == "" {
		payments, err := provider.ListSubscriptionPayments(ctx, sub.ID)
		if err != nil {
			blog.Warn("não foi possível obter o link de pagamento", logger.FieldSubID, sub.ID, logger.FieldError, err)
		} else if len(payments) > 0 {
			link = payments[0].PaymentLink
		}
	}

	billing := models.Billing{
		UserID:                 req.UserID,
		PlanID:                 plan.ID,
		Cycle:                  cycle,
		Status:                 models.BILLING_STATUS_PENDING,
		ProviderCustomerID:     &cus.ID,
		ProviderSubscriptionID: &sub.ID,
		PriceCents:             &price,
		Metadata:               string(sub.Raw),
	}
	if link != "" {
		billing.ProviderPaymentLink = &link
	}
	if err := db.Create(&billing).Error; err != nil {
		respondStorageError(c, "create billing", err)
		return
	}

	billingUpgrades.WithLabelValues(plan.ID, "pending").Inc()
	blog.Info("upgrade iniciado",
		logger.FieldBillingID, billing.ID,
		logger.FieldSubID, sub.ID,
	)
	c.JSON(http.StatusCreated, gin.H{"billing": billing, "paymentLink": link})
}

// resolveCustomer completa nome, documento e telefone com o Profile do usuário.
func resolveCustomer(c *gin.Context, db *gorm.DB, req BillingRequest) (tools.CustomerRequest, bool) {
	out := tools.CustomerRequest{
		Name:  strings.TrimSpace(req.Name),
		Email: strings.TrimSpace(req.Email),
	}

	profile, err := findProfile(db, req.UserID)
	if err != nil {
		respondStorageError(c, "get profile", err)
		return out, false
	}
	if profile != nil {
		if out.Name == "" && profile.FullName != nil {
			out.Name = strings.TrimSpace(*profile.FullName)
		}
		if profile.Document != nil {
			out.CpfCnpj = *profile.Document
		}
		if profile.Phone != nil {
			out.Phone = *profile.Phone
		}
	}
	if d := strings.TrimSpace(req.Document); d != "" {
		doc, err := tools.NormalizeDocument(d)
		if err != nil {
			RespondError(c, err.Error(), http.StatusBadRequest)
			return out, false
		}
		out.CpfCnpj = doc
	}

	if out.Name == "" {
		RespondError(c, "name é obrigatório", http.StatusBadRequest)
		return out, false
	}
	if out.Email == "" {
		RespondError(c, "email é obrigatório", http.StatusBadRequest)
		return out, false
	}
	if !tools.ValidateEmail(out.Email) {
		RespondError(c, "email inválido", http.StatusBadRequest)
		return out, false
	}
	return out, true
}

func respondProviderError(c *gin.Context, l *logger.Logger, op string, err error) {
	l.Error("erro na Asaas", logger.FieldOperation, op, logger.FieldError, err)

	var ae *tools.AsaasError
	if errors.As(err, &ae) {
		RespondError(c, ae.Message, http.StatusBadGateway)
		return
	}
	if errors.Is(err, tools.ErrAsaasNotConfigured) {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	RespondError(c, "Erro na Asaas.", http.StatusBadGateway)
}

func listBillings(db *gorm.DB, userID string) ([]models.Billing, error) {
	billings := []models.Billing{}
	err := db.Where("user_id = ?", userID).Order("created_at desc").Find(&billings).Error
	return billings, err
}
