package controllers

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"basix/logger"
	"basix/models"
	"basix/tools"

	"github.com/gin-gonic/gin"
)

const webhookTokenHeader = "asaas-access-token"

// POST /api/v1/billing-webhook (alias /api/v1/asaas-webhook)
//
// Atualiza status e metadata de todas as cobranças com o subscription id do evento.
// Evento sem subscription id é aceito e ignorado.
func BillingWebhook(c *gin.Context) {
	wlog := log.WithComponent(logger.ComponentWebhook)

	secret := strings.TrimSpace(conf.Asaas.WebhookToken)
	if secret == "" {
		webhookEvents.WithLabelValues(webhookMisconfigured).Inc()
		wlog.Error("ASAAS_WEBHOOK_TOKEN não configurado")
		RespondError(c, "ASAAS_WEBHOOK_TOKEN não configurado", http.StatusInternalServerError)
		return
	}

	incoming := c.GetHeader(webhookTokenHeader)
	if incoming == "" || subtle.ConstantTimeCompare([]byte(incoming), []byte(secret)) != 1 {
		webhookEvents.WithLabelValues(webhookUnauthorized).Inc()
		wlog.Warn("token inválido", logger.FieldClientIP, c.ClientIP())
		RespondError(c, "Unauthorized", http.StatusUnauthorized)
		return
	}

	db, ok := requireDB(c)
	if !ok {
		webhookEvents.WithLabelValues(webhookError).Inc()
		return
	}

	raw, err := c.GetRawData()
	if err != nil {
		webhookEvents.WithLabelValues(webhookInvalidJSON).Inc()
		RespondError(c, "Invalid JSON", http.StatusBadRequest)
		return
	}
	payload, err := tools.DecodePayload(raw)
	if err != nil {
		webhookEvents.WithLabelValues(webhookInvalidJSON).Inc()
		RespondError(c, "Invalid JSON", http.StatusBadRequest)
		return
	}

	subscriptionID := tools.ExtractSubscriptionID(payload)
	if subscriptionID == "" {
		webhookEvents.WithLabelValues(webhookIgnored).Inc()
		RespondSuccess(c, gin.H{"ok": true, "ignored": "no subscription id"})
		return
	}

	status := models.MapBillingStatus(tools.ExtractProviderStatus(payload))

	res := db.Model(&models.Billing{}).
		Where("provider_subscription_id = ?", subscriptionID).
		Updates(map[string]any{
			"status":   status,
			"metadata": string(raw),
		})
	if res.Error != nil {
		webhookEvents.WithLabelValues(webhookError).Inc()
		respondStorageError(c, "webhook update", res.Error)
		return
	}

	outcome := webhookUpdated
	if res.RowsAffected == 0 {
		outcome = webhookUnmatched
	}
	webhookEvents.WithLabelValues(outcome).Inc()
	wlog.Info("webhook processado",
		logger.FieldSubID, subscriptionID,
		logger.FieldStatus, status,
		logger.FieldRows, res.RowsAffected,
	)

	RespondSuccess(c, gin.H{"ok": true, "updated": res.RowsAffected})
}
