package controllers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	webhookMisconfigured = "misconfigured"
	webhookUnauthorized  = "unauthorized"
	webhookInvalidJSON   = "invalid_json"
	webhookIgnored       = "ignored"
	webhookUpdated       = "updated"
	webhookUnmatched     = "unmatched"
	webhookError         = "error"
)

var (
	webhookEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "basix_billing_webhook_events_total",
		Help: "Billing webhook deliveries by outcome.",
	}, []string{"outcome"})

	billingUpgrades = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "basix_billing_upgrades_total",
		Help: "Upgrade attempts by plan and result.",
	}, []string{"plan", "result"})
)
