package router

import (
	"net/http"

	"basix/config"
	"basix/controllers"
	dbpkg "basix/db"
	"basix/logger"
	"basix/middleware"
	"basix/tools"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Initialize liga middlewares e rotas. Devolve uma função para liberar o rate limiter.
func Initialize(r *gin.Engine, cfg config.Configuration, db *gorm.DB, provider tools.BillingProvider, log *logger.Logger) (stop func()) {
	if log == nil {
		log = logger.Discard()
	}
	controllers.SetConfigurations(cfg)
	controllers.SetLogger(log)

	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(Metrics())
	r.Use(dbpkg.SetDBtoContext(db))
	r.Use(dbpkg.SetProviderToContext(provider))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	limiter := newRateLimiterStore(cfg.RateLimitPerMinute)

	api := r.Group("/api")
	api.Use(Logger(log), RateLimit(limiter, log))

	api.GET("/tenant", controllers.GetTenant)
	api.POST("/tenant", controllers.CreateTenant)

	api.GET("/accounts", controllers.GetAccounts)
	api.POST("/accounts", controllers.CreateAccount)

	api.GET("/cards", controllers.GetCards)
	api.POST("/cards", controllers.CreateCard)

	api.GET("/transactions", controllers.GetTransactions)
	api.POST("/transactions", controllers.CreateTransaction)
	api.PUT("/transactions/:id", controllers.UpdateTransaction)
	api.DELETE("/transactions/:id", controllers.DeleteTransaction)

	api.GET("/dashboard", controllers.GetDashboard)

	api.GET("/profile", controllers.GetProfile)
	api.POST("/profile", controllers.UpsertProfile)

	api.GET("/plans", controllers.GetPlans)
	api.GET("/plans/:id", controllers.GetPlanByID)

	api.GET("/billing", controllers.GetBilling)
	api.POST("/billing", controllers.CreateBilling)

	// Webhook da Asaas: autenticado pelo header asaas-access-token, fora do rate limit
	hooks := r.Group("/api/v1")
	hooks.Use(Logger(log))
	hooks.POST("/billing-webhook", controllers.BillingWebhook)
	hooks.POST("/asaas-webhook", controllers.BillingWebhook)

	log.Info("routes initialized")
	return limiter.Stop
}
