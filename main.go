package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"basix/config"
	"basix/db"
	"basix/logger"
	"basix/router"
	"basix/tools"
	"basix/workers"

	"github.com/gin-gonic/gin"
)

// =====================
// ENV (sobrescrevem o config.json)
// =====================
//
// Server:   PORT, LOG_LEVEL, LOG_FORMAT, RATE_LIMIT_PER_MINUTE
// Banco:    DATABASE (sqlite3|postgres), DB_PATH, DB_HOST, DB_PORT, DB_USER, DB_NAME, DB_PASS, DB_LOG, AUTOMIGRATE
// Asaas:    ASAAS_API_URL, ASAAS_API_KEY, ASAAS_WEBHOOK_TOKEN
// Worker:   BILLING_SYNC_INTERVAL (ex: 10m; vazio desliga)

func main() {
	configPath := flag.String("config", "config.json", "caminho do arquivo de configuração")
	flag.Parse()

	conf, err := config.Get(*configPath)
	if err != nil {
		logger.New(logger.Config{}).Error("erro ao carregar configuração", logger.FieldError, err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: conf.LogLevel, Format: conf.LogFormat, Component: logger.ComponentApp})
	logger.SetDefault(log)

	if err := conf.Validate(); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}

	database, err := db.Connect(conf, log)
	if err != nil {
		log.Error("erro ao conectar no banco", logger.FieldError, err)
		os.Exit(1)
	}
	defer database.Close()

	provider := tools.NewAsaasClient(conf.Asaas.ApiURL, conf.Asaas.ApiKey)
	if provider.ApiKey == "" {
		log.Warn("ASAAS_API_KEY não configurada: upgrades pagos vão falhar")
	}

	if conf.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	stopLimiter := router.Initialize(r, conf, database, provider, log)
	defer stopLimiter()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	workerDone := workers.StartBillingSync(ctx, database, provider, time.Duration(conf.BillingSyncInterval), log)

	srv := &http.Server{
		Addr:              ":" + conf.ApiPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("basix listening", "port", conf.ApiPort, logger.FieldOperation, logger.OpStartup)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", logger.FieldError, err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received", logger.FieldOperation, logger.OpShutdown)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", logger.FieldError, err)
	}

	select {
	case <-workerDone:
	case <-shutdownCtx.Done():
		log.Warn("shutdown timeout reached")
	}
	log.Info("shutdown complete")
}
