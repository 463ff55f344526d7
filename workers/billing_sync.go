package workers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"basix/logger"
	"basix/models"
	"basix/tools"

	"github.com/jinzhu/gorm"
	"golang.org/x/sync/errgroup"
)

const (
	syncBatchSize   = 50
	syncConcurrency = 4
	syncCallTimeout = 30 * time.Second
)

var ErrNoProvider = errors.New("provedor de cobrança não configurado")

// SyncBilling consulta as cobranças da assinatura e aplica o status da mais recente
// (maior dueDate) na linha informada. Preenche o link de pagamento se ainda não houver.
// Devolve true quando algo mudou.
func SyncBilling(ctx context.Context, db *gorm.DB, provider tools.BillingProvider, b *models.Billing) (bool, error) {
	if b == nil || b.ProviderSubscriptionID == nil || *b.ProviderSubscriptionID == "" {
		return false, nil
	}
	if provider == nil {
		return false, ErrNoProvider
	}

	payments, err := provider.ListSubscriptionPayments(ctx, *b.ProviderSubscriptionID)
	if err != nil {
		return false, fmt.Errorf("list payments %s: %w", *b.ProviderSubscriptionID, err)
	}
	latest, ok := latestPayment(payments)
	if !ok {
		return false, nil
	}

	status := models.MapBillingStatus(latest.Status)
	updates := map[string]any{}
	if status != b.Status {
		updates["status"] = status
	}
	if (b.ProviderPaymentLink == nil || *b.ProviderPaymentLink == "") && latest.PaymentLink != "" {
		updates["provider_payment_link"] = latest.PaymentLink
	}
	if len(updates) == 0 {
		return false, nil
	}
	if len(latest.Raw) > 0 {
		updates["metadata"] = string(latest.Raw)
	}

	if err := db.Model(&models.Billing{}).Where("id = ?", b.ID).Updates(updates).Error; err != nil {
		return false, fmt.Errorf("update billing %s: %w", b.ID, err)
	}

	b.Status = status
	if link, ok := updates["provider_payment_link"].(string); ok {
		b.ProviderPaymentLink = &link
	}
	if meta, ok := updates["metadata"].(string); ok {
		b.Metadata = meta
	}
	return true, nil
}

// latestPayment escolhe a cobrança de maior dueDate (YYYY-MM-DD ordena como string).
func latestPayment(payments []tools.AsaasPayment) (tools.AsaasPayment, bool) {
	if len(payments) == 0 {
		return tools.AsaasPayment{}, false
	}
	best := payments[0]
	for _, p := range payments[1:] {
		if p.DueDate > best.DueDate {
			best = p
		}
	}
	return best, true
}

// StartBillingSync sincroniza periodicamente as cobranças pendentes até o ctx ser cancelado.
// Com interval <= 0 o worker não roda. O canal devolvido fecha quando o loop termina.
func StartBillingSync(ctx context.Context, db *gorm.DB, provider tools.BillingProvider, interval time.Duration, log *logger.Logger) <-chan struct{} {
	done := make(chan struct{})
	if interval <= 0 || db == nil || provider == nil {
		close(done)
		return done
	}
	if log == nil {
		log = logger.Discard()
	}
	log = log.WithComponent(logger.ComponentWorker)

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		log.Info("billing sync iniciado", "interval", interval.String())
		for {
			select {
			case <-ctx.Done():
				log.Info("billing sync encerrado")
				return
			case <-ticker.C:
				n, err := SyncPending(ctx, db, provider, log)
				if err != nil {
					log.Error("billing sync: query error", logger.FieldError, err)
					continue
				}
				if n > 0 {
					log.Info("billing sync: cobranças atualizadas", logger.FieldRows, n)
				}
			}
		}
	}()
	return done
}

// SyncPending roda uma rodada: até 50 cobranças PENDING com assinatura, as mais antigas primeiro.
// Falhas individuais são logadas e não interrompem as demais.
func SyncPending(ctx context.Context, db *gorm.DB, provider tools.BillingProvider, log *logger.Logger) (int, error) {
	if log == nil {
		log = logger.Discard()
	}

	var pending []models.Billing
	err := db.
		Where("status = ?", models.BILLING_STATUS_PENDING).
		Where("provider_subscription_id IS NOT NULL AND provider_subscription_id <> ''").
		Order("updated_at asc").
		Limit(syncBatchSize).
		Find(&pending).Error
	if err != nil {
		return 0, err
	}

	changed := make([]bool, len(pending))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(syncConcurrency)
	for i := range pending {
		i := i
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(gctx, syncCallTimeout)
			defer cancel()

			ok, err := SyncBilling(callCtx, db, provider, &pending[i])
			if err != nil {
				log.Warn("billing sync falhou",
					logger.FieldBillingID, pending[i].ID,
					logger.FieldError, err,
				)
				return nil
			}
			changed[i] = ok
			return nil
		})
	}
	_ = g.Wait()

	n := 0
	for _, ok := range changed {
		if ok {
			n++
		}
	}
	return n, nil
}
