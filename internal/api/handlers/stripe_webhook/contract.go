package stripe_webhook

import (
	"context"

	"github.com/vgcman16/CleanMate/internal/integrations/stripe"
	reconcilePayment "github.com/vgcman16/CleanMate/internal/usecase/reconcile_payment"
)

// EventParser проверяет подпись и разбирает событие платежной системы
type EventParser interface {
	ParseWebhook(payload []byte, signatureHeader string) (*stripe.WebhookEvent, error)
}

// Reconciler сверяет намерение по ID платежной системы
type Reconciler interface {
	ExecuteByExternalID(ctx context.Context, externalID, externalStatus string) (*reconcilePayment.Response, error)
}

// EventDeduplicator отмечает обработанные события
type EventDeduplicator interface {
	Claim(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
