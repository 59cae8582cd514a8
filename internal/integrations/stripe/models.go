package stripe

// CreateIntentRequest параметры создания намерения
type CreateIntentRequest struct {
	Amount         int64
	Currency       string
	IdempotencyKey string
	CustomerID     *string
	Metadata       map[string]string
}

// Intent намерение в платежной системе
type Intent struct {
	ID           string
	ClientSecret string
	Status       string
}

// ConfirmOutcome итог подтверждения платежа
type ConfirmOutcome string

const (
	OutcomeCompleted ConfirmOutcome = "completed"
	OutcomeFailed    ConfirmOutcome = "failed"
	OutcomeCanceled  ConfirmOutcome = "canceled"
	// OutcomePending требуется действие клиента (3DS) или платеж еще обрабатывается
	OutcomePending ConfirmOutcome = "pending"
)

// ConfirmResult результат подтверждения платежа
type ConfirmResult struct {
	Outcome ConfirmOutcome
	// Status статус намерения в платежной системе, используется при сверке
	Status        string
	FailureReason string
}

// WebhookEvent событие платежной системы, относящееся к намерению
type WebhookEvent struct {
	ID           string
	Type         string
	IntentID     string
	IntentStatus string
}

// IsPaymentIntentEvent true для событий payment_intent.*
func (e WebhookEvent) IsPaymentIntentEvent() bool {
	return e.IntentID != ""
}
