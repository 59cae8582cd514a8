package stripe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	stripeapi "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/vgcman16/CleanMate/internal/domain"
	"github.com/vgcman16/CleanMate/pkg/circuitbreaker"
)

// Config параметры клиента платежной системы
type Config struct {
	SecretKey     string
	WebhookSecret string
	Timeout       time.Duration
	// MaxNetworkRetries повторы SDK; запросы на создание идут с ключом идемпотентности
	MaxNetworkRetries int64
}

// Client клиент платежной системы Stripe
type Client struct {
	api           *client.API
	webhookSecret string
	breaker       *gobreaker.CircuitBreaker[any]
	metrics       Metrics
	log           Logger
}

// NewClient создает клиента с рабочим API Stripe
func NewClient(cfg Config, log Logger) *Client {
	return newClient(cfg, "", log)
}

// WithMetrics включает учет отказов платежной системы
func (c *Client) WithMetrics(m Metrics) *Client {
	c.metrics = m
	return c
}

// newClient baseURL переопределяет адрес API (используется в тестах)
func newClient(cfg Config, baseURL string, log Logger) *Client {
	backendCfg := &stripeapi.BackendConfig{
		HTTPClient:        &http.Client{Timeout: cfg.Timeout},
		MaxNetworkRetries: stripeapi.Int64(cfg.MaxNetworkRetries),
		LeveledLogger:     leveledLogger{log: log},
	}
	if baseURL != "" {
		backendCfg.URL = stripeapi.String(baseURL)
	}

	backend := stripeapi.GetBackendWithConfig(stripeapi.APIBackend, backendCfg)
	api := client.New(cfg.SecretKey, &stripeapi.Backends{API: backend, Connect: backend, Uploads: backend})

	return &Client{
		api:           api,
		webhookSecret: cfg.WebhookSecret,
		breaker: circuitbreaker.New[any]("stripe", circuitbreaker.Options{
			// Отказы по карте и ошибки параметров не говорят о недоступности Stripe
			IsSuccessful: func(err error) bool {
				return err == nil || !isServerSide(err)
			},
		}, log),
		log: log,
	}
}

// CreateIntent создает намерение. Повтор с тем же ключом идемпотентности
// возвращает уже созданное намерение
func (c *Client) CreateIntent(ctx context.Context, req CreateIntentRequest) (*Intent, error) {
	params := &stripeapi.PaymentIntentParams{
		Amount:   stripeapi.Int64(req.Amount),
		Currency: stripeapi.String(req.Currency),
		AutomaticPaymentMethods: &stripeapi.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripeapi.Bool(true),
			AllowRedirects: stripeapi.String("never"),
		},
	}
	params.Context = ctx
	if req.CustomerID != nil {
		params.Customer = req.CustomerID
	}
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := execute(c, func() (*stripeapi.PaymentIntent, error) {
		return c.api.PaymentIntents.New(params)
	})
	if err != nil {
		return nil, c.translate("CreateIntent", err)
	}

	c.log.Info("Stripe.CreateIntent: created intent=%s amount=%d currency=%s", pi.ID, req.Amount, req.Currency)
	return &Intent{ID: pi.ID, ClientSecret: pi.ClientSecret, Status: string(pi.Status)}, nil
}

// GetIntent получает текущее состояние намерения
func (c *Client) GetIntent(ctx context.Context, id string) (*Intent, error) {
	params := &stripeapi.PaymentIntentParams{}
	params.Context = ctx

	pi, err := execute(c, func() (*stripeapi.PaymentIntent, error) {
		return c.api.PaymentIntents.Get(id, params)
	})
	if err != nil {
		return nil, c.translate("GetIntent", err)
	}

	return &Intent{ID: pi.ID, ClientSecret: pi.ClientSecret, Status: string(pi.Status)}, nil
}

// ConfirmIntent подтверждает намерение сохраненным методом оплаты.
// Отказ банка не является ошибкой: возвращается OutcomeFailed
func (c *Client) ConfirmIntent(ctx context.Context, id, paymentMethodID string) (*ConfirmResult, error) {
	params := &stripeapi.PaymentIntentConfirmParams{
		PaymentMethod: stripeapi.String(paymentMethodID),
	}
	params.Context = ctx

	pi, err := execute(c, func() (*stripeapi.PaymentIntent, error) {
		return c.api.PaymentIntents.Confirm(id, params)
	})
	if err != nil {
		var stripeErr *stripeapi.Error
		if errors.As(err, &stripeErr) && stripeErr.Type == stripeapi.ErrorTypeCard {
			status := string(stripeapi.PaymentIntentStatusRequiresPaymentMethod)
			if stripeErr.PaymentIntent != nil && stripeErr.PaymentIntent.Status != "" {
				status = string(stripeErr.PaymentIntent.Status)
			}
			c.log.Warn("Stripe.ConfirmIntent: card declined intent=%s code=%s", id, stripeErr.Code)
			return &ConfirmResult{Outcome: OutcomeFailed, Status: status, FailureReason: stripeErr.Msg}, nil
		}
		return nil, c.translate("ConfirmIntent", err)
	}

	return &ConfirmResult{Outcome: outcomeOf(pi.Status), Status: string(pi.Status)}, nil
}

// CreateCustomer создает покупателя для хранения методов оплаты
func (c *Client) CreateCustomer(ctx context.Context, userID, email, name string) (string, error) {
	params := &stripeapi.CustomerParams{
		Email: stripeapi.String(email),
		Name:  stripeapi.String(name),
	}
	params.Context = ctx
	params.AddMetadata("user_id", userID)
	params.SetIdempotencyKey("customer-" + userID)

	cus, err := execute(c, func() (*stripeapi.Customer, error) {
		return c.api.Customers.New(params)
	})
	if err != nil {
		return "", c.translate("CreateCustomer", err)
	}

	c.log.Info("Stripe.CreateCustomer: created customer=%s user=%s", cus.ID, userID)
	return cus.ID, nil
}

// ListCardMethods возвращает карты покупателя
func (c *Client) ListCardMethods(ctx context.Context, customerID string) ([]domain.SavedPaymentMethod, error) {
	params := &stripeapi.PaymentMethodListParams{
		Customer: stripeapi.String(customerID),
		Type:     stripeapi.String(string(stripeapi.PaymentMethodTypeCard)),
	}
	params.Context = ctx

	methods, err := execute(c, func() ([]domain.SavedPaymentMethod, error) {
		out := make([]domain.SavedPaymentMethod, 0)
		iter := c.api.PaymentMethods.List(params)
		for iter.Next() {
			out = append(out, toSavedMethod(iter.PaymentMethod()))
		}
		return out, iter.Err()
	})
	if err != nil {
		return nil, c.translate("ListCardMethods", err)
	}

	return methods, nil
}

// AttachMethod привязывает метод оплаты к покупателю
func (c *Client) AttachMethod(ctx context.Context, paymentMethodID, customerID string) (*domain.SavedPaymentMethod, error) {
	params := &stripeapi.PaymentMethodAttachParams{
		Customer: stripeapi.String(customerID),
	}
	params.Context = ctx

	pm, err := execute(c, func() (*stripeapi.PaymentMethod, error) {
		return c.api.PaymentMethods.Attach(paymentMethodID, params)
	})
	if err != nil {
		return nil, c.translate("AttachMethod", err)
	}

	method := toSavedMethod(pm)
	return &method, nil
}

// ParseWebhook проверяет подпись и извлекает данные о намерении
func (c *Client) ParseWebhook(payload []byte, signatureHeader string) (*WebhookEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, c.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	result := &WebhookEvent{ID: event.ID, Type: string(event.Type)}
	if !strings.HasPrefix(result.Type, "payment_intent.") {
		return result, nil
	}

	if event.Data == nil {
		return nil, fmt.Errorf("%w: event %s without data", ErrInvalidPayload, event.ID)
	}

	var pi stripeapi.PaymentIntent
	if err := pi.UnmarshalJSON(event.Data.Raw); err != nil {
		return nil, fmt.Errorf("%w: event %s: %v", ErrInvalidPayload, event.ID, err)
	}

	result.IntentID = pi.ID
	result.IntentStatus = string(pi.Status)
	return result, nil
}

// execute выполняет вызов через предохранитель
func execute[T any](c *Client, fn func() (T, error)) (T, error) {
	res, err := c.breaker.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return res.(T), nil
}

// translate переводит ошибку SDK в ошибку пакета
func (c *Client) translate(op string, err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		c.countFailure(op)
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
	}

	var stripeErr *stripeapi.Error
	if errors.As(err, &stripeErr) {
		switch {
		case stripeErr.Code == stripeapi.ErrorCodeResourceMissing:
			return fmt.Errorf("%w: %s: %s", ErrResourceMissing, op, stripeErr.Msg)
		case !isServerSide(err):
			return fmt.Errorf("%w: %s: %s", ErrRejected, op, stripeErr.Msg)
		}
	}

	c.log.Error("Stripe.%s: request failed: %v", op, err)
	c.countFailure(op)
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
}

func (c *Client) countFailure(op string) {
	if c.metrics != nil {
		c.metrics.IncExternalCallError("stripe", op)
	}
}

// isServerSide true для сетевых ошибок, 429 и 5xx
func isServerSide(err error) bool {
	var stripeErr *stripeapi.Error
	if !errors.As(err, &stripeErr) {
		return true
	}
	return stripeErr.HTTPStatusCode == 0 ||
		stripeErr.HTTPStatusCode == http.StatusTooManyRequests ||
		stripeErr.HTTPStatusCode >= http.StatusInternalServerError
}

// Outcome итог платежа по текущему статусу намерения
func (i *Intent) Outcome() ConfirmOutcome {
	return outcomeOf(stripeapi.PaymentIntentStatus(i.Status))
}

func outcomeOf(status stripeapi.PaymentIntentStatus) ConfirmOutcome {
	switch status {
	case stripeapi.PaymentIntentStatusSucceeded:
		return OutcomeCompleted
	case stripeapi.PaymentIntentStatusCanceled:
		return OutcomeCanceled
	case stripeapi.PaymentIntentStatusRequiresPaymentMethod:
		return OutcomeFailed
	default:
		return OutcomePending
	}
}

func toSavedMethod(pm *stripeapi.PaymentMethod) domain.SavedPaymentMethod {
	method := domain.SavedPaymentMethod{
		ID:   pm.ID,
		Type: domain.MethodCard,
	}
	if pm.Card == nil {
		return method
	}

	method.Last4 = pm.Card.Last4
	month := int(pm.Card.ExpMonth)
	year := int(pm.Card.ExpYear)
	method.ExpiryMonth = &month
	method.ExpiryYear = &year
	if pm.Card.Brand != "" {
		brand := string(pm.Card.Brand)
		method.Brand = &brand
	}
	if pm.Card.Wallet != nil && pm.Card.Wallet.Type == stripeapi.PaymentMethodCardWalletTypeApplePay {
		method.Type = domain.MethodApplePay
	}
	return method
}

// leveledLogger передает предупреждения и ошибки SDK в логгер сервиса
type leveledLogger struct {
	log Logger
}

func (l leveledLogger) Debugf(string, ...interface{}) {}
func (l leveledLogger) Infof(string, ...interface{})  {}

func (l leveledLogger) Warnf(format string, v ...interface{}) {
	l.log.Warn("Stripe SDK: "+format, v...)
}

func (l leveledLogger) Errorf(format string, v ...interface{}) {
	l.log.Error("Stripe SDK: "+format, v...)
}
