package stripe_webhook

import (
	"errors"
	"io"
	"net/http"

	"github.com/vgcman16/CleanMate/internal/api/handlers"
	"github.com/vgcman16/CleanMate/internal/domain"
)

// SignatureHeader заголовок с подписью события
const SignatureHeader = "Stripe-Signature"

const maxPayloadBytes = 64 << 10

const (
	msgInvalidPayload   = "некорректное событие"
	msgInvalidSignature = "некорректная подпись"
)

type Handler struct {
	parser     EventParser
	reconciler Reconciler
	dedup      EventDeduplicator
	logger     Logger
}

func NewHandler(parser EventParser, reconciler Reconciler, dedup EventDeduplicator, logger Logger) *Handler {
	return &Handler{
		parser:     parser,
		reconciler: reconciler,
		dedup:      dedup,
		logger:     logger,
	}
}

// Handle POST /api/v1/webhooks/stripe
// Повторная доставка события с тем же ID подтверждается без обработки
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		h.logger.Warn("POST /webhooks/stripe - Failed to read body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPayload)
		return
	}

	event, err := h.parser.ParseWebhook(payload, r.Header.Get(SignatureHeader))
	if err != nil {
		h.logger.Warn("POST /webhooks/stripe - Rejected event: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSignature)
		return
	}

	if !event.IsPaymentIntentEvent() {
		h.logger.Info("POST /webhooks/stripe - Ignored event: id=%s, type=%s", event.ID, event.Type)
		w.WriteHeader(http.StatusOK)
		return
	}

	key := "stripe-event:" + event.ID
	claimed := true
	if h.dedup != nil {
		claimed, err = h.dedup.Claim(r.Context(), key)
		if err != nil {
			h.logger.Warn("POST /webhooks/stripe - Dedup unavailable, processing anyway: id=%s, error=%v", event.ID, err)
			claimed = true
		}
	}
	if !claimed {
		h.logger.Info("POST /webhooks/stripe - Duplicate event: id=%s", event.ID)
		w.WriteHeader(http.StatusOK)
		return
	}

	result, err := h.reconciler.ExecuteByExternalID(r.Context(), event.IntentID, event.IntentStatus)
	if err != nil {
		// Неизвестное намерение не повторяем: событие могло прийти из другой системы
		if errors.Is(err, domain.ErrNotFound) {
			h.logger.Warn("POST /webhooks/stripe - Unknown intent: event=%s, intent=%s", event.ID, event.IntentID)
			w.WriteHeader(http.StatusOK)
			return
		}

		h.release(r, key)
		h.logger.Error("POST /webhooks/stripe - Reconcile failed: event=%s, intent=%s, error=%v", event.ID, event.IntentID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /webhooks/stripe - Reconciled: event=%s, intent_id=%d, intent_status=%s, booking_id=%d, payment_status=%s",
		event.ID, result.IntentID, result.IntentStatus, result.BookingID, result.PaymentStatus)
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) release(r *http.Request, key string) {
	if h.dedup == nil {
		return
	}
	if err := h.dedup.Release(r.Context(), key); err != nil {
		h.logger.Warn("POST /webhooks/stripe - Failed to release event key %s: %v", key, err)
	}
}
