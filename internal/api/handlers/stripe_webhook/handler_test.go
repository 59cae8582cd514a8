package stripe_webhook

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vgcman16/CleanMate/internal/domain"
	"github.com/vgcman16/CleanMate/internal/integrations/stripe"
	reconcilePayment "github.com/vgcman16/CleanMate/internal/usecase/reconcile_payment"
	"github.com/vgcman16/CleanMate/pkg/logger"
)

type fakeParser struct {
	event *stripe.WebhookEvent
	err   error
}

func (f fakeParser) ParseWebhook(_ []byte, signature string) (*stripe.WebhookEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	if signature == "" {
		return nil, stripe.ErrInvalidSignature
	}
	return f.event, nil
}

type fakeReconciler struct {
	calls int
	err   error
}

func (f *fakeReconciler) ExecuteByExternalID(_ context.Context, externalID, externalStatus string) (*reconcilePayment.Response, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &reconcilePayment.Response{
		IntentID:      1,
		IntentStatus:  reconcilePayment.MapExternalStatus(externalStatus),
		BookingID:     9,
		BookingStatus: domain.StatusConfirmed,
		PaymentStatus: domain.PaymentPaid,
	}, nil
}

type memDedup struct {
	seen     map[string]bool
	claimErr error
	released []string
}

func newMemDedup() *memDedup { return &memDedup{seen: map[string]bool{}} }

func (d *memDedup) Claim(_ context.Context, key string) (bool, error) {
	if d.claimErr != nil {
		return false, d.claimErr
	}
	if d.seen[key] {
		return false, nil
	}
	d.seen[key] = true
	return true, nil
}

func (d *memDedup) Release(_ context.Context, key string) error {
	delete(d.seen, key)
	d.released = append(d.released, key)
	return nil
}

var succeeded = &stripe.WebhookEvent{ID: "evt_1", Type: "payment_intent.succeeded", IntentID: "pi_1", IntentStatus: "succeeded"}

func post(h *Handler, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/stripe", strings.NewReader(`{"id":"evt_1"}`))
	if signature != "" {
		req.Header.Set(SignatureHeader, signature)
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_ReconcilesOnce(t *testing.T) {
	rec := &fakeReconciler{}
	dedup := newMemDedup()
	h := NewHandler(fakeParser{event: succeeded}, rec, dedup, logger.NewNop())

	assert.Equal(t, http.StatusOK, post(h, "t=1,v1=abc").Code)
	assert.Equal(t, http.StatusOK, post(h, "t=1,v1=abc").Code)
	assert.Equal(t, 1, rec.calls)
}

func TestHandler_InvalidSignature(t *testing.T) {
	rec := &fakeReconciler{}
	h := NewHandler(fakeParser{event: succeeded}, rec, newMemDedup(), logger.NewNop())

	assert.Equal(t, http.StatusBadRequest, post(h, "").Code)
	assert.Zero(t, rec.calls)
}

func TestHandler_IgnoresOtherEvents(t *testing.T) {
	rec := &fakeReconciler{}
	event := &stripe.WebhookEvent{ID: "evt_2", Type: "customer.created"}
	h := NewHandler(fakeParser{event: event}, rec, newMemDedup(), logger.NewNop())

	assert.Equal(t, http.StatusOK, post(h, "sig").Code)
	assert.Zero(t, rec.calls)
}

func TestHandler_UnknownIntentAcknowledged(t *testing.T) {
	rec := &fakeReconciler{err: reconcilePayment.ErrIntentNotFound}
	h := NewHandler(fakeParser{event: succeeded}, rec, newMemDedup(), logger.NewNop())

	assert.Equal(t, http.StatusOK, post(h, "sig").Code)
}

func TestHandler_FailureReleasesEvent(t *testing.T) {
	rec := &fakeReconciler{err: reconcilePayment.ErrInternal}
	dedup := newMemDedup()
	h := NewHandler(fakeParser{event: succeeded}, rec, dedup, logger.NewNop())

	assert.Equal(t, http.StatusInternalServerError, post(h, "sig").Code)
	require.Equal(t, []string{"stripe-event:evt_1"}, dedup.released)

	// повторная доставка обрабатывается заново
	rec.err = nil
	assert.Equal(t, http.StatusOK, post(h, "sig").Code)
	assert.Equal(t, 2, rec.calls)
}

func TestHandler_DedupUnavailable(t *testing.T) {
	rec := &fakeReconciler{}
	dedup := newMemDedup()
	dedup.claimErr = errors.New("redis: connection refused")
	h := NewHandler(fakeParser{event: succeeded}, rec, dedup, logger.NewNop())

	assert.Equal(t, http.StatusOK, post(h, "sig").Code)
	assert.Equal(t, 1, rec.calls)
}
