package add_payment_method

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vgcman16/CleanMate/internal/api/middleware"
	"github.com/vgcman16/CleanMate/internal/service/payments"
	"github.com/vgcman16/CleanMate/internal/service/payments/models"
	"github.com/vgcman16/CleanMate/pkg/logger"
)

type fakeService struct {
	got *models.AddMethodRequest
	err error
}

func (f *fakeService) AddMethod(_ context.Context, _ string, req *models.AddMethodRequest) (*models.PaymentMethodResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.PaymentMethodResponse{ID: req.PaymentMethodID, Type: "card", Last4: "4242", IsDefault: req.MakeDefault}, nil
}

func serve(svc PaymentService, userID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payment-methods", strings.NewReader(body))
	if userID != "" {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandler_Added(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "user-1", `{"paymentMethodId":"pm_1","makeDefault":true}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.got)
	assert.True(t, svc.got.MakeDefault)

	var resp models.PaymentMethodResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "pm_1", resp.ID)
	assert.True(t, resp.IsDefault)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		userID     string
		body       string
		err        error
		wantStatus int
	}{
		{name: "без пользователя", body: `{"paymentMethodId":"pm_1"}`, wantStatus: http.StatusUnauthorized},
		{name: "битое тело", userID: "user-1", body: `{"paymentMethodId":`, wantStatus: http.StatusBadRequest},
		{name: "невалидный", userID: "user-1", body: `{}`, err: payments.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "провайдер недоступен", userID: "user-1", body: `{"paymentMethodId":"pm_1"}`, err: payments.ErrProviderFailure, wantStatus: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, serve(&fakeService{err: tt.err}, tt.userID, tt.body).Code)
		})
	}
}
