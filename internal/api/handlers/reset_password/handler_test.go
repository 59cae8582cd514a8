package reset_password

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vgcman16/CleanMate/internal/api/handlers"
	"github.com/vgcman16/CleanMate/internal/service/session"
	"github.com/vgcman16/CleanMate/internal/service/session/models"
	"github.com/vgcman16/CleanMate/pkg/logger"
)

type fakeSession struct{ err error }

func (f fakeSession) ResetPassword(_ context.Context, _ *models.ResetPasswordRequest) error {
	return f.err
}

func post(svc SessionService, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/reset-password", strings.NewReader(body))
	NewHandler(svc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandler_Accepted(t *testing.T) {
	rec := post(fakeSession{}, `{"email":"a@b.com"}`)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestHandler_InvalidEmail(t *testing.T) {
	rec := post(fakeSession{err: session.ErrInvalidEmail}, `{"email":"nope"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Please enter a valid email address.", resp.Error)
}

func TestHandler_InvalidBody(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, post(fakeSession{}, `not json`).Code)
}
