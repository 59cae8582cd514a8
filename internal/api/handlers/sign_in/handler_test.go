package sign_in

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vgcman16/CleanMate/internal/api/handlers"
	"github.com/vgcman16/CleanMate/internal/integrations/firebaseauth"
	"github.com/vgcman16/CleanMate/internal/service/session"
	"github.com/vgcman16/CleanMate/internal/service/session/models"
	"github.com/vgcman16/CleanMate/pkg/logger"
)

type fakeSession struct{ err error }

func (f fakeSession) SignIn(_ context.Context, req *models.SignInRequest) (*models.SessionResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.SessionResponse{UserID: "uid-1", Email: req.Email, IDToken: "token", ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func serve(svc SessionService, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/sign-in", strings.NewReader(body)))
	return rec
}

func TestHandler_SignedIn(t *testing.T) {
	rec := serve(fakeSession{}, `{"email":"jane@example.com","password":"secret1"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "uid-1", resp.UserID)
	assert.Equal(t, "token", resp.IDToken)
}

func TestHandler_AuthErrorsCarryMessage(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantMsg    string
	}{
		{firebaseauth.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password."},
		{firebaseauth.ErrUserDisabled, http.StatusUnauthorized, "This account has been disabled."},
		{session.ErrInvalidEmail, http.StatusBadRequest, "Please enter a valid email address."},
		{firebaseauth.ErrUnavailable, http.StatusBadGateway, msgSignInFailed},
	}

	for _, tt := range tests {
		rec := serve(fakeSession{err: tt.err}, `{"email":"jane@example.com","password":"x"}`)

		assert.Equal(t, tt.wantStatus, rec.Code, tt.err.Error())
		var body handlers.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, tt.wantMsg, body.Error)
	}
}
