package sign_up

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vgcman16/CleanMate/internal/integrations/firebaseauth"
	"github.com/vgcman16/CleanMate/internal/service/session"
	"github.com/vgcman16/CleanMate/internal/service/session/models"
	"github.com/vgcman16/CleanMate/pkg/logger"
)

type fakeSession struct{}

func (fakeSession) SignUp(_ context.Context, req *models.SignUpRequest) (*models.SessionResponse, error) {
	switch {
	case req.FullName == "":
		return nil, session.ErrNameRequired
	case req.Email == "taken@example.com":
		return nil, firebaseauth.ErrEmailAlreadyInUse
	}
	return &models.SessionResponse{UserID: "uid-1", Email: req.Email}, nil
}

func TestHandler(t *testing.T) {
	tests := []struct {
		body       string
		wantStatus int
	}{
		{`{"email":"jane@example.com","password":"secret1","fullName":"Jane Doe","phoneNumber":"+15125550100"}`, http.StatusCreated},
		{`{"email":"jane@example.com","password":"secret1","fullName":"","phoneNumber":"+15125550100"}`, http.StatusBadRequest},
		{`{"email":"taken@example.com","password":"secret1","fullName":"Jane","phoneNumber":"+15125550100"}`, http.StatusUnauthorized},
		{`[]`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		NewHandler(fakeSession{}, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/sign-up", strings.NewReader(tt.body)))
		assert.Equal(t, tt.wantStatus, rec.Code, tt.body)
	}
}
