package get_profile

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vgcman16/CleanMate/internal/api/middleware"
	"github.com/vgcman16/CleanMate/internal/service/session"
	"github.com/vgcman16/CleanMate/internal/service/session/models"
	"github.com/vgcman16/CleanMate/pkg/logger"
)

type fakeSession struct{ err error }

func (f fakeSession) GetProfile(_ context.Context, userID string) (*models.ProfileResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.ProfileResponse{ID: userID, Email: "a@b.com", FullName: "Ann", Addresses: []models.AddressResponse{}}, nil
}

func get(svc SessionService, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	if userID != "" {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandler_Profile(t *testing.T) {
	rec := get(fakeSession{}, "uid-1")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.ProfileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "uid-1", resp.ID)
	assert.Equal(t, "Ann", resp.FullName)
}

func TestHandler_Errors(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, get(fakeSession{}, "").Code)
	assert.Equal(t, http.StatusNotFound, get(fakeSession{err: session.ErrProfileNotFound}, "uid-1").Code)
	assert.Equal(t, http.StatusInternalServerError, get(fakeSession{err: errors.New("mongo down")}, "uid-1").Code)
}
