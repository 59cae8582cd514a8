package list_services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vgcman16/CleanMate/internal/service/catalog/models"
	"github.com/vgcman16/CleanMate/pkg/logger"
)

type fakeCatalog struct {
	category *string
	popular  bool
}

func (f *fakeCatalog) List(_ context.Context, category *string, popularOnly bool) (*models.ServiceListResponse, error) {
	f.category = category
	f.popular = popularOnly
	return &models.ServiceListResponse{Services: []models.ServiceResponse{{ID: "deep", Name: "Deep Cleaning", Category: "deep", IsPopular: true}}}, nil
}

func TestHandler_Filters(t *testing.T) {
	svc := &fakeCatalog{}
	rec := httptest.NewRecorder()

	NewHandler(svc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/services?category=deep&popular=true", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.ServiceListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Services, 1)
	assert.Equal(t, "deep", resp.Services[0].ID)
	require.NotNil(t, svc.category)
	assert.Equal(t, "deep", *svc.category)
	assert.True(t, svc.popular)
}

func TestHandler_InvalidPopular(t *testing.T) {
	rec := httptest.NewRecorder()

	NewHandler(&fakeCatalog{}, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/services?popular=maybe", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
