package cancel_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vgcman16/CleanMate/internal/api/middleware"
	"github.com/vgcman16/CleanMate/internal/service/bookings"
	"github.com/vgcman16/CleanMate/internal/service/bookings/models"
	"github.com/vgcman16/CleanMate/pkg/logger"
)

type fakeService struct{ err error }

func (f fakeService) Cancel(_ context.Context, id int64, userID string) (*models.BookingResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: id, UserID: userID, Status: "cancelled"}, nil
}

func serve(svc BookingService, path, userID string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/bookings/{bookingId}/cancel", NewHandler(svc, logger.NewNop()).Handle)
	req := httptest.NewRequest(http.MethodPatch, path, nil)
	if userID != "" {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Cancelled(t *testing.T) {
	rec := serve(fakeService{}, "/api/v1/bookings/5/cancel", "user-1")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, "cancelled", resp.Status)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		userID     string
		err        error
		wantStatus int
	}{
		{name: "нечисловой ID", path: "/api/v1/bookings/abc/cancel", userID: "user-1", wantStatus: http.StatusBadRequest},
		{name: "без пользователя", path: "/api/v1/bookings/5/cancel", wantStatus: http.StatusUnauthorized},
		{name: "не найдено", path: "/api/v1/bookings/5/cancel", userID: "user-1", err: bookings.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{name: "чужое", path: "/api/v1/bookings/5/cancel", userID: "user-1", err: bookings.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "завершено", path: "/api/v1/bookings/5/cancel", userID: "user-1", err: fmt.Errorf("%w: status completed", bookings.ErrCannotCancel), wantStatus: http.StatusConflict},
		{name: "внутренняя", path: "/api/v1/bookings/5/cancel", userID: "user-1", err: bookings.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, serve(fakeService{err: tt.err}, tt.path, tt.userID).Code)
		})
	}
}
