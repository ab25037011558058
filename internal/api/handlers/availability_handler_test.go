package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/velora-studio/booking-backend/internal/api/handlers"
	"github.com/velora-studio/booking-backend/internal/domain/entities"
	apperrors "github.com/velora-studio/booking-backend/pkg/errors"
)

// MockAvailabilityService mocks availability queries
type MockAvailabilityService struct {
	mock.Mock
}

func (m *MockAvailabilityService) GetAvailableSlots(ctx context.Context, locationID, serviceID string, window entities.TimeWindow) ([]time.Time, error) {
	args := m.Called(ctx, locationID, serviceID, window)
	slots, _ := args.Get(0).([]time.Time)
	return slots, args.Error(1)
}

func TestAvailabilityHandler_GetAvailability(t *testing.T) {
	t.Run("returns formatted slots", func(t *testing.T) {
		service := new(MockAvailabilityService)
		handler := handlers.NewAvailabilityHandler(service)

		slots := []time.Time{
			time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 2, 9, 15, 0, 0, time.UTC),
		}
		service.On("GetAvailableSlots", mock.Anything, "loc-1", "svc-1", mock.Anything).Return(slots, nil)

		req := httptest.NewRequest("GET",
			"/api/availability?location_id=loc-1&service_id=svc-1&from=2026-03-02T09:00:00Z&to=2026-03-02T17:00:00Z", nil)
		w := httptest.NewRecorder()

		handler.GetAvailability(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			AvailableSlots []string `json:"availableSlots"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, []string{"2026-03-02T09:00:00Z", "2026-03-02T09:15:00Z"}, resp.AvailableSlots)
	})

	t.Run("no availability is an empty array, not null", func(t *testing.T) {
		service := new(MockAvailabilityService)
		handler := handlers.NewAvailabilityHandler(service)

		service.On("GetAvailableSlots", mock.Anything, "loc-1", "svc-1", mock.Anything).Return([]time.Time{}, nil)

		req := httptest.NewRequest("GET",
			"/api/availability?location_id=loc-1&service_id=svc-1&from=2026-03-02T09:00:00Z&to=2026-03-02T17:00:00Z", nil)
		w := httptest.NewRecorder()

		handler.GetAvailability(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"availableSlots":[]`)
	})

	t.Run("missing query parameters are a bad request", func(t *testing.T) {
		handler := handlers.NewAvailabilityHandler(new(MockAvailabilityService))

		req := httptest.NewRequest("GET", "/api/availability?location_id=loc-1", nil)
		w := httptest.NewRecorder()

		handler.GetAvailability(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed dates are a bad request", func(t *testing.T) {
		handler := handlers.NewAvailabilityHandler(new(MockAvailabilityService))

		req := httptest.NewRequest("GET",
			"/api/availability?location_id=loc-1&service_id=svc-1&from=yesterday&to=tomorrow", nil)
		w := httptest.NewRecorder()

		handler.GetAvailability(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("calendar outages map to 502", func(t *testing.T) {
		service := new(MockAvailabilityService)
		handler := handlers.NewAvailabilityHandler(service)

		service.On("GetAvailableSlots", mock.Anything, "loc-1", "svc-1", mock.Anything).
			Return(nil, apperrors.NewExternalError("failed to fetch calendar busy intervals", nil))

		req := httptest.NewRequest("GET",
			"/api/availability?location_id=loc-1&service_id=svc-1&from=2026-03-02T09:00:00Z&to=2026-03-02T17:00:00Z", nil)
		w := httptest.NewRecorder()

		handler.GetAvailability(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}
