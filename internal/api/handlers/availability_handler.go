package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/velora-studio/booking-backend/internal/domain/entities"
)

// AvailabilityService defines the interface for availability queries
type AvailabilityService interface {
	GetAvailableSlots(ctx context.Context, locationID, serviceID string, window entities.TimeWindow) ([]time.Time, error)
}

// AvailabilityHandler handles availability requests
type AvailabilityHandler struct {
	service AvailabilityService
}

// NewAvailabilityHandler creates a new availability handler
func NewAvailabilityHandler(service AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
	}
}

// GetAvailability handles GET /api/availability
func (h *AvailabilityHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	locationID := r.URL.Query().Get("location_id")
	serviceID := r.URL.Query().Get("service_id")
	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")

	if locationID == "" || serviceID == "" || fromStr == "" || toStr == "" {
		respondWithError(w, http.StatusBadRequest, "location_id, service_id, from and to query parameters are required")
		return
	}

	from, err := time.Parse(time.RFC3339, fromStr)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid from date format (use RFC3339)")
		return
	}
	to, err := time.Parse(time.RFC3339, toStr)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid to date format (use RFC3339)")
		return
	}

	slots, err := h.service.GetAvailableSlots(r.Context(), locationID, serviceID, entities.TimeWindow{Start: from, End: to})
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	formatted := make([]string, 0, len(slots))
	for _, slot := range slots {
		formatted = append(formatted, slot.UTC().Format(time.RFC3339))
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"availableSlots": formatted,
	})
}
