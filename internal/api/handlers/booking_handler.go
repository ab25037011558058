package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/velora-studio/booking-backend/internal/application/services"
	"github.com/velora-studio/booking-backend/internal/domain/entities"
)

// BookingLifecycle defines the interface for booking lifecycle operations
type BookingLifecycle interface {
	Create(ctx context.Context, input services.CreateBookingInput) (*entities.Booking, []entities.Effect, error)
	Confirm(ctx context.Context, bookingID string) (*entities.Booking, []entities.Effect, error)
	Cancel(ctx context.Context, bookingID string) (*entities.Booking, []entities.Effect, error)
	Reject(ctx context.Context, bookingID, reason string) (*entities.Booking, []entities.Effect, error)
	Complete(ctx context.Context, bookingID string) (*entities.Booking, error)
	Get(ctx context.Context, bookingID string) (*entities.Booking, error)
}

// EffectDispatcher hands committed transition effects to the side-effect
// dispatcher. Outcomes are logged by the dispatcher; the HTTP response never
// depends on them.
type EffectDispatcher interface {
	Dispatch(ctx context.Context, effects []entities.Effect) []services.DispatchOutcome
}

// BookingHandler handles booking lifecycle requests
type BookingHandler struct {
	service    BookingLifecycle
	dispatcher EffectDispatcher
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(service BookingLifecycle, dispatcher EffectDispatcher) *BookingHandler {
	return &BookingHandler{
		service:    service,
		dispatcher: dispatcher,
	}
}

type createBookingRequest struct {
	ClientID          string `json:"clientId"`
	ClientName        string `json:"clientName"`
	ClientContact     string `json:"clientContact"`
	ServiceName       string `json:"serviceName"`
	LocationID        string `json:"locationId"`
	ProposedStartTime string `json:"proposedStartTime"`
	Notes             string `json:"notes"`
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	var start time.Time
	if req.ProposedStartTime != "" {
		parsed, err := time.Parse(time.RFC3339, req.ProposedStartTime)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid proposedStartTime format (use RFC3339)")
			return
		}
		start = parsed
	}

	input := services.CreateBookingInput{
		ClientID:          req.ClientID,
		ClientName:        req.ClientName,
		Contact:           entities.ClientContact{Name: req.ClientName, Channel: req.ClientContact},
		ServiceName:       req.ServiceName,
		LocationID:        req.LocationID,
		ProposedStartTime: start,
		Notes:             req.Notes,
	}

	booking, effects, err := h.service.Create(r.Context(), input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	h.dispatcher.Dispatch(r.Context(), effects)
	respondWithJSON(w, http.StatusCreated, booking)
}

// GetBooking handles GET /api/bookings/{id}
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := r.PathValue("id")
	if bookingID == "" {
		respondWithError(w, http.StatusBadRequest, "booking ID is required")
		return
	}

	booking, err := h.service.Get(r.Context(), bookingID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, booking)
}

// ConfirmBooking handles POST /api/bookings/{id}/confirm
func (h *BookingHandler) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := r.PathValue("id")
	if bookingID == "" {
		respondWithError(w, http.StatusBadRequest, "booking ID is required")
		return
	}

	booking, effects, err := h.service.Confirm(r.Context(), bookingID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	// The transition is committed; dispatch outcomes do not change the
	// response.
	h.dispatcher.Dispatch(r.Context(), effects)
	respondWithJSON(w, http.StatusOK, booking)
}

// CancelBooking handles POST /api/bookings/{id}/cancel
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := r.PathValue("id")
	if bookingID == "" {
		respondWithError(w, http.StatusBadRequest, "booking ID is required")
		return
	}

	booking, effects, err := h.service.Cancel(r.Context(), bookingID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	h.dispatcher.Dispatch(r.Context(), effects)
	respondWithJSON(w, http.StatusOK, booking)
}

type rejectBookingRequest struct {
	Reason string `json:"reason"`
}

// RejectBooking handles POST /api/bookings/{id}/reject
func (h *BookingHandler) RejectBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := r.PathValue("id")
	if bookingID == "" {
		respondWithError(w, http.StatusBadRequest, "booking ID is required")
		return
	}

	var req rejectBookingRequest
	if r.Body != nil {
		// A missing or empty body falls back to the default rejection reason.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	booking, effects, err := h.service.Reject(r.Context(), bookingID, req.Reason)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	h.dispatcher.Dispatch(r.Context(), effects)
	respondWithJSON(w, http.StatusOK, booking)
}

// CompleteBooking handles POST /api/bookings/{id}/complete
func (h *BookingHandler) CompleteBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := r.PathValue("id")
	if bookingID == "" {
		respondWithError(w, http.StatusBadRequest, "booking ID is required")
		return
	}

	booking, err := h.service.Complete(r.Context(), bookingID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, booking)
}
