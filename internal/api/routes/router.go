package routes

import (
	"net/http"

	"github.com/velora-studio/booking-backend/internal/api/handlers"
	"github.com/velora-studio/booking-backend/internal/api/middleware"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	bookingHandler      *handlers.BookingHandler
	availabilityHandler *handlers.AvailabilityHandler
	serviceHandler      *handlers.ServiceHandler
}

// NewRouter creates a new router
func NewRouter(
	bookingHandler *handlers.BookingHandler,
	availabilityHandler *handlers.AvailabilityHandler,
	serviceHandler *handlers.ServiceHandler,
) *Router {
	return &Router{
		mux:                 http.NewServeMux(),
		bookingHandler:      bookingHandler,
		availabilityHandler: availabilityHandler,
		serviceHandler:      serviceHandler,
	}
}

// Setup registers all routes and returns the wrapped handler
func (rt *Router) Setup() http.Handler {
	rt.mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	rt.mux.HandleFunc("GET /api/availability", rt.availabilityHandler.GetAvailability)
	rt.mux.HandleFunc("GET /api/services", rt.serviceHandler.ListServices)

	rt.mux.HandleFunc("POST /api/bookings", rt.bookingHandler.CreateBooking)
	rt.mux.HandleFunc("GET /api/bookings/{id}", rt.bookingHandler.GetBooking)
	rt.mux.HandleFunc("POST /api/bookings/{id}/confirm", rt.bookingHandler.ConfirmBooking)
	rt.mux.HandleFunc("POST /api/bookings/{id}/cancel", rt.bookingHandler.CancelBooking)
	rt.mux.HandleFunc("POST /api/bookings/{id}/reject", rt.bookingHandler.RejectBooking)
	rt.mux.HandleFunc("POST /api/bookings/{id}/complete", rt.bookingHandler.CompleteBooking)

	return middleware.CORSMiddleware(middleware.LoggingMiddleware(rt.mux))
}
