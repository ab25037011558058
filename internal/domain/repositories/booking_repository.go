package repositories

import (
	"context"
	"time"

	"github.com/velora-studio/booking-backend/internal/domain/entities"
)

// BookingRepository defines the record-store port for bookings. Concurrency
// safety for a single booking relies on the store's per-key conditional
// update; the core does no locking of its own.
type BookingRepository interface {
	// Create inserts a new booking. It fails if the key already exists.
	Create(ctx context.Context, booking *entities.Booking) error

	// GetByID retrieves a booking by ID.
	GetByID(ctx context.Context, id string) (*entities.Booking, error)

	// UpdateStatus performs the conditional status transition: the write only
	// applies while the stored status equals expected. On a condition failure
	// it returns an invalid-transition error carrying the actual status.
	UpdateStatus(ctx context.Context, id string, expected, next entities.BookingStatus, updatedAt time.Time) (*entities.Booking, error)

	// SetCalendarEventID writes the external event id back onto a confirmed
	// booking. The id is set at most once.
	SetCalendarEventID(ctx context.Context, id, eventID string) error
}
