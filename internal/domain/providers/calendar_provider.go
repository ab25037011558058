package providers

import (
	"context"
	"time"

	"github.com/velora-studio/booking-backend/internal/domain/entities"
)

// CalendarProvider defines the interface for the external calendar system
// (Google Calendar, CalDAV, etc.). The core only needs the minimal
// freebusy/create/delete contract.
type CalendarProvider interface {
	// GetBusyIntervals returns the existing commitments on a calendar within
	// the query window.
	GetBusyIntervals(ctx context.Context, calendarID string, window entities.TimeWindow) ([]entities.BusyInterval, error)

	// CreateEvent creates an event and returns the provider's event id.
	CreateEvent(ctx context.Context, calendarID, title, description string, start, end time.Time) (string, error)

	// DeleteEvent removes an event from a calendar.
	DeleteEvent(ctx context.Context, calendarID, eventID string) error
}
