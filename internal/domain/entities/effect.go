package entities

import (
	"time"
)

// Effect is a side-effect instruction produced by a committed lifecycle
// transition. Effects are handed once to the dispatcher and never retried by
// the core; their outcome does not affect the already-committed transition.
type Effect interface {
	// EffectBookingID returns the booking the effect belongs to.
	EffectBookingID() string
}

// CreateCalendarEvent asks the dispatcher to create an event on the external
// calendar. The resulting event id is written back onto the booking.
type CreateCalendarEvent struct {
	BookingID   string
	CalendarID  string
	Title       string
	Description string
	Start       time.Time
	End         time.Time
}

func (e CreateCalendarEvent) EffectBookingID() string { return e.BookingID }

// DeleteCalendarEvent asks the dispatcher to remove a previously created
// calendar event.
type DeleteCalendarEvent struct {
	BookingID  string
	CalendarID string
	EventID    string
}

func (e DeleteCalendarEvent) EffectBookingID() string { return e.BookingID }

// Notify asks the dispatcher to send a client notification.
type Notify struct {
	BookingID        string
	Recipient        string
	NotificationType NotificationType
	Details          NotificationDetails
}

func (e Notify) EffectBookingID() string { return e.BookingID }
