package entities

import (
	"time"
)

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	BookingStatusPendingConfirmation BookingStatus = "pending_confirmation"
	BookingStatusConfirmed           BookingStatus = "confirmed"
	BookingStatusCancelled           BookingStatus = "cancelled"
	BookingStatusRejected            BookingStatus = "rejected"
	BookingStatusCompleted           BookingStatus = "completed"
)

// IsTerminal reports whether no further transition is permitted from s.
func (s BookingStatus) IsTerminal() bool {
	switch s {
	case BookingStatusCancelled, BookingStatusRejected, BookingStatusCompleted:
		return true
	}
	return false
}

// ClientContact is the channel a client can be reached on. Channel holds the
// address itself (email or phone number); an empty channel means the client
// left no way to reach them, which suppresses notifications but is not an
// error.
type ClientContact struct {
	Name    string `json:"name" db:"contact_name"`
	Channel string `json:"channel" db:"contact_channel"`
}

// IsZero reports whether no contact channel is present.
func (c ClientContact) IsZero() bool {
	return c.Channel == ""
}

// Booking is the central entity. It is created in pending_confirmation and
// mutated only by the booking service, one full transition at a time.
type Booking struct {
	ID                     string        `json:"id" db:"id"`
	ClientID               string        `json:"client_id" db:"client_id"`
	ClientName             string        `json:"client_name" db:"client_name"`
	Contact                ClientContact `json:"client_contact"`
	ServiceID              string        `json:"service_id" db:"service_id"`
	ServiceName            string        `json:"service_name" db:"service_name"`
	ServiceDurationMinutes int           `json:"service_duration_minutes" db:"service_duration_minutes"`
	LocationID             string        `json:"location_id" db:"location_id"`
	ProposedStartTime      time.Time     `json:"proposed_start_time" db:"proposed_start_time"`
	ProposedEndTime        time.Time     `json:"proposed_end_time" db:"proposed_end_time"`
	Status                 BookingStatus `json:"status" db:"status"`
	CalendarEventID        *string       `json:"calendar_event_id,omitempty" db:"calendar_event_id"`
	Notes                  string        `json:"notes,omitempty" db:"notes"`
	CreatedAt              time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt              time.Time     `json:"updated_at" db:"updated_at"`
}

// HasContact reports whether the booking carries a reachable contact channel.
func (b *Booking) HasContact() bool {
	return !b.Contact.IsZero()
}
