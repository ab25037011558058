package entities

import (
	"time"
)

// NotificationType identifies which fixed subject/body template a
// notification renders with.
type NotificationType string

const (
	NotificationBookingConfirmed   NotificationType = "BOOKING_CONFIRMED"
	NotificationBookingCancelled   NotificationType = "BOOKING_CANCELLED"
	NotificationBookingRejected    NotificationType = "BOOKING_REJECTED"
	NotificationProvisionalCreated NotificationType = "PROVISIONAL_BOOKING_CREATED"
)

// NotificationDetails carries the template variables for a notification.
// Reason is only used by BOOKING_REJECTED.
type NotificationDetails struct {
	BookingID    string    `json:"booking_id"`
	ClientName   string    `json:"client_name"`
	ServiceName  string    `json:"service_name"`
	LocationName string    `json:"location_name"`
	StartTime    time.Time `json:"start_time"`
	Reason       string    `json:"reason,omitempty"`
}
