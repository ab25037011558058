package entities

import (
	"time"
)

// Service is read-only reference data describing a bookable service.
// DurationMinutes drives the booking's proposed end time; BufferMinutes is
// scheduling headroom reserved after the service and never appears on the
// booking itself.
type Service struct {
	ID              string    `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	DurationMinutes int       `json:"duration_minutes" db:"duration_minutes"`
	BufferMinutes   int       `json:"buffer_minutes" db:"buffer_minutes"`
	Price           float64   `json:"price" db:"price"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}
