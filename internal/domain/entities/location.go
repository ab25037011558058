package entities

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DayHours is a same-day open/close hour pair in UTC. A slot may end exactly
// at the close hour with zero minutes past; policies spanning midnight
// (Close <= Open) are not supported and fail validation.
type DayHours struct {
	OpenHour  int `json:"open"`
	CloseHour int `json:"close"`
}

// BusinessHoursPolicy maps weekdays to their open/close hours. Weekdays with
// no entry are closed.
type BusinessHoursPolicy map[time.Weekday]DayHours

// Validate rejects malformed policies, including midnight-spanning hours.
func (p BusinessHoursPolicy) Validate() error {
	for day, hours := range p {
		if hours.OpenHour < 0 || hours.OpenHour > 23 || hours.CloseHour < 1 || hours.CloseHour > 24 {
			return fmt.Errorf("business hours for %s out of range: open=%d close=%d", day, hours.OpenHour, hours.CloseHour)
		}
		if hours.CloseHour <= hours.OpenHour {
			return fmt.Errorf("business hours for %s span midnight or are empty: open=%d close=%d", day, hours.OpenHour, hours.CloseHour)
		}
	}
	return nil
}

// Covers reports whether the interval [start, end) lies entirely within the
// policy. Both endpoints must fall on open weekdays; the start hour must be
// at or after the open hour, and the end must be before the close hour or
// land exactly on it with zero minutes past.
func (p BusinessHoursPolicy) Covers(start, end time.Time) bool {
	start = start.UTC()
	end = end.UTC()

	startHours, ok := p[start.Weekday()]
	if !ok {
		return false
	}
	endHours, ok := p[end.Weekday()]
	if !ok {
		return false
	}

	if start.Hour() < startHours.OpenHour {
		return false
	}
	if end.Hour() > endHours.CloseHour {
		return false
	}
	if end.Hour() == endHours.CloseHour && (end.Minute() > 0 || end.Second() > 0) {
		return false
	}
	return true
}

// Value implements driver.Valuer so the policy persists as a JSON column.
func (p BusinessHoursPolicy) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements sql.Scanner for reading the JSON column back.
func (p *BusinessHoursPolicy) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	case nil:
		*p = nil
		return nil
	default:
		return fmt.Errorf("unsupported scan type %T for BusinessHoursPolicy", src)
	}
}

// Location is read-only reference data. CalendarID identifies the external
// calendar holding this location's commitments.
type Location struct {
	ID            string              `json:"id" db:"id"`
	Name          string              `json:"name" db:"name"`
	CalendarID    string              `json:"calendar_id" db:"calendar_id"`
	BusinessHours BusinessHoursPolicy `json:"business_hours" db:"business_hours"`
	CreatedAt     time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at" db:"updated_at"`
}
