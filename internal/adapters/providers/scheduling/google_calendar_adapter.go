package scheduling

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/velora-studio/booking-backend/internal/domain/entities"
	"github.com/velora-studio/booking-backend/internal/domain/providers"
)

// GoogleCalendarAdapter implements CalendarProvider against the Google
// Calendar REST API. Only the minimal freebusy/insert/delete contract is
// used; anything provider-specific beyond that stays out of the core.
type GoogleCalendarAdapter struct {
	accessToken string
	client      *http.Client
	baseURL     string
}

// NewGoogleCalendarAdapter creates a new Google Calendar adapter
func NewGoogleCalendarAdapter(baseURL, accessToken string) providers.CalendarProvider {
	return &GoogleCalendarAdapter{
		accessToken: accessToken,
		client:      &http.Client{Timeout: 10 * time.Second},
		baseURL:     baseURL,
	}
}

type freeBusyRequest struct {
	TimeMin string           `json:"timeMin"`
	TimeMax string           `json:"timeMax"`
	Items   []freeBusyItem   `json:"items"`
}

type freeBusyItem struct {
	ID string `json:"id"`
}

type freeBusyResponse struct {
	Calendars map[string]struct {
		Busy []struct {
			Start time.Time `json:"start"`
			End   time.Time `json:"end"`
		} `json:"busy"`
	} `json:"calendars"`
}

// GetBusyIntervals queries the freebusy endpoint for a calendar and window.
func (a *GoogleCalendarAdapter) GetBusyIntervals(ctx context.Context, calendarID string, window entities.TimeWindow) ([]entities.BusyInterval, error) {
	payload := freeBusyRequest{
		TimeMin: window.Start.UTC().Format(time.RFC3339),
		TimeMax: window.End.UTC().Format(time.RFC3339),
		Items:   []freeBusyItem{{ID: calendarID}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/freeBusy", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	a.addHeaders(req)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("calendar %q not found or access denied", calendarID)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("calendar api error: status %d", resp.StatusCode)
	}

	var result freeBusyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	var intervals []entities.BusyInterval
	for _, busy := range result.Calendars[calendarID].Busy {
		intervals = append(intervals, entities.BusyInterval{
			Start: busy.Start.UTC(),
			End:   busy.End.UTC(),
		})
	}
	return intervals, nil
}

type eventTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

type eventBody struct {
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	Start       eventTime `json:"start"`
	End         eventTime `json:"end"`
}

// CreateEvent inserts an event and returns the provider's event id.
func (a *GoogleCalendarAdapter) CreateEvent(ctx context.Context, calendarID, title, description string, start, end time.Time) (string, error) {
	payload := eventBody{
		Summary:     title,
		Description: description,
		Start:       eventTime{DateTime: start.UTC().Format(time.RFC3339), TimeZone: "UTC"},
		End:         eventTime{DateTime: end.UTC().Format(time.RFC3339), TimeZone: "UTC"},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/calendars/%s/events", a.baseURL, url.PathEscape(calendarID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	a.addHeaders(req)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("calendar api error: status %d", resp.StatusCode)
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", err
	}
	if created.ID == "" {
		return "", fmt.Errorf("calendar api returned no event id")
	}
	return created.ID, nil
}

// DeleteEvent removes an event. An already-gone event is treated as success.
func (a *GoogleCalendarAdapter) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	endpoint := fmt.Sprintf("%s/calendars/%s/events/%s", a.baseURL, url.PathEscape(calendarID), url.PathEscape(eventID))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	a.addHeaders(req)

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent, http.StatusGone:
		return nil
	default:
		return fmt.Errorf("failed to delete event: status %d", resp.StatusCode)
	}
}

func (a *GoogleCalendarAdapter) addHeaders(req *http.Request) {
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", a.accessToken))
	req.Header.Set("Content-Type", "application/json")
}
