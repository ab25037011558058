package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/velora-studio/booking-backend/internal/domain/entities"
	"github.com/velora-studio/booking-backend/internal/domain/repositories"
	"github.com/velora-studio/booking-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/velora-studio/booking-backend/pkg/errors"
)

var bookingColumns = []interface{}{
	"id", "client_id", "client_name", "contact_name", "contact_channel",
	"service_id", "service_name", "service_duration_minutes", "location_id",
	"proposed_start_time", "proposed_end_time", "status", "calendar_event_id",
	"notes", "created_at", "updated_at",
}

// BookingAdapter implements the BookingRepository interface on PostgreSQL.
// The conditional status update relies on the database serializing writers
// to the same row; no application-level locking exists.
type BookingAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewBookingAdapter creates a new booking adapter
func NewBookingAdapter(client *postgres.Client) repositories.BookingRepository {
	return &BookingAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new booking; a duplicate id fails the insert.
func (a *BookingAdapter) Create(ctx context.Context, booking *entities.Booking) error {
	record := goqu.Record{
		"id":                       booking.ID,
		"client_id":                booking.ClientID,
		"client_name":              booking.ClientName,
		"contact_name":             booking.Contact.Name,
		"contact_channel":          booking.Contact.Channel,
		"service_id":               booking.ServiceID,
		"service_name":             booking.ServiceName,
		"service_duration_minutes": booking.ServiceDurationMinutes,
		"location_id":              booking.LocationID,
		"proposed_start_time":      booking.ProposedStartTime,
		"proposed_end_time":        booking.ProposedEndTime,
		"status":                   booking.Status,
		"calendar_event_id":        booking.CalendarEventID,
		"notes":                    booking.Notes,
		"created_at":               booking.CreatedAt,
		"updated_at":               booking.UpdatedAt,
	}

	query, args, err := a.db.Insert("bookings").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewStoreUnavailableError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewStoreUnavailableError("failed to create booking", err)
	}
	return nil
}

// GetByID retrieves a booking by ID
func (a *BookingAdapter) GetByID(ctx context.Context, id string) (*entities.Booking, error) {
	query, args, err := a.db.Select(bookingColumns...).
		From("bookings").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError("failed to build query", err)
	}

	return a.scanBooking(a.client.DB().QueryRowContext(ctx, query, args...), id)
}

// UpdateStatus applies the conditional transition. When the guard does not
// match, the row is re-read to distinguish a missing booking from a
// concurrent or illegal transition.
func (a *BookingAdapter) UpdateStatus(ctx context.Context, id string, expected, next entities.BookingStatus, updatedAt time.Time) (*entities.Booking, error) {
	query, args, err := a.db.Update("bookings").
		Set(goqu.Record{"status": next, "updated_at": updatedAt}).
		Where(goqu.Ex{"id": id, "status": expected}).
		Returning(bookingColumns...).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError("failed to build update query", err)
	}

	booking, err := a.scanBooking(a.client.DB().QueryRowContext(ctx, query, args...), id)
	if err == nil {
		return booking, nil
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		return nil, err
	}

	// Condition failed: either the booking is gone or its status moved.
	current, getErr := a.GetByID(ctx, id)
	if getErr != nil {
		return nil, getErr
	}
	return nil, apperrors.NewInvalidTransitionError(
		fmt.Sprintf("booking status is no longer %s", expected),
		string(current.Status),
	)
}

// SetCalendarEventID writes the external event id onto a confirmed booking.
// The guard keeps the id write-once.
func (a *BookingAdapter) SetCalendarEventID(ctx context.Context, id, eventID string) error {
	query, args, err := a.db.Update("bookings").
		Set(goqu.Record{"calendar_event_id": eventID, "updated_at": time.Now().UTC()}).
		Where(goqu.Ex{
			"id":                id,
			"status":            entities.BookingStatusConfirmed,
			"calendar_event_id": nil,
		}).
		ToSQL()
	if err != nil {
		return apperrors.NewStoreUnavailableError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewStoreUnavailableError("failed to set calendar event id", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewStoreUnavailableError("failed to read affected rows", err)
	}
	if affected == 0 {
		return apperrors.NewStoreUnavailableError(
			fmt.Sprintf("calendar event id write-back rejected for booking %s", id), nil)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (a *BookingAdapter) scanBooking(row rowScanner, id string) (*entities.Booking, error) {
	booking := &entities.Booking{}
	var contactName, contactChannel, notes sql.NullString
	var calendarEventID sql.NullString

	err := row.Scan(
		&booking.ID,
		&booking.ClientID,
		&booking.ClientName,
		&contactName,
		&contactChannel,
		&booking.ServiceID,
		&booking.ServiceName,
		&booking.ServiceDurationMinutes,
		&booking.LocationID,
		&booking.ProposedStartTime,
		&booking.ProposedEndTime,
		&booking.Status,
		&calendarEventID,
		&notes,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("booking with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError("failed to read booking", err)
	}

	booking.Contact = entities.ClientContact{Name: contactName.String, Channel: contactChannel.String}
	booking.Notes = notes.String
	if calendarEventID.Valid {
		booking.CalendarEventID = &calendarEventID.String
	}
	return booking, nil
}
