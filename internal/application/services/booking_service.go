package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/velora-studio/booking-backend/internal/domain/entities"
	"github.com/velora-studio/booking-backend/internal/domain/repositories"
	apperrors "github.com/velora-studio/booking-backend/pkg/errors"
)

// BookingService owns the booking state machine. Each transition performs
// exactly one persisted mutation and returns the effects the dispatcher
// should carry out. Effects are never emitted for failed transitions.
//
// The service is a pure state-transition authority: it does not re-verify
// slot availability on create or confirm. Callers are expected to have
// consulted the availability service first; two clients racing between the
// slot check and confirm can still end up overlapping, which is a documented
// best-effort property of the system.
type BookingService struct {
	repo         repositories.BookingRepository
	serviceRepo  repositories.ServiceRepository
	locationRepo repositories.LocationRepository
}

// NewBookingService creates a new booking service
func NewBookingService(
	repo repositories.BookingRepository,
	serviceRepo repositories.ServiceRepository,
	locationRepo repositories.LocationRepository,
) *BookingService {
	return &BookingService{
		repo:         repo,
		serviceRepo:  serviceRepo,
		locationRepo: locationRepo,
	}
}

// CreateBookingInput carries the validated request fields for Create.
type CreateBookingInput struct {
	ClientID          string
	ClientName        string
	Contact           entities.ClientContact
	ServiceName       string
	LocationID        string
	ProposedStartTime time.Time
	Notes             string
}

func (in *CreateBookingInput) validate() error {
	var missing []string
	if strings.TrimSpace(in.ClientID) == "" {
		missing = append(missing, "clientId")
	}
	if strings.TrimSpace(in.ClientName) == "" {
		missing = append(missing, "clientName")
	}
	if strings.TrimSpace(in.ServiceName) == "" {
		missing = append(missing, "serviceName")
	}
	if strings.TrimSpace(in.LocationID) == "" {
		missing = append(missing, "locationId")
	}
	if in.ProposedStartTime.IsZero() {
		missing = append(missing, "proposedStartTime")
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError("missing required fields: " + strings.Join(missing, ", "))
	}
	return nil
}

// Create writes a new booking in pending_confirmation. The caller has already
// verified slot availability; Create does not re-check it.
func (s *BookingService) Create(ctx context.Context, input CreateBookingInput) (*entities.Booking, []entities.Effect, error) {
	if err := input.validate(); err != nil {
		return nil, nil, err
	}

	svc, err := s.serviceRepo.GetByName(ctx, input.ServiceName)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return nil, nil, apperrors.NewValidationError(fmt.Sprintf("unknown service %q", input.ServiceName))
		}
		return nil, nil, err
	}
	if svc.DurationMinutes <= 0 {
		return nil, nil, apperrors.NewValidationError(fmt.Sprintf("service %q has non-positive duration", input.ServiceName))
	}

	location, err := s.locationRepo.GetByID(ctx, input.LocationID)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return nil, nil, apperrors.NewValidationError(fmt.Sprintf("unknown location %q", input.LocationID))
		}
		return nil, nil, err
	}

	now := time.Now().UTC()
	start := input.ProposedStartTime.UTC()
	booking := &entities.Booking{
		ID:                     uuid.New().String(),
		ClientID:               input.ClientID,
		ClientName:             input.ClientName,
		Contact:                input.Contact,
		ServiceID:              svc.ID,
		ServiceName:            svc.Name,
		ServiceDurationMinutes: svc.DurationMinutes,
		LocationID:             location.ID,
		ProposedStartTime:      start,
		ProposedEndTime:        start.Add(time.Duration(svc.DurationMinutes) * time.Minute),
		Status:                 entities.BookingStatusPendingConfirmation,
		Notes:                  input.Notes,
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, nil, err
	}

	log.Ctx(ctx).Info().
		Str("booking_id", booking.ID).
		Str("service_id", booking.ServiceID).
		Str("location_id", booking.LocationID).
		Time("start", booking.ProposedStartTime).
		Msg("provisional booking created")

	var effects []entities.Effect
	if booking.HasContact() {
		effects = append(effects, entities.Notify{
			BookingID:        booking.ID,
			Recipient:        booking.Contact.Channel,
			NotificationType: entities.NotificationProvisionalCreated,
			Details:          s.notificationDetails(booking, location.Name, ""),
		})
	}
	return booking, effects, nil
}

// Confirm moves a pending booking to confirmed and emits the calendar-event
// and confirmation-notify effects. Repeated confirms are rejected, not
// absorbed: the transition is deliberately not idempotent.
func (s *BookingService) Confirm(ctx context.Context, bookingID string) (*entities.Booking, []entities.Effect, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}
	if booking.Status != entities.BookingStatusPendingConfirmation {
		return nil, nil, apperrors.NewInvalidTransitionError(
			"booking can only be confirmed from pending_confirmation",
			string(booking.Status),
		)
	}

	// Reference data feeds the calendar effect; its absence is a
	// configuration failure, not a client error.
	svc, err := s.serviceRepo.GetByID(ctx, booking.ServiceID)
	if err != nil {
		return nil, nil, apperrors.NewStoreUnavailableError("service reference data unavailable for confirm", err)
	}
	location, err := s.locationRepo.GetByID(ctx, booking.LocationID)
	if err != nil {
		return nil, nil, apperrors.NewStoreUnavailableError("location reference data unavailable for confirm", err)
	}

	updated, err := s.repo.UpdateStatus(ctx, booking.ID, entities.BookingStatusPendingConfirmation, entities.BookingStatusConfirmed, time.Now().UTC())
	if err != nil {
		return nil, nil, err
	}

	log.Ctx(ctx).Info().
		Str("booking_id", updated.ID).
		Str("status", string(updated.Status)).
		Msg("booking confirmed")

	effects := []entities.Effect{
		entities.CreateCalendarEvent{
			BookingID:   updated.ID,
			CalendarID:  location.CalendarID,
			Title:       fmt.Sprintf("%s - %s", svc.Name, updated.ClientName),
			Description: calendarDescription(updated),
			Start:       updated.ProposedStartTime,
			End:         updated.ProposedEndTime,
		},
		entities.Notify{
			BookingID:        updated.ID,
			Recipient:        updated.Contact.Channel,
			NotificationType: entities.NotificationBookingConfirmed,
			Details:          s.notificationDetails(updated, location.Name, ""),
		},
	}
	return updated, effects, nil
}

// Cancel moves a non-terminal booking to cancelled. A booking without a
// calendar event emits no delete effect; a booking without a contact channel
// emits no notify effect.
func (s *BookingService) Cancel(ctx context.Context, bookingID string) (*entities.Booking, []entities.Effect, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}
	if booking.Status.IsTerminal() {
		return nil, nil, apperrors.NewInvalidTransitionError(
			"booking is already in a terminal status",
			string(booking.Status),
		)
	}

	location, err := s.locationRepo.GetByID(ctx, booking.LocationID)
	if err != nil {
		return nil, nil, apperrors.NewStoreUnavailableError("location reference data unavailable for cancel", err)
	}

	updated, err := s.repo.UpdateStatus(ctx, booking.ID, booking.Status, entities.BookingStatusCancelled, time.Now().UTC())
	if err != nil {
		return nil, nil, err
	}

	log.Ctx(ctx).Info().
		Str("booking_id", updated.ID).
		Str("previous_status", string(booking.Status)).
		Msg("booking cancelled")

	var effects []entities.Effect
	if updated.CalendarEventID != nil && *updated.CalendarEventID != "" {
		effects = append(effects, entities.DeleteCalendarEvent{
			BookingID:  updated.ID,
			CalendarID: location.CalendarID,
			EventID:    *updated.CalendarEventID,
		})
	}
	if updated.HasContact() {
		effects = append(effects, entities.Notify{
			BookingID:        updated.ID,
			Recipient:        updated.Contact.Channel,
			NotificationType: entities.NotificationBookingCancelled,
			Details:          s.notificationDetails(updated, location.Name, ""),
		})
	}
	return updated, effects, nil
}

// Reject declines a pending booking with a reason forwarded to the client.
func (s *BookingService) Reject(ctx context.Context, bookingID, reason string) (*entities.Booking, []entities.Effect, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}
	if booking.Status != entities.BookingStatusPendingConfirmation {
		return nil, nil, apperrors.NewInvalidTransitionError(
			"booking can only be rejected from pending_confirmation",
			string(booking.Status),
		)
	}

	location, err := s.locationRepo.GetByID(ctx, booking.LocationID)
	if err != nil {
		return nil, nil, apperrors.NewStoreUnavailableError("location reference data unavailable for reject", err)
	}

	updated, err := s.repo.UpdateStatus(ctx, booking.ID, entities.BookingStatusPendingConfirmation, entities.BookingStatusRejected, time.Now().UTC())
	if err != nil {
		return nil, nil, err
	}

	log.Ctx(ctx).Info().
		Str("booking_id", updated.ID).
		Str("reason", reason).
		Msg("booking rejected")

	var effects []entities.Effect
	if updated.HasContact() {
		effects = append(effects, entities.Notify{
			BookingID:        updated.ID,
			Recipient:        updated.Contact.Channel,
			NotificationType: entities.NotificationBookingRejected,
			Details:          s.notificationDetails(updated, location.Name, reason),
		})
	}
	return updated, effects, nil
}

// Complete marks a confirmed booking as completed. No effects are emitted.
func (s *BookingService) Complete(ctx context.Context, bookingID string) (*entities.Booking, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != entities.BookingStatusConfirmed {
		return nil, apperrors.NewInvalidTransitionError(
			"booking can only be completed from confirmed",
			string(booking.Status),
		)
	}

	updated, err := s.repo.UpdateStatus(ctx, booking.ID, entities.BookingStatusConfirmed, entities.BookingStatusCompleted, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Get retrieves a booking by id.
func (s *BookingService) Get(ctx context.Context, bookingID string) (*entities.Booking, error) {
	return s.repo.GetByID(ctx, bookingID)
}

func (s *BookingService) notificationDetails(b *entities.Booking, locationName, reason string) entities.NotificationDetails {
	return entities.NotificationDetails{
		BookingID:    b.ID,
		ClientName:   b.ClientName,
		ServiceName:  b.ServiceName,
		LocationName: locationName,
		StartTime:    b.ProposedStartTime,
		Reason:       reason,
	}
}

func calendarDescription(b *entities.Booking) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Booking %s\nClient: %s", b.ID, b.ClientName)
	if b.HasContact() {
		fmt.Fprintf(&sb, " (%s)", b.Contact.Channel)
	}
	if b.Notes != "" {
		fmt.Fprintf(&sb, "\nNotes: %s", b.Notes)
	}
	return sb.String()
}
