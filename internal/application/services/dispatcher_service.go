package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/velora-studio/booking-backend/internal/domain/entities"
	"github.com/velora-studio/booking-backend/internal/domain/providers"
	"github.com/velora-studio/booking-backend/internal/domain/repositories"
	apperrors "github.com/velora-studio/booking-backend/pkg/errors"
)

// DispatchOutcome reports the result of executing one effect.
type DispatchOutcome struct {
	Effect  entities.Effect
	EventID string
	Err     error
}

// DispatcherService executes effects emitted by committed lifecycle
// transitions. Effects run in the order given (calendar before notify), each
// in isolation: one failure never blocks the rest, nothing is retried, and
// nothing rolls back the transition that produced the batch. Failures are
// logged and reported in the outcomes, never surfaced to the booking caller.
type DispatcherService struct {
	calendar providers.CalendarProvider
	notifier providers.NotificationSender
	repo     repositories.BookingRepository
}

// NewDispatcherService creates a new dispatcher service
func NewDispatcherService(
	calendar providers.CalendarProvider,
	notifier providers.NotificationSender,
	repo repositories.BookingRepository,
) *DispatcherService {
	return &DispatcherService{
		calendar: calendar,
		notifier: notifier,
		repo:     repo,
	}
}

// Dispatch executes each effect independently and returns per-effect
// outcomes in the same order.
func (d *DispatcherService) Dispatch(ctx context.Context, effects []entities.Effect) []DispatchOutcome {
	outcomes := make([]DispatchOutcome, 0, len(effects))
	for _, effect := range effects {
		outcomes = append(outcomes, d.dispatchOne(ctx, effect))
	}
	return outcomes
}

func (d *DispatcherService) dispatchOne(ctx context.Context, effect entities.Effect) DispatchOutcome {
	outcome := DispatchOutcome{Effect: effect}

	switch e := effect.(type) {
	case entities.CreateCalendarEvent:
		eventID, err := d.calendar.CreateEvent(ctx, e.CalendarID, e.Title, e.Description, e.Start, e.End)
		if err != nil {
			outcome.Err = apperrors.NewExternalError("calendar event creation failed", err)
			log.Ctx(ctx).Error().Err(err).
				Str("booking_id", e.BookingID).
				Str("calendar_id", e.CalendarID).
				Msg("dispatch: calendar event creation failed")
			return outcome
		}
		outcome.EventID = eventID

		// The booking status is already committed; if the write-back fails we
		// are left with an orphaned calendar event. That inconsistency window
		// is logged, not auto-healed.
		if err := d.repo.SetCalendarEventID(ctx, e.BookingID, eventID); err != nil {
			outcome.Err = apperrors.NewStoreUnavailableError("calendar event id write-back failed", err)
			log.Ctx(ctx).Error().Err(err).
				Str("booking_id", e.BookingID).
				Str("event_id", eventID).
				Msg("dispatch: event id write-back failed, calendar event is orphaned")
			return outcome
		}

		log.Ctx(ctx).Info().
			Str("booking_id", e.BookingID).
			Str("event_id", eventID).
			Msg("dispatch: calendar event created")

	case entities.DeleteCalendarEvent:
		if err := d.calendar.DeleteEvent(ctx, e.CalendarID, e.EventID); err != nil {
			outcome.Err = apperrors.NewExternalError("calendar event deletion failed", err)
			log.Ctx(ctx).Error().Err(err).
				Str("booking_id", e.BookingID).
				Str("event_id", e.EventID).
				Msg("dispatch: calendar event deletion failed")
			return outcome
		}
		log.Ctx(ctx).Info().
			Str("booking_id", e.BookingID).
			Str("event_id", e.EventID).
			Msg("dispatch: calendar event deleted")

	case entities.Notify:
		if e.Recipient == "" {
			outcome.Err = apperrors.NewValidationError("notification skipped: no recipient contact")
			log.Ctx(ctx).Warn().
				Str("booking_id", e.BookingID).
				Str("notification_type", string(e.NotificationType)).
				Msg("dispatch: notification skipped, no recipient")
			return outcome
		}
		if err := d.notifier.Send(ctx, e.Recipient, e.NotificationType, e.Details); err != nil {
			outcome.Err = apperrors.NewExternalError("notification send failed", err)
			log.Ctx(ctx).Error().Err(err).
				Str("booking_id", e.BookingID).
				Str("notification_type", string(e.NotificationType)).
				Msg("dispatch: notification send failed")
			return outcome
		}
		log.Ctx(ctx).Info().
			Str("booking_id", e.BookingID).
			Str("notification_type", string(e.NotificationType)).
			Msg("dispatch: notification sent")

	default:
		outcome.Err = apperrors.NewValidationError("unknown effect type")
		log.Ctx(ctx).Error().
			Str("booking_id", effect.EffectBookingID()).
			Msg("dispatch: unknown effect type")
	}

	return outcome
}
