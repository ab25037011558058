package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/velora-studio/booking-backend/internal/domain/entities"
	"github.com/velora-studio/booking-backend/internal/domain/providers"
	"github.com/velora-studio/booking-backend/internal/domain/repositories"
	apperrors "github.com/velora-studio/booking-backend/pkg/errors"
)

// SlotStride is the fixed granularity at which candidate start times are
// generated, beginning at the window start.
const SlotStride = 15 * time.Minute

// ComputeAvailableSlots returns the ordered candidate start times at which a
// service of the given duration could begin inside the window. A candidate
// occupies [start, start+duration+buffer); it is accepted when that interval
// fits the window, lies within the business-hours policy, and does not
// strictly overlap any busy interval. The buffer affects slot spacing only;
// it never appears on a booking's own end time.
//
// The function is pure: no I/O, deterministic for identical inputs. The
// caller must have validated duration > 0 and buffer >= 0 beforehand.
func ComputeAvailableSlots(
	window entities.TimeWindow,
	serviceDurationMinutes int,
	bufferMinutes int,
	policy entities.BusinessHoursPolicy,
	busyIntervals []entities.BusyInterval,
) []time.Time {
	occupied := time.Duration(serviceDurationMinutes+bufferMinutes) * time.Minute

	var slots []time.Time
	for cursor := window.Start; !cursor.Add(occupied).After(window.End); cursor = cursor.Add(SlotStride) {
		end := cursor.Add(occupied)

		if !policy.Covers(cursor, end) {
			continue
		}
		if overlapsAny(cursor, end, busyIntervals) {
			continue
		}
		slots = append(slots, cursor)
	}
	return slots
}

func overlapsAny(start, end time.Time, busy []entities.BusyInterval) bool {
	for _, interval := range busy {
		if interval.Overlaps(start, end) {
			return true
		}
	}
	return false
}

// AvailabilityService resolves availability queries: it loads the service and
// location reference data, fetches busy intervals from the calendar provider
// (with a short-lived cache in front) and runs the slot computation.
type AvailabilityService struct {
	serviceRepo  repositories.ServiceRepository
	locationRepo repositories.LocationRepository
	calendar     providers.CalendarProvider
	cache        providers.CacheProvider
	cacheTTL     int
}

// NewAvailabilityService creates a new availability service. cache may be nil
// to disable busy-interval caching.
func NewAvailabilityService(
	serviceRepo repositories.ServiceRepository,
	locationRepo repositories.LocationRepository,
	calendar providers.CalendarProvider,
	cache providers.CacheProvider,
	cacheTTLSeconds int,
) *AvailabilityService {
	return &AvailabilityService{
		serviceRepo:  serviceRepo,
		locationRepo: locationRepo,
		calendar:     calendar,
		cache:        cache,
		cacheTTL:     cacheTTLSeconds,
	}
}

// GetAvailableSlots returns bookable start times for a service at a location
// within the window.
func (s *AvailabilityService) GetAvailableSlots(ctx context.Context, locationID, serviceID string, window entities.TimeWindow) ([]time.Time, error) {
	if window.End.Before(window.Start) {
		return nil, apperrors.NewValidationError("window end must not be before window start")
	}
	if window.IsZeroLength() {
		return []time.Time{}, nil
	}

	svc, err := s.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if svc.DurationMinutes <= 0 {
		return nil, apperrors.NewValidationError(fmt.Sprintf("service %s has non-positive duration", serviceID))
	}
	if svc.BufferMinutes < 0 {
		return nil, apperrors.NewValidationError(fmt.Sprintf("service %s has negative buffer", serviceID))
	}

	location, err := s.locationRepo.GetByID(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if err := location.BusinessHours.Validate(); err != nil {
		return nil, apperrors.NewStoreUnavailableError("location business hours misconfigured", err)
	}

	busy, err := s.busyIntervals(ctx, location.CalendarID, window)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to fetch calendar busy intervals", err)
	}

	slots := ComputeAvailableSlots(window, svc.DurationMinutes, svc.BufferMinutes, location.BusinessHours, busy)

	log.Ctx(ctx).Debug().
		Str("location_id", locationID).
		Str("service_id", serviceID).
		Int("busy_intervals", len(busy)).
		Int("slots", len(slots)).
		Msg("computed available slots")

	if slots == nil {
		slots = []time.Time{}
	}
	return slots, nil
}

// busyIntervals fetches busy intervals, consulting the cache first. Cache
// errors fall through to a live provider call.
func (s *AvailabilityService) busyIntervals(ctx context.Context, calendarID string, window entities.TimeWindow) ([]entities.BusyInterval, error) {
	key := fmt.Sprintf("busy:%s:%d:%d", calendarID, window.Start.Unix(), window.End.Unix())

	if s.cache != nil {
		if data, err := s.cache.Get(ctx, key); err == nil {
			var cached []entities.BusyInterval
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	busy, err := s.calendar.GetBusyIntervals(ctx, calendarID, window)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && s.cacheTTL > 0 {
		if data, err := json.Marshal(busy); err == nil {
			if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
				log.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("failed to cache busy intervals")
			}
		}
	}
	return busy, nil
}
