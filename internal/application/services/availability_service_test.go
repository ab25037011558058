package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/velora-studio/booking-backend/internal/application/services"
	"github.com/velora-studio/booking-backend/internal/domain/entities"
	apperrors "github.com/velora-studio/booking-backend/pkg/errors"
)

// 2026-03-02 is a Monday.
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC)
}

func weekdayHours(open, close int) entities.BusinessHoursPolicy {
	policy := entities.BusinessHoursPolicy{}
	for day := time.Monday; day <= time.Friday; day++ {
		policy[day] = entities.DayHours{OpenHour: open, CloseHour: close}
	}
	return policy
}

func TestComputeAvailableSlots(t *testing.T) {
	t.Run("generates candidates on a fifteen minute stride", func(t *testing.T) {
		window := entities.TimeWindow{Start: at(9, 0), End: at(11, 0)}
		slots := services.ComputeAvailableSlots(window, 30, 0, weekdayHours(9, 17), nil)

		require.Len(t, slots, 7)
		for i, slot := range slots {
			assert.Equal(t, at(9, 0).Add(time.Duration(i)*services.SlotStride), slot)
		}
	})

	t.Run("buffer shrinks the set of fitting candidates", func(t *testing.T) {
		window := entities.TimeWindow{Start: at(9, 0), End: at(10, 0)}

		noBuffer := services.ComputeAvailableSlots(window, 30, 0, weekdayHours(9, 17), nil)
		withBuffer := services.ComputeAvailableSlots(window, 30, 15, weekdayHours(9, 17), nil)

		assert.Len(t, noBuffer, 3)
		// 30+15 minutes occupied: only 09:00 and 09:15 still fit the window.
		require.Len(t, withBuffer, 2)
		assert.Equal(t, at(9, 0), withBuffer[0])
		assert.Equal(t, at(9, 15), withBuffer[1])
	})

	t.Run("excludes candidates strictly overlapping busy intervals", func(t *testing.T) {
		window := entities.TimeWindow{Start: at(9, 0), End: at(12, 0)}
		busy := []entities.BusyInterval{{Start: at(10, 0), End: at(10, 30)}}

		slots := services.ComputeAvailableSlots(window, 30, 0, weekdayHours(9, 17), busy)

		for _, slot := range slots {
			end := slot.Add(30 * time.Minute)
			assert.False(t, busy[0].Overlaps(slot, end), "slot %v overlaps busy interval", slot)
		}
		// Touching endpoints do not overlap: a slot may end exactly at 10:00
		// and another may start exactly at 10:30.
		assert.Contains(t, slots, at(9, 30))
		assert.Contains(t, slots, at(10, 30))
		assert.NotContains(t, slots, at(9, 45))
		assert.NotContains(t, slots, at(10, 0))
		assert.NotContains(t, slots, at(10, 15))
	})

	t.Run("one hour window fully blocked by a mid window busy interval", func(t *testing.T) {
		window := entities.TimeWindow{Start: at(9, 0), End: at(10, 0)}
		busy := []entities.BusyInterval{{Start: at(9, 15), End: at(9, 45)}}

		slots := services.ComputeAvailableSlots(window, 60, 0, weekdayHours(9, 17), busy)

		assert.Empty(t, slots)
	})

	t.Run("slot may end exactly on the close hour", func(t *testing.T) {
		window := entities.TimeWindow{Start: at(16, 0), End: at(17, 30)}
		slots := services.ComputeAvailableSlots(window, 60, 0, weekdayHours(9, 17), nil)

		require.Len(t, slots, 1)
		assert.Equal(t, at(16, 0), slots[0])
	})

	t.Run("rejects candidates before the open hour", func(t *testing.T) {
		window := entities.TimeWindow{Start: at(8, 0), End: at(10, 0)}
		slots := services.ComputeAvailableSlots(window, 30, 0, weekdayHours(9, 17), nil)

		for _, slot := range slots {
			assert.GreaterOrEqual(t, slot.Hour(), 9)
		}
		assert.Equal(t, at(9, 0), slots[0])
	})

	t.Run("closed weekday yields no slots", func(t *testing.T) {
		sunday := monday.AddDate(0, 0, -1)
		window := entities.TimeWindow{
			Start: sunday.Add(9 * time.Hour),
			End:   sunday.Add(17 * time.Hour),
		}
		slots := services.ComputeAvailableSlots(window, 30, 0, weekdayHours(9, 17), nil)

		assert.Empty(t, slots)
	})

	t.Run("deterministic for identical inputs", func(t *testing.T) {
		window := entities.TimeWindow{Start: at(9, 0), End: at(13, 0)}
		busy := []entities.BusyInterval{
			{Start: at(10, 0), End: at(11, 0)},
			{Start: at(12, 0), End: at(12, 15)},
		}

		first := services.ComputeAvailableSlots(window, 45, 15, weekdayHours(9, 17), busy)
		second := services.ComputeAvailableSlots(window, 45, 15, weekdayHours(9, 17), busy)

		assert.Equal(t, first, second)
	})
}

func TestAvailabilityService_GetAvailableSlots(t *testing.T) {
	ctx := context.Background()

	service := &entities.Service{ID: "svc-1", Name: "Consultation", DurationMinutes: 30, BufferMinutes: 0}
	location := &entities.Location{
		ID:            "loc-1",
		Name:          "Main Studio",
		CalendarID:    "cal-1",
		BusinessHours: weekdayHours(9, 17),
	}

	t.Run("returns slots from reference data and calendar", func(t *testing.T) {
		serviceRepo := new(MockServiceRepository)
		locationRepo := new(MockLocationRepository)
		calendar := new(MockCalendarProvider)

		window := entities.TimeWindow{Start: at(9, 0), End: at(10, 0)}
		serviceRepo.On("GetByID", mock.Anything, "svc-1").Return(service, nil)
		locationRepo.On("GetByID", mock.Anything, "loc-1").Return(location, nil)
		calendar.On("GetBusyIntervals", mock.Anything, "cal-1", window).Return([]entities.BusyInterval{}, nil)

		svc := services.NewAvailabilityService(serviceRepo, locationRepo, calendar, nil, 0)
		slots, err := svc.GetAvailableSlots(ctx, "loc-1", "svc-1", window)

		require.NoError(t, err)
		assert.Len(t, slots, 3)
		serviceRepo.AssertExpectations(t)
		locationRepo.AssertExpectations(t)
		calendar.AssertExpectations(t)
	})

	t.Run("rejects inverted windows", func(t *testing.T) {
		svc := services.NewAvailabilityService(new(MockServiceRepository), new(MockLocationRepository), new(MockCalendarProvider), nil, 0)

		_, err := svc.GetAvailableSlots(ctx, "loc-1", "svc-1", entities.TimeWindow{Start: at(10, 0), End: at(9, 0)})

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("zero length window returns empty without touching dependencies", func(t *testing.T) {
		serviceRepo := new(MockServiceRepository)
		calendar := new(MockCalendarProvider)
		svc := services.NewAvailabilityService(serviceRepo, new(MockLocationRepository), calendar, nil, 0)

		slots, err := svc.GetAvailableSlots(ctx, "loc-1", "svc-1", entities.TimeWindow{Start: at(9, 0), End: at(9, 0)})

		require.NoError(t, err)
		assert.NotNil(t, slots)
		assert.Empty(t, slots)
		serviceRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		calendar.AssertNotCalled(t, "GetBusyIntervals", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("calendar failure surfaces as an external error", func(t *testing.T) {
		serviceRepo := new(MockServiceRepository)
		locationRepo := new(MockLocationRepository)
		calendar := new(MockCalendarProvider)

		window := entities.TimeWindow{Start: at(9, 0), End: at(10, 0)}
		serviceRepo.On("GetByID", mock.Anything, "svc-1").Return(service, nil)
		locationRepo.On("GetByID", mock.Anything, "loc-1").Return(location, nil)
		calendar.On("GetBusyIntervals", mock.Anything, "cal-1", window).Return(nil, errors.New("upstream timeout"))

		svc := services.NewAvailabilityService(serviceRepo, locationRepo, calendar, nil, 0)
		_, err := svc.GetAvailableSlots(ctx, "loc-1", "svc-1", window)

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
	})

	t.Run("second identical query is served from cache", func(t *testing.T) {
		serviceRepo := new(MockServiceRepository)
		locationRepo := new(MockLocationRepository)
		calendar := new(MockCalendarProvider)
		cache := NewInMemoryCache()

		window := entities.TimeWindow{Start: at(9, 0), End: at(12, 0)}
		serviceRepo.On("GetByID", mock.Anything, "svc-1").Return(service, nil)
		locationRepo.On("GetByID", mock.Anything, "loc-1").Return(location, nil)
		calendar.On("GetBusyIntervals", mock.Anything, "cal-1", window).
			Return([]entities.BusyInterval{{Start: at(10, 0), End: at(11, 0)}}, nil).Once()

		svc := services.NewAvailabilityService(serviceRepo, locationRepo, calendar, cache, 60)

		first, err := svc.GetAvailableSlots(ctx, "loc-1", "svc-1", window)
		require.NoError(t, err)
		second, err := svc.GetAvailableSlots(ctx, "loc-1", "svc-1", window)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		calendar.AssertNumberOfCalls(t, "GetBusyIntervals", 1)
	})

	t.Run("misconfigured business hours fail the query", func(t *testing.T) {
		serviceRepo := new(MockServiceRepository)
		locationRepo := new(MockLocationRepository)

		broken := &entities.Location{
			ID:         "loc-2",
			CalendarID: "cal-2",
			BusinessHours: entities.BusinessHoursPolicy{
				time.Monday: {OpenHour: 22, CloseHour: 6},
			},
		}
		serviceRepo.On("GetByID", mock.Anything, "svc-1").Return(service, nil)
		locationRepo.On("GetByID", mock.Anything, "loc-2").Return(broken, nil)

		svc := services.NewAvailabilityService(serviceRepo, locationRepo, new(MockCalendarProvider), nil, 0)
		_, err := svc.GetAvailableSlots(ctx, "loc-2", "svc-1", entities.TimeWindow{Start: at(9, 0), End: at(10, 0)})

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeStoreUnavailable))
	})
}
