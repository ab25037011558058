package services_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/velora-studio/booking-backend/internal/domain/entities"
)

// MockBookingRepository mocks the booking record store
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *entities.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*entities.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id string, expected, next entities.BookingStatus, updatedAt time.Time) (*entities.Booking, error) {
	args := m.Called(ctx, id, expected, next, updatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Booking), args.Error(1)
}

func (m *MockBookingRepository) SetCalendarEventID(ctx context.Context, id, eventID string) error {
	args := m.Called(ctx, id, eventID)
	return args.Error(0)
}

// MockServiceRepository mocks service reference data
type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) GetByID(ctx context.Context, id string) (*entities.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Service), args.Error(1)
}

func (m *MockServiceRepository) GetByName(ctx context.Context, name string) (*entities.Service, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Service), args.Error(1)
}

func (m *MockServiceRepository) List(ctx context.Context) ([]*entities.Service, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Service), args.Error(1)
}

// MockLocationRepository mocks location reference data
type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) GetByID(ctx context.Context, id string) (*entities.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Location), args.Error(1)
}

// MockCalendarProvider mocks the external calendar
type MockCalendarProvider struct {
	mock.Mock
}

func (m *MockCalendarProvider) GetBusyIntervals(ctx context.Context, calendarID string, window entities.TimeWindow) ([]entities.BusyInterval, error) {
	args := m.Called(ctx, calendarID, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.BusyInterval), args.Error(1)
}

func (m *MockCalendarProvider) CreateEvent(ctx context.Context, calendarID, title, description string, start, end time.Time) (string, error) {
	args := m.Called(ctx, calendarID, title, description, start, end)
	return args.String(0), args.Error(1)
}

func (m *MockCalendarProvider) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	args := m.Called(ctx, calendarID, eventID)
	return args.Error(0)
}

// MockNotificationSender mocks the notification channel
type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) Send(ctx context.Context, recipient string, notificationType entities.NotificationType, details entities.NotificationDetails) error {
	args := m.Called(ctx, recipient, notificationType, details)
	return args.Error(0)
}

// InMemoryCache is a map-backed cache for availability tests
type InMemoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
	gets int
}

func NewInMemoryCache() *InMemoryCache {
	return &InMemoryCache{data: make(map[string][]byte)}
}

func (c *InMemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if val, ok := c.data[key]; ok {
		return val, nil
	}
	return nil, fmt.Errorf("key not found: %s", key)
}

func (c *InMemoryCache) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.data[key] = value
	return nil
}

func (c *InMemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}
