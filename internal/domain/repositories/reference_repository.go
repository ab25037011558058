package repositories

import (
	"context"

	"github.com/velora-studio/booking-backend/internal/domain/entities"
)

// ServiceRepository defines read-only access to service reference data.
type ServiceRepository interface {
	// GetByID retrieves a service by ID.
	GetByID(ctx context.Context, id string) (*entities.Service, error)

	// GetByName retrieves a service by its display name.
	GetByName(ctx context.Context, name string) (*entities.Service, error)

	// List retrieves all services.
	List(ctx context.Context) ([]*entities.Service, error)
}

// LocationRepository defines read-only access to location reference data.
type LocationRepository interface {
	// GetByID retrieves a location by ID.
	GetByID(ctx context.Context, id string) (*entities.Location, error)
}
