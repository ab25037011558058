package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/velora-studio/booking-backend/internal/domain/entities"
	"github.com/velora-studio/booking-backend/internal/domain/repositories"
	"github.com/velora-studio/booking-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/velora-studio/booking-backend/pkg/errors"
)

// ServiceAdapter implements the ServiceRepository interface. Services are
// read-only reference data, so the adapter only ever reads.
type ServiceAdapter struct {
	db *sqlx.DB
}

// NewServiceAdapter creates a new service adapter
func NewServiceAdapter(client *postgres.Client) repositories.ServiceRepository {
	return &ServiceAdapter{
		db: sqlx.NewDb(client.DB(), "postgres"),
	}
}

// GetByID retrieves a service by ID
func (a *ServiceAdapter) GetByID(ctx context.Context, id string) (*entities.Service, error) {
	var svc entities.Service
	query := `SELECT id, name, duration_minutes, buffer_minutes, price, created_at, updated_at FROM services WHERE id = $1`
	if err := a.db.GetContext(ctx, &svc, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("service with id %s not found", id))
		}
		return nil, apperrors.NewStoreUnavailableError("failed to get service", err)
	}
	return &svc, nil
}

// GetByName retrieves a service by display name
func (a *ServiceAdapter) GetByName(ctx context.Context, name string) (*entities.Service, error) {
	var svc entities.Service
	query := `SELECT id, name, duration_minutes, buffer_minutes, price, created_at, updated_at FROM services WHERE name = $1`
	if err := a.db.GetContext(ctx, &svc, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("service %q not found", name))
		}
		return nil, apperrors.NewStoreUnavailableError("failed to get service", err)
	}
	return &svc, nil
}

// List retrieves all services ordered by name
func (a *ServiceAdapter) List(ctx context.Context) ([]*entities.Service, error) {
	var services []*entities.Service
	query := `SELECT id, name, duration_minutes, buffer_minutes, price, created_at, updated_at FROM services ORDER BY name`
	if err := a.db.SelectContext(ctx, &services, query); err != nil {
		return nil, apperrors.NewStoreUnavailableError("failed to list services", err)
	}
	return services, nil
}

// LocationAdapter implements the LocationRepository interface.
type LocationAdapter struct {
	db *sqlx.DB
}

// NewLocationAdapter creates a new location adapter
func NewLocationAdapter(client *postgres.Client) repositories.LocationRepository {
	return &LocationAdapter{
		db: sqlx.NewDb(client.DB(), "postgres"),
	}
}

// GetByID retrieves a location by ID. Business hours are stored as a JSON
// column and decoded through the policy's sql.Scanner.
func (a *LocationAdapter) GetByID(ctx context.Context, id string) (*entities.Location, error) {
	var location entities.Location
	query := `SELECT id, name, calendar_id, business_hours, created_at, updated_at FROM locations WHERE id = $1`
	if err := a.db.GetContext(ctx, &location, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("location with id %s not found", id))
		}
		return nil, apperrors.NewStoreUnavailableError("failed to get location", err)
	}
	return &location, nil
}
