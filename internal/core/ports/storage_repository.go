package ports

import (
	"context"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/storage"
)

// StorageLocationRepository persists storage locations. Capacity changes go
// through GetForUpdate so that at most one transaction mutates a location.
type StorageLocationRepository interface {
	Add(ctx context.Context, location *storage.Location) error
	Update(ctx context.Context, location *storage.Location) error
	Get(ctx context.Context, id kernel.UUID) (*storage.Location, error)

	// GetForUpdate loads the location and holds a row lock until the
	// surrounding transaction ends. A lock that cannot be obtained in time
	// is reported as errs.ConcurrencyConflictError.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*storage.Location, error)

	GetByCode(ctx context.Context, code string) (*storage.Location, error)
	HasChildren(ctx context.Context, id kernel.UUID) (bool, error)
	Delete(ctx context.Context, id kernel.UUID) error

	// GetAllWithExpiredReservations returns locations still carrying a
	// reservation that lapsed before now.
	GetAllWithExpiredReservations(ctx context.Context, now time.Time) ([]*storage.Location, error)
}
