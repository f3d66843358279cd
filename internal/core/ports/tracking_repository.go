package ports

import (
	"context"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/tracking"
)

// ItemLocationRepository persists one current record per tracked unit.
type ItemLocationRepository interface {
	Add(ctx context.Context, record *tracking.Record) error

	// Update uses the same optimistic version check as OrderRepository.Update.
	Update(ctx context.Context, record *tracking.Record) error

	Get(ctx context.Context, id kernel.UUID) (*tracking.Record, error)

	// GetCurrentForUnit returns the record of a unit that has not left
	// tracking, or errs.ObjectNotFoundError.
	GetCurrentForUnit(ctx context.Context, unit tracking.Unit) (*tracking.Record, error)

	// GetAllStoredWithPlannedMoveBefore returns STORED records without an
	// alert whose planned move time is before t.
	GetAllStoredWithPlannedMoveBefore(ctx context.Context, t time.Time) ([]*tracking.Record, error)

	// CountAtLocation counts records that still reference the location.
	CountAtLocation(ctx context.Context, locationID kernel.UUID) (int64, error)
}
