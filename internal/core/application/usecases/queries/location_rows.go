// Package queries contains the read side: raw SQL over the same tables the
// repositories write, shaped into read models for the ops surface.
package queries

import (
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/storage"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const locationColumns = `
	id, code, name, type, parent_id,
	max_weight, max_volume, current_weight, current_volume, current_item_count,
	status, active, reserved_by, reserved_until, created_at, updated_at`

type locationRow struct {
	ID               uuid.UUID
	Code             string
	Name             string
	Type             string
	ParentID         uuid.NullUUID
	MaxWeight        decimal.NullDecimal
	MaxVolume        decimal.NullDecimal
	CurrentWeight    decimal.Decimal
	CurrentVolume    decimal.Decimal
	CurrentItemCount int
	Status           string
	Active           bool
	ReservedBy       string
	ReservedUntil    *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (r locationRow) toDomain() (*storage.Location, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return nil, err
	}

	var parentID *kernel.UUID
	if r.ParentID.Valid {
		p, err := kernel.UUIDFromBytes(r.ParentID.UUID[:])
		if err != nil {
			return nil, err
		}
		parentID = &p
	}

	locationType, err := storage.ParseLocationType(r.Type)
	if err != nil {
		return nil, err
	}
	status, err := storage.ParseStatus(r.Status)
	if err != nil {
		return nil, err
	}

	return storage.RestoreLocation(storage.Snapshot{
		ID:               id,
		Code:             r.Code,
		Name:             r.Name,
		Type:             locationType,
		ParentID:         parentID,
		MaxWeight:        r.MaxWeight,
		MaxVolume:        r.MaxVolume,
		CurrentWeight:    r.CurrentWeight,
		CurrentVolume:    r.CurrentVolume,
		CurrentItemCount: r.CurrentItemCount,
		Status:           status,
		Active:           r.Active,
		ReservedBy:       r.ReservedBy,
		ReservedUntil:    r.ReservedUntil,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	})
}

func rowsToLocations(rows []locationRow) ([]*storage.Location, error) {
	locations := make([]*storage.Location, 0, len(rows))
	for _, row := range rows {
		l, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}
	return locations, nil
}
