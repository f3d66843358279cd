// Package trackingrepo persists item location records, one row per tracked
// unit, in the item_locations table.
package trackingrepo

import (
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/tracking"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RecordDTO struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID              uuid.UUID       `gorm:"type:uuid;not null;index:idx_item_locations_unit"`
	BoxID                uuid.NullUUID   `gorm:"type:uuid;index:idx_item_locations_unit"`
	ItemID               uuid.NullUUID   `gorm:"type:uuid;index:idx_item_locations_unit"`
	Weight               decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Volume               decimal.Decimal `gorm:"type:numeric(14,6);not null"`
	ItemCount            int             `gorm:"not null"`
	LocationID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	LocationCode         string          `gorm:"type:varchar(64);not null"`
	Status               string          `gorm:"type:varchar(16);not null;index"`
	PreviousLocationID   uuid.NullUUID   `gorm:"type:uuid"`
	PreviousLocationCode string          `gorm:"type:varchar(64);not null;default:''"`
	ArrivedAt            *time.Time      `gorm:"type:timestamptz"`
	DepartedAt           *time.Time      `gorm:"type:timestamptz"`
	MovedBy              string          `gorm:"type:varchar(255);not null;default:''"`
	Method               string          `gorm:"type:varchar(16);not null;default:''"`
	MovementType         string          `gorm:"type:varchar(16);not null;default:''"`
	PlannedMoveAt        *time.Time      `gorm:"index"`
	PickedUpAt           *time.Time      `gorm:"type:timestamptz"`
	PickedUpBy           string          `gorm:"type:varchar(255);not null;default:''"`
	Alert                bool            `gorm:"not null;default:false"`
	AlertReason          string          `gorm:"type:text;not null;default:''"`
	AlertedAt            *time.Time      `gorm:"type:timestamptz"`
	CreatedAt            time.Time       `gorm:"not null"`
	UpdatedAt            time.Time       `gorm:"not null"`
	Version              int64           `gorm:"not null"`
}

func (RecordDTO) TableName() string {
	return "item_locations"
}

func nullUUID(id *kernel.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: id.Bytes(), Valid: true}
}

func fromNullUUID(id uuid.NullUUID) (*kernel.UUID, error) {
	if !id.Valid {
		return nil, nil //nolint:nilnil // absent optional reference
	}
	parsed, err := kernel.UUIDFromBytes(id.UUID[:])
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func fromDomain(r *tracking.Record) RecordDTO {
	unit := r.Unit()
	load := r.Load()

	return RecordDTO{
		ID:                   r.ID().Bytes(),
		OrderID:              unit.OrderID.Bytes(),
		BoxID:                nullUUID(unit.BoxID),
		ItemID:               nullUUID(unit.ItemID),
		Weight:               load.Weight,
		Volume:               load.Volume,
		ItemCount:            load.Count,
		LocationID:           r.LocationID().Bytes(),
		LocationCode:         r.LocationCode(),
		Status:               r.Status().String(),
		PreviousLocationID:   nullUUID(r.PreviousLocationID()),
		PreviousLocationCode: r.PreviousLocationCode(),
		ArrivedAt:            r.ArrivedAt(),
		DepartedAt:           r.DepartedAt(),
		MovedBy:              r.MovedBy(),
		Method:               string(r.Method()),
		MovementType:         string(r.MovementType()),
		PlannedMoveAt:        r.PlannedMoveAt(),
		PickedUpAt:           r.PickedUpAt(),
		PickedUpBy:           r.PickedUpBy(),
		Alert:                r.HasAlert(),
		AlertReason:          r.AlertReason(),
		AlertedAt:            r.AlertedAt(),
		CreatedAt:            r.CreatedAt(),
		UpdatedAt:            r.UpdatedAt(),
		Version:              r.Version(),
	}
}

func toDomain(dto RecordDTO) (*tracking.Record, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	boxID, err := fromNullUUID(dto.BoxID)
	if err != nil {
		return nil, err
	}
	itemID, err := fromNullUUID(dto.ItemID)
	if err != nil {
		return nil, err
	}
	locationID, err := kernel.UUIDFromBytes(dto.LocationID[:])
	if err != nil {
		return nil, err
	}
	previousID, err := fromNullUUID(dto.PreviousLocationID)
	if err != nil {
		return nil, err
	}
	status, err := tracking.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return tracking.RestoreRecord(tracking.Snapshot{
		ID:                   id,
		Unit:                 tracking.Unit{OrderID: orderID, BoxID: boxID, ItemID: itemID},
		Load:                 tracking.Load{Weight: dto.Weight, Volume: dto.Volume, Count: dto.ItemCount},
		LocationID:           locationID,
		LocationCode:         dto.LocationCode,
		Status:               status,
		PreviousLocationID:   previousID,
		PreviousLocationCode: dto.PreviousLocationCode,
		ArrivedAt:            dto.ArrivedAt,
		DepartedAt:           dto.DepartedAt,
		MovedBy:              dto.MovedBy,
		Method:               tracking.Method(dto.Method),
		MovementType:         tracking.MovementType(dto.MovementType),
		PlannedMoveAt:        dto.PlannedMoveAt,
		PickedUpAt:           dto.PickedUpAt,
		PickedUpBy:           dto.PickedUpBy,
		Alert:                dto.Alert,
		AlertReason:          dto.AlertReason,
		AlertedAt:            dto.AlertedAt,
		CreatedAt:            dto.CreatedAt,
		UpdatedAt:            dto.UpdatedAt,
		Version:              dto.Version,
	})
}
