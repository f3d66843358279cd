// Package storagerepo persists storage locations. The location hierarchy is a
// self-referencing table; usage counters live on the same row so that a
// single row lock covers every capacity check.
package storagerepo

import (
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/storage"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LocationDTO is the row of the storage_locations table.
type LocationDTO struct {
	ID               uuid.UUID           `gorm:"type:uuid;primaryKey"`
	Code             string              `gorm:"type:varchar(64);not null;uniqueIndex"`
	Name             string              `gorm:"type:varchar(255);not null"`
	Type             string              `gorm:"type:varchar(16);not null"`
	ParentID         uuid.NullUUID       `gorm:"type:uuid;index"`
	MaxWeight        decimal.NullDecimal `gorm:"type:numeric(14,2)"`
	MaxVolume        decimal.NullDecimal `gorm:"type:numeric(14,6)"`
	CurrentWeight    decimal.Decimal     `gorm:"type:numeric(14,2);not null;default:0"`
	CurrentVolume    decimal.Decimal     `gorm:"type:numeric(14,6);not null;default:0"`
	CurrentItemCount int                 `gorm:"not null;default:0"`
	Status           string              `gorm:"type:varchar(16);not null;index"`
	Active           bool                `gorm:"not null"`
	ReservedBy       string              `gorm:"type:varchar(255);not null;default:''"`
	ReservedUntil    *time.Time          `gorm:"index"`
	CreatedAt        time.Time           `gorm:"not null"`
	UpdatedAt        time.Time           `gorm:"not null"`
}

func (LocationDTO) TableName() string {
	return "storage_locations"
}

func fromDomain(l *storage.Location) LocationDTO {
	var parentID uuid.NullUUID
	if p := l.ParentID(); p != nil {
		parentID = uuid.NullUUID{UUID: p.Bytes(), Valid: true}
	}

	return LocationDTO{
		ID:               l.ID().Bytes(),
		Code:             l.Code(),
		Name:             l.Name(),
		Type:             l.Type().String(),
		ParentID:         parentID,
		MaxWeight:        l.MaxWeight(),
		MaxVolume:        l.MaxVolume(),
		CurrentWeight:    l.CurrentWeight(),
		CurrentVolume:    l.CurrentVolume(),
		CurrentItemCount: l.CurrentItemCount(),
		Status:           l.Status().String(),
		Active:           l.IsActive(),
		ReservedBy:       l.ReservedBy(),
		ReservedUntil:    l.ReservedUntil(),
		CreatedAt:        l.CreatedAt(),
		UpdatedAt:        l.UpdatedAt(),
	}
}

func toDomain(dto LocationDTO) (*storage.Location, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var parentID *kernel.UUID
	if dto.ParentID.Valid {
		p, parentErr := kernel.UUIDFromBytes(dto.ParentID.UUID[:])
		if parentErr != nil {
			return nil, parentErr
		}
		parentID = &p
	}

	locationType, err := storage.ParseLocationType(dto.Type)
	if err != nil {
		return nil, err
	}
	status, err := storage.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return storage.RestoreLocation(storage.Snapshot{
		ID:               id,
		Code:             dto.Code,
		Name:             dto.Name,
		Type:             locationType,
		ParentID:         parentID,
		MaxWeight:        dto.MaxWeight,
		MaxVolume:        dto.MaxVolume,
		CurrentWeight:    dto.CurrentWeight,
		CurrentVolume:    dto.CurrentVolume,
		CurrentItemCount: dto.CurrentItemCount,
		Status:           status,
		Active:           dto.Active,
		ReservedBy:       dto.ReservedBy,
		ReservedUntil:    dto.ReservedUntil,
		CreatedAt:        dto.CreatedAt,
		UpdatedAt:        dto.UpdatedAt,
	})
}

func toDomainList(dtos []LocationDTO) ([]*storage.Location, error) {
	locations := make([]*storage.Location, 0, len(dtos))
	for _, dto := range dtos {
		l, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}
	return locations, nil
}
