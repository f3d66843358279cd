package storagerepo

import (
	"context"
	"errors"
	"time"

	"forwarding/internal/adapters/out/postgres/pgerr"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/storage"
	"forwarding/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const aggregateName = "storage location"

// GormLocationRepository implements StorageLocationRepository using GORM.
type GormLocationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormLocationRepository(db *gorm.DB, tracker aggregateTracker) *GormLocationRepository {
	return &GormLocationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new location. A duplicate code surfaces as a business rule
// violation.
func (r *GormLocationRepository) Add(ctx context.Context, location *storage.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}

	dto := fromDomain(location)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, aggregateName, location.Code())
	}

	r.tracker.TrackAggregate(location.ID(), location)
	return nil
}

// Update writes every column, zero values included.
func (r *GormLocationRepository) Update(ctx context.Context, location *storage.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}

	dto := fromDomain(location)
	result := r.db.WithContext(ctx).
		Model(&LocationDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return pgerr.Translate(result.Error, aggregateName, location.ID().String())
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError(aggregateName, location.ID().String())
	}

	r.tracker.TrackAggregate(location.ID(), location)
	return nil
}

func (r *GormLocationRepository) Get(ctx context.Context, id kernel.UUID) (*storage.Location, error) {
	return r.get(ctx, r.db.WithContext(ctx), id)
}

// GetForUpdate takes a row lock held until the surrounding transaction ends.
func (r *GormLocationRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*storage.Location, error) {
	return r.get(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormLocationRepository) GetByCode(ctx context.Context, code string) (*storage.Location, error) {
	var dto LocationDTO
	if err := r.db.WithContext(ctx).First(&dto, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(aggregateName, code)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormLocationRepository) HasChildren(ctx context.Context, id kernel.UUID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&LocationDTO{}).
		Where("parent_id = ?", id.Bytes()).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *GormLocationRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&LocationDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return pgerr.Translate(result.Error, aggregateName, id.String())
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError(aggregateName, id.String())
	}

	return nil
}

// GetAllWithExpiredReservations returns locations whose reservation lapsed
// before now, oldest first.
func (r *GormLocationRepository) GetAllWithExpiredReservations(ctx context.Context, now time.Time) ([]*storage.Location, error) {
	var dtos []LocationDTO
	if err := r.db.WithContext(ctx).
		Where("reserved_until IS NOT NULL AND reserved_until < ?", now).
		Order("reserved_until").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

func (r *GormLocationRepository) get(ctx context.Context, db *gorm.DB, id kernel.UUID) (*storage.Location, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto LocationDTO
	if err := db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(aggregateName, id.String())
		}
		return nil, pgerr.Translate(err, aggregateName, id.String())
	}

	return toDomain(dto)
}
