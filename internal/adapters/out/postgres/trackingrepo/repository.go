package trackingrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"forwarding/internal/adapters/out/postgres/pgerr"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/tracking"
	"forwarding/internal/pkg/errs"

	"gorm.io/gorm"
)

const aggregateName = "item location"

// finalStatuses mark units that have left warehouse tracking.
var finalStatuses = []string{
	tracking.StatusPicked.String(),
	tracking.StatusLoaded.String(),
	tracking.StatusLost.String(),
}

// currentUnitIndex allows one non-final record per tracked unit. Absent box
// and item references are folded to the nil UUID so whole-order records
// collide too.
const currentUnitIndex = "idx_item_locations_current_unit"

// Migrate creates the item_locations table and its current-unit index.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&RecordDTO{}); err != nil {
		return err
	}

	quoted := make([]string, 0, len(finalStatuses))
	for _, s := range finalStatuses {
		quoted = append(quoted, "'"+s+"'")
	}
	return db.Exec(fmt.Sprintf(
		`CREATE UNIQUE INDEX IF NOT EXISTS %s ON item_locations (
			order_id,
			COALESCE(box_id, '00000000-0000-0000-0000-000000000000'::uuid),
			COALESCE(item_id, '00000000-0000-0000-0000-000000000000'::uuid)
		) WHERE status NOT IN (%s)`,
		currentUnitIndex, strings.Join(quoted, ", "),
	)).Error
}

// GormRecordRepository implements ItemLocationRepository using GORM.
type GormRecordRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormRecordRepository(db *gorm.DB, tracker aggregateTracker) *GormRecordRepository {
	return &GormRecordRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the record at version 1.
func (r *GormRecordRepository) Add(ctx context.Context, record *tracking.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	dto.Version = 1
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return translate(err, record)
	}

	record.SyncVersion(dto.Version)
	r.tracker.TrackAggregate(record.ID(), record)
	return nil
}

// Update writes the record only if nobody else bumped its version since it
// was read.
func (r *GormRecordRepository) Update(ctx context.Context, record *tracking.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	expected := dto.Version
	dto.Version = expected + 1

	result := r.db.WithContext(ctx).
		Model(&RecordDTO{}).
		Where("id = ? AND version = ?", dto.ID, expected).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return translate(result.Error, record)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&RecordDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError(aggregateName, record.ID().String())
		}
		return errs.NewConcurrencyConflictError(aggregateName, record.ID().String(), expected)
	}

	record.SyncVersion(dto.Version)
	r.tracker.TrackAggregate(record.ID(), record)
	return nil
}

func (r *GormRecordRepository) Get(ctx context.Context, id kernel.UUID) (*tracking.Record, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RecordDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(aggregateName, id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormRecordRepository) GetCurrentForUnit(ctx context.Context, unit tracking.Unit) (*tracking.Record, error) {
	if err := unit.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).
		Where("order_id = ?", unit.OrderID.Bytes()).
		Where("status NOT IN ?", finalStatuses)
	if unit.BoxID != nil {
		query = query.Where("box_id = ?", unit.BoxID.Bytes())
	} else {
		query = query.Where("box_id IS NULL")
	}
	if unit.ItemID != nil {
		query = query.Where("item_id = ?", unit.ItemID.Bytes())
	} else {
		query = query.Where("item_id IS NULL")
	}

	var dto RecordDTO
	if err := query.Order("created_at DESC").First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(aggregateName, unit.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllStoredWithPlannedMoveBefore skips records already alerted so that
// the overdue sweep raises each alert once.
func (r *GormRecordRepository) GetAllStoredWithPlannedMoveBefore(ctx context.Context, t time.Time) ([]*tracking.Record, error) {
	var dtos []RecordDTO
	if err := r.db.WithContext(ctx).
		Where("status = ?", tracking.StatusStored.String()).
		Where("NOT alert").
		Where("planned_move_at < ?", t).
		Order("planned_move_at").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	records := make([]*tracking.Record, 0, len(dtos))
	for _, dto := range dtos {
		record, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

func (r *GormRecordRepository) CountAtLocation(ctx context.Context, locationID kernel.UUID) (int64, error) {
	if err := locationID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&RecordDTO{}).
		Where("location_id = ?", locationID.Bytes()).
		Where("status NOT IN ?", finalStatuses).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

// translate reports a second current record for a unit as a lost race.
func translate(err error, record *tracking.Record) error {
	if pgerr.IsUniqueViolation(err, currentUnitIndex) {
		return errs.NewConcurrencyConflictErrorWithCause(aggregateName, record.Unit().String(), err)
	}
	return pgerr.Translate(err, aggregateName, record.ID().String())
}
