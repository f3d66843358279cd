// Package settingsrepo stores rule thresholds in the single-row rule_settings
// table. Unset columns and a missing row fall back to the configured defaults.
package settingsrepo

import (
	"context"
	"errors"
	"time"

	"forwarding/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const settingsRowID = 1

type SettingsDTO struct {
	ID                int                 `gorm:"primaryKey;autoIncrement:false"`
	VolumeThresholdM3 decimal.NullDecimal `gorm:"column:volume_threshold_m3;type:numeric(14,6)"`
	AmountThreshold   decimal.NullDecimal `gorm:"type:numeric(18,2)"`
	ReferenceCurrency *string             `gorm:"type:char(3)"`
	UpdatedAt         time.Time           `gorm:"not null"`
}

func (SettingsDTO) TableName() string {
	return "rule_settings"
}

type GormRuleSettingsRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormRuleSettingsRepository(db *gorm.DB) *GormRuleSettingsRepository {
	return &GormRuleSettingsRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Get overlays the stored values on defaults.
func (r *GormRuleSettingsRepository) Get(ctx context.Context, defaults services.Thresholds) (services.Thresholds, error) {
	var dto SettingsDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", settingsRowID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return defaults, nil
		}
		return services.Thresholds{}, err
	}

	result := defaults
	if dto.VolumeThresholdM3.Valid {
		result.VolumeM3 = dto.VolumeThresholdM3.Decimal
	}
	if dto.AmountThreshold.Valid {
		result.Amount = dto.AmountThreshold.Decimal
	}
	if dto.ReferenceCurrency != nil && *dto.ReferenceCurrency != "" {
		result.ReferenceCurrency = *dto.ReferenceCurrency
	}

	return result, nil
}

// Save replaces all stored thresholds.
func (r *GormRuleSettingsRepository) Save(ctx context.Context, thresholds services.Thresholds) error {
	if err := thresholds.Validate(); err != nil {
		return err
	}

	currency := thresholds.ReferenceCurrency
	dto := SettingsDTO{
		ID:                settingsRowID,
		VolumeThresholdM3: decimal.NewNullDecimal(thresholds.VolumeM3),
		AmountThreshold:   decimal.NewNullDecimal(thresholds.Amount),
		ReferenceCurrency: &currency,
		UpdatedAt:         r.now(),
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&dto).Error
}
