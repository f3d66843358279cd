package ports

import (
	"context"

	"forwarding/internal/core/domain/services"
)

// RuleSettingsRepository reads rule thresholds. Values missing from storage
// are taken from defaults.
type RuleSettingsRepository interface {
	Get(ctx context.Context, defaults services.Thresholds) (services.Thresholds, error)
	Save(ctx context.Context, thresholds services.Thresholds) error
}
