package commands

import (
	"errors"

	"forwarding/internal/core/domain/services"
	"forwarding/internal/pkg/guard"
)

var ErrUpdateRuleSettingsCommandIsNotConstructed = errors.New(
	"UpdateRuleSettingsCommand must be created via NewUpdateRuleSettingsCommand constructor",
)

// UpdateRuleSettingsCommand replaces the stored rule thresholds. Orders are
// not re-evaluated; new values apply from the next evaluation.
type UpdateRuleSettingsCommand struct {
	thresholds services.Thresholds

	guard guard.ConstructorGuard
}

func NewUpdateRuleSettingsCommand(thresholds services.Thresholds) (UpdateRuleSettingsCommand, error) {
	if err := thresholds.Validate(); err != nil {
		return UpdateRuleSettingsCommand{}, err
	}
	return UpdateRuleSettingsCommand{thresholds: thresholds, guard: guard.NewConstructorGuard()}, nil
}

func (c UpdateRuleSettingsCommand) Validate() error {
	return c.guard.Validate(ErrUpdateRuleSettingsCommandIsNotConstructed)
}

func (c UpdateRuleSettingsCommand) Thresholds() services.Thresholds {
	return c.thresholds
}
