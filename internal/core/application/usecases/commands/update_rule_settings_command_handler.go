package commands

import (
	"context"

	"forwarding/internal/core/ports"
)

type UpdateRuleSettingsCommandHandler struct {
	settings ports.RuleSettingsRepository
}

func NewUpdateRuleSettingsCommandHandler(settings ports.RuleSettingsRepository) UpdateRuleSettingsCommandHandler {
	return UpdateRuleSettingsCommandHandler{settings: settings}
}

func (h UpdateRuleSettingsCommandHandler) Handle(ctx context.Context, cmd UpdateRuleSettingsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.settings.Save(ctx, cmd.Thresholds())
}
