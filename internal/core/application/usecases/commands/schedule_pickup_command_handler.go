package commands

import (
	"context"

	"forwarding/internal/core/domain/model/tracking"
)

type SchedulePickupCommandHandler struct {
	uowFactory StorageUoWFactory
	clock      Clock
}

func NewSchedulePickupCommandHandler(uowFactory StorageUoWFactory, clock Clock) SchedulePickupCommandHandler {
	return SchedulePickupCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h SchedulePickupCommandHandler) Handle(ctx context.Context, cmd SchedulePickupCommand) (*tracking.Record, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := h.clock.now()
	return mutateRecord(ctx, h.uowFactory, cmd.RecordID(), func(r *tracking.Record) error {
		return r.SchedulePickup(cmd.At(), now)
	})
}
