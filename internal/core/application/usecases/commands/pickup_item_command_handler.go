package commands

import (
	"context"

	"forwarding/internal/core/domain/model/tracking"
)

// PickupItemCommandHandler hands a unit over for outbound transport and
// frees its load.
type PickupItemCommandHandler struct {
	uowFactory StorageUoWFactory
	clock      Clock
}

func NewPickupItemCommandHandler(uowFactory StorageUoWFactory, clock Clock) PickupItemCommandHandler {
	return PickupItemCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h PickupItemCommandHandler) Handle(ctx context.Context, cmd PickupItemCommand) (*tracking.Record, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := h.clock.now()
	record, err := mutateRecord(ctx, h.uowFactory, cmd.RecordID(), func(r *tracking.Record) error {
		return r.Pickup(cmd.PickedUpBy(), now)
	})
	if err != nil {
		return nil, err
	}

	if err = releaseLoad(ctx, h.uowFactory, record.LocationID(), record.Load(), now); err != nil {
		return nil, err
	}

	return record, nil
}
