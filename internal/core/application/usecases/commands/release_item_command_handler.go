package commands

import (
	"context"

	"forwarding/internal/core/domain/model/tracking"
)

// ReleaseItemCommandHandler departs the record, then frees its load on the
// location it left.
type ReleaseItemCommandHandler struct {
	uowFactory StorageUoWFactory
	clock      Clock
}

func NewReleaseItemCommandHandler(uowFactory StorageUoWFactory, clock Clock) ReleaseItemCommandHandler {
	return ReleaseItemCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h ReleaseItemCommandHandler) Handle(ctx context.Context, cmd ReleaseItemCommand) (*tracking.Record, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := h.clock.now()
	record, err := mutateRecord(ctx, h.uowFactory, cmd.RecordID(), func(r *tracking.Record) error {
		return r.Depart(cmd.MovedBy(), cmd.MovementType(), now)
	})
	if err != nil {
		return nil, err
	}

	if err = releaseLoad(ctx, h.uowFactory, record.LocationID(), record.Load(), now); err != nil {
		return nil, err
	}

	return record, nil
}
