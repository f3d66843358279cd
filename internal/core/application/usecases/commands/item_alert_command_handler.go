package commands

import (
	"context"

	"forwarding/internal/core/domain/model/tracking"
)

type ItemAlertCommandHandler struct {
	uowFactory StorageUoWFactory
	clock      Clock
}

func NewItemAlertCommandHandler(uowFactory StorageUoWFactory, clock Clock) ItemAlertCommandHandler {
	return ItemAlertCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h ItemAlertCommandHandler) Handle(ctx context.Context, cmd ItemAlertCommand) (*tracking.Record, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := h.clock.now()
	holdsLoad := false
	record, err := mutateRecord(ctx, h.uowFactory, cmd.RecordID(), func(r *tracking.Record) error {
		switch cmd.Kind() {
		case AlertKindClear:
			r.ClearAlert(now)
			return nil
		case AlertKindDamaged:
			return r.MarkDamaged(cmd.Reason(), now)
		case AlertKindLost:
			holdsLoad = r.Status().IsAtLocation()
			return r.MarkLost(cmd.Reason(), now)
		default:
			return r.SetAlert(cmd.Reason(), now)
		}
	})
	if err != nil {
		return nil, err
	}

	if holdsLoad {
		if err = releaseLoad(ctx, h.uowFactory, record.LocationID(), record.Load(), now); err != nil {
			return nil, err
		}
	}

	return record, nil
}
