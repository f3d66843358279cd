package commands

import (
	"context"
	"time"

	"forwarding/internal/core/domain/model/storage"
)

type ChangeStorageLocationStatusCommandHandler struct {
	uowFactory StorageUoWFactory
	clock      Clock
}

func NewChangeStorageLocationStatusCommandHandler(
	uowFactory StorageUoWFactory,
	clock Clock,
) ChangeStorageLocationStatusCommandHandler {
	return ChangeStorageLocationStatusCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h ChangeStorageLocationStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeStorageLocationStatusCommand,
) (*storage.Location, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := h.clock.now()
	return mutateLocation(ctx, h.uowFactory, cmd.LocationID(), func(l *storage.Location) error {
		return applyLocationAction(l, cmd.Action(), now)
	})
}

func applyLocationAction(l *storage.Location, action LocationAction, now time.Time) error {
	switch action {
	case LocationActionMaintenance:
		return l.StartMaintenance(now)
	case LocationActionBlock:
		return l.Block(now)
	case LocationActionReopen:
		return l.Reopen(now)
	case LocationActionVacate:
		return l.Vacate(now)
	default:
		return l.Retire(now)
	}
}
