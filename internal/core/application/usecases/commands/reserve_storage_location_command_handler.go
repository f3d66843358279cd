package commands

import (
	"context"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/storage"
)

// ReserveStorageLocationCommandHandler locks the location row and reserves it.
type ReserveStorageLocationCommandHandler struct {
	uowFactory StorageUoWFactory
	clock      Clock
}

func NewReserveStorageLocationCommandHandler(uowFactory StorageUoWFactory, clock Clock) ReserveStorageLocationCommandHandler {
	return ReserveStorageLocationCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h ReserveStorageLocationCommandHandler) Handle(
	ctx context.Context,
	cmd ReserveStorageLocationCommand,
) (*storage.Location, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := h.clock.now()
	return mutateLocation(ctx, h.uowFactory, cmd.LocationID(), func(l *storage.Location) error {
		return l.Reserve(cmd.ReservedBy(), cmd.Until(), now)
	})
}

// CancelStorageReservationCommandHandler clears a reservation. Cancelling a
// location that is not reserved is a no-op apart from the timestamp.
type CancelStorageReservationCommandHandler struct {
	uowFactory StorageUoWFactory
	clock      Clock
}

func NewCancelStorageReservationCommandHandler(uowFactory StorageUoWFactory, clock Clock) CancelStorageReservationCommandHandler {
	return CancelStorageReservationCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h CancelStorageReservationCommandHandler) Handle(
	ctx context.Context,
	cmd CancelStorageReservationCommand,
) (*storage.Location, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := h.clock.now()
	return mutateLocation(ctx, h.uowFactory, cmd.LocationID(), func(l *storage.Location) error {
		l.CancelReservation(now)
		return nil
	})
}

// mutateLocation runs fn on a row-locked location in its own transaction and
// stores the result. Nothing is written when fn fails.
func mutateLocation(
	ctx context.Context,
	uowFactory StorageUoWFactory,
	id kernel.UUID,
	fn func(l *storage.Location) error,
) (*storage.Location, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.StorageLocationRepository()

	location, err := repo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = fn(location); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, location); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return location, nil
}
