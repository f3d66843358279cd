package commands

import (
	"context"
	"errors"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/storage"
)

// errReservationStillActive marks a location that was re-reserved between the
// scan and the lock. It is skipped, not reported.
var errReservationStillActive = errors.New("reservation is still active")

// ReleaseExpiredReservationsCommandHandler finds lapsed reservations and
// cancels each one under its own row lock.
type ReleaseExpiredReservationsCommandHandler struct {
	uowFactory StorageUoWFactory
	clock      Clock
}

func NewReleaseExpiredReservationsCommandHandler(
	uowFactory StorageUoWFactory,
	clock Clock,
) ReleaseExpiredReservationsCommandHandler {
	return ReleaseExpiredReservationsCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle returns how many reservations were released. A failure on one
// location does not stop the others; the failures are joined.
func (h ReleaseExpiredReservationsCommandHandler) Handle(
	ctx context.Context,
	cmd ReleaseExpiredReservationsCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := h.clock.now()
	ids, err := h.expiredLocationIDs(ctx, now)
	if err != nil {
		return 0, err
	}

	released := 0
	var failures []error
	for _, id := range ids {
		_, err = mutateLocation(ctx, h.uowFactory, id, func(l *storage.Location) error {
			if !l.IsReservationExpired(now) {
				return errReservationStillActive
			}
			l.CancelReservation(now)
			return nil
		})
		switch {
		case err == nil:
			released++
		case !errors.Is(err, errReservationStillActive):
			failures = append(failures, err)
		}
	}

	return released, errors.Join(failures...)
}

func (h ReleaseExpiredReservationsCommandHandler) expiredLocationIDs(
	ctx context.Context,
	now time.Time,
) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	locations, err := uow.StorageLocationRepository().GetAllWithExpiredReservations(ctx, now)
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(locations))
	for _, l := range locations {
		ids = append(ids, l.ID())
	}
	return ids, nil
}
