package commands

import (
	"context"
	"errors"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/tracking"
	"forwarding/internal/pkg/errs"
)

const overdueAlertReason = "planned pickup time has passed"

var errNotOverdue = errors.New("item is not overdue")

type FlagOverdueItemsCommandHandler struct {
	uowFactory StorageUoWFactory
	clock      Clock
}

func NewFlagOverdueItemsCommandHandler(uowFactory StorageUoWFactory, clock Clock) FlagOverdueItemsCommandHandler {
	return FlagOverdueItemsCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle returns the number of records flagged. A record changed by someone
// else in the meantime is skipped and picked up again on the next run.
func (h FlagOverdueItemsCommandHandler) Handle(ctx context.Context, cmd FlagOverdueItemsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := h.clock.now()
	ids, err := h.overdueRecordIDs(ctx, now)
	if err != nil {
		return 0, err
	}

	flagged := 0
	var failures []error
	for _, id := range ids {
		_, err = mutateRecord(ctx, h.uowFactory, id, func(r *tracking.Record) error {
			if !r.IsOverdue(now) || r.HasAlert() {
				return errNotOverdue
			}
			return r.SetAlert(overdueAlertReason, now)
		})
		switch {
		case err == nil:
			flagged++
		case errors.Is(err, errNotOverdue), errors.Is(err, errs.ErrConcurrencyConflict):
		default:
			failures = append(failures, err)
		}
	}

	return flagged, errors.Join(failures...)
}

func (h FlagOverdueItemsCommandHandler) overdueRecordIDs(ctx context.Context, now time.Time) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	records, err := uow.ItemLocationRepository().GetAllStoredWithPlannedMoveBefore(ctx, now)
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID())
	}
	return ids, nil
}
