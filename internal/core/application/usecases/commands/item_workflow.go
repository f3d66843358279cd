package commands

import (
	"context"
	"errors"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/storage"
	"forwarding/internal/core/domain/model/tracking"
	"forwarding/internal/pkg/errs"
	"forwarding/internal/pkg/metrics"
)

// Item workflows touch two aggregates: the location record of a unit and
// the storage location it occupies. Each aggregate is changed in its own
// transaction; the capacity side is always written under a row lock.

// addLoad adds the load of a unit on behalf of by and counts capacity
// rejections. by may use a location it holds a reservation on.
func addLoad(location *storage.Location, by string, load tracking.Load, now time.Time) error {
	err := location.AddLoadAs(by, load.Weight, load.Volume, load.Count, now)

	var violation *errs.BusinessRuleViolationError
	if errors.As(err, &violation) && violation.Limit != nil {
		metrics.CapacityRejectionsTotal.Inc()
	}
	return err
}

// releaseLoad removes the load of a unit from a location in a separate
// transaction.
func releaseLoad(
	ctx context.Context,
	uowFactory StorageUoWFactory,
	locationID kernel.UUID,
	load tracking.Load,
	now time.Time,
) error {
	_, err := mutateLocation(ctx, uowFactory, locationID, func(l *storage.Location) error {
		return l.RemoveLoad(load.Weight, load.Volume, load.Count, now)
	})
	return err
}

// mutateRecord runs fn on a location record and stores it with the version
// check of the repository.
func mutateRecord(
	ctx context.Context,
	uowFactory StorageUoWFactory,
	id kernel.UUID,
	fn func(r *tracking.Record) error,
) (*tracking.Record, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ItemLocationRepository()

	record, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = fn(record); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, record); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return record, nil
}
