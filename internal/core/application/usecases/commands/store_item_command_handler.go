package commands

import (
	"context"
	"errors"

	"forwarding/internal/core/domain/model/tracking"
	"forwarding/internal/pkg/errs"
)

// StoreItemCommandHandler adds the unit's load to the location and opens its
// location record in one transaction. Both rows are new or locked, so this is
// the one place where a record and its location change together.
type StoreItemCommandHandler struct {
	uowFactory StorageUoWFactory
	clock      Clock
}

func NewStoreItemCommandHandler(uowFactory StorageUoWFactory, clock Clock) StoreItemCommandHandler {
	return StoreItemCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h StoreItemCommandHandler) Handle(ctx context.Context, cmd StoreItemCommand) (*tracking.Record, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	records := uow.ItemLocationRepository()
	locations := uow.StorageLocationRepository()

	existing, err := records.GetCurrentForUnit(ctx, cmd.Unit())
	switch {
	case err == nil:
		return nil, errs.NewBusinessRuleViolationError("unit is already tracked", existing.LocationCode(), "store")
	case !errors.Is(err, errs.ErrObjectNotFound):
		return nil, err
	}

	location, err := locations.GetForUpdate(ctx, cmd.LocationID())
	if err != nil {
		return nil, err
	}

	now := h.clock.now()
	if err = addLoad(location, cmd.MovedBy(), cmd.Load(), now); err != nil {
		return nil, err
	}

	record, err := tracking.NewRecord(cmd.RecordID(), cmd.Unit(), cmd.Load(), location.ID(), location.Code(), now)
	if err != nil {
		return nil, err
	}
	if err = record.Arrive(cmd.MovedBy(), cmd.Method(), now); err != nil {
		return nil, err
	}

	if err = locations.Update(ctx, location); err != nil {
		return nil, err
	}
	if err = records.Add(ctx, record); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return record, nil
}
