package commands

import (
	"context"
	"strconv"

	"forwarding/internal/pkg/errs"
)

// DeleteStorageLocationCommandHandler removes a location that holds nothing,
// has no children and is not referenced by any item record.
type DeleteStorageLocationCommandHandler struct {
	uowFactory StorageUoWFactory
	clock      Clock
}

func NewDeleteStorageLocationCommandHandler(uowFactory StorageUoWFactory, clock Clock) DeleteStorageLocationCommandHandler {
	return DeleteStorageLocationCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h DeleteStorageLocationCommandHandler) Handle(ctx context.Context, cmd DeleteStorageLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	locations := uow.StorageLocationRepository()

	location, err := locations.GetForUpdate(ctx, cmd.LocationID())
	if err != nil {
		return err
	}

	if err = location.CanBeDeleted(h.clock.now()); err != nil {
		return err
	}

	hasChildren, err := locations.HasChildren(ctx, location.ID())
	if err != nil {
		return err
	}
	if hasChildren {
		return errs.NewBusinessRuleViolationError("location with children cannot be deleted", location.Code(), "delete")
	}

	records, err := uow.ItemLocationRepository().CountAtLocation(ctx, location.ID())
	if err != nil {
		return err
	}
	if records > 0 {
		return errs.NewBusinessRuleViolationError(
			"location referenced by item records cannot be deleted",
			strconv.FormatInt(records, 10)+" records",
			"delete",
		)
	}

	if err = locations.Delete(ctx, location.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
