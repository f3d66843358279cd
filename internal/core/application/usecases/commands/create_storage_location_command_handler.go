package commands

import (
	"context"
	"errors"

	"forwarding/internal/core/domain/model/storage"
	"forwarding/internal/pkg/errs"
)

// CreateStorageLocationCommandHandler creates a location under an existing
// parent. Codes are unique across the whole tree.
type CreateStorageLocationCommandHandler struct {
	uowFactory StorageUoWFactory
	clock      Clock
}

func NewCreateStorageLocationCommandHandler(uowFactory StorageUoWFactory, clock Clock) CreateStorageLocationCommandHandler {
	return CreateStorageLocationCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h CreateStorageLocationCommandHandler) Handle(
	ctx context.Context,
	cmd CreateStorageLocationCommand,
) (*storage.Location, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	location, err := storage.NewLocation(
		cmd.LocationID(),
		cmd.Code(),
		cmd.Name(),
		cmd.LocationType(),
		cmd.ParentID(),
		cmd.MaxWeight(),
		cmd.MaxVolume(),
		h.clock.now(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.StorageLocationRepository()

	if parentID := cmd.ParentID(); parentID != nil {
		if _, err = repo.Get(ctx, *parentID); err != nil {
			return nil, err
		}
	}

	_, err = repo.GetByCode(ctx, location.Code())
	switch {
	case err == nil:
		return nil, errs.NewBusinessRuleViolationError("location code must be unique", location.Code(), location.Code())
	case !errors.Is(err, errs.ErrObjectNotFound):
		return nil, err
	}

	if err = repo.Add(ctx, location); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return location, nil
}
