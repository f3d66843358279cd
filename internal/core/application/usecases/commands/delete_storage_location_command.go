package commands

import (
	"errors"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/guard"
)

var ErrDeleteStorageLocationCommandIsNotConstructed = errors.New(
	"DeleteStorageLocationCommand must be created via NewDeleteStorageLocationCommand constructor",
)

type DeleteStorageLocationCommand struct {
	locationID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteStorageLocationCommand(locationID kernel.UUID) (DeleteStorageLocationCommand, error) {
	if err := locationID.Validate(); err != nil {
		return DeleteStorageLocationCommand{}, err
	}
	return DeleteStorageLocationCommand{locationID: locationID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteStorageLocationCommand) Validate() error {
	return c.guard.Validate(ErrDeleteStorageLocationCommandIsNotConstructed)
}

func (c DeleteStorageLocationCommand) LocationID() kernel.UUID {
	return c.locationID
}
