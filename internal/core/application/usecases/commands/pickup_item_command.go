package commands

import (
	"errors"
	"strings"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
	"forwarding/internal/pkg/guard"
)

var ErrPickupItemCommandIsNotConstructed = errors.New(
	"PickupItemCommand must be created via NewPickupItemCommand constructor",
)

type PickupItemCommand struct {
	recordID   kernel.UUID
	pickedUpBy string

	guard guard.ConstructorGuard
}

func NewPickupItemCommand(recordID kernel.UUID, pickedUpBy string) (PickupItemCommand, error) {
	if err := recordID.Validate(); err != nil {
		return PickupItemCommand{}, err
	}

	pickedUpBy = strings.TrimSpace(pickedUpBy)
	if pickedUpBy == "" {
		return PickupItemCommand{}, errs.NewValueIsRequiredError("pickedUpBy")
	}

	return PickupItemCommand{recordID: recordID, pickedUpBy: pickedUpBy, guard: guard.NewConstructorGuard()}, nil
}

func (c PickupItemCommand) Validate() error {
	return c.guard.Validate(ErrPickupItemCommandIsNotConstructed)
}

func (c PickupItemCommand) RecordID() kernel.UUID { return c.recordID }
func (c PickupItemCommand) PickedUpBy() string    { return c.pickedUpBy }
