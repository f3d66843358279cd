package commands

import (
	"errors"
	"strings"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/tracking"
	"forwarding/internal/pkg/errs"
	"forwarding/internal/pkg/guard"
)

var ErrReleaseItemCommandIsNotConstructed = errors.New(
	"ReleaseItemCommand must be created via NewReleaseItemCommand constructor",
)

// ReleaseItemCommand takes a unit off its location without a new target,
// for an outbound handoff or a return to the sender.
type ReleaseItemCommand struct {
	recordID     kernel.UUID
	movedBy      string
	movementType tracking.MovementType

	guard guard.ConstructorGuard
}

func NewReleaseItemCommand(
	recordID kernel.UUID,
	movedBy string,
	movementType tracking.MovementType,
) (ReleaseItemCommand, error) {
	if err := recordID.Validate(); err != nil {
		return ReleaseItemCommand{}, err
	}

	movedBy = strings.TrimSpace(movedBy)
	if movedBy == "" {
		return ReleaseItemCommand{}, errs.NewValueIsRequiredError("movedBy")
	}

	if movementType != tracking.MovementOutbound && movementType != tracking.MovementReturn {
		return ReleaseItemCommand{}, errs.NewValueIsInvalidError("movement type " + string(movementType))
	}

	return ReleaseItemCommand{
		recordID:     recordID,
		movedBy:      movedBy,
		movementType: movementType,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c ReleaseItemCommand) Validate() error {
	return c.guard.Validate(ErrReleaseItemCommandIsNotConstructed)
}

func (c ReleaseItemCommand) RecordID() kernel.UUID               { return c.recordID }
func (c ReleaseItemCommand) MovedBy() string                     { return c.movedBy }
func (c ReleaseItemCommand) MovementType() tracking.MovementType { return c.movementType }
