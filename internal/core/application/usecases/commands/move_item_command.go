package commands

import (
	"errors"
	"strings"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/tracking"
	"forwarding/internal/pkg/errs"
	"forwarding/internal/pkg/guard"
)

var ErrMoveItemCommandIsNotConstructed = errors.New(
	"MoveItemCommand must be created via NewMoveItemCommand constructor",
)

// MoveItemCommand relocates a stored unit to another location.
type MoveItemCommand struct { //nolint:recvcheck //using for validation
	recordID         kernel.UUID
	targetLocationID kernel.UUID
	movedBy          string
	method           tracking.Method

	guard guard.ConstructorGuard
}

func NewMoveItemCommand(
	recordID kernel.UUID,
	targetLocationID kernel.UUID,
	movedBy string,
	method tracking.Method,
) (MoveItemCommand, error) {
	cmd := MoveItemCommand{method: method, guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		recordID.Validate(),
		targetLocationID.Validate(),
	); err != nil {
		return MoveItemCommand{}, err
	}
	cmd.recordID = recordID
	cmd.targetLocationID = targetLocationID

	movedBy = strings.TrimSpace(movedBy)
	if movedBy == "" {
		return MoveItemCommand{}, errs.NewValueIsRequiredError("movedBy")
	}
	cmd.movedBy = movedBy

	return cmd, nil
}

func (c MoveItemCommand) Validate() error {
	return c.guard.Validate(ErrMoveItemCommandIsNotConstructed)
}

func (c MoveItemCommand) RecordID() kernel.UUID         { return c.recordID }
func (c MoveItemCommand) TargetLocationID() kernel.UUID { return c.targetLocationID }
func (c MoveItemCommand) MovedBy() string               { return c.movedBy }
func (c MoveItemCommand) Method() tracking.Method       { return c.method }
