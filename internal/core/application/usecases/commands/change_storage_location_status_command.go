package commands

import (
	"errors"
	"strings"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
	"forwarding/internal/pkg/guard"
)

var ErrChangeStorageLocationStatusCommandIsNotConstructed = errors.New(
	"ChangeStorageLocationStatusCommand must be created via NewChangeStorageLocationStatusCommand constructor",
)

// LocationAction is an administrative status change of a storage location.
type LocationAction string

const (
	LocationActionMaintenance LocationAction = "MAINTENANCE"
	LocationActionBlock       LocationAction = "BLOCK"
	LocationActionReopen      LocationAction = "REOPEN"
	LocationActionVacate      LocationAction = "VACATE"
	LocationActionRetire      LocationAction = "RETIRE"
)

// ParseLocationAction is case-insensitive.
func ParseLocationAction(s string) (LocationAction, error) {
	action := LocationAction(strings.ToUpper(strings.TrimSpace(s)))
	switch action {
	case LocationActionMaintenance, LocationActionBlock, LocationActionReopen, LocationActionVacate, LocationActionRetire:
		return action, nil
	default:
		return "", errs.NewValueIsInvalidError("location action " + s)
	}
}

type ChangeStorageLocationStatusCommand struct { //nolint:recvcheck //using for validation
	locationID kernel.UUID
	action     LocationAction

	guard guard.ConstructorGuard
}

func NewChangeStorageLocationStatusCommand(
	locationID kernel.UUID,
	action LocationAction,
) (ChangeStorageLocationStatusCommand, error) {
	cmd := ChangeStorageLocationStatusCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setLocationID(locationID),
		cmd.setAction(action),
	); err != nil {
		return ChangeStorageLocationStatusCommand{}, err
	}

	return cmd, nil
}

func (c ChangeStorageLocationStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeStorageLocationStatusCommandIsNotConstructed)
}

func (c ChangeStorageLocationStatusCommand) LocationID() kernel.UUID {
	return c.locationID
}

func (c ChangeStorageLocationStatusCommand) Action() LocationAction {
	return c.action
}

func (c *ChangeStorageLocationStatusCommand) setLocationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.locationID = id
	return nil
}

func (c *ChangeStorageLocationStatusCommand) setAction(action LocationAction) error {
	parsed, err := ParseLocationAction(string(action))
	if err != nil {
		return err
	}
	c.action = parsed
	return nil
}
