package commands

import (
	"errors"
	"strings"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/tracking"
	"forwarding/internal/pkg/errs"
	"forwarding/internal/pkg/guard"
)

var ErrStoreItemCommandIsNotConstructed = errors.New(
	"StoreItemCommand must be created via NewStoreItemCommand constructor",
)

// StoreItemCommand puts a unit that is not yet tracked away at a location.
type StoreItemCommand struct { //nolint:recvcheck //using for validation
	recordID   kernel.UUID
	unit       tracking.Unit
	load       tracking.Load
	locationID kernel.UUID
	movedBy    string
	method     tracking.Method

	guard guard.ConstructorGuard
}

func NewStoreItemCommand(
	recordID kernel.UUID,
	unit tracking.Unit,
	load tracking.Load,
	locationID kernel.UUID,
	movedBy string,
	method tracking.Method,
) (StoreItemCommand, error) {
	cmd := StoreItemCommand{
		load:   load,
		method: method,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRecordID(recordID),
		cmd.setUnit(unit),
		cmd.setLocationID(locationID),
		cmd.setMovedBy(movedBy),
	); err != nil {
		return StoreItemCommand{}, err
	}

	return cmd, nil
}

func (c StoreItemCommand) Validate() error {
	return c.guard.Validate(ErrStoreItemCommandIsNotConstructed)
}

func (c StoreItemCommand) RecordID() kernel.UUID   { return c.recordID }
func (c StoreItemCommand) Unit() tracking.Unit     { return c.unit }
func (c StoreItemCommand) Load() tracking.Load     { return c.load }
func (c StoreItemCommand) LocationID() kernel.UUID { return c.locationID }
func (c StoreItemCommand) MovedBy() string         { return c.movedBy }
func (c StoreItemCommand) Method() tracking.Method { return c.method }

func (c *StoreItemCommand) setRecordID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.recordID = id
	return nil
}

func (c *StoreItemCommand) setUnit(unit tracking.Unit) error {
	if err := unit.Validate(); err != nil {
		return err
	}
	c.unit = unit
	return nil
}

func (c *StoreItemCommand) setLocationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.locationID = id
	return nil
}

func (c *StoreItemCommand) setMovedBy(by string) error {
	by = strings.TrimSpace(by)
	if by == "" {
		return errs.NewValueIsRequiredError("movedBy")
	}
	c.movedBy = by
	return nil
}
