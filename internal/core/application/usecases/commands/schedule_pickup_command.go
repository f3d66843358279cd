package commands

import (
	"errors"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
	"forwarding/internal/pkg/guard"
)

var ErrSchedulePickupCommandIsNotConstructed = errors.New(
	"SchedulePickupCommand must be created via NewSchedulePickupCommand constructor",
)

type SchedulePickupCommand struct {
	recordID kernel.UUID
	at       time.Time

	guard guard.ConstructorGuard
}

func NewSchedulePickupCommand(recordID kernel.UUID, at time.Time) (SchedulePickupCommand, error) {
	if err := recordID.Validate(); err != nil {
		return SchedulePickupCommand{}, err
	}
	if at.IsZero() {
		return SchedulePickupCommand{}, errs.NewValueIsRequiredError("pickup time")
	}
	return SchedulePickupCommand{recordID: recordID, at: at, guard: guard.NewConstructorGuard()}, nil
}

func (c SchedulePickupCommand) Validate() error {
	return c.guard.Validate(ErrSchedulePickupCommandIsNotConstructed)
}

func (c SchedulePickupCommand) RecordID() kernel.UUID { return c.recordID }
func (c SchedulePickupCommand) At() time.Time         { return c.at }
