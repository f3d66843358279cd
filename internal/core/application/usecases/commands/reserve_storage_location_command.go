package commands

import (
	"errors"
	"strings"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
	"forwarding/internal/pkg/guard"
)

var (
	ErrReserveStorageLocationCommandIsNotConstructed = errors.New(
		"ReserveStorageLocationCommand must be created via NewReserveStorageLocationCommand constructor",
	)
	ErrCancelStorageReservationCommandIsNotConstructed = errors.New(
		"CancelStorageReservationCommand must be created via NewCancelStorageReservationCommand constructor",
	)
)

// ReserveStorageLocationCommand holds a location for a party until a point in
// time. The location may already carry an expired reservation.
type ReserveStorageLocationCommand struct { //nolint:recvcheck //using for validation
	locationID kernel.UUID
	reservedBy string
	until      time.Time

	guard guard.ConstructorGuard
}

func NewReserveStorageLocationCommand(
	locationID kernel.UUID,
	reservedBy string,
	until time.Time,
) (ReserveStorageLocationCommand, error) {
	cmd := ReserveStorageLocationCommand{until: until, guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setLocationID(locationID),
		cmd.setReservedBy(reservedBy),
	); err != nil {
		return ReserveStorageLocationCommand{}, err
	}

	return cmd, nil
}

func (c ReserveStorageLocationCommand) Validate() error {
	return c.guard.Validate(ErrReserveStorageLocationCommandIsNotConstructed)
}

func (c ReserveStorageLocationCommand) LocationID() kernel.UUID { return c.locationID }
func (c ReserveStorageLocationCommand) ReservedBy() string      { return c.reservedBy }
func (c ReserveStorageLocationCommand) Until() time.Time        { return c.until }

func (c *ReserveStorageLocationCommand) setLocationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.locationID = id
	return nil
}

func (c *ReserveStorageLocationCommand) setReservedBy(by string) error {
	by = strings.TrimSpace(by)
	if by == "" {
		return errs.NewValueIsRequiredError("reservedBy")
	}
	c.reservedBy = by
	return nil
}

// CancelStorageReservationCommand drops the reservation of a location.
type CancelStorageReservationCommand struct {
	locationID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCancelStorageReservationCommand(locationID kernel.UUID) (CancelStorageReservationCommand, error) {
	if err := locationID.Validate(); err != nil {
		return CancelStorageReservationCommand{}, err
	}
	return CancelStorageReservationCommand{locationID: locationID, guard: guard.NewConstructorGuard()}, nil
}

func (c CancelStorageReservationCommand) Validate() error {
	return c.guard.Validate(ErrCancelStorageReservationCommandIsNotConstructed)
}

func (c CancelStorageReservationCommand) LocationID() kernel.UUID {
	return c.locationID
}
