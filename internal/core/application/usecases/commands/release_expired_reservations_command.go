package commands

import (
	"errors"

	"forwarding/internal/pkg/guard"
)

// ReleaseExpiredReservationsCommand clears reservations whose hold time has
// passed. Expiry is already honored lazily on every reserve; this only
// tidies the stored state.
//
// Example:
//
//	cmd := NewReleaseExpiredReservationsCommand()
//	released, err := handler.Handle(ctx, cmd)
type ReleaseExpiredReservationsCommand struct {
	guard guard.ConstructorGuard
}

var ErrReleaseExpiredReservationsCommandIsNotConstructed = errors.New(
	"ReleaseExpiredReservationsCommand must be created via NewReleaseExpiredReservationsCommand constructor",
)

func NewReleaseExpiredReservationsCommand() ReleaseExpiredReservationsCommand {
	return ReleaseExpiredReservationsCommand{guard: guard.NewConstructorGuard()}
}

func (c ReleaseExpiredReservationsCommand) Validate() error {
	return c.guard.Validate(ErrReleaseExpiredReservationsCommandIsNotConstructed)
}
