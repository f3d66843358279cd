package commands

import (
	"errors"

	"forwarding/internal/pkg/guard"
)

// FlagOverdueItemsCommand raises an alert on every stored unit whose planned
// pickup time has passed.
type FlagOverdueItemsCommand struct {
	guard guard.ConstructorGuard
}

var ErrFlagOverdueItemsCommandIsNotConstructed = errors.New(
	"FlagOverdueItemsCommand must be created via NewFlagOverdueItemsCommand constructor",
)

func NewFlagOverdueItemsCommand() FlagOverdueItemsCommand {
	return FlagOverdueItemsCommand{guard: guard.NewConstructorGuard()}
}

func (c FlagOverdueItemsCommand) Validate() error {
	return c.guard.Validate(ErrFlagOverdueItemsCommandIsNotConstructed)
}
