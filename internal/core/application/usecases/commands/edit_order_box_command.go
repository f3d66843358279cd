package commands

import (
	"errors"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/guard"
)

var ErrEditOrderBoxCommandIsNotConstructed = errors.New(
	"EditOrderBoxCommand must be created via NewAddOrderBoxCommand, NewUpdateOrderBoxCommand or NewRemoveOrderBoxCommand",
)

// BoxEdit is the kind of change an EditOrderBoxCommand makes.
type BoxEdit int

const (
	BoxEditAdd BoxEdit = iota + 1
	BoxEditUpdate
	BoxEditRemove
)

func (e BoxEdit) String() string {
	switch e {
	case BoxEditAdd:
		return "add box"
	case BoxEditUpdate:
		return "update box"
	case BoxEditRemove:
		return "remove box"
	default:
		return "unknown box edit"
	}
}

// EditOrderBoxCommand adds, resizes or removes one box of an order that is
// still RECEIVED. Totals and rules are recomputed after the edit.
type EditOrderBoxCommand struct { //nolint:recvcheck //using for validation
	edit       BoxEdit
	orderID    kernel.UUID
	boxID      kernel.UUID
	dimensions kernel.Dimensions

	guard guard.ConstructorGuard
}

func NewAddOrderBoxCommand(orderID, boxID kernel.UUID, dimensions kernel.Dimensions) (EditOrderBoxCommand, error) {
	return newEditOrderBoxCommand(BoxEditAdd, orderID, boxID, dimensions)
}

func NewUpdateOrderBoxCommand(orderID, boxID kernel.UUID, dimensions kernel.Dimensions) (EditOrderBoxCommand, error) {
	return newEditOrderBoxCommand(BoxEditUpdate, orderID, boxID, dimensions)
}

func NewRemoveOrderBoxCommand(orderID, boxID kernel.UUID) (EditOrderBoxCommand, error) {
	cmd := EditOrderBoxCommand{edit: BoxEditRemove, guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setBoxID(boxID),
	); err != nil {
		return EditOrderBoxCommand{}, err
	}

	return cmd, nil
}

func newEditOrderBoxCommand(
	edit BoxEdit,
	orderID, boxID kernel.UUID,
	dimensions kernel.Dimensions,
) (EditOrderBoxCommand, error) {
	cmd := EditOrderBoxCommand{edit: edit, guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setBoxID(boxID),
		cmd.setDimensions(dimensions),
	); err != nil {
		return EditOrderBoxCommand{}, err
	}

	return cmd, nil
}

func (c EditOrderBoxCommand) Validate() error {
	return c.guard.Validate(ErrEditOrderBoxCommandIsNotConstructed)
}

func (c EditOrderBoxCommand) Edit() BoxEdit                 { return c.edit }
func (c EditOrderBoxCommand) OrderID() kernel.UUID          { return c.orderID }
func (c EditOrderBoxCommand) BoxID() kernel.UUID            { return c.boxID }
func (c EditOrderBoxCommand) Dimensions() kernel.Dimensions { return c.dimensions }

func (c *EditOrderBoxCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *EditOrderBoxCommand) setBoxID(boxID kernel.UUID) error {
	if err := boxID.Validate(); err != nil {
		return err
	}
	c.boxID = boxID
	return nil
}

func (c *EditOrderBoxCommand) setDimensions(dimensions kernel.Dimensions) error {
	if err := dimensions.Validate(); err != nil {
		return err
	}
	c.dimensions = dimensions
	return nil
}
