package commands

import (
	"errors"
	"fmt"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/order"
	"forwarding/internal/pkg/errs"
	"forwarding/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// BoxSpec is a measured box to attach to a new order.
type BoxSpec struct {
	ID         kernel.UUID
	Dimensions kernel.Dimensions
}

// LineItemSpec is a declared product line of a new order.
type LineItemSpec struct {
	ID          kernel.UUID
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
	HSCode      string
	Dimensions  *kernel.Dimensions
}

// CreateOrderCommand registers an order with its boxes and line items. The
// rules run before the order is first stored.
//
// Example:
//
//	dims, _ := kernel.NewDimensions(w, h, d, weight)
//	cmd, err := NewCreateOrderCommand(
//	    kernel.NewUUID(), "M-1024", true, "USD", order.ShippingModeSea,
//	    []BoxSpec{{ID: kernel.NewUUID(), Dimensions: dims}}, nil, decimal.NullDecimal{},
//	)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID           kernel.UUID
	memberCode        string
	submitterApproved bool
	currency          string
	shippingMode      order.ShippingMode
	boxes             []BoxSpec
	lineItems         []LineItemSpec
	referenceAmount   decimal.NullDecimal

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand checks identifiers and measurements. Currency and
// item fields are validated again by the aggregate.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	memberCode string,
	submitterApproved bool,
	currency string,
	shippingMode order.ShippingMode,
	boxes []BoxSpec,
	lineItems []LineItemSpec,
	referenceAmount decimal.NullDecimal,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		memberCode:        memberCode,
		submitterApproved: submitterApproved,
		currency:          currency,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setShippingMode(shippingMode),
		cmd.setBoxes(boxes),
		cmd.setLineItems(lineItems),
		cmd.setReferenceAmount(referenceAmount),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID                 { return c.orderID }
func (c CreateOrderCommand) MemberCode() string                   { return c.memberCode }
func (c CreateOrderCommand) SubmitterApproved() bool              { return c.submitterApproved }
func (c CreateOrderCommand) Currency() string                     { return c.currency }
func (c CreateOrderCommand) ShippingMode() order.ShippingMode     { return c.shippingMode }
func (c CreateOrderCommand) Boxes() []BoxSpec                     { return c.boxes }
func (c CreateOrderCommand) LineItems() []LineItemSpec            { return c.lineItems }
func (c CreateOrderCommand) ReferenceAmount() decimal.NullDecimal { return c.referenceAmount }

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setShippingMode(mode order.ShippingMode) error {
	if err := mode.Validate(); err != nil {
		return err
	}
	c.shippingMode = mode
	return nil
}

func (c *CreateOrderCommand) setBoxes(boxes []BoxSpec) error {
	for i, b := range boxes {
		if err := errors.Join(b.ID.Validate(), b.Dimensions.Validate()); err != nil {
			return fmt.Errorf("box %d: %w", i, err)
		}
	}
	c.boxes = boxes
	return nil
}

func (c *CreateOrderCommand) setLineItems(items []LineItemSpec) error {
	for i, item := range items {
		if err := item.ID.Validate(); err != nil {
			return fmt.Errorf("line item %d: %w", i, err)
		}
	}
	c.lineItems = items
	return nil
}

func (c *CreateOrderCommand) setReferenceAmount(amount decimal.NullDecimal) error {
	if amount.Valid && amount.Decimal.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(
			"reference amount is invalid",
			fmt.Errorf("%s is negative", amount.Decimal),
		)
	}
	c.referenceAmount = amount
	return nil
}
