package commands

import (
	"errors"
	"fmt"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
	"forwarding/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrEvaluateOrderRulesCommandIsNotConstructed = errors.New(
	"EvaluateOrderRulesCommand must be created via NewEvaluateOrderRulesCommand constructor",
)

// EvaluateOrderRulesCommand re-runs the fulfillment rules on a stored order.
// ReferenceAmount is the order total converted to the reference currency; it
// may be left null when the order is already in that currency.
type EvaluateOrderRulesCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	referenceAmount decimal.NullDecimal

	guard guard.ConstructorGuard
}

func NewEvaluateOrderRulesCommand(
	orderID kernel.UUID,
	referenceAmount decimal.NullDecimal,
) (EvaluateOrderRulesCommand, error) {
	cmd := EvaluateOrderRulesCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setReferenceAmount(referenceAmount),
	); err != nil {
		return EvaluateOrderRulesCommand{}, err
	}

	return cmd, nil
}

func (c EvaluateOrderRulesCommand) Validate() error {
	return c.guard.Validate(ErrEvaluateOrderRulesCommandIsNotConstructed)
}

func (c EvaluateOrderRulesCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c EvaluateOrderRulesCommand) ReferenceAmount() decimal.NullDecimal {
	return c.referenceAmount
}

func (c *EvaluateOrderRulesCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *EvaluateOrderRulesCommand) setReferenceAmount(amount decimal.NullDecimal) error {
	if amount.Valid && amount.Decimal.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(
			"reference amount is invalid",
			fmt.Errorf("%s is negative", amount.Decimal),
		)
	}
	c.referenceAmount = amount
	return nil
}
