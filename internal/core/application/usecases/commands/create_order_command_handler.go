package commands

import (
	"context"
	"time"

	"forwarding/internal/core/domain/model/order"
	"forwarding/internal/core/ports"
	"forwarding/internal/pkg/metrics"
)

// CreateOrderCommandHandler builds the order aggregate, evaluates the
// fulfillment rules on it and stores it. An order without member code is
// stored already DELAYED.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	rules      RuleEvaluator
	notifier   ports.Notifier
	clock      Clock
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	rules RuleEvaluator,
	notifier ports.Notifier,
	clock Clock,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		rules:      rules,
		notifier:   notifier,
		clock:      clock,
	}
}

// Handle returns the created order. Domain validation errors are returned
// before the transaction starts.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := h.clock.now()
	o, err := buildOrder(cmd, now)
	if err != nil {
		return nil, err
	}

	if _, err = h.rules.Apply(ctx, o, cmd.ReferenceAmount(), now); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.OrdersCreatedTotal.Inc()
	h.notifier.Notify(ctx, ports.Notification{
		OrderID:    o.ID(),
		EventType:  ports.EventOrderCreated,
		Status:     o.Status(),
		Warnings:   o.Warnings(),
		OccurredAt: now,
	})

	return o, nil
}

func buildOrder(cmd CreateOrderCommand, now time.Time) (*order.Order, error) {
	o, err := order.NewOrder(
		cmd.OrderID(),
		cmd.MemberCode(),
		cmd.SubmitterApproved(),
		cmd.Currency(),
		cmd.ShippingMode(),
		now,
	)
	if err != nil {
		return nil, err
	}

	for _, input := range cmd.Boxes() {
		box, err := order.NewBox(input.ID, input.Dimensions)
		if err != nil {
			return nil, err
		}
		if err = o.AddBox(box, now); err != nil {
			return nil, err
		}
	}

	for _, input := range cmd.LineItems() {
		item, err := order.NewLineItem(input.ID, input.Description, input.Quantity, input.UnitPrice, input.HSCode, input.Dimensions)
		if err != nil {
			return nil, err
		}
		if err = o.AddLineItem(item, now); err != nil {
			return nil, err
		}
	}

	return o, nil
}
