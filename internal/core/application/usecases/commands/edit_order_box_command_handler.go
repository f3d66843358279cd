package commands

import (
	"context"
	"time"

	"forwarding/internal/core/domain/model/order"
	"forwarding/internal/core/ports"

	"github.com/shopspring/decimal"
)

// EditOrderBoxCommandHandler applies a box edit and re-runs the rules. Box
// edits carry no reference amount, so the monetary rule uses the one stored
// on the order. Rules run before the transaction opens; the version check of
// Update rejects the write when the order changed in between.
type EditOrderBoxCommandHandler struct {
	uowFactory OrderUoWFactory
	rules      RuleEvaluator
	notifier   ports.Notifier
	clock      Clock
}

func NewEditOrderBoxCommandHandler(
	uowFactory OrderUoWFactory,
	rules RuleEvaluator,
	notifier ports.Notifier,
	clock Clock,
) EditOrderBoxCommandHandler {
	return EditOrderBoxCommandHandler{
		uowFactory: uowFactory,
		rules:      rules,
		notifier:   notifier,
		clock:      clock,
	}
}

func (h EditOrderBoxCommandHandler) Handle(ctx context.Context, cmd EditOrderBoxCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	now := h.clock.now()
	if err = applyBoxEdit(o, cmd, now); err != nil {
		return nil, err
	}

	if _, err = h.rules.Apply(ctx, o, decimal.NullDecimal{}, now); err != nil {
		return nil, err
	}

	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.Notify(ctx, ports.Notification{
		OrderID:    o.ID(),
		EventType:  ports.EventRulesEvaluated,
		Status:     o.Status(),
		Warnings:   o.Warnings(),
		OccurredAt: now,
	})

	return o, nil
}

func applyBoxEdit(o *order.Order, cmd EditOrderBoxCommand, now time.Time) error {
	switch cmd.Edit() {
	case BoxEditAdd:
		box, err := order.NewBox(cmd.BoxID(), cmd.Dimensions())
		if err != nil {
			return err
		}
		return o.AddBox(box, now)
	case BoxEditUpdate:
		return o.UpdateBox(cmd.BoxID(), cmd.Dimensions(), now)
	default:
		return o.RemoveBox(cmd.BoxID(), now)
	}
}
