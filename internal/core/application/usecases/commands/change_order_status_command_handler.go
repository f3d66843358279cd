package commands

import (
	"context"

	"forwarding/internal/core/domain/model/order"
	"forwarding/internal/core/ports"
	"forwarding/internal/pkg/errs"
	"forwarding/internal/pkg/metrics"
)

// ChangeOrderStatusCommandHandler applies a single status transition. An edge
// missing from the lifecycle graph is rejected and nothing is written.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	clock      Clock
}

func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	clock Clock,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		clock:      clock,
	}
}

func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	o, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if cmd.ExpectedVersion() != 0 && cmd.ExpectedVersion() != o.Version() {
		return nil, errs.NewConcurrencyConflictError("order", o.ID(), cmd.ExpectedVersion())
	}

	now := h.clock.now()
	if err = o.TransitionTo(cmd.Target(), now); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.StatusTransitionsTotal.WithLabelValues(o.Status().String()).Inc()
	h.notifier.Notify(ctx, ports.Notification{
		OrderID:    o.ID(),
		EventType:  ports.EventStatusChanged,
		Status:     o.Status(),
		Warnings:   o.Warnings(),
		OccurredAt: now,
	})

	return o, nil
}
