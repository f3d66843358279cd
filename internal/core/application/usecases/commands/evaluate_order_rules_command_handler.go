package commands

import (
	"context"

	"forwarding/internal/core/domain/services"
	"forwarding/internal/core/ports"
)

// EvaluateOrderRulesCommandHandler loads an order, evaluates it and stores the
// new flags and warnings. Evaluating twice with the same inputs leaves the
// order unchanged. Code checks run before the transaction opens.
type EvaluateOrderRulesCommandHandler struct {
	uowFactory OrderUoWFactory
	rules      RuleEvaluator
	notifier   ports.Notifier
	clock      Clock
}

func NewEvaluateOrderRulesCommandHandler(
	uowFactory OrderUoWFactory,
	rules RuleEvaluator,
	notifier ports.Notifier,
	clock Clock,
) EvaluateOrderRulesCommandHandler {
	return EvaluateOrderRulesCommandHandler{
		uowFactory: uowFactory,
		rules:      rules,
		notifier:   notifier,
		clock:      clock,
	}
}

func (h EvaluateOrderRulesCommandHandler) Handle(
	ctx context.Context,
	cmd EvaluateOrderRulesCommand,
) (services.Evaluation, error) {
	if err := cmd.Validate(); err != nil {
		return services.Evaluation{}, err
	}

	uow := h.uowFactory.Create()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return services.Evaluation{}, err
	}

	now := h.clock.now()
	eval, err := h.rules.Apply(ctx, o, cmd.ReferenceAmount(), now)
	if err != nil {
		return services.Evaluation{}, err
	}

	if err = uow.Begin(ctx); err != nil {
		return services.Evaluation{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return services.Evaluation{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return services.Evaluation{}, err
	}

	h.notifier.Notify(ctx, ports.Notification{
		OrderID:    o.ID(),
		EventType:  ports.EventRulesEvaluated,
		Status:     o.Status(),
		Warnings:   o.Warnings(),
		OccurredAt: now,
	})

	return eval, nil
}
