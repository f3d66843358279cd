package commands

import (
	"context"
	"time"

	"forwarding/internal/core/domain/model/order"
	"forwarding/internal/core/domain/services"
	"forwarding/internal/core/ports"
	"forwarding/internal/pkg/metrics"

	"github.com/shopspring/decimal"
)

// RuleEvaluator resolves the current thresholds, runs the rule engine on an
// order and writes the outcome back onto it.
type RuleEvaluator struct {
	engine   services.RuleEngine
	settings ports.RuleSettingsRepository
	defaults services.Thresholds
}

// NewRuleEvaluator takes the configured thresholds as defaults; values stored
// in the settings repository take precedence. settings may be nil.
func NewRuleEvaluator(
	engine services.RuleEngine,
	settings ports.RuleSettingsRepository,
	defaults services.Thresholds,
) RuleEvaluator {
	return RuleEvaluator{engine: engine, settings: settings, defaults: defaults}
}

func (r RuleEvaluator) thresholds(ctx context.Context) (services.Thresholds, error) {
	if r.settings == nil {
		return r.defaults, nil
	}
	return r.settings.Get(ctx, r.defaults)
}

// Apply evaluates the rules for o and applies the outcome. A valid
// referenceAmount is stored on the order; an invalid one falls back to the
// amount stored by an earlier evaluation.
func (r RuleEvaluator) Apply(
	ctx context.Context,
	o *order.Order,
	referenceAmount decimal.NullDecimal,
	now time.Time,
) (services.Evaluation, error) {
	thresholds, err := r.thresholds(ctx)
	if err != nil {
		return services.Evaluation{}, err
	}

	if err = o.RecordReferenceAmount(referenceAmount); err != nil {
		return services.Evaluation{}, err
	}
	referenceAmount = o.ReferenceAmount()

	eval, err := r.engine.Evaluate(ctx, services.InputFromOrder(o, referenceAmount), thresholds)
	if err != nil {
		return services.Evaluation{}, err
	}

	if err = o.ApplyRuleOutcome(eval.Outcome, now); err != nil {
		return services.Evaluation{}, err
	}

	for _, w := range eval.Outcome.Warnings {
		metrics.RuleWarningsTotal.WithLabelValues(string(w.Code)).Inc()
	}
	return eval, nil
}
