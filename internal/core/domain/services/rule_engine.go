package services

import (
	"context"
	"fmt"
	"strings"

	"forwarding/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// RuleInput is everything the rule engine looks at. It is built from an
// order with InputFromOrder.
type RuleInput struct {
	TotalVolume decimal.Decimal
	Currency    string
	TotalAmount decimal.Decimal
	// ReferenceAmount is the order total converted to the reference currency
	// by the billing collaborator. It is only read when Currency differs from
	// the reference currency.
	ReferenceAmount   decimal.NullDecimal
	MemberCode        string
	SubmitterApproved bool
	HSCodes           []string
}

// InputFromOrder collects rule inputs from the aggregate.
func InputFromOrder(o *order.Order, referenceAmount decimal.NullDecimal) RuleInput {
	return RuleInput{
		TotalVolume:       o.TotalVolume(),
		Currency:          o.Currency(),
		TotalAmount:       o.TotalAmount(),
		ReferenceAmount:   referenceAmount,
		MemberCode:        o.MemberCode(),
		SubmitterApproved: o.SubmitterApproved(),
		HSCodes:           o.HSCodes(),
	}
}

// Evaluation is the merged result of all rules.
type Evaluation struct {
	Outcome order.RuleOutcome
	// CodesChecked and CodesFallback count validation gateway calls.
	CodesChecked  int
	CodesFallback int
}

func (e Evaluation) HasWarnings() bool {
	return e.Outcome.HasWarnings()
}

// RuleEngine evaluates the fulfillment rules of an order.
//
// Rules, all evaluated and merged:
//   - volume: total volume > threshold forces AIR and warns VOLUME_EXCEEDED
//   - monetary: reference total > threshold requires an extra recipient and warns AMOUNT_EXCEEDED
//   - identity: blank member code delays processing and warns MEMBER_CODE_REQUIRED
//   - approval: an unapproved submitter warns APPROVAL_REQUIRED
//   - customs: every HS code is checked by the validation gateway; invalid ones warn HS_CODE_INVALID
//
// Comparisons are strict: a value equal to its threshold does not trigger.
// Evaluation never fails on business values and has no side effects, so the
// same input always yields the same outcome.
//
// Example:
//
//	engine := services.NewRuleEngine(gateway)
//	eval, err := engine.Evaluate(ctx, services.InputFromOrder(o, decimal.NullDecimal{}), thresholds)
//	if err != nil {
//	    return err
//	}
//	err = o.ApplyRuleOutcome(eval.Outcome, now)
type RuleEngine struct {
	validator CodeValidator
}

func NewRuleEngine(validator CodeValidator) RuleEngine {
	return RuleEngine{validator: validator}
}

// Evaluate fails only when thresholds are invalid.
func (e RuleEngine) Evaluate(ctx context.Context, input RuleInput, thresholds Thresholds) (Evaluation, error) {
	if err := thresholds.Validate(); err != nil {
		return Evaluation{}, err
	}

	var eval Evaluation
	e.applyVolumeRule(&eval, input, thresholds)
	e.applyMonetaryRule(&eval, input, thresholds)
	e.applyIdentityRule(&eval, input)
	e.applyApprovalRule(&eval, input)
	e.applyCustomsRule(ctx, &eval, input)

	return eval, nil
}

func (e RuleEngine) applyVolumeRule(eval *Evaluation, input RuleInput, t Thresholds) {
	if !input.TotalVolume.GreaterThan(t.VolumeM3) {
		return
	}

	eval.Outcome.ForceAir = true
	msg := fmt.Sprintf("total volume %s m3 exceeds %s m3, AIR shipping required", input.TotalVolume, t.VolumeM3)
	eval.Outcome.Warnings = append(eval.Outcome.Warnings,
		order.NewMeasuredWarning(order.WarningVolumeExceeded, msg, input.TotalVolume, t.VolumeM3))
}

func (e RuleEngine) applyMonetaryRule(eval *Evaluation, input RuleInput, t Thresholds) {
	reference := strings.ToUpper(t.ReferenceCurrency)

	var total decimal.Decimal
	switch {
	case strings.EqualFold(input.Currency, reference):
		total = input.TotalAmount
	case input.ReferenceAmount.Valid:
		total = input.ReferenceAmount.Decimal
	default:
		eval.Outcome.Warnings = append(eval.Outcome.Warnings, order.NewWarning(
			order.WarningReferenceAmountMissing,
			fmt.Sprintf("total in %s is not available, amount rule skipped", reference),
		))
		return
	}

	if !total.GreaterThan(t.Amount) {
		return
	}

	eval.Outcome.RequiresExtraRecipient = true
	eval.Outcome.Warnings = append(eval.Outcome.Warnings, order.NewMeasuredWarning(
		order.WarningAmountExceeded,
		fmt.Sprintf("total %s %s exceeds %s %s, extra recipient required", total, reference, t.Amount, reference),
		total,
		t.Amount,
	))
}

func (e RuleEngine) applyIdentityRule(eval *Evaluation, input RuleInput) {
	if strings.TrimSpace(input.MemberCode) != "" {
		return
	}

	eval.Outcome.HasNoMemberCode = true
	eval.Outcome.Delay = true
	eval.Outcome.Warnings = append(eval.Outcome.Warnings, order.NewWarning(
		order.WarningMemberCodeRequired,
		"member code is missing, processing is delayed",
	))
}

func (e RuleEngine) applyApprovalRule(eval *Evaluation, input RuleInput) {
	if input.SubmitterApproved {
		return
	}

	eval.Outcome.Warnings = append(eval.Outcome.Warnings, order.NewWarning(
		order.WarningApprovalRequired,
		"submitter is not approved",
	))
}

func (e RuleEngine) applyCustomsRule(ctx context.Context, eval *Evaluation, input RuleInput) {
	if len(input.HSCodes) == 0 || e.validator == nil {
		return
	}

	allValid := true
	for _, code := range input.HSCodes {
		check := e.validator.ValidateFormatAndAuthority(ctx, CodeTypeHS, code)
		eval.CodesChecked++
		if check.UsedFallback {
			eval.CodesFallback++
		}
		if check.Valid {
			continue
		}

		allValid = false
		msg := fmt.Sprintf("HS code %s is invalid", code)
		if check.Message != "" {
			msg += ": " + check.Message
		}
		eval.Outcome.Warnings = append(eval.Outcome.Warnings, order.NewWarning(order.WarningHSCodeInvalid, msg))
	}
	eval.Outcome.HSCodeValidated = allValid
}
