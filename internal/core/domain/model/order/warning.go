package order

import (
	"slices"

	"github.com/shopspring/decimal"
)

// WarningCode identifies why a rule annotated an order.
type WarningCode string

const (
	WarningVolumeExceeded         WarningCode = "VOLUME_EXCEEDED"
	WarningAmountExceeded         WarningCode = "AMOUNT_EXCEEDED"
	WarningMemberCodeRequired     WarningCode = "MEMBER_CODE_REQUIRED"
	WarningApprovalRequired       WarningCode = "APPROVAL_REQUIRED"
	WarningHSCodeInvalid          WarningCode = "HS_CODE_INVALID"
	WarningReferenceAmountMissing WarningCode = "REFERENCE_AMOUNT_MISSING"
)

// Warning is a non-blocking annotation produced by rule evaluation.
// Measured and Threshold are set only for quantitative rules.
type Warning struct {
	Code      WarningCode         `json:"code"`
	Message   string              `json:"message"`
	Measured  decimal.NullDecimal `json:"measured"`
	Threshold decimal.NullDecimal `json:"threshold"`
}

func NewWarning(code WarningCode, message string) Warning {
	return Warning{Code: code, Message: message}
}

func NewMeasuredWarning(code WarningCode, message string, measured, threshold decimal.Decimal) Warning {
	return Warning{
		Code:      code,
		Message:   message,
		Measured:  decimal.NewNullDecimal(measured),
		Threshold: decimal.NewNullDecimal(threshold),
	}
}

func (w Warning) IsEqual(other Warning) bool {
	return w.Code == other.Code &&
		w.Message == other.Message &&
		nullDecimalEqual(w.Measured, other.Measured) &&
		nullDecimalEqual(w.Threshold, other.Threshold)
}

func nullDecimalEqual(a, b decimal.NullDecimal) bool {
	if a.Valid != b.Valid {
		return false
	}
	return !a.Valid || a.Decimal.Equal(b.Decimal)
}

// RuleOutcome is the full set of field mutations computed by one rule
// evaluation. Applying the same outcome twice leaves the order unchanged.
type RuleOutcome struct {
	ForceAir               bool
	RequiresExtraRecipient bool
	HasNoMemberCode        bool
	HSCodeValidated        bool
	// Delay moves a RECEIVED or CONFIRMED order to DELAYED.
	Delay    bool
	Warnings []Warning
}

func (r RuleOutcome) HasWarnings() bool {
	return len(r.Warnings) > 0
}

func (r RuleOutcome) HasWarning(code WarningCode) bool {
	return slices.ContainsFunc(r.Warnings, func(w Warning) bool { return w.Code == code })
}
