package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"forwarding/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// Thresholds are the tenant-scoped limits the rule engine compares against.
// They always reach the engine as an explicit value.
type Thresholds struct {
	// VolumeM3 is the aggregate volume above which SEA orders go by AIR.
	VolumeM3 decimal.Decimal
	// Amount is the reference-currency total above which an extra recipient is required.
	Amount decimal.Decimal
	// ReferenceCurrency is the currency Amount is expressed in.
	ReferenceCurrency string
}

// DefaultThresholds are used when neither configuration nor the settings
// table provides a value.
func DefaultThresholds() Thresholds {
	return Thresholds{
		VolumeM3:          decimal.NewFromInt(29),
		Amount:            decimal.NewFromInt(1500),
		ReferenceCurrency: "USD",
	}
}

func (t Thresholds) Validate() error {
	var problems []error
	if !t.VolumeM3.IsPositive() {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"volume threshold is invalid", fmt.Errorf("%s is not greater than 0", t.VolumeM3)))
	}
	if !t.Amount.IsPositive() {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"amount threshold is invalid", fmt.Errorf("%s is not greater than 0", t.Amount)))
	}
	if !currencyPattern.MatchString(strings.ToUpper(t.ReferenceCurrency)) {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"reference currency is invalid", fmt.Errorf("%q is not a three-letter code", t.ReferenceCurrency)))
	}
	return errors.Join(problems...)
}
