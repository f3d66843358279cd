package order

import (
	"fmt"
	"strings"

	"forwarding/internal/pkg/errs"
)

// ShippingMode is the transport leg an order travels on.
type ShippingMode int

const (
	ShippingModeUnknown ShippingMode = iota
	ShippingModeSea
	ShippingModeAir
)

func getShippingModeStrings() map[ShippingMode]string {
	return map[ShippingMode]string{
		ShippingModeUnknown: "UNKNOWN",
		ShippingModeSea:     "SEA",
		ShippingModeAir:     "AIR",
	}
}

func ParseShippingMode(name string) (ShippingMode, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "SEA":
		return ShippingModeSea, nil
	case "AIR":
		return ShippingModeAir, nil
	default:
		return ShippingModeUnknown, errs.NewValueIsInvalidErrorWithCause(
			"shipping mode is invalid",
			fmt.Errorf("%q is not SEA or AIR", name),
		)
	}
}

func (m ShippingMode) Validate() error {
	if m != ShippingModeSea && m != ShippingModeAir {
		return errs.NewValueIsInvalidErrorWithCause("shipping mode is invalid", fmt.Errorf("%d is not a valid mode", m))
	}
	return nil
}

func (m ShippingMode) String() string {
	if str, ok := getShippingModeStrings()[m]; ok {
		return str
	}
	return "UNKNOWN"
}
