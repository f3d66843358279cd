package tracking

import (
	"fmt"
	"strings"

	"forwarding/internal/pkg/errs"
)

// Status is where a tracked unit is in its warehouse journey.
type Status int

const (
	StatusUnknown Status = iota
	StatusInTransit
	StatusStored
	StatusReserved
	StatusPicking
	StatusPicked
	StatusLoading
	StatusLoaded
	StatusDamaged
	StatusLost
	StatusReturned
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "UNKNOWN",
		StatusInTransit: "IN_TRANSIT",
		StatusStored:    "STORED",
		StatusReserved:  "RESERVED",
		StatusPicking:   "PICKING",
		StatusPicked:    "PICKED",
		StatusLoading:   "LOADING",
		StatusLoaded:    "LOADED",
		StatusDamaged:   "DAMAGED",
		StatusLost:      "LOST",
		StatusReturned:  "RETURNED",
	}
}

func ParseStatus(name string) (Status, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for s, str := range getStatusStrings() {
		if s != StatusUnknown && str == upper {
			return s, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"record status is invalid",
		fmt.Errorf("%q is not a known status", name),
	)
}

func (s Status) Validate() error {
	if s <= StatusUnknown || s > StatusReturned {
		return errs.NewValueIsInvalidErrorWithCause("record status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsAtLocation reports whether the unit physically sits in its location.
func (s Status) IsAtLocation() bool {
	switch s { //nolint:exhaustive // remaining states are away from the location
	case StatusStored, StatusReserved, StatusPicking, StatusDamaged:
		return true
	default:
		return false
	}
}

// IsFinal reports whether the unit has left warehouse tracking.
func (s Status) IsFinal() bool {
	return s == StatusPicked || s == StatusLoaded || s == StatusLost
}

// Method is how a movement was recorded.
type Method string

const (
	MethodManual   Method = "MANUAL"
	MethodScan     Method = "SCAN"
	MethodBulkScan Method = "BULK_SCAN"
	MethodSystem   Method = "SYSTEM"
)

// MovementType classifies a departure.
type MovementType string

const (
	MovementInbound  MovementType = "INBOUND"
	MovementTransfer MovementType = "TRANSFER"
	MovementOutbound MovementType = "OUTBOUND"
	MovementReturn   MovementType = "RETURN"
)
