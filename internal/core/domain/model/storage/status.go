package storage

import (
	"fmt"
	"strings"

	"forwarding/internal/pkg/errs"
)

// Status is the occupancy or operational state of a storage location.
type Status int

const (
	StatusUnknown Status = iota
	StatusAvailable
	StatusOccupied
	StatusReserved
	StatusMaintenance
	StatusBlocked
	StatusRetired
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:     "UNKNOWN",
		StatusAvailable:   "AVAILABLE",
		StatusOccupied:    "OCCUPIED",
		StatusReserved:    "RESERVED",
		StatusMaintenance: "MAINTENANCE",
		StatusBlocked:     "BLOCKED",
		StatusRetired:     "RETIRED",
	}
}

func ParseStatus(name string) (Status, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for status, str := range getStatusStrings() {
		if status != StatusUnknown && str == upper {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"location status is invalid",
		fmt.Errorf("%q is not a known status", name),
	)
}

func (s Status) Validate() error {
	if s <= StatusUnknown || s > StatusRetired {
		return errs.NewValueIsInvalidErrorWithCause(
			"location status is invalid",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// AcceptsLoad reports whether goods may be put into a location in this state.
func (s Status) AcceptsLoad() bool {
	return s == StatusAvailable || s == StatusOccupied || s == StatusReserved
}

// LocationType is the level of a location in the warehouse tree.
type LocationType int

const (
	TypeUnknown LocationType = iota
	TypeWarehouse
	TypeZone
	TypeAisle
	TypeRack
	TypeShelf
	TypeBin
)

func getTypeStrings() map[LocationType]string {
	return map[LocationType]string{
		TypeUnknown:   "UNKNOWN",
		TypeWarehouse: "WAREHOUSE",
		TypeZone:      "ZONE",
		TypeAisle:     "AISLE",
		TypeRack:      "RACK",
		TypeShelf:     "SHELF",
		TypeBin:       "BIN",
	}
}

func ParseLocationType(name string) (LocationType, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for t, str := range getTypeStrings() {
		if t != TypeUnknown && str == upper {
			return t, nil
		}
	}
	return TypeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"location type is invalid",
		fmt.Errorf("%q is not a known type", name),
	)
}

func (t LocationType) Validate() error {
	if t <= TypeUnknown || t > TypeBin {
		return errs.NewValueIsInvalidErrorWithCause(
			"location type is invalid",
			fmt.Errorf("%d is not a valid type", t),
		)
	}
	return nil
}

func (t LocationType) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "UNKNOWN"
}
