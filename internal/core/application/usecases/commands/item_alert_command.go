package commands

import (
	"errors"
	"strings"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
	"forwarding/internal/pkg/guard"
)

var ErrItemAlertCommandIsNotConstructed = errors.New(
	"ItemAlertCommand must be created via NewRaiseItemAlertCommand or NewClearItemAlertCommand",
)

// AlertKind selects what raising an alert does to the unit.
type AlertKind string

const (
	AlertKindAlert   AlertKind = "ALERT"
	AlertKindDamaged AlertKind = "DAMAGED"
	AlertKindLost    AlertKind = "LOST"
	AlertKindClear   AlertKind = "CLEAR"
)

// ItemAlertCommand raises or clears the alert of a location record. A lost
// unit also stops counting against its location.
type ItemAlertCommand struct {
	recordID kernel.UUID
	kind     AlertKind
	reason   string

	guard guard.ConstructorGuard
}

func NewRaiseItemAlertCommand(recordID kernel.UUID, kind AlertKind, reason string) (ItemAlertCommand, error) {
	if err := recordID.Validate(); err != nil {
		return ItemAlertCommand{}, err
	}

	switch kind {
	case AlertKindAlert, AlertKindDamaged, AlertKindLost:
	default:
		return ItemAlertCommand{}, errs.NewValueIsInvalidError("alert kind " + string(kind))
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ItemAlertCommand{}, errs.NewValueIsRequiredError("reason")
	}

	return ItemAlertCommand{recordID: recordID, kind: kind, reason: reason, guard: guard.NewConstructorGuard()}, nil
}

func NewClearItemAlertCommand(recordID kernel.UUID) (ItemAlertCommand, error) {
	if err := recordID.Validate(); err != nil {
		return ItemAlertCommand{}, err
	}
	return ItemAlertCommand{recordID: recordID, kind: AlertKindClear, guard: guard.NewConstructorGuard()}, nil
}

func (c ItemAlertCommand) Validate() error {
	return c.guard.Validate(ErrItemAlertCommandIsNotConstructed)
}

func (c ItemAlertCommand) RecordID() kernel.UUID { return c.recordID }
func (c ItemAlertCommand) Kind() AlertKind       { return c.kind }
func (c ItemAlertCommand) Reason() string        { return c.reason }
