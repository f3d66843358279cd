package tracking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
	"forwarding/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord constructor")

// Unit identifies what is tracked: a whole order, a box of an order, or a
// single item of a box.
type Unit struct {
	OrderID kernel.UUID
	BoxID   *kernel.UUID
	ItemID  *kernel.UUID
}

func (u Unit) Validate() error {
	if err := u.OrderID.Validate(); err != nil {
		return err
	}
	if u.ItemID != nil && u.BoxID == nil {
		return errs.NewValueIsInvalidErrorWithCause("unit is invalid", errors.New("item requires a box"))
	}
	return nil
}

func (u Unit) String() string {
	var b strings.Builder
	b.WriteString(u.OrderID.String())
	if u.BoxID != nil {
		b.WriteString("/" + u.BoxID.String())
	}
	if u.ItemID != nil {
		b.WriteString("/" + u.ItemID.String())
	}
	return b.String()
}

// Load is what a unit contributes to its location's usage counters.
type Load struct {
	Weight decimal.Decimal
	Volume decimal.Decimal
	Count  int
}

// Record is the current position of one trackable unit. Moving mutates the
// record in place and keeps exactly one previous hop.
type Record struct {
	id   kernel.UUID
	unit Unit
	load Load

	locationID   kernel.UUID
	locationCode string
	status       Status

	previousLocationID   *kernel.UUID
	previousLocationCode string

	arrivedAt    *time.Time
	departedAt   *time.Time
	movedBy      string
	method       Method
	movementType MovementType

	plannedMoveAt *time.Time
	pickedUpAt    *time.Time
	pickedUpBy    string

	alert       bool
	alertReason string
	alertedAt   *time.Time

	createdAt time.Time
	updatedAt time.Time
	version   int64

	guard guard.ConstructorGuard
}

// NewRecord creates an IN_TRANSIT record bound for a location. Call Arrive
// once the unit is physically put away.
func NewRecord(id kernel.UUID, unit Unit, load Load, locationID kernel.UUID, locationCode string, now time.Time) (*Record, error) {
	r := &Record{
		status:       StatusInTransit,
		movementType: MovementInbound,
		createdAt:    now,
		updatedAt:    now,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		unit.Validate(),
		validateLoad(load),
		r.setLocation(locationID, locationCode),
	); err != nil {
		return nil, err
	}
	r.unit = unit
	r.load = load

	return r, nil
}

// Snapshot is the persisted state of a record.
type Snapshot struct {
	ID                   kernel.UUID
	Unit                 Unit
	Load                 Load
	LocationID           kernel.UUID
	LocationCode         string
	Status               Status
	PreviousLocationID   *kernel.UUID
	PreviousLocationCode string
	ArrivedAt            *time.Time
	DepartedAt           *time.Time
	MovedBy              string
	Method               Method
	MovementType         MovementType
	PlannedMoveAt        *time.Time
	PickedUpAt           *time.Time
	PickedUpBy           string
	Alert                bool
	AlertReason          string
	AlertedAt            *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
	Version              int64
}

func RestoreRecord(s Snapshot) (*Record, error) {
	r := &Record{
		previousLocationID:   s.PreviousLocationID,
		previousLocationCode: s.PreviousLocationCode,
		arrivedAt:            s.ArrivedAt,
		departedAt:           s.DepartedAt,
		movedBy:              s.MovedBy,
		method:               s.Method,
		movementType:         s.MovementType,
		plannedMoveAt:        s.PlannedMoveAt,
		pickedUpAt:           s.PickedUpAt,
		pickedUpBy:           s.PickedUpBy,
		alert:                s.Alert,
		alertReason:          s.AlertReason,
		alertedAt:            s.AlertedAt,
		createdAt:            s.CreatedAt,
		updatedAt:            s.UpdatedAt,
		version:              s.Version,
		guard:                guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(s.ID),
		s.Unit.Validate(),
		validateLoad(s.Load),
		r.setLocation(s.LocationID, s.LocationCode),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}
	r.unit = s.Unit
	r.load = s.Load
	r.status = s.Status

	return r, nil
}

func (r *Record) Validate() error {
	if r == nil {
		return ErrRecordIsNotConstructed
	}
	return r.guard.Validate(ErrRecordIsNotConstructed)
}

func (r *Record) ID() kernel.UUID                  { return r.id }
func (r *Record) Unit() Unit                       { return r.unit }
func (r *Record) Load() Load                       { return r.load }
func (r *Record) LocationID() kernel.UUID          { return r.locationID }
func (r *Record) LocationCode() string             { return r.locationCode }
func (r *Record) Status() Status                   { return r.status }
func (r *Record) PreviousLocationID() *kernel.UUID { return r.previousLocationID }
func (r *Record) PreviousLocationCode() string     { return r.previousLocationCode }
func (r *Record) ArrivedAt() *time.Time            { return r.arrivedAt }
func (r *Record) DepartedAt() *time.Time           { return r.departedAt }
func (r *Record) MovedBy() string                  { return r.movedBy }
func (r *Record) Method() Method                   { return r.method }
func (r *Record) MovementType() MovementType       { return r.movementType }
func (r *Record) PlannedMoveAt() *time.Time        { return r.plannedMoveAt }
func (r *Record) PickedUpAt() *time.Time           { return r.pickedUpAt }
func (r *Record) PickedUpBy() string               { return r.pickedUpBy }
func (r *Record) HasAlert() bool                   { return r.alert }
func (r *Record) AlertReason() string              { return r.alertReason }
func (r *Record) AlertedAt() *time.Time            { return r.alertedAt }
func (r *Record) CreatedAt() time.Time             { return r.createdAt }
func (r *Record) UpdatedAt() time.Time             { return r.updatedAt }
func (r *Record) Version() int64                   { return r.version }
func (r *Record) SyncVersion(version int64)        { r.version = version }

// Arrive stamps the arrival at the current location and sets STORED.
func (r *Record) Arrive(mover string, method Method, now time.Time) error {
	if r.status.IsFinal() {
		return errs.NewBusinessRuleViolationError("unit cannot arrive", r.status.String(), StatusStored.String())
	}

	r.arrivedAt = &now
	r.departedAt = nil
	r.status = StatusStored
	r.movedBy = strings.TrimSpace(mover)
	r.method = method
	r.updatedAt = now
	return nil
}

// Depart stamps the departure, remembers the current location as the single
// previous hop and sets IN_TRANSIT.
func (r *Record) Depart(mover string, movementType MovementType, now time.Time) error {
	if !r.status.IsAtLocation() {
		return errs.NewBusinessRuleViolationError("unit is not at a location", r.status.String(), StatusInTransit.String())
	}

	previous := r.locationID
	r.previousLocationID = &previous
	r.previousLocationCode = r.locationCode
	r.departedAt = &now
	r.status = StatusInTransit
	r.movedBy = strings.TrimSpace(mover)
	r.movementType = movementType
	r.updatedAt = now
	return nil
}

// MoveTo is Depart, then reassignment, then Arrive. It is the only way to
// change the location of a record.
func (r *Record) MoveTo(locationID kernel.UUID, locationCode string, mover string, method Method, now time.Time) error {
	if err := locationID.Validate(); err != nil {
		return err
	}
	if locationID.IsEqual(r.locationID) {
		return errs.NewBusinessRuleViolationError("unit is already at target location", r.locationCode, locationCode)
	}
	if !r.status.IsAtLocation() {
		return errs.NewBusinessRuleViolationError("unit is not at a location", r.status.String(), StatusInTransit.String())
	}
	if strings.TrimSpace(locationCode) == "" {
		return errs.NewValueIsRequiredError("locationCode")
	}

	if err := r.Depart(mover, MovementTransfer, now); err != nil {
		return err
	}
	if err := r.setLocation(locationID, locationCode); err != nil {
		return err
	}
	return r.Arrive(mover, method, now)
}

// SchedulePickup plans the outbound handoff. The record stays STORED; a
// planned time in the past makes it overdue.
func (r *Record) SchedulePickup(at time.Time, now time.Time) error {
	if r.status != StatusStored {
		return errs.NewBusinessRuleViolationError("only stored unit can be scheduled for pickup", r.status.String(), "schedule pickup")
	}
	if !at.After(now) {
		return errs.NewValueIsInvalidErrorWithCause(
			"pickup time is invalid",
			fmt.Errorf("%s is not in the future", at.Format(time.RFC3339)),
		)
	}

	r.plannedMoveAt = &at
	r.updatedAt = now
	return nil
}

// Pickup hands the unit over for outbound transport.
func (r *Record) Pickup(by string, now time.Time) error {
	by = strings.TrimSpace(by)
	if by == "" {
		return errs.NewValueIsRequiredError("pickedUpBy")
	}
	if r.status != StatusStored && r.status != StatusPicking {
		return errs.NewBusinessRuleViolationError("unit cannot be picked up", r.status.String(), StatusPicked.String())
	}

	r.pickedUpAt = &now
	r.pickedUpBy = by
	r.departedAt = &now
	r.plannedMoveAt = nil
	r.movementType = MovementOutbound
	r.status = StatusPicked
	r.updatedAt = now
	return nil
}

func (r *Record) SetAlert(reason string, now time.Time) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("alertReason")
	}

	r.alert = true
	r.alertReason = reason
	r.alertedAt = &now
	r.updatedAt = now
	return nil
}

func (r *Record) ClearAlert(now time.Time) {
	r.alert = false
	r.alertReason = ""
	r.alertedAt = nil
	r.updatedAt = now
}

// MarkDamaged keeps the unit at its location and raises an alert.
func (r *Record) MarkDamaged(reason string, now time.Time) error {
	if r.status.IsFinal() {
		return errs.NewBusinessRuleViolationError("unit cannot be marked damaged", r.status.String(), StatusDamaged.String())
	}
	if err := r.SetAlert(reason, now); err != nil {
		return err
	}
	r.status = StatusDamaged
	return nil
}

// MarkLost raises an alert and ends tracking of the unit.
func (r *Record) MarkLost(reason string, now time.Time) error {
	if r.status.IsFinal() {
		return errs.NewBusinessRuleViolationError("unit cannot be marked lost", r.status.String(), StatusLost.String())
	}
	if err := r.SetAlert(reason, now); err != nil {
		return err
	}
	r.status = StatusLost
	return nil
}

// IsOverdue reports a planned move time in the past while still STORED.
func (r *Record) IsOverdue(now time.Time) bool {
	return r.status == StatusStored && r.plannedMoveAt != nil && r.plannedMoveAt.Before(now)
}

// StorageDurationHours counts whole hours since arrival, up to the departure
// when the unit has left.
func (r *Record) StorageDurationHours(now time.Time) int64 {
	if r.arrivedAt == nil {
		return 0
	}
	end := now
	if r.departedAt != nil && r.departedAt.After(*r.arrivedAt) {
		end = *r.departedAt
	}
	if end.Before(*r.arrivedAt) {
		return 0
	}
	return int64(end.Sub(*r.arrivedAt) / time.Hour)
}

// NeedsUrgentAction is true for alerted, damaged, lost or overdue units.
func (r *Record) NeedsUrgentAction(now time.Time) bool {
	return r.alert || r.status == StatusDamaged || r.status == StatusLost || r.IsOverdue(now)
}

func (r *Record) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Record) setLocation(id kernel.UUID, code string) error {
	if err := id.Validate(); err != nil {
		return err
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return errs.NewValueIsRequiredError("locationCode")
	}
	r.locationID = id
	r.locationCode = code
	return nil
}

func validateLoad(load Load) error {
	if load.Weight.IsNegative() || load.Volume.IsNegative() || load.Count < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"load is invalid",
			fmt.Errorf("weight %s, volume %s, count %d must not be negative", load.Weight, load.Volume, load.Count),
		)
	}
	return nil
}
