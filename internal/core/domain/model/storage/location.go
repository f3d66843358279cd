package storage

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

var (
	// ErrLocationIsNotConstructed is returned when a StorageLocation was not
	// created through NewLocation or RestoreLocation.
	ErrLocationIsNotConstructed = errors.New("StorageLocation must be created via NewLocation constructor")

	hundred = decimal.NewFromInt(100)
)

// Location is a node of the warehouse tree with its own capacity accounting.
//
// Capacity is tracked per node only: loading a bin does not change its shelf
// or rack. Warehouse-wide utilization is computed by summing leaf nodes, see
// AggregateUtilization.
//
// Key business rules:
//   - currentWeight never exceeds maxWeight and currentVolume never exceeds
//     maxVolume when those bounds are set; a nil bound means unbounded
//   - a load change that would break a bound is rejected as a whole
//   - usage never drops below zero
//   - a set reservation implies RESERVED status; an expired reservation can
//     be replaced without any cleanup having run
//   - while a reservation is active only its holder can add load
//
// A Location is a single-writer aggregate. Callers serialize mutations of the
// same location, the postgres adapter does it with SELECT ... FOR UPDATE.
type Location struct {
	id           kernel.UUID
	code         string
	name         string
	locationType LocationType
	parentID     *kernel.UUID

	maxWeight decimal.NullDecimal
	maxVolume decimal.NullDecimal

	currentWeight    decimal.Decimal
	currentVolume    decimal.Decimal
	currentItemCount int

	status Status
	active bool

	reservedBy    string
	reservedUntil *time.Time

	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewLocation creates an empty, active, AVAILABLE location.
//
// Parameters:
//   - code: unique short code such as "BKK-A-03-2" (required)
//   - parentID: nil for a root warehouse
//   - maxWeight, maxVolume: capacity bounds in kg and m³; Valid=false means unbounded
//
// Example:
//
//	bin, err := storage.NewLocation(
//	    kernel.NewUUID(), "BKK-A-03-2", "Aisle A rack 3 bin 2", storage.TypeBin,
//	    &rackID, decimal.NewNullDecimal(decimal.NewFromInt(100)), decimal.NullDecimal{}, time.Now(),
//	)
func NewLocation(
	id kernel.UUID,
	code string,
	name string,
	locationType LocationType,
	parentID *kernel.UUID,
	maxWeight decimal.NullDecimal,
	maxVolume decimal.NullDecimal,
	now time.Time,
) (*Location, error) {
	l := &Location{
		status:        StatusAvailable,
		active:        true,
		currentWeight: decimal.Zero,
		currentVolume: decimal.Zero,
		createdAt:     now,
		updatedAt:     now,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		l.setID(id),
		l.setCode(code),
		l.setName(name, code),
		l.setType(locationType),
		l.setParentID(id, parentID),
		l.setBound(&l.maxWeight, "max weight", maxWeight),
		l.setBound(&l.maxVolume, "max volume", maxVolume),
	); err != nil {
		return nil, err
	}

	return l, nil
}

// Snapshot is the persisted state of a location.
type Snapshot struct {
	ID               kernel.UUID
	Code             string
	Name             string
	Type             LocationType
	ParentID         *kernel.UUID
	MaxWeight        decimal.NullDecimal
	MaxVolume        decimal.NullDecimal
	CurrentWeight    decimal.Decimal
	CurrentVolume    decimal.Decimal
	CurrentItemCount int
	Status           Status
	Active           bool
	ReservedBy       string
	ReservedUntil    *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// RestoreLocation rebuilds a location loaded from storage. Usage counters
// are trusted as persisted but must not be negative.
func RestoreLocation(s Snapshot) (*Location, error) {
	l := &Location{
		active:     s.Active,
		reservedBy: s.ReservedBy,
		createdAt:  s.CreatedAt,
		updatedAt:  s.UpdatedAt,
		guard:      guard.NewConstructorGuard(),
	}
	if s.ReservedUntil != nil {
		until := *s.ReservedUntil
		l.reservedUntil = &until
	}

	if err := errors.Join(
		l.setID(s.ID),
		l.setCode(s.Code),
		l.setName(s.Name, s.Code),
		l.setType(s.Type),
		l.setParentID(s.ID, s.ParentID),
		l.setBound(&l.maxWeight, "max weight", s.MaxWeight),
		l.setBound(&l.maxVolume, "max volume", s.MaxVolume),
		l.setUsage(s.CurrentWeight, s.CurrentVolume, s.CurrentItemCount),
		l.setStatus(s.Status),
	); err != nil {
		return nil, err
	}

	return l, nil
}

func (l *Location) Validate() error {
	if l == nil {
		return ErrLocationIsNotConstructed
	}
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

func (l *Location) IsEqual(other *Location) bool {
	return other != nil && l.id.IsEqual(other.id)
}

func (l *Location) ID() kernel.UUID                { return l.id }
func (l *Location) Code() string                   { return l.code }
func (l *Location) Name() string                   { return l.name }
func (l *Location) Type() LocationType             { return l.locationType }
func (l *Location) MaxWeight() decimal.NullDecimal { return l.maxWeight }
func (l *Location) MaxVolume() decimal.NullDecimal { return l.maxVolume }
func (l *Location) CurrentWeight() decimal.Decimal { return l.currentWeight }
func (l *Location) CurrentVolume() decimal.Decimal { return l.currentVolume }
func (l *Location) CurrentItemCount() int          { return l.currentItemCount }
func (l *Location) Status() Status                 { return l.status }
func (l *Location) IsActive() bool                 { return l.active }
func (l *Location) ReservedBy() string             { return l.reservedBy }
func (l *Location) CreatedAt() time.Time           { return l.createdAt }
func (l *Location) UpdatedAt() time.Time           { return l.updatedAt }

func (l *Location) ParentID() *kernel.UUID {
	if l.parentID == nil {
		return nil
	}
	id := *l.parentID
	return &id
}

func (l *Location) ReservedUntil() *time.Time {
	if l.reservedUntil == nil {
		return nil
	}
	until := *l.reservedUntil
	return &until
}

// IsEmpty reports whether nothing is stored in the location.
func (l *Location) IsEmpty() bool {
	return l.currentWeight.IsZero() && l.currentVolume.IsZero() && l.currentItemCount == 0
}

// IsReservationActive reports whether a reservation holds at now.
// A reservation expires strictly after reservedUntil.
func (l *Location) IsReservationActive(now time.Time) bool {
	return l.status == StatusReserved && l.reservedUntil != nil && !now.After(*l.reservedUntil)
}

// IsReservationExpired reports whether the location still carries a
// reservation that has lapsed.
func (l *Location) IsReservationExpired(now time.Time) bool {
	return l.reservedUntil != nil && now.After(*l.reservedUntil)
}

// IsAvailableForUse reports whether new goods can be placed here by anyone:
// the location is active, AVAILABLE (or RESERVED with a lapsed reservation)
// and not over capacity.
func (l *Location) IsAvailableForUse(now time.Time) bool {
	if !l.active || l.isOverCapacity() {
		return false
	}
	switch l.status { //nolint:exhaustive // all other states are unusable
	case StatusAvailable:
		return true
	case StatusReserved:
		return !l.IsReservationActive(now)
	default:
		return false
	}
}

// RemainingWeight is maxWeight - currentWeight; invalid when unbounded.
func (l *Location) RemainingWeight() decimal.NullDecimal {
	return remaining(l.maxWeight, l.currentWeight)
}

// RemainingVolume is maxVolume - currentVolume; invalid when unbounded.
func (l *Location) RemainingVolume() decimal.NullDecimal {
	return remaining(l.maxVolume, l.currentVolume)
}

// UtilizationPercent is the higher of weight and volume utilization,
// rounded to two places. Unbounded dimensions are ignored; a fully
// unbounded location reports zero.
func (l *Location) UtilizationPercent() decimal.Decimal {
	result := decimal.Zero
	if p, ok := percent(l.currentWeight, l.maxWeight); ok {
		result = decimal.Max(result, p)
	}
	if p, ok := percent(l.currentVolume, l.maxVolume); ok {
		result = decimal.Max(result, p)
	}
	return result
}

// Reserve holds the location for `by` until `until`.
//
// Reservation is allowed from AVAILABLE, or from RESERVED when the previous
// reservation has expired. Anything else is a business rule violation.
func (l *Location) Reserve(by string, until time.Time, now time.Time) error {
	by = strings.TrimSpace(by)
	if by == "" {
		return errs.NewValueIsRequiredError("reservedBy")
	}
	if !until.After(now) {
		return errs.NewValueIsInvalidErrorWithCause(
			"reservedUntil is invalid",
			fmt.Errorf("%s is not after %s", until.Format(time.RFC3339), now.Format(time.RFC3339)),
		)
	}

	reservable := l.active &&
		(l.status == StatusAvailable || (l.status == StatusReserved && !l.IsReservationActive(now)))
	if !reservable {
		return errs.NewBusinessRuleViolationError(
			"location is not available for reservation",
			l.describeStatus(now),
			StatusReserved.String(),
		)
	}

	l.status = StatusReserved
	l.reservedBy = by
	l.reservedUntil = &until
	l.updatedAt = now
	return nil
}

// CancelReservation clears the reservation fields. Only a RESERVED location
// goes back to AVAILABLE; other states are left alone.
func (l *Location) CancelReservation(now time.Time) {
	if l.status == StatusReserved {
		l.status = StatusAvailable
	}
	l.clearReservation()
	l.updatedAt = now
}

// Occupy marks the location as in use from AVAILABLE or RESERVED and drops
// any reservation.
func (l *Location) Occupy(now time.Time) error {
	if !l.active || (l.status != StatusAvailable && l.status != StatusReserved) {
		return errs.NewBusinessRuleViolationError(
			"location cannot be occupied",
			l.describeStatus(now),
			StatusOccupied.String(),
		)
	}

	l.status = StatusOccupied
	l.clearReservation()
	l.updatedAt = now
	return nil
}

// AddLoad is AddLoadAs without a holder: an active reservation rejects it.
func (l *Location) AddLoad(weight, volume decimal.Decimal, count int, now time.Time) error {
	return l.AddLoadAs("", weight, volume, count, now)
}

// AddLoadAs increases usage on behalf of by.
//
// While a reservation is active only its holder may add load. The new totals
// are computed first and checked against both bounds; if either is exceeded
// nothing changes and a limit error carrying the measured value and the limit
// is returned. On success a RESERVED location is occupied and its reservation
// consumed, and an AVAILABLE location with non-zero load becomes OCCUPIED.
func (l *Location) AddLoadAs(by string, weight, volume decimal.Decimal, count int, now time.Time) error {
	if err := validateLoad(weight, volume, count); err != nil {
		return err
	}
	if !l.active || !l.status.AcceptsLoad() {
		return errs.NewBusinessRuleViolationError(
			"location does not accept load",
			l.describeStatus(now),
			"add load",
		)
	}
	if l.IsReservationActive(now) && l.reservedBy != strings.TrimSpace(by) {
		return errs.NewBusinessRuleViolationError(
			"location is reserved by another party",
			l.describeStatus(now),
			"add load",
		)
	}

	newWeight := l.currentWeight.Add(weight)
	newVolume := l.currentVolume.Add(volume)
	if l.maxWeight.Valid && newWeight.GreaterThan(l.maxWeight.Decimal) {
		return errs.NewLimitExceededError("weight capacity exceeded at "+l.code, newWeight.String(), l.maxWeight.Decimal.String())
	}
	if l.maxVolume.Valid && newVolume.GreaterThan(l.maxVolume.Decimal) {
		return errs.NewLimitExceededError("volume capacity exceeded at "+l.code, newVolume.String(), l.maxVolume.Decimal.String())
	}

	l.currentWeight = newWeight
	l.currentVolume = newVolume
	l.currentItemCount += count
	l.updatedAt = now
	if l.status == StatusReserved || (l.status == StatusAvailable && !l.IsEmpty()) {
		return l.Occupy(now)
	}
	return nil
}

// RemoveLoad decreases usage, flooring every counter at zero. An OCCUPIED
// location whose weight and item count both reach zero becomes AVAILABLE.
func (l *Location) RemoveLoad(weight, volume decimal.Decimal, count int, now time.Time) error {
	if err := validateLoad(weight, volume, count); err != nil {
		return err
	}

	l.currentWeight = decimal.Max(decimal.Zero, l.currentWeight.Sub(weight))
	l.currentVolume = decimal.Max(decimal.Zero, l.currentVolume.Sub(volume))
	l.currentItemCount = max(0, l.currentItemCount-count)

	if l.status == StatusOccupied && l.currentWeight.IsZero() && l.currentItemCount == 0 {
		l.status = StatusAvailable
	}
	l.updatedAt = now
	return nil
}

// Vacate resets usage to zero and the status to AVAILABLE regardless of the
// recorded load. Retired locations cannot be vacated.
func (l *Location) Vacate(now time.Time) error {
	if l.status == StatusRetired {
		return errs.NewBusinessRuleViolationError("retired location cannot be vacated", l.status.String(), StatusAvailable.String())
	}

	l.currentWeight = decimal.Zero
	l.currentVolume = decimal.Zero
	l.currentItemCount = 0
	l.status = StatusAvailable
	l.clearReservation()
	l.updatedAt = now
	return nil
}

// StartMaintenance takes the location out of service. Stored goods stay
// accounted for.
func (l *Location) StartMaintenance(now time.Time) error {
	return l.takeOutOfService(StatusMaintenance, now)
}

// Block takes the location out of service, for example after damage.
func (l *Location) Block(now time.Time) error {
	return l.takeOutOfService(StatusBlocked, now)
}

// Reopen returns a MAINTENANCE or BLOCKED location to service. It becomes
// OCCUPIED when it still holds goods, AVAILABLE otherwise.
func (l *Location) Reopen(now time.Time) error {
	if l.status != StatusMaintenance && l.status != StatusBlocked {
		return errs.NewBusinessRuleViolationError("only maintenance or blocked location can be reopened", l.status.String(), StatusAvailable.String())
	}

	l.status = StatusAvailable
	if !l.IsEmpty() {
		l.status = StatusOccupied
	}
	l.updatedAt = now
	return nil
}

// Retire permanently deactivates an empty, unreserved location.
func (l *Location) Retire(now time.Time) error {
	if !l.IsEmpty() || l.IsReservationActive(now) {
		return errs.NewBusinessRuleViolationError("only empty unreserved location can be retired", l.describeStatus(now), StatusRetired.String())
	}

	l.status = StatusRetired
	l.active = false
	l.clearReservation()
	l.updatedAt = now
	return nil
}

// CanBeDeleted reports whether the location holds nothing and is not
// reserved. Children and item records are checked by the caller.
func (l *Location) CanBeDeleted(now time.Time) error {
	if !l.IsEmpty() || l.status == StatusOccupied || l.IsReservationActive(now) {
		return errs.NewBusinessRuleViolationError("location in use cannot be deleted", l.describeStatus(now), "delete")
	}
	return nil
}

func (l *Location) takeOutOfService(target Status, now time.Time) error {
	if l.status == StatusRetired || l.status == target {
		return errs.NewBusinessRuleViolationError("location status change is not allowed", l.status.String(), target.String())
	}

	l.status = target
	l.clearReservation()
	l.updatedAt = now
	return nil
}

func (l *Location) clearReservation() {
	l.reservedBy = ""
	l.reservedUntil = nil
}

func (l *Location) isOverCapacity() bool {
	return (l.maxWeight.Valid && l.currentWeight.GreaterThan(l.maxWeight.Decimal)) ||
		(l.maxVolume.Valid && l.currentVolume.GreaterThan(l.maxVolume.Decimal))
}

func (l *Location) describeStatus(now time.Time) string {
	switch {
	case !l.active:
		return l.status.String() + " (inactive)"
	case l.IsReservationActive(now):
		return fmt.Sprintf("%s by %s until %s", l.status, l.reservedBy, l.reservedUntil.Format(time.RFC3339))
	default:
		return l.status.String()
	}
}

func (l *Location) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *Location) setCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	l.code = code
	return nil
}

func (l *Location) setName(name, code string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		name = strings.TrimSpace(code)
	}
	l.name = name
	return nil
}

func (l *Location) setType(t LocationType) error {
	if err := t.Validate(); err != nil {
		return err
	}
	l.locationType = t
	return nil
}

func (l *Location) setParentID(id kernel.UUID, parentID *kernel.UUID) error {
	if parentID == nil {
		return nil
	}
	if err := parentID.Validate(); err != nil {
		return err
	}
	if parentID.IsEqual(id) {
		return errs.NewValueIsInvalidErrorWithCause("parent is invalid", errors.New("location cannot be its own parent"))
	}
	p := *parentID
	l.parentID = &p
	return nil
}

func (l *Location) setBound(target *decimal.NullDecimal, name string, bound decimal.NullDecimal) error {
	if bound.Valid && bound.Decimal.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(name+" is invalid", fmt.Errorf("%s is negative", bound.Decimal))
	}
	*target = bound
	return nil
}

func (l *Location) setUsage(weight, volume decimal.Decimal, count int) error {
	if err := validateLoad(weight, volume, count); err != nil {
		return err
	}
	l.currentWeight = weight
	l.currentVolume = volume
	l.currentItemCount = count
	return nil
}

func (l *Location) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	l.status = status
	return nil
}

func validateLoad(weight, volume decimal.Decimal, count int) error {
	var problems []error
	if weight.IsNegative() {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("weight is invalid", fmt.Errorf("%s is negative", weight)))
	}
	if volume.IsNegative() {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("volume is invalid", fmt.Errorf("%s is negative", volume)))
	}
	if count < 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("count is invalid", fmt.Errorf("%d is negative", count)))
	}
	return errors.Join(problems...)
}

func remaining(bound decimal.NullDecimal, current decimal.Decimal) decimal.NullDecimal {
	if !bound.Valid {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.Max(decimal.Zero, bound.Decimal.Sub(current)))
}

func percent(current decimal.Decimal, bound decimal.NullDecimal) (decimal.Decimal, bool) {
	if !bound.Valid || !bound.Decimal.IsPositive() {
		return decimal.Zero, false
	}
	return current.Mul(hundred).DivRound(bound.Decimal, 2), true
}
