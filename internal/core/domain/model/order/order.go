package order

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
	"forwarding/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrOrderIsNotConstructed is returned when an Order was not created through
// NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// Order is the aggregate root of a forwarding request. It owns an ordered list
// of boxes and line items and keeps the derived totals consistent with them.
//
// Order follows these invariants:
//   - TotalVolume is the sum of box volumes after every box change
//   - Status is always a node of the lifecycle graph
//   - Boxes and line items can only change while the order is RECEIVED
//   - AIR is never reverted to SEA by rule evaluation
//   - Orders are never deleted, only cancelled
type Order struct {
	id                kernel.UUID
	memberCode        string
	submitterApproved bool
	currency          string

	status       Status
	shippingMode ShippingMode

	boxes     []*Box
	lineItems []*LineItem

	totalVolume decimal.Decimal
	totalWeight decimal.Decimal
	totalAmount decimal.Decimal

	// referenceAmount is the last total in the reference currency the rules
	// were given. It is dropped when line items change.
	referenceAmount decimal.NullDecimal

	requiresExtraRecipient bool
	hasNoMemberCode        bool
	hsCodeValidated        bool
	warnings               []Warning

	createdAt time.Time
	updatedAt time.Time

	// version is the persisted revision used for optimistic concurrency.
	version int64

	guard guard.ConstructorGuard
}

// NewOrder creates an empty order in RECEIVED status. Boxes and line items
// are attached afterwards with AddBox and AddLineItem.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), "M-1024", true, "USD", order.ShippingModeSea, time.Now())
//	if err != nil {
//	    return err
//	}
//	err = o.AddBox(box, time.Now())
func NewOrder(
	id kernel.UUID,
	memberCode string,
	submitterApproved bool,
	currency string,
	mode ShippingMode,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:            Received,
		submitterApproved: submitterApproved,
		memberCode:        strings.TrimSpace(memberCode),
		totalVolume:       decimal.Zero,
		totalWeight:       decimal.Zero,
		totalAmount:       decimal.Zero,
		createdAt:         now,
		updatedAt:         now,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCurrency(currency),
		o.setShippingMode(mode),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Snapshot carries the persisted state of an order back into the domain.
// Totals are not part of it: they are always recomputed from boxes and items.
type Snapshot struct {
	ID                     kernel.UUID
	MemberCode             string
	SubmitterApproved      bool
	Currency               string
	Status                 Status
	ShippingMode           ShippingMode
	Boxes                  []*Box
	LineItems              []*LineItem
	ReferenceAmount        decimal.NullDecimal
	RequiresExtraRecipient bool
	HasNoMemberCode        bool
	HSCodeValidated        bool
	Warnings               []Warning
	CreatedAt              time.Time
	UpdatedAt              time.Time
	Version                int64
}

// RestoreOrder rebuilds an order loaded from storage.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		memberCode:             strings.TrimSpace(s.MemberCode),
		submitterApproved:      s.SubmitterApproved,
		referenceAmount:        s.ReferenceAmount,
		requiresExtraRecipient: s.RequiresExtraRecipient,
		hasNoMemberCode:        s.HasNoMemberCode,
		hsCodeValidated:        s.HSCodeValidated,
		warnings:               slices.Clone(s.Warnings),
		createdAt:              s.CreatedAt,
		updatedAt:              s.UpdatedAt,
		version:                s.Version,
		guard:                  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setCurrency(s.Currency),
		o.setShippingMode(s.ShippingMode),
		o.setStatus(s.Status),
		o.setBoxes(s.Boxes),
		o.setLineItems(s.LineItems),
	); err != nil {
		return nil, err
	}
	o.recalculate()

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) MemberCode() string {
	return o.memberCode
}

func (o *Order) SubmitterApproved() bool {
	return o.submitterApproved
}

func (o *Order) Currency() string {
	return o.currency
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) ShippingMode() ShippingMode {
	return o.shippingMode
}

// Boxes returns the boxes in insertion order. The slice is a copy.
func (o *Order) Boxes() []*Box {
	return slices.Clone(o.boxes)
}

func (o *Order) LineItems() []*LineItem {
	return slices.Clone(o.lineItems)
}

// TotalVolume is the sum of box volumes in cubic meters.
func (o *Order) TotalVolume() decimal.Decimal {
	return o.totalVolume
}

// TotalWeight is the sum of actual box weights in kilograms.
func (o *Order) TotalWeight() decimal.Decimal {
	return o.totalWeight
}

// TotalAmount is the sum of line totals in the order currency.
func (o *Order) TotalAmount() decimal.Decimal {
	return o.totalAmount
}

// HSCodes returns the distinct non-empty customs codes of all line items.
func (o *Order) HSCodes() []string {
	codes := make([]string, 0, len(o.lineItems))
	for _, item := range o.lineItems {
		if item.HSCode() != "" && !slices.Contains(codes, item.HSCode()) {
			codes = append(codes, item.HSCode())
		}
	}
	return codes
}

// ReferenceAmount is the stored reference-currency total; invalid when none
// was supplied since the line items last changed.
func (o *Order) ReferenceAmount() decimal.NullDecimal {
	return o.referenceAmount
}

// RecordReferenceAmount keeps the reference-currency total for later
// evaluations. An invalid amount leaves the stored one in place.
func (o *Order) RecordReferenceAmount(amount decimal.NullDecimal) error {
	if !amount.Valid {
		return nil
	}
	if amount.Decimal.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(
			"reference amount is invalid",
			fmt.Errorf("%s is negative", amount.Decimal),
		)
	}
	o.referenceAmount = decimal.NewNullDecimal(kernel.RoundMoney(amount.Decimal))
	return nil
}

func (o *Order) RequiresExtraRecipient() bool {
	return o.requiresExtraRecipient
}

func (o *Order) HasNoMemberCode() bool {
	return o.hasNoMemberCode
}

func (o *Order) HSCodeValidated() bool {
	return o.hsCodeValidated
}

func (o *Order) Warnings() []Warning {
	return slices.Clone(o.warnings)
}

func (o *Order) HasWarnings() bool {
	return len(o.warnings) > 0
}

func (o *Order) HasWarning(code WarningCode) bool {
	return slices.ContainsFunc(o.warnings, func(w Warning) bool { return w.Code == code })
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

func (o *Order) Version() int64 {
	return o.version
}

// SyncVersion records the revision written by the repository.
func (o *Order) SyncVersion(version int64) {
	o.version = version
}

// AddBox appends a box and recomputes the totals.
func (o *Order) AddBox(box *Box, now time.Time) error {
	if err := box.Validate(); err != nil {
		return err
	}
	if err := o.ensureEditable("add box"); err != nil {
		return err
	}
	if o.findBox(box.ID()) >= 0 {
		return errs.NewValueIsInvalidErrorWithCause("box is invalid", fmt.Errorf("box %s already added", box.ID()))
	}

	o.boxes = append(o.boxes, box)
	o.touch(now)
	return nil
}

// UpdateBox replaces the dimensions of an existing box.
func (o *Order) UpdateBox(boxID kernel.UUID, dimensions kernel.Dimensions, now time.Time) error {
	if err := dimensions.Validate(); err != nil {
		return err
	}
	if err := o.ensureEditable("update box"); err != nil {
		return err
	}
	idx := o.findBox(boxID)
	if idx < 0 {
		return errs.NewObjectNotFoundError("boxID", boxID)
	}

	if err := o.boxes[idx].resize(dimensions); err != nil {
		return err
	}
	o.touch(now)
	return nil
}

func (o *Order) RemoveBox(boxID kernel.UUID, now time.Time) error {
	if err := o.ensureEditable("remove box"); err != nil {
		return err
	}
	idx := o.findBox(boxID)
	if idx < 0 {
		return errs.NewObjectNotFoundError("boxID", boxID)
	}

	o.boxes = slices.Delete(o.boxes, idx, idx+1)
	o.touch(now)
	return nil
}

func (o *Order) AddLineItem(item *LineItem, now time.Time) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if err := o.ensureEditable("add line item"); err != nil {
		return err
	}
	if slices.ContainsFunc(o.lineItems, func(i *LineItem) bool { return i.ID().IsEqual(item.ID()) }) {
		return errs.NewValueIsInvalidErrorWithCause("line item is invalid", fmt.Errorf("item %s already added", item.ID()))
	}

	o.lineItems = append(o.lineItems, item)
	o.referenceAmount = decimal.NullDecimal{}
	o.touch(now)
	return nil
}

func (o *Order) RemoveLineItem(itemID kernel.UUID, now time.Time) error {
	if err := o.ensureEditable("remove line item"); err != nil {
		return err
	}
	idx := slices.IndexFunc(o.lineItems, func(i *LineItem) bool { return i.ID().IsEqual(itemID) })
	if idx < 0 {
		return errs.NewObjectNotFoundError("lineItemID", itemID)
	}

	o.lineItems = slices.Delete(o.lineItems, idx, idx+1)
	o.referenceAmount = decimal.NullDecimal{}
	o.touch(now)
	return nil
}

// TransitionTo moves the order along one edge of the lifecycle graph.
// On failure the order is left unchanged.
func (o *Order) TransitionTo(target Status, now time.Time) error {
	next, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = next
	o.updatedAt = now
	return nil
}

// Cancel is TransitionTo(Cancelled).
func (o *Order) Cancel(now time.Time) error {
	return o.TransitionTo(Cancelled, now)
}

// ApplyRuleOutcome writes the result of a rule evaluation onto the order.
//
// Flags are set to the computed values and the warning list is replaced, so
// re-applying an unchanged outcome is a no-op. ForceAir switches SEA to AIR;
// nothing switches back. Delay moves RECEIVED or CONFIRMED to DELAYED through
// the lifecycle graph and is ignored in every other status.
func (o *Order) ApplyRuleOutcome(outcome RuleOutcome, now time.Time) error {
	if outcome.Delay && (o.status == Received || o.status == Confirmed) {
		if err := o.TransitionTo(Delayed, now); err != nil {
			return err
		}
	}

	if outcome.ForceAir && o.shippingMode == ShippingModeSea {
		o.shippingMode = ShippingModeAir
	}

	o.requiresExtraRecipient = outcome.RequiresExtraRecipient
	o.hasNoMemberCode = outcome.HasNoMemberCode
	o.hsCodeValidated = outcome.HSCodeValidated
	o.warnings = slices.Clone(outcome.Warnings)
	o.updatedAt = now
	return nil
}

func (o *Order) ensureEditable(action string) error {
	if o.status != Received {
		return errs.NewBusinessRuleViolationError(
			action+" is allowed only while "+Received.String(),
			o.status.String(),
			action,
		)
	}
	return nil
}

func (o *Order) findBox(id kernel.UUID) int {
	return slices.IndexFunc(o.boxes, func(b *Box) bool { return b.ID().IsEqual(id) })
}

func (o *Order) touch(now time.Time) {
	o.recalculate()
	o.updatedAt = now
}

func (o *Order) recalculate() {
	volume := decimal.Zero
	weight := decimal.Zero
	for _, box := range o.boxes {
		volume = volume.Add(box.VolumeM3())
		weight = weight.Add(box.WeightKg())
	}

	amount := decimal.Zero
	for _, item := range o.lineItems {
		amount = amount.Add(item.LineTotal())
	}

	o.totalVolume = volume
	o.totalWeight = weight.Round(kernel.WeightPrecision)
	o.totalAmount = kernel.RoundMoney(amount)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCurrency(currency string) error {
	c := strings.ToUpper(strings.TrimSpace(currency))
	if !currencyPattern.MatchString(c) {
		return errs.NewValueIsInvalidErrorWithCause(
			"currency is invalid",
			fmt.Errorf("%q is not a three-letter code", currency),
		)
	}
	o.currency = c
	return nil
}

func (o *Order) setShippingMode(mode ShippingMode) error {
	if err := mode.Validate(); err != nil {
		return err
	}
	o.shippingMode = mode
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setBoxes(boxes []*Box) error {
	for _, box := range boxes {
		if err := box.Validate(); err != nil {
			return err
		}
	}
	o.boxes = slices.Clone(boxes)
	return nil
}

func (o *Order) setLineItems(items []*LineItem) error {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.lineItems = slices.Clone(items)
	return nil
}
