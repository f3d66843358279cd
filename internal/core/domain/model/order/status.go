package order

import (
	"fmt"
	"slices"
	"strings"

	"forwarding/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// The legal moves between states form an explicit adjacency table
// (see getTransitions). The happy path is:
//
//	RECEIVED -> CONFIRMED -> ARRIVED -> IN_WAREHOUSE -> {REPACKING | HOLD} -> SHIPPING
//	         -> DELIVERED -> BILLING -> PAYMENT_PENDING -> PAYMENT_CONFIRMED -> COMPLETED
//
// Side branches:
//
//	RECEIVED, CONFIRMED -> DELAYED -> CONFIRMED
//	HOLD -> IN_WAREHOUSE
//	any non-terminal state -> CANCELLED
//
// COMPLETED and CANCELLED are terminal and reject every transition.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota
	Received
	Confirmed
	Delayed
	Arrived
	InWarehouse
	Repacking
	Hold
	Shipping
	Delivered
	Billing
	PaymentPending
	PaymentConfirmed
	Completed
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:          "UNKNOWN",
		Received:         "RECEIVED",
		Confirmed:        "CONFIRMED",
		Delayed:          "DELAYED",
		Arrived:          "ARRIVED",
		InWarehouse:      "IN_WAREHOUSE",
		Repacking:        "REPACKING",
		Hold:             "HOLD",
		Shipping:         "SHIPPING",
		Delivered:        "DELIVERED",
		Billing:          "BILLING",
		PaymentPending:   "PAYMENT_PENDING",
		PaymentConfirmed: "PAYMENT_CONFIRMED",
		Completed:        "COMPLETED",
		Cancelled:        "CANCELLED",
	}
}

// getTransitions is the adjacency table of the lifecycle graph. Every valid
// status has an entry; terminal states map to an empty list.
func getTransitions() map[Status][]Status {
	//nolint:exhaustive // Unknown is not a node of the graph
	return map[Status][]Status{
		Received:         {Confirmed, Delayed, Cancelled},
		Confirmed:        {Arrived, Delayed, Cancelled},
		Delayed:          {Confirmed, Cancelled},
		Arrived:          {InWarehouse, Cancelled},
		InWarehouse:      {Repacking, Hold, Shipping, Cancelled},
		Repacking:        {Shipping, Cancelled},
		Hold:             {InWarehouse, Cancelled},
		Shipping:         {Delivered, Cancelled},
		Delivered:        {Billing, Cancelled},
		Billing:          {PaymentPending, Cancelled},
		PaymentPending:   {PaymentConfirmed, Cancelled},
		PaymentConfirmed: {Completed, Cancelled},
		Completed:        {},
		Cancelled:        {},
	}
}

// AllStatuses returns every node of the lifecycle graph in declaration order.
func AllStatuses() []Status {
	return []Status{
		Received, Confirmed, Delayed, Arrived, InWarehouse, Repacking, Hold, Shipping,
		Delivered, Billing, PaymentPending, PaymentConfirmed, Completed, Cancelled,
	}
}

// ParseStatus maps a persisted or transported name back to a Status.
// Matching is case-insensitive.
func ParseStatus(name string) (Status, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for status, str := range getStatusStrings() {
		if status != Unknown && str == upper {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a known status", name),
	)
}

// Validate accepts only nodes of the lifecycle graph.
func (s Status) Validate() error {
	if _, ok := getTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	next, ok := getTransitions()[s]
	return ok && len(next) == 0
}

// AllowedTransitions returns the statuses reachable from s in one step.
// The returned slice is a copy.
func (s Status) AllowedTransitions() []Status {
	return slices.Clone(getTransitions()[s])
}

// CanTransitionTo reports whether target is adjacent to s.
func (s Status) CanTransitionTo(target Status) bool {
	return slices.Contains(getTransitions()[s], target)
}

// TransitionTo returns target when the edge s -> target exists.
//
// An unknown target is a validation error. A missing edge, including any
// move out of a terminal state, is a business rule violation carrying the
// current and attempted status.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}

	if !s.CanTransitionTo(target) {
		return Unknown, errs.NewBusinessRuleViolationError(
			"order status transition is not allowed",
			s.String(),
			target.String(),
		)
	}

	return target, nil
}
