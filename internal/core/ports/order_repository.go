// Package ports defines the contracts between the forwarding core and its
// infrastructure: repositories, the unit of work, and outbound collaborators.
package ports

import (
	"context"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/order"
)

// OrderRepository persists order aggregates together with their boxes and
// line items.
type OrderRepository interface {
	// Add persists a new order. The stored version becomes 1.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the aggregate if the stored version still equals
	// aggregate.Version(), then bumps it. A mismatch returns
	// errs.ConcurrencyConflictError and writes nothing.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns errs.ObjectNotFoundError for an unknown id.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
