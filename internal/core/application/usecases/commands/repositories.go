// Package commands contains the write use cases of the forwarding core.
// Every command follows the same pattern: a validated command value, a
// handler that opens a unit of work, mutates exactly the aggregates it
// needs, and commits.
package commands

import (
	"context"
	"time"

	"forwarding/internal/core/ports"
)

// Unit of Work interfaces narrowed to what each handler touches.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	StorageRepoFactory interface {
		StorageLocationRepository() ports.StorageLocationRepository
	}

	TrackingRepoFactory interface {
		ItemLocationRepository() ports.ItemLocationRepository
	}

	// OrderUoW is used by commands that only change orders.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// StorageUoW is used by storage administration commands.
	StorageUoW interface {
		TxManager
		StorageRepoFactory
		TrackingRepoFactory
	}

	StorageUoWFactory interface {
		Create() StorageUoW
	}
)

// Clock returns the current time. Handlers never call time.Now directly.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c()
}
