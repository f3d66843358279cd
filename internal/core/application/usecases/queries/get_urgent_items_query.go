package queries

import (
	"errors"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/tracking"
	"forwarding/internal/pkg/guard"
)

var ErrGetUrgentItemsQueryIsNotConstructed = errors.New(
	"GetUrgentItemsQuery must be created via NewGetUrgentItemsQuery constructor",
)

// GetUrgentItemsQuery lists units that are alerted, damaged, lost or overdue
// at the given time.
type GetUrgentItemsQuery struct {
	now time.Time

	guard guard.ConstructorGuard
}

func NewGetUrgentItemsQuery(now time.Time) GetUrgentItemsQuery {
	return GetUrgentItemsQuery{now: now, guard: guard.NewConstructorGuard()}
}

func (q GetUrgentItemsQuery) Validate() error {
	return q.guard.Validate(ErrGetUrgentItemsQueryIsNotConstructed)
}

func (q GetUrgentItemsQuery) Now() time.Time {
	return q.now
}

type GetUrgentItemsQueryResponse struct {
	RecordID             kernel.UUID
	OrderID              kernel.UUID
	LocationCode         string
	Status               tracking.Status
	AlertReason          string
	PlannedMoveAt        *time.Time
	Overdue              bool
	StorageDurationHours int64
}
