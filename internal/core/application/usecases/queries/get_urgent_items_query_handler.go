package queries

import (
	"context"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/tracking"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetUrgentItemsQueryHandler struct {
	db *gorm.DB
}

func NewGetUrgentItemsQueryHandler(db *gorm.DB) GetUrgentItemsQueryHandler {
	return GetUrgentItemsQueryHandler{db: db}
}

// Handle returns urgent units, alerted ones first and then by planned move
// time.
func (h GetUrgentItemsQueryHandler) Handle(
	ctx context.Context,
	query GetUrgentItemsQuery,
) ([]GetUrgentItemsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	now := query.Now()
	items := make([]GetUrgentItemsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			location_code,
			status,
			alert_reason,
			planned_move_at,
			arrived_at,
			departed_at
		FROM item_locations
		WHERE alert
			OR status IN (?, ?)
			OR (status = ? AND planned_move_at < ?)
		ORDER BY alert DESC, planned_move_at NULLS LAST, id
	`, tracking.StatusDamaged.String(), tracking.StatusLost.String(), tracking.StatusStored.String(), now).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id, orderID           uuid.UUID
			status                string
			arrivedAt, departedAt *time.Time
			item                  GetUrgentItemsQueryResponse
		)

		err = rows.Scan(
			&id,
			&orderID,
			&item.LocationCode,
			&status,
			&item.AlertReason,
			&item.PlannedMoveAt,
			&arrivedAt,
			&departedAt,
		)
		if err != nil {
			return nil, err
		}

		if item.RecordID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if item.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		if item.Status, err = tracking.ParseStatus(status); err != nil {
			return nil, err
		}

		item.Overdue = item.Status == tracking.StatusStored && item.PlannedMoveAt != nil && item.PlannedMoveAt.Before(now)
		item.StorageDurationHours = durationHours(arrivedAt, departedAt, now)
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func durationHours(arrivedAt, departedAt *time.Time, now time.Time) int64 {
	if arrivedAt == nil {
		return 0
	}
	end := now
	if departedAt != nil && departedAt.After(*arrivedAt) {
		end = *departedAt
	}
	if end.Before(*arrivedAt) {
		return 0
	}
	return int64(end.Sub(*arrivedAt) / time.Hour)
}
