package queries

import (
	"context"

	"forwarding/internal/core/domain/model/storage"
	"forwarding/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetStorageUtilizationQueryHandler loads a subtree with a recursive CTE and
// aggregates it in the domain. Inner nodes carry no roll-up of their own.
type GetStorageUtilizationQueryHandler struct {
	db *gorm.DB
}

func NewGetStorageUtilizationQueryHandler(db *gorm.DB) GetStorageUtilizationQueryHandler {
	return GetStorageUtilizationQueryHandler{db: db}
}

func (h GetStorageUtilizationQueryHandler) Handle(
	ctx context.Context,
	query GetStorageUtilizationQuery,
) (storage.Utilization, error) {
	if err := query.Validate(); err != nil {
		return storage.Utilization{}, err
	}

	var rows []locationRow
	tx := h.db.WithContext(ctx)

	if root := query.RootID(); root != nil {
		tx = tx.Raw(`
			WITH RECURSIVE subtree AS (
				SELECT * FROM storage_locations WHERE id = ?
				UNION ALL
				SELECT child.* FROM storage_locations child
				JOIN subtree ON child.parent_id = subtree.id
			)
			SELECT `+locationColumns+` FROM subtree`, root.Bytes())
	} else {
		tx = tx.Raw(`SELECT ` + locationColumns + ` FROM storage_locations`)
	}

	if err := tx.Scan(&rows).Error; err != nil {
		return storage.Utilization{}, err
	}
	if query.RootID() != nil && len(rows) == 0 {
		return storage.Utilization{}, errs.NewObjectNotFoundError("rootID", *query.RootID())
	}

	locations, err := rowsToLocations(rows)
	if err != nil {
		return storage.Utilization{}, err
	}

	return storage.AggregateUtilization(storage.Leaves(locations)), nil
}
