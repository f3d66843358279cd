package queries

import (
	"context"
	"strings"

	"forwarding/internal/core/domain/model/storage"
	"forwarding/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetLocationPathQueryHandler struct {
	db *gorm.DB
}

func NewGetLocationPathQueryHandler(db *gorm.DB) GetLocationPathQueryHandler {
	return GetLocationPathQueryHandler{db: db}
}

// Handle reads the location and its ancestors in one recursive query. The
// depth guard stops the walk on corrupted parent links.
func (h GetLocationPathQueryHandler) Handle(
	ctx context.Context,
	query GetLocationPathQuery,
) (GetLocationPathQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetLocationPathQueryResponse{}, err
	}

	var rows []locationRow
	err := h.db.WithContext(ctx).Raw(`
		WITH RECURSIVE chain AS (
			SELECT l.*, 0 AS depth FROM storage_locations l WHERE l.id = ?
			UNION ALL
			SELECT parent.*, chain.depth + 1 FROM storage_locations parent
			JOIN chain ON parent.id = chain.parent_id
			WHERE chain.depth < 64
		)
		SELECT `+locationColumns+` FROM chain ORDER BY depth`, query.LocationID().Bytes()).Scan(&rows).Error
	if err != nil {
		return GetLocationPathQueryResponse{}, err
	}
	if len(rows) == 0 {
		return GetLocationPathQueryResponse{}, errs.NewObjectNotFoundError("locationID", query.LocationID())
	}

	locations, err := rowsToLocations(rows)
	if err != nil {
		return GetLocationPathQueryResponse{}, err
	}

	start := locations[0]
	chain, err := storage.Ancestors(start, storage.IndexLookup(locations))
	if err != nil {
		return GetLocationPathQueryResponse{}, err
	}

	codes := make([]string, 0, len(chain))
	for _, l := range chain {
		codes = append(codes, l.Code())
	}
	return GetLocationPathQueryResponse{
		LocationID: start.ID(),
		Code:       start.Code(),
		Path:       strings.Join(codes, storage.PathSeparator),
		Codes:      codes,
	}, nil
}
