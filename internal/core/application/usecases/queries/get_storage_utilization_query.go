package queries

import (
	"errors"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/guard"
)

var ErrGetStorageUtilizationQueryIsNotConstructed = errors.New(
	"GetStorageUtilizationQuery must be created via NewGetStorageUtilizationQuery constructor",
)

// GetStorageUtilizationQuery sums usage over the leaf locations below a root.
// A nil root covers every warehouse.
type GetStorageUtilizationQuery struct {
	rootID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetStorageUtilizationQuery(rootID *kernel.UUID) (GetStorageUtilizationQuery, error) {
	if rootID != nil {
		if err := rootID.Validate(); err != nil {
			return GetStorageUtilizationQuery{}, err
		}
	}
	return GetStorageUtilizationQuery{rootID: rootID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetStorageUtilizationQuery) Validate() error {
	return q.guard.Validate(ErrGetStorageUtilizationQueryIsNotConstructed)
}

func (q GetStorageUtilizationQuery) RootID() *kernel.UUID {
	return q.rootID
}
