package queries

import (
	"errors"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/guard"
)

var ErrGetLocationPathQueryIsNotConstructed = errors.New(
	"GetLocationPathQuery must be created via NewGetLocationPathQuery constructor",
)

type GetLocationPathQuery struct {
	locationID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetLocationPathQuery(locationID kernel.UUID) (GetLocationPathQuery, error) {
	if err := locationID.Validate(); err != nil {
		return GetLocationPathQuery{}, err
	}
	return GetLocationPathQuery{locationID: locationID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetLocationPathQuery) Validate() error {
	return q.guard.Validate(ErrGetLocationPathQueryIsNotConstructed)
}

func (q GetLocationPathQuery) LocationID() kernel.UUID {
	return q.locationID
}

// GetLocationPathQueryResponse describes where a location sits in the tree.
// Codes runs from the root down to the location itself.
type GetLocationPathQueryResponse struct {
	LocationID kernel.UUID
	Code       string
	Path       string
	Codes      []string
}
