package order

import (
	"errors"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrBoxIsNotConstructed = errors.New("Box must be created via NewBox constructor")

// Box is a physical carton belonging to an order. Its volume is always
// derived from the current dimensions and is never stored independently.
type Box struct {
	id         kernel.UUID
	dimensions kernel.Dimensions
	guard      guard.ConstructorGuard
}

func NewBox(id kernel.UUID, dimensions kernel.Dimensions) (*Box, error) {
	box := &Box{guard: guard.NewConstructorGuard()}

	if err := errors.Join(box.setID(id), box.setDimensions(dimensions)); err != nil {
		return nil, err
	}

	return box, nil
}

func (b *Box) Validate() error {
	if b == nil {
		return ErrBoxIsNotConstructed
	}
	return b.guard.Validate(ErrBoxIsNotConstructed)
}

func (b *Box) IsEqual(other *Box) bool {
	return other != nil && b.id.IsEqual(other.id)
}

func (b *Box) ID() kernel.UUID {
	return b.id
}

func (b *Box) Dimensions() kernel.Dimensions {
	return b.dimensions
}

func (b *Box) VolumeM3() decimal.Decimal {
	return b.dimensions.VolumeM3()
}

func (b *Box) WeightKg() decimal.Decimal {
	return b.dimensions.Weight()
}

func (b *Box) VolumetricWeightKg() decimal.Decimal {
	return b.dimensions.VolumetricWeightKg()
}

func (b *Box) resize(dimensions kernel.Dimensions) error {
	return b.setDimensions(dimensions)
}

func (b *Box) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Box) setDimensions(dimensions kernel.Dimensions) error {
	if err := dimensions.Validate(); err != nil {
		return err
	}
	b.dimensions = dimensions
	return nil
}
