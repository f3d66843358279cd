package commands

import (
	"errors"
	"strings"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/storage"
	"forwarding/internal/pkg/errs"
	"forwarding/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateStorageLocationCommandIsNotConstructed = errors.New(
	"CreateStorageLocationCommand must be created via NewCreateStorageLocationCommand constructor",
)

// CreateStorageLocationCommand adds a node to the warehouse tree. A nil
// parent creates a root. Null capacities mean unbounded.
type CreateStorageLocationCommand struct { //nolint:recvcheck //using for validation
	locationID   kernel.UUID
	code         string
	name         string
	locationType storage.LocationType
	parentID     *kernel.UUID
	maxWeight    decimal.NullDecimal
	maxVolume    decimal.NullDecimal

	guard guard.ConstructorGuard
}

func NewCreateStorageLocationCommand(
	locationID kernel.UUID,
	code string,
	name string,
	locationType storage.LocationType,
	parentID *kernel.UUID,
	maxWeight decimal.NullDecimal,
	maxVolume decimal.NullDecimal,
) (CreateStorageLocationCommand, error) {
	cmd := CreateStorageLocationCommand{
		name:      strings.TrimSpace(name),
		parentID:  parentID,
		maxWeight: maxWeight,
		maxVolume: maxVolume,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setLocationID(locationID),
		cmd.setCode(code),
		cmd.setLocationType(locationType),
	); err != nil {
		return CreateStorageLocationCommand{}, err
	}

	return cmd, nil
}

func (c CreateStorageLocationCommand) Validate() error {
	return c.guard.Validate(ErrCreateStorageLocationCommandIsNotConstructed)
}

func (c CreateStorageLocationCommand) LocationID() kernel.UUID            { return c.locationID }
func (c CreateStorageLocationCommand) Code() string                       { return c.code }
func (c CreateStorageLocationCommand) Name() string                       { return c.name }
func (c CreateStorageLocationCommand) LocationType() storage.LocationType { return c.locationType }
func (c CreateStorageLocationCommand) ParentID() *kernel.UUID             { return c.parentID }
func (c CreateStorageLocationCommand) MaxWeight() decimal.NullDecimal     { return c.maxWeight }
func (c CreateStorageLocationCommand) MaxVolume() decimal.NullDecimal     { return c.maxVolume }

func (c *CreateStorageLocationCommand) setLocationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.locationID = id
	return nil
}

func (c *CreateStorageLocationCommand) setCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	c.code = code
	return nil
}

func (c *CreateStorageLocationCommand) setLocationType(t storage.LocationType) error {
	if err := t.Validate(); err != nil {
		return err
	}
	c.locationType = t
	return nil
}
