package order

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
	"forwarding/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

var hsCodeSeparators = regexp.MustCompile(`[.\s-]`)

// LineItem is one declared product line of an order.
type LineItem struct {
	id          kernel.UUID
	description string
	quantity    int
	unitPrice   decimal.Decimal
	hsCode      string
	// dimensions of a single unit, nil when not measured
	dimensions *kernel.Dimensions
	guard      guard.ConstructorGuard
}

// NewLineItem validates quantity > 0 and a non-negative unit price.
// The customs code is optional; separators are stripped so that
// "6109.10-00" and "61091000" are the same code.
func NewLineItem(
	id kernel.UUID,
	description string,
	quantity int,
	unitPrice decimal.Decimal,
	hsCode string,
	dimensions *kernel.Dimensions,
) (*LineItem, error) {
	item := &LineItem{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		item.setID(id),
		item.setDescription(description),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
		item.setDimensions(dimensions),
	); err != nil {
		return nil, err
	}
	item.hsCode = NormalizeHSCode(hsCode)

	return item, nil
}

// NormalizeHSCode strips dots, dashes and whitespace from a customs code.
func NormalizeHSCode(code string) string {
	return hsCodeSeparators.ReplaceAllString(strings.TrimSpace(code), "")
}

func (i *LineItem) Validate() error {
	if i == nil {
		return ErrLineItemIsNotConstructed
	}
	return i.guard.Validate(ErrLineItemIsNotConstructed)
}

func (i *LineItem) ID() kernel.UUID {
	return i.id
}

func (i *LineItem) Description() string {
	return i.description
}

func (i *LineItem) Quantity() int {
	return i.quantity
}

func (i *LineItem) UnitPrice() decimal.Decimal {
	return i.unitPrice
}

func (i *LineItem) HSCode() string {
	return i.hsCode
}

func (i *LineItem) Dimensions() *kernel.Dimensions {
	return i.dimensions
}

// LineTotal is quantity × unit price rounded half-up to two places.
func (i *LineItem) LineTotal() decimal.Decimal {
	return kernel.RoundMoney(i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity))))
}

// UnitVolumeM3 is the volume of one unit, zero when the item was not measured.
func (i *LineItem) UnitVolumeM3() decimal.Decimal {
	if i.dimensions == nil {
		return decimal.Zero
	}
	return i.dimensions.VolumeM3()
}

func (i *LineItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *LineItem) setDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return errs.NewValueIsRequiredError("description")
	}
	i.description = strings.TrimSpace(description)
	return nil
}

func (i *LineItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	i.quantity = quantity
	return nil
}

func (i *LineItem) setUnitPrice(unitPrice decimal.Decimal) error {
	if unitPrice.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(
			"unit price is invalid",
			fmt.Errorf("%s is negative", unitPrice),
		)
	}
	i.unitPrice = unitPrice
	return nil
}

func (i *LineItem) setDimensions(dimensions *kernel.Dimensions) error {
	if dimensions == nil {
		return nil
	}
	if err := dimensions.Validate(); err != nil {
		return err
	}
	d := *dimensions
	i.dimensions = &d
	return nil
}
