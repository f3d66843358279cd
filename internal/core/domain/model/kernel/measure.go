package kernel

import (
	"errors"
	"fmt"

	"forwarding/internal/pkg/errs"
	"forwarding/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

const (
	// LengthPrecision is the number of decimal places kept for centimeters.
	LengthPrecision int32 = 2
	// VolumePrecision is the number of decimal places kept for cubic meters.
	VolumePrecision int32 = 6
	// WeightPrecision is the number of decimal places kept for kilograms.
	WeightPrecision int32 = 2
	// MoneyPrecision is the number of decimal places kept for monetary amounts.
	MoneyPrecision int32 = 2
)

var (
	cubicCentimetersPerCubicMeter = decimal.NewFromInt(1_000_000)
	// volumetricDivisor is the air-freight dimensional weight divisor (cm³ per kg).
	volumetricDivisor = decimal.NewFromInt(6000)
)

// ErrDimensionsAreNotConstructed is returned when a zero-value Dimensions is used.
var ErrDimensionsAreNotConstructed = errors.New("Dimensions must be created via NewDimensions constructor")

// VolumeM3 converts centimeter dimensions to cubic meters rounded half-up to
// six decimal places. It is pure and never fails; callers validate inputs.
func VolumeM3(widthCm, heightCm, depthCm decimal.Decimal) decimal.Decimal {
	return widthCm.Mul(heightCm).Mul(depthCm).DivRound(cubicCentimetersPerCubicMeter, VolumePrecision)
}

// VolumetricWeightKg is the dimensional weight used by air carriers,
// w*h*d/6000 rounded half-up to two decimal places.
func VolumetricWeightKg(widthCm, heightCm, depthCm decimal.Decimal) decimal.Decimal {
	return widthCm.Mul(heightCm).Mul(depthCm).DivRound(volumetricDivisor, WeightPrecision)
}

// RoundMoney rounds an amount half-up to two decimal places.
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MoneyPrecision)
}

// Dimensions is the measured size and weight of a box or an item.
// Lengths are centimeters, weight is kilograms.
type Dimensions struct {
	width  decimal.Decimal
	height decimal.Decimal
	depth  decimal.Decimal
	weight decimal.Decimal
	guard  guard.ConstructorGuard
}

// NewDimensions rounds lengths to LengthPrecision and weight to
// WeightPrecision, then validates that every length is strictly positive and
// the weight is not negative. All violations are reported together.
func NewDimensions(widthCm, heightCm, depthCm, weightKg decimal.Decimal) (Dimensions, error) {
	d := Dimensions{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		d.setLength(&d.width, "width", widthCm),
		d.setLength(&d.height, "height", heightCm),
		d.setLength(&d.depth, "depth", depthCm),
		d.setWeight(weightKg),
	); err != nil {
		return Dimensions{}, err
	}

	return d, nil
}

func (d Dimensions) Validate() error {
	return d.guard.Validate(ErrDimensionsAreNotConstructed)
}

func (d Dimensions) Width() decimal.Decimal {
	return d.width
}

func (d Dimensions) Height() decimal.Decimal {
	return d.height
}

func (d Dimensions) Depth() decimal.Decimal {
	return d.depth
}

func (d Dimensions) Weight() decimal.Decimal {
	return d.weight
}

// VolumeM3 is always derived from the three lengths.
func (d Dimensions) VolumeM3() decimal.Decimal {
	return VolumeM3(d.width, d.height, d.depth)
}

func (d Dimensions) VolumetricWeightKg() decimal.Decimal {
	return VolumetricWeightKg(d.width, d.height, d.depth)
}

// ChargeableWeightKg is the larger of the actual and the volumetric weight.
func (d Dimensions) ChargeableWeightKg() decimal.Decimal {
	return decimal.Max(d.weight.Round(WeightPrecision), d.VolumetricWeightKg())
}

func (d Dimensions) IsEqual(other Dimensions) bool {
	return d.width.Equal(other.width) &&
		d.height.Equal(other.height) &&
		d.depth.Equal(other.depth) &&
		d.weight.Equal(other.weight)
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%sx%sx%s cm, %s kg", d.width, d.height, d.depth, d.weight)
}

func (d *Dimensions) setLength(target *decimal.Decimal, name string, value decimal.Decimal) error {
	value = value.Round(LengthPrecision)
	if !value.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(
			name+" is invalid",
			fmt.Errorf("%s is not greater than 0", value),
		)
	}

	*target = value
	return nil
}

func (d *Dimensions) setWeight(value decimal.Decimal) error {
	value = value.Round(WeightPrecision)
	if value.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(
			"weight is invalid",
			fmt.Errorf("%s is negative", value),
		)
	}

	d.weight = value
	return nil
}
