// Package kernel provides the shared domain primitives of the forwarding core.
//
// The package includes:
//   - UUID: a value object for identifiers, rejecting the nil UUID
//   - Dimensions: measured box or item size in centimeters and weight in kilograms
//   - VolumeM3, VolumetricWeightKg: pure calculators with half-up rounding
//   - RoundMoney: two-place half-up rounding for monetary amounts
//
// All quantities are shopspring decimals so that the same inputs always
// produce the same digits. Binary floating point is never used for volume,
// weight or money.
package kernel
