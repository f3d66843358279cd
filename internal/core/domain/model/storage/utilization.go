package storage

import (
	"github.com/shopspring/decimal"
)

// Utilization is capacity usage summed over a set of leaf locations.
// Only bounded dimensions contribute to the max and used totals of that
// dimension; item counts and unbounded usage are still reported.
type Utilization struct {
	Locations      int
	ItemCount      int
	CurrentWeight  decimal.Decimal
	CurrentVolume  decimal.Decimal
	BoundedWeight  decimal.Decimal
	MaxWeight      decimal.Decimal
	BoundedVolume  decimal.Decimal
	MaxVolume      decimal.Decimal
	WeightPercent  decimal.Decimal
	VolumePercent  decimal.Decimal
	AvailableCount int
}

// Leaves returns the locations of the set that are nobody's parent within it.
func Leaves(locations []*Location) []*Location {
	parents := make(map[string]struct{}, len(locations))
	for _, l := range locations {
		if p := l.ParentID(); p != nil {
			parents[p.String()] = struct{}{}
		}
	}

	leaves := make([]*Location, 0, len(locations))
	for _, l := range locations {
		if _, isParent := parents[l.ID().String()]; !isParent {
			leaves = append(leaves, l)
		}
	}
	return leaves
}

// AggregateUtilization sums per-node usage of leaf locations. Inner nodes
// carry no roll-up, so callers pass Leaves(...) of a subtree. Retired
// locations are skipped.
func AggregateUtilization(leaves []*Location) Utilization {
	u := Utilization{
		CurrentWeight: decimal.Zero,
		CurrentVolume: decimal.Zero,
		BoundedWeight: decimal.Zero,
		MaxWeight:     decimal.Zero,
		BoundedVolume: decimal.Zero,
		MaxVolume:     decimal.Zero,
		WeightPercent: decimal.Zero,
		VolumePercent: decimal.Zero,
	}

	for _, l := range leaves {
		if l.Status() == StatusRetired {
			continue
		}
		u.Locations++
		u.ItemCount += l.CurrentItemCount()
		u.CurrentWeight = u.CurrentWeight.Add(l.CurrentWeight())
		u.CurrentVolume = u.CurrentVolume.Add(l.CurrentVolume())
		if l.MaxWeight().Valid {
			u.BoundedWeight = u.BoundedWeight.Add(l.CurrentWeight())
			u.MaxWeight = u.MaxWeight.Add(l.MaxWeight().Decimal)
		}
		if l.MaxVolume().Valid {
			u.BoundedVolume = u.BoundedVolume.Add(l.CurrentVolume())
			u.MaxVolume = u.MaxVolume.Add(l.MaxVolume().Decimal)
		}
		if l.Status() == StatusAvailable {
			u.AvailableCount++
		}
	}

	if u.MaxWeight.IsPositive() {
		u.WeightPercent = u.BoundedWeight.Mul(hundred).DivRound(u.MaxWeight, 2)
	}
	if u.MaxVolume.IsPositive() {
		u.VolumePercent = u.BoundedVolume.Mul(hundred).DivRound(u.MaxVolume, 2)
	}
	return u
}
