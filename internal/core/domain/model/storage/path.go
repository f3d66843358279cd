package storage

import (
	"fmt"
	"slices"
	"strings"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
)

// PathSeparator joins location codes in an ancestor path.
const PathSeparator = " > "

// maxDepth bounds a traversal over corrupted parent links.
const maxDepth = 64

// ParentLookup resolves a location by id. Implementations usually wrap a
// repository or an in-memory index.
type ParentLookup func(id kernel.UUID) (*Location, error)

// Ancestors returns the chain from the root down to start, inclusive.
// A cycle in the parent links is reported as an invalid value.
func Ancestors(start *Location, lookup ParentLookup) ([]*Location, error) {
	if err := start.Validate(); err != nil {
		return nil, err
	}

	chain := []*Location{start}
	seen := map[string]struct{}{start.ID().String(): {}}
	current := start

	for current.ParentID() != nil {
		parentID := *current.ParentID()
		if _, ok := seen[parentID.String()]; ok || len(chain) >= maxDepth {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"location hierarchy is invalid",
				fmt.Errorf("cycle detected at %s", parentID),
			)
		}

		parent, err := lookup(parentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, errs.NewObjectNotFoundError("parentID", parentID)
		}

		seen[parentID.String()] = struct{}{}
		chain = append(chain, parent)
		current = parent
	}

	slices.Reverse(chain)
	return chain, nil
}

// Path renders the ancestor chain as "WH > ZONE-A > RACK-3 > BIN-2".
func Path(start *Location, lookup ParentLookup) (string, error) {
	chain, err := Ancestors(start, lookup)
	if err != nil {
		return "", err
	}

	codes := make([]string, 0, len(chain))
	for _, l := range chain {
		codes = append(codes, l.Code())
	}
	return strings.Join(codes, PathSeparator), nil
}

// IndexLookup returns a ParentLookup over an in-memory set of locations.
func IndexLookup(locations []*Location) ParentLookup {
	index := make(map[string]*Location, len(locations))
	for _, l := range locations {
		index[l.ID().String()] = l
	}
	return func(id kernel.UUID) (*Location, error) {
		if l, ok := index[id.String()]; ok {
			return l, nil
		}
		return nil, errs.NewObjectNotFoundError("locationID", id)
	}
}
