package commands

import (
	"errors"
	"strings"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
	"forwarding/internal/pkg/guard"
)

var ErrBulkScanCommandIsNotConstructed = errors.New(
	"BulkScanCommand must be created via NewBulkScanCommand constructor",
)

const (
	DefaultBulkScanParallelism = 4
	maxBulkScanSize            = 1000
)

// Scan is one barcode read: the unit's location record seen at a location.
type Scan struct {
	RecordID   kernel.UUID
	LocationID kernel.UUID
}

// BulkScanCommand carries a batch of warehouse scans. Each scan is applied on
// its own; one failing scan does not stop the others.
type BulkScanCommand struct {
	scans       []Scan
	scannedBy   string
	parallelism int

	guard guard.ConstructorGuard
}

// NewBulkScanCommand uses DefaultBulkScanParallelism when parallelism is not
// positive.
func NewBulkScanCommand(scans []Scan, scannedBy string, parallelism int) (BulkScanCommand, error) {
	if len(scans) == 0 {
		return BulkScanCommand{}, errs.NewValueIsRequiredError("scans")
	}
	if len(scans) > maxBulkScanSize {
		return BulkScanCommand{}, errs.NewValueIsOutOfRangeError("scans", len(scans), 1, maxBulkScanSize)
	}

	scannedBy = strings.TrimSpace(scannedBy)
	if scannedBy == "" {
		return BulkScanCommand{}, errs.NewValueIsRequiredError("scannedBy")
	}

	if parallelism <= 0 {
		parallelism = DefaultBulkScanParallelism
	}

	return BulkScanCommand{
		scans:       scans,
		scannedBy:   scannedBy,
		parallelism: parallelism,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c BulkScanCommand) Validate() error {
	return c.guard.Validate(ErrBulkScanCommandIsNotConstructed)
}

func (c BulkScanCommand) Scans() []Scan     { return c.scans }
func (c BulkScanCommand) ScannedBy() string { return c.scannedBy }
func (c BulkScanCommand) Parallelism() int  { return c.parallelism }
