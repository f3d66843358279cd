package commands

import (
	"context"
	"errors"
	"time"

	"forwarding/internal/core/domain/model/tracking"
	"forwarding/internal/pkg/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type ScanOutcome string

const (
	// ScanConfirmed means the unit was already recorded at the scanned location.
	ScanConfirmed ScanOutcome = "confirmed"
	ScanMoved     ScanOutcome = "moved"
	ScanFailed    ScanOutcome = "failed"
)

type ScanResult struct {
	Scan    Scan
	Outcome ScanOutcome
	Err     error
}

// BulkScanResult keeps results in the order of the submitted scans. A moved
// scan can still carry ErrSourceLoadNotReleased; it counts as succeeded.
type BulkScanResult struct {
	Results   []ScanResult
	Succeeded int
	Failed    int
}

// BulkScanCommandHandler applies scans with bounded parallelism. A scan at the
// recorded location confirms it; a scan elsewhere moves the unit there.
type BulkScanCommandHandler struct {
	uowFactory StorageUoWFactory
	clock      Clock
	logger     *zap.Logger
}

func NewBulkScanCommandHandler(uowFactory StorageUoWFactory, clock Clock, logger *zap.Logger) BulkScanCommandHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return BulkScanCommandHandler{uowFactory: uowFactory, clock: clock, logger: logger}
}

// Handle only fails for an invalid command. Per-scan errors are reported in
// the result.
func (h BulkScanCommandHandler) Handle(ctx context.Context, cmd BulkScanCommand) (BulkScanResult, error) {
	if err := cmd.Validate(); err != nil {
		return BulkScanResult{}, err
	}

	now := h.clock.now()
	results := make([]ScanResult, len(cmd.Scans()))

	var g errgroup.Group
	g.SetLimit(cmd.Parallelism())

	for i, scan := range cmd.Scans() {
		g.Go(func() error {
			outcome, err := h.apply(ctx, scan, cmd.ScannedBy(), now)
			results[i] = ScanResult{Scan: scan, Outcome: outcome, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	summary := BulkScanResult{Results: results}
	for _, r := range results {
		metrics.BulkScanUnitsTotal.WithLabelValues(string(r.Outcome)).Inc()
		if r.Outcome == ScanFailed {
			summary.Failed++
			continue
		}
		summary.Succeeded++
	}

	return summary, nil
}

func (h BulkScanCommandHandler) apply(ctx context.Context, scan Scan, scannedBy string, now time.Time) (ScanOutcome, error) {
	if err := ctx.Err(); err != nil {
		return ScanFailed, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ScanFailed, err
	}
	record, err := uow.ItemLocationRepository().Get(ctx, scan.RecordID)
	_ = uow.Rollback(ctx)
	if err != nil {
		return ScanFailed, err
	}

	if record.LocationID().IsEqual(scan.LocationID) && record.Status().IsAtLocation() {
		return ScanConfirmed, nil
	}

	_, err = moveItem(ctx, h.uowFactory, h.logger, scan.RecordID, scan.LocationID, scannedBy, tracking.MethodBulkScan, now)
	switch {
	case err == nil:
		return ScanMoved, nil
	case errors.Is(err, ErrSourceLoadNotReleased):
		return ScanMoved, err
	default:
		return ScanFailed, err
	}
}
