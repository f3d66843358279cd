package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/tracking"
	"forwarding/internal/pkg/metrics"

	"go.uber.org/zap"
)

// ErrSourceLoadNotReleased is returned together with the moved record when
// the move committed but the source location could not be unloaded. The
// move must not be repeated; the source load needs a manual correction.
var ErrSourceLoadNotReleased = errors.New("item moved but source location still carries its load")

// MoveItemCommandHandler moves a unit in two steps. The first transaction
// locks the target, adds the load there and re-points the record. The second
// transaction locks the source and removes the load. If the second step
// fails the source keeps the load, which over-reports usage but never lets a
// location overflow. The record is then returned with ErrSourceLoadNotReleased.
type MoveItemCommandHandler struct {
	uowFactory StorageUoWFactory
	clock      Clock
	logger     *zap.Logger
}

func NewMoveItemCommandHandler(uowFactory StorageUoWFactory, clock Clock, logger *zap.Logger) MoveItemCommandHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return MoveItemCommandHandler{uowFactory: uowFactory, clock: clock, logger: logger}
}

func (h MoveItemCommandHandler) Handle(ctx context.Context, cmd MoveItemCommand) (*tracking.Record, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return moveItem(ctx, h.uowFactory, h.logger, cmd.RecordID(), cmd.TargetLocationID(), cmd.MovedBy(), cmd.Method(), h.clock.now())
}

func moveItem(
	ctx context.Context,
	uowFactory StorageUoWFactory,
	logger *zap.Logger,
	recordID, targetID kernel.UUID,
	movedBy string,
	method tracking.Method,
	now time.Time,
) (*tracking.Record, error) {
	record, sourceID, err := arriveAtTarget(ctx, uowFactory, recordID, targetID, movedBy, method, now)
	if err != nil {
		return nil, err
	}

	if err = releaseLoad(ctx, uowFactory, sourceID, record.Load(), now); err != nil {
		metrics.SourceReleaseFailuresTotal.Inc()
		logger.Error("item moved but source load was not released",
			zap.String("record_id", record.ID().String()),
			zap.String("source_location_id", sourceID.String()),
			zap.String("target_location_id", targetID.String()),
			zap.Error(err),
		)
		return record, fmt.Errorf("%w: location %s: %w", ErrSourceLoadNotReleased, sourceID, err)
	}

	return record, nil
}

func arriveAtTarget(
	ctx context.Context,
	uowFactory StorageUoWFactory,
	recordID, targetID kernel.UUID,
	movedBy string,
	method tracking.Method,
	now time.Time,
) (*tracking.Record, kernel.UUID, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	locations := uow.StorageLocationRepository()
	records := uow.ItemLocationRepository()

	target, err := locations.GetForUpdate(ctx, targetID)
	if err != nil {
		return nil, kernel.UUID{}, err
	}

	record, err := records.Get(ctx, recordID)
	if err != nil {
		return nil, kernel.UUID{}, err
	}
	sourceID := record.LocationID()

	if err = record.MoveTo(target.ID(), target.Code(), movedBy, method, now); err != nil {
		return nil, kernel.UUID{}, err
	}
	if err = addLoad(target, movedBy, record.Load(), now); err != nil {
		return nil, kernel.UUID{}, err
	}

	if err = locations.Update(ctx, target); err != nil {
		return nil, kernel.UUID{}, err
	}
	if err = records.Update(ctx, record); err != nil {
		return nil, kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, kernel.UUID{}, err
	}

	return record, sourceID, nil
}
