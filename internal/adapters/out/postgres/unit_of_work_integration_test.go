package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "forwarding/internal/adapters/out/postgres"
	"forwarding/internal/adapters/out/postgres/pgtest"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/order"
	"forwarding/internal/core/domain/model/storage"
	"forwarding/internal/core/domain/model/tracking"
	"forwarding/internal/core/ports"
	"forwarding/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

var now = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based Unit of Work implementation with a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite starts PostgreSQL and migrates every table.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db, 300*time.Millisecond)
}

// SetupTest truncates all tables to prevent test interference.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db,
		"item_locations", "storage_locations", "order_line_items", "order_boxes", "orders", "rule_settings"))
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.StorageLocationRepository())
	suite.NotNil(uow1.ItemLocationRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

// TestUnitOfWork_StoreItemCommitsBothAggregates mirrors what storing an item
// does: lock the location, add load, insert the record, commit.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_StoreItemCommitsBothAggregates() {
	ctx := context.Background()
	bin := suite.addBin("BIN-1", "100")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	locked, err := uow.StorageLocationRepository().GetForUpdate(ctx, bin.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(locked.AddLoad(decimal.NewFromInt(30), decimal.RequireFromString("0.1"), 1, now))
	suite.Require().NoError(uow.StorageLocationRepository().Update(ctx, locked))

	record := suite.newRecord(locked)
	suite.Require().NoError(uow.ItemLocationRepository().Add(ctx, record))
	suite.Require().NoError(uow.Commit(ctx))

	reader := suite.factory.Create()
	stored, err := reader.StorageLocationRepository().Get(ctx, bin.ID())
	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(30).Equal(stored.CurrentWeight()))
	suite.Equal(storage.StatusOccupied, stored.Status())

	count, err := reader.ItemLocationRepository().CountAtLocation(ctx, bin.ID())
	suite.Require().NoError(err)
	suite.Equal(int64(1), count)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	bin := suite.addBin("BIN-1", "100")
	testOrder := suite.newOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	locked, err := uow.StorageLocationRepository().GetForUpdate(ctx, bin.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(locked.AddLoad(decimal.NewFromInt(50), decimal.Zero, 1, now))
	suite.Require().NoError(uow.StorageLocationRepository().Update(ctx, locked))

	suite.Require().NoError(uow.Rollback(ctx))

	reader := suite.factory.Create()
	_, err = reader.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound, "Order should not exist after rollback")

	stored, err := reader.StorageLocationRepository().Get(ctx, bin.ID())
	suite.Require().NoError(err)
	suite.True(stored.IsEmpty(), "Load should not be kept after rollback")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()
	order1 := suite.newOrder()
	order2 := suite.newOrder()

	suite.Require().NoError(uow1.Begin(ctx))
	suite.Require().NoError(uow2.Begin(ctx))
	suite.Require().NoError(uow1.OrderRepository().Add(ctx, order1))
	suite.Require().NoError(uow2.OrderRepository().Add(ctx, order2))

	_, err := uow1.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err, "UOW1 should not see order2")
	_, err = uow2.OrderRepository().Get(ctx, order1.ID())
	suite.Require().Error(err, "UOW2 should not see order1")

	suite.Require().NoError(uow1.Commit(ctx))
	suite.Require().NoError(uow2.Rollback(ctx))

	reader := suite.factory.Create()
	_, err = reader.OrderRepository().Get(ctx, order1.ID())
	suite.Require().NoError(err, "Order1 should persist after commit")
	_, err = reader.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err, "Order2 should not persist after rollback")
}

// TestUnitOfWork_ConcurrentLoadIsSerialized checks that a second writer
// cannot lock a location another transaction holds and gets a conflict
// instead of overwriting its counters.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ConcurrentLoadIsSerialized() {
	ctx := context.Background()
	bin := suite.addBin("BIN-1", "100")

	holder := suite.factory.Create()
	suite.Require().NoError(holder.Begin(ctx))
	defer func() { _ = holder.Rollback(ctx) }()
	_, err := holder.StorageLocationRepository().GetForUpdate(ctx, bin.ID())
	suite.Require().NoError(err)

	waiter := suite.factory.Create()
	suite.Require().NoError(waiter.Begin(ctx))
	defer func() { _ = waiter.Rollback(ctx) }()

	started := time.Now()
	_, err = waiter.StorageLocationRepository().GetForUpdate(ctx, bin.ID())
	suite.Require().ErrorIs(err, errs.ErrConcurrencyConflict)
	suite.Less(time.Since(started), 5*time.Second, "lock wait is bounded")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()
	testOrder := suite.newOrder()

	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	retrieved, err := suite.factory.Create().OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.True(testOrder.IsEqual(retrieved))
}

func (suite *UnitOfWorkIntegrationTestSuite) addBin(code, maxWeight string) *storage.Location {
	bin, err := storage.NewLocation(kernel.NewUUID(), code, "", storage.TypeBin, nil,
		decimal.NewNullDecimal(decimal.RequireFromString(maxWeight)), decimal.NullDecimal{}, now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().StorageLocationRepository().Add(context.Background(), bin))
	return bin
}

func (suite *UnitOfWorkIntegrationTestSuite) newRecord(location *storage.Location) *tracking.Record {
	load := tracking.Load{Weight: decimal.NewFromInt(30), Volume: decimal.RequireFromString("0.1"), Count: 1}
	record, err := tracking.NewRecord(kernel.NewUUID(), tracking.Unit{OrderID: kernel.NewUUID()}, load,
		location.ID(), location.Code(), now)
	suite.Require().NoError(err)
	suite.Require().NoError(record.Arrive("clerk", tracking.MethodManual, now))
	return record
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder() *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), "M-1", true, "USD", order.ShippingModeSea, now)
	suite.Require().NoError(err)
	return o
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
