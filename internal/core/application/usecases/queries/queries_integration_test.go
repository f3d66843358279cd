package queries_test

import (
	"context"
	"testing"
	"time"

	"forwarding/internal/adapters/out/postgres/pgtest"
	"forwarding/internal/adapters/out/postgres/storagerepo"
	"forwarding/internal/adapters/out/postgres/trackingrepo"
	"forwarding/internal/core/application/usecases/queries"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/storage"
	"forwarding/internal/core/domain/model/tracking"
	"forwarding/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

var now = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

// WarehouseQueriesTestSuite seeds a small tree:
//
//	WH-1 > Z-A > S-01 (bins B-01 max 100kg, B-02 max 50kg)
//	WH-2 > B-09 (unbounded)
type WarehouseQueriesTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	locations *storagerepo.GormLocationRepository
	records   *trackingrepo.GormRecordRepository

	wh1, zone, shelf, bin1, bin2, wh2, bin9 *storage.Location
}

func (suite *WarehouseQueriesTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&storagerepo.LocationDTO{}))
	suite.Require().NoError(trackingrepo.Migrate(db))
	suite.locations = storagerepo.NewGormLocationRepository(db, noopTracker{})
	suite.records = trackingrepo.NewGormRecordRepository(db, noopTracker{})
}

func (suite *WarehouseQueriesTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *WarehouseQueriesTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db, "item_locations", "storage_locations"))

	suite.wh1 = suite.add("WH-1", storage.TypeWarehouse, nil, "")
	suite.zone = suite.add("Z-A", storage.TypeZone, suite.wh1, "")
	suite.shelf = suite.add("S-01", storage.TypeShelf, suite.zone, "")
	suite.bin1 = suite.add("B-01", storage.TypeBin, suite.shelf, "100")
	suite.bin2 = suite.add("B-02", storage.TypeBin, suite.shelf, "50")
	suite.wh2 = suite.add("WH-2", storage.TypeWarehouse, nil, "")
	suite.bin9 = suite.add("B-09", storage.TypeBin, suite.wh2, "")
}

func (suite *WarehouseQueriesTestSuite) add(code string, t storage.LocationType, parent *storage.Location, maxWeight string) *storage.Location {
	var parentID *kernel.UUID
	if parent != nil {
		id := parent.ID()
		parentID = &id
	}
	bound := decimal.NullDecimal{}
	if maxWeight != "" {
		bound = decimal.NewNullDecimal(decimal.RequireFromString(maxWeight))
	}

	l, err := storage.NewLocation(kernel.NewUUID(), code, "", t, parentID, bound, decimal.NullDecimal{}, now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.locations.Add(context.Background(), l))
	return l
}

func (suite *WarehouseQueriesTestSuite) load(l *storage.Location, weight string, count int) {
	suite.Require().NoError(l.AddLoad(decimal.RequireFromString(weight), decimal.Zero, count, now))
	suite.Require().NoError(suite.locations.Update(context.Background(), l))
}

func (suite *WarehouseQueriesTestSuite) store(l *storage.Location, arrivedAt time.Time) *tracking.Record {
	load := tracking.Load{Weight: decimal.NewFromInt(1), Volume: decimal.Zero, Count: 1}
	r, err := tracking.NewRecord(kernel.NewUUID(), tracking.Unit{OrderID: kernel.NewUUID()}, load, l.ID(), l.Code(), arrivedAt)
	suite.Require().NoError(err)
	suite.Require().NoError(r.Arrive("clerk", tracking.MethodScan, arrivedAt))
	suite.Require().NoError(suite.records.Add(context.Background(), r))
	return r
}

func (suite *WarehouseQueriesTestSuite) TestStorageUtilization_Subtree_SumsLeavesOnly() {
	suite.load(suite.bin1, "60", 3)
	suite.load(suite.bin2, "15", 1)
	suite.load(suite.bin9, "500", 9)

	rootID := suite.wh1.ID()
	query, err := queries.NewGetStorageUtilizationQuery(&rootID)
	suite.Require().NoError(err)

	u, err := queries.NewGetStorageUtilizationQueryHandler(suite.db).Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Equal(2, u.Locations)
	suite.Equal(4, u.ItemCount)
	suite.True(decimal.NewFromInt(75).Equal(u.CurrentWeight), "current weight %s", u.CurrentWeight)
	suite.True(decimal.NewFromInt(150).Equal(u.MaxWeight), "max weight %s", u.MaxWeight)
	suite.True(decimal.NewFromInt(50).Equal(u.WeightPercent), "weight percent %s", u.WeightPercent)
}

func (suite *WarehouseQueriesTestSuite) TestStorageUtilization_AllWarehouses() {
	suite.load(suite.bin9, "500", 9)

	query, err := queries.NewGetStorageUtilizationQuery(nil)
	suite.Require().NoError(err)

	u, err := queries.NewGetStorageUtilizationQueryHandler(suite.db).Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Equal(3, u.Locations)
	suite.Equal(9, u.ItemCount)
	suite.True(decimal.NewFromInt(500).Equal(u.CurrentWeight))
	suite.True(u.WeightPercent.IsZero(), "unbounded usage is not part of the percentage")
	suite.Equal(2, u.AvailableCount)
}

func (suite *WarehouseQueriesTestSuite) TestStorageUtilization_UnknownRoot_ReturnsNotFound() {
	rootID := kernel.NewUUID()
	query, err := queries.NewGetStorageUtilizationQuery(&rootID)
	suite.Require().NoError(err)

	_, err = queries.NewGetStorageUtilizationQueryHandler(suite.db).Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *WarehouseQueriesTestSuite) TestLocationPath_RootToLeaf() {
	query, err := queries.NewGetLocationPathQuery(suite.bin2.ID())
	suite.Require().NoError(err)

	result, err := queries.NewGetLocationPathQueryHandler(suite.db).Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Equal("B-02", result.Code)
	suite.Equal([]string{"WH-1", "Z-A", "S-01", "B-02"}, result.Codes)
	suite.Equal("WH-1"+storage.PathSeparator+"Z-A"+storage.PathSeparator+"S-01"+storage.PathSeparator+"B-02", result.Path)
}

func (suite *WarehouseQueriesTestSuite) TestLocationPath_Root() {
	query, err := queries.NewGetLocationPathQuery(suite.wh2.ID())
	suite.Require().NoError(err)

	result, err := queries.NewGetLocationPathQueryHandler(suite.db).Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Equal([]string{"WH-2"}, result.Codes)
}

func (suite *WarehouseQueriesTestSuite) TestLocationPath_UnknownLocation_ReturnsNotFound() {
	query, err := queries.NewGetLocationPathQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = queries.NewGetLocationPathQueryHandler(suite.db).Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *WarehouseQueriesTestSuite) TestUrgentItems() {
	ctx := context.Background()
	calm := suite.store(suite.bin1, now)
	suite.Require().NoError(calm.SchedulePickup(now.Add(48*time.Hour), now))
	suite.Require().NoError(suite.records.Update(ctx, calm))

	overdue := suite.store(suite.bin1, now)
	suite.Require().NoError(overdue.SchedulePickup(now.Add(time.Hour), now))
	suite.Require().NoError(suite.records.Update(ctx, overdue))

	damaged := suite.store(suite.bin2, now)
	suite.Require().NoError(damaged.MarkDamaged("crushed corner", now))
	suite.Require().NoError(suite.records.Update(ctx, damaged))

	asOf := now.Add(5 * time.Hour)
	result, err := queries.NewGetUrgentItemsQueryHandler(suite.db).Handle(ctx, queries.NewGetUrgentItemsQuery(asOf))
	suite.Require().NoError(err)
	suite.Require().Len(result, 2)

	suite.True(damaged.ID().IsEqual(result[0].RecordID), "alerted units come first")
	suite.Equal(tracking.StatusDamaged, result[0].Status)
	suite.Equal("crushed corner", result[0].AlertReason)
	suite.False(result[0].Overdue)

	suite.True(overdue.ID().IsEqual(result[1].RecordID))
	suite.True(result[1].Overdue)
	suite.Equal("B-01", result[1].LocationCode)
	suite.Equal(int64(5), result[1].StorageDurationHours)
}

func (suite *WarehouseQueriesTestSuite) TestUrgentItems_InvalidQuery_ReturnsError() {
	_, err := queries.NewGetUrgentItemsQueryHandler(suite.db).Handle(context.Background(), queries.GetUrgentItemsQuery{})

	suite.Require().ErrorIs(err, queries.ErrGetUrgentItemsQueryIsNotConstructed)
}

func TestWarehouseQueriesTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(WarehouseQueriesTestSuite))
}
