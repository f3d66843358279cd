package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"forwarding/internal/adapters/out/postgres/orderrepo"
	"forwarding/internal/adapters/out/postgres/pgtest"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/order"
	"forwarding/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

var createdAt = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite verifies order persistence, including
// child rows and the optimistic version check, against a real PostgreSQL.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.BoxDTO{}, &orderrepo.LineItemDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db, "order_line_items", "order_boxes", "orders"))

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) dims(w, h, d, weight string) kernel.Dimensions {
	dims, err := kernel.NewDimensions(
		decimal.RequireFromString(w),
		decimal.RequireFromString(h),
		decimal.RequireFromString(d),
		decimal.RequireFromString(weight),
	)
	suite.Require().NoError(err)
	return dims
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), "M-1024", true, "USD", order.ShippingModeSea, createdAt)
	suite.Require().NoError(err)

	for _, d := range []kernel.Dimensions{
		suite.dims("40", "30", "20", "5.5"),
		suite.dims("100", "100", "100", "12"),
	} {
		box, boxErr := order.NewBox(kernel.NewUUID(), d)
		suite.Require().NoError(boxErr)
		suite.Require().NoError(o.AddBox(box, createdAt))
	}

	unitDims := suite.dims("10", "10", "10", "0.3")
	item, err := order.NewLineItem(kernel.NewUUID(), "T-shirt", 2, decimal.RequireFromString("49.995"), "6109.10-00", &unitDims)
	suite.Require().NoError(err)
	suite.Require().NoError(o.AddLineItem(item, createdAt))

	plain, err := order.NewLineItem(kernel.NewUUID(), "Gift card", 1, decimal.RequireFromString("10"), "", nil)
	suite.Require().NoError(err)
	suite.Require().NoError(o.AddLineItem(plain, createdAt))

	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
	suite.Equal(int64(1), testOrder.Version())
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", testOrder.ID(), testOrder)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_NotConstructedOrder_Fails() {
	err := suite.repository.Add(context.Background(), &order.Order{})

	suite.Require().ErrorIs(err, order.ErrOrderIsNotConstructed)
	suite.assertOrderCount(0)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_RestoresAggregate() {
	ctx := context.Background()
	original := suite.createTestOrder()
	suite.Require().NoError(original.ApplyRuleOutcome(order.RuleOutcome{
		HasNoMemberCode: false,
		Warnings: []order.Warning{
			order.NewMeasuredWarning(order.WarningVolumeExceeded, "volume above threshold",
				decimal.RequireFromString("1.024"), decimal.RequireFromString("1")),
			order.NewWarning(order.WarningHSCodeInvalid, "6109.10-00 is not valid"),
		},
	}, createdAt))
	suite.Require().NoError(original.RecordReferenceAmount(decimal.NewNullDecimal(decimal.RequireFromString("1499.995"))))
	suite.Require().NoError(suite.repository.Add(ctx, original))

	restored, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.True(original.IsEqual(restored))
	suite.Require().True(restored.ReferenceAmount().Valid)
	suite.True(decimal.RequireFromString("1500").Equal(restored.ReferenceAmount().Decimal),
		"reference amount %s", restored.ReferenceAmount().Decimal)
	suite.Equal("M-1024", restored.MemberCode())
	suite.Equal(order.Received, restored.Status())
	suite.Equal(order.ShippingModeSea, restored.ShippingMode())
	suite.True(original.TotalVolume().Equal(restored.TotalVolume()), "total volume %s", restored.TotalVolume())
	suite.True(decimal.RequireFromString("109.99").Equal(restored.TotalAmount()), "total amount %s", restored.TotalAmount())
	suite.Equal(int64(1), restored.Version())

	suite.Require().Len(restored.Boxes(), 2)
	suite.True(original.Boxes()[0].IsEqual(restored.Boxes()[0]), "box order is kept")
	suite.Require().Len(restored.LineItems(), 2)
	suite.Equal("61091000", restored.LineItems()[0].HSCode())
	suite.NotNil(restored.LineItems()[0].Dimensions())
	suite.Nil(restored.LineItems()[1].Dimensions())

	suite.Require().Len(restored.Warnings(), 2)
	suite.True(original.Warnings()[0].IsEqual(restored.Warnings()[0]))
	suite.True(restored.HasWarning(order.WarningHSCodeInvalid))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	retrieved, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Nil(retrieved)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ReplacesChildrenAndBumpsVersion() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	removed := testOrder.Boxes()[1].ID()
	suite.Require().NoError(testOrder.RemoveBox(removed, createdAt.Add(time.Minute)))
	suite.Require().NoError(testOrder.TransitionTo(order.Confirmed, createdAt.Add(time.Minute)))

	suite.Require().NoError(suite.repository.Update(ctx, testOrder))
	suite.Equal(int64(2), testOrder.Version())

	restored, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, restored.Status())
	suite.Len(restored.Boxes(), 1)
	suite.Equal(int64(2), restored.Version())

	var boxRows int64
	suite.Require().NoError(suite.db.Model(&orderrepo.BoxDTO{}).Where("id = ?", removed.Bytes()).Count(&boxRows).Error)
	suite.Zero(boxRows)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsConcurrencyConflict() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	first, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.TransitionTo(order.Confirmed, createdAt))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.Cancel(createdAt))
	err = suite.repository.Update(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrConcurrencyConflict)

	stored, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, stored.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsNotFoundError() {
	err := suite.repository.Update(context.Background(), suite.createTestOrder())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
