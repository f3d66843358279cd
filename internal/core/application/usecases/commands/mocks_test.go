package commands_test

import (
	"context"
	"testing"
	"time"

	"forwarding/internal/core/application/usecases/commands"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/order"
	"forwarding/internal/core/domain/model/storage"
	"forwarding/internal/core/domain/model/tracking"
	"forwarding/internal/core/domain/services"
	"forwarding/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func fixedClock() commands.Clock {
	return func() time.Time { return testNow }
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockStorageLocationRepository struct{ mock.Mock }

func (m *MockStorageLocationRepository) Add(ctx context.Context, l *storage.Location) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockStorageLocationRepository) Update(ctx context.Context, l *storage.Location) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockStorageLocationRepository) Get(ctx context.Context, id kernel.UUID) (*storage.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Location), args.Error(1)
}

func (m *MockStorageLocationRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*storage.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Location), args.Error(1)
}

func (m *MockStorageLocationRepository) GetByCode(ctx context.Context, code string) (*storage.Location, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Location), args.Error(1)
}

func (m *MockStorageLocationRepository) HasChildren(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorageLocationRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStorageLocationRepository) GetAllWithExpiredReservations(
	ctx context.Context,
	now time.Time,
) ([]*storage.Location, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*storage.Location), args.Error(1)
}

type MockItemLocationRepository struct{ mock.Mock }

func (m *MockItemLocationRepository) Add(ctx context.Context, r *tracking.Record) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockItemLocationRepository) Update(ctx context.Context, r *tracking.Record) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockItemLocationRepository) Get(ctx context.Context, id kernel.UUID) (*tracking.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tracking.Record), args.Error(1)
}

func (m *MockItemLocationRepository) GetCurrentForUnit(ctx context.Context, unit tracking.Unit) (*tracking.Record, error) {
	args := m.Called(ctx, unit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tracking.Record), args.Error(1)
}

func (m *MockItemLocationRepository) GetAllStoredWithPlannedMoveBefore(
	ctx context.Context,
	t time.Time,
) ([]*tracking.Record, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tracking.Record), args.Error(1)
}

func (m *MockItemLocationRepository) CountAtLocation(ctx context.Context, locationID kernel.UUID) (int64, error) {
	args := m.Called(ctx, locationID)
	return args.Get(0).(int64), args.Error(1)
}

type MockStorageUoW struct{ mock.Mock }

func (m *MockStorageUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStorageUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStorageUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStorageUoW) StorageLocationRepository() ports.StorageLocationRepository {
	args := m.Called()
	return args.Get(0).(ports.StorageLocationRepository)
}

func (m *MockStorageUoW) ItemLocationRepository() ports.ItemLocationRepository {
	args := m.Called()
	return args.Get(0).(ports.ItemLocationRepository)
}

type MockStorageUoWFactory struct{ mock.Mock }

func (m *MockStorageUoWFactory) Create() commands.StorageUoW {
	args := m.Called()
	return args.Get(0).(commands.StorageUoW)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, n ports.Notification) {
	m.Called(ctx, n)
}

type MockRuleSettingsRepository struct{ mock.Mock }

func (m *MockRuleSettingsRepository) Get(ctx context.Context, defaults services.Thresholds) (services.Thresholds, error) {
	args := m.Called(ctx, defaults)
	return args.Get(0).(services.Thresholds), args.Error(1)
}

func (m *MockRuleSettingsRepository) Save(ctx context.Context, thresholds services.Thresholds) error {
	args := m.Called(ctx, thresholds)
	return args.Error(0)
}

// storageTx wires a storage unit of work whose transaction methods always
// succeed. Repository calls are left to the test.
func storageTx(locations *MockStorageLocationRepository, records *MockItemLocationRepository) *MockStorageUoWFactory {
	uow := new(MockStorageUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Commit", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	uow.On("StorageLocationRepository").Return(locations)
	uow.On("ItemLocationRepository").Return(records)

	factory := new(MockStorageUoWFactory)
	factory.On("Create").Return(uow)
	return factory
}

// rulesWithoutGateway evaluates with default thresholds and no code validator.
func rulesWithoutGateway() commands.RuleEvaluator {
	return commands.NewRuleEvaluator(services.NewRuleEngine(nil), nil, services.DefaultThresholds())
}

func servicesDefaultsWithVolume(t *testing.T, volume string) services.Thresholds {
	t.Helper()
	thresholds := services.DefaultThresholds()
	thresholds.VolumeM3 = decimal.RequireFromString(volume)
	return thresholds
}
