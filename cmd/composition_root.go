package cmd

import (
	"net/http"
	"time"

	"forwarding/internal/adapters/out/postgres"
	"forwarding/internal/adapters/out/postgres/settingsrepo"
	"forwarding/internal/adapters/out/validation"
	"forwarding/internal/core/application/usecases/commands"
	"forwarding/internal/core/application/usecases/queries"
	"forwarding/internal/core/domain/services"
	"forwarding/internal/core/ports"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	settings   *settingsrepo.GormRuleSettingsRepository
	rules      commands.RuleEvaluator
	notifier   ports.Notifier
	clock      commands.Clock
	logger     *zap.Logger
}

// NewCompositionRoot wires adapters into handlers. thresholds are the
// configured rule defaults; notifier receives order events.
func NewCompositionRoot(
	configs Config,
	gormDB *gorm.DB,
	thresholds services.Thresholds,
	notifier ports.Notifier,
	logger *zap.Logger,
) (CompositionRoot, error) {
	var authority validation.Authority
	if configs.ValidationURL != "" {
		a, err := validation.NewHTTPAuthority(configs.ValidationURL, &http.Client{})
		if err != nil {
			return CompositionRoot{}, err
		}
		authority = a
	}
	gateway := validation.NewGateway(authority, configs.ValidationTimeout, logger)

	settings := settingsrepo.NewGormRuleSettingsRepository(gormDB)

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, configs.DBLockTimeout),
		settings:   settings,
		rules:      commands.NewRuleEvaluator(services.NewRuleEngine(gateway), settings, thresholds),
		notifier:   notifier,
		clock:      func() time.Time { return time.Now().UTC() },
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) storageUoWFactory() commands.StorageUoWFactory {
	return FuncStorageUoWFactory(func() commands.StorageUoW {
		return c.uowFactory.Create()
	})
}

// Orders

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.rules, c.notifier, c.clock)
}

func (c *CompositionRoot) CreateEvaluateOrderRulesCommandHandler() commands.EvaluateOrderRulesCommandHandler {
	return commands.NewEvaluateOrderRulesCommandHandler(c.orderUoWFactory(), c.rules, c.notifier, c.clock)
}

func (c *CompositionRoot) CreateEditOrderBoxCommandHandler() commands.EditOrderBoxCommandHandler {
	return commands.NewEditOrderBoxCommandHandler(c.orderUoWFactory(), c.rules, c.notifier, c.clock)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory(), c.notifier, c.clock)
}

func (c *CompositionRoot) CreateUpdateRuleSettingsCommandHandler() commands.UpdateRuleSettingsCommandHandler {
	return commands.NewUpdateRuleSettingsCommandHandler(c.settings)
}

// Storage administration

func (c *CompositionRoot) CreateCreateStorageLocationCommandHandler() commands.CreateStorageLocationCommandHandler {
	return commands.NewCreateStorageLocationCommandHandler(c.storageUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateChangeStorageLocationStatusCommandHandler() commands.ChangeStorageLocationStatusCommandHandler {
	return commands.NewChangeStorageLocationStatusCommandHandler(c.storageUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateDeleteStorageLocationCommandHandler() commands.DeleteStorageLocationCommandHandler {
	return commands.NewDeleteStorageLocationCommandHandler(c.storageUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateReserveStorageLocationCommandHandler() commands.ReserveStorageLocationCommandHandler {
	return commands.NewReserveStorageLocationCommandHandler(c.storageUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateCancelStorageReservationCommandHandler() commands.CancelStorageReservationCommandHandler {
	return commands.NewCancelStorageReservationCommandHandler(c.storageUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateReleaseExpiredReservationsCommandHandler() commands.ReleaseExpiredReservationsCommandHandler {
	return commands.NewReleaseExpiredReservationsCommandHandler(c.storageUoWFactory(), c.clock)
}

// Item tracking

func (c *CompositionRoot) CreateStoreItemCommandHandler() commands.StoreItemCommandHandler {
	return commands.NewStoreItemCommandHandler(c.storageUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateMoveItemCommandHandler() commands.MoveItemCommandHandler {
	return commands.NewMoveItemCommandHandler(c.storageUoWFactory(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateReleaseItemCommandHandler() commands.ReleaseItemCommandHandler {
	return commands.NewReleaseItemCommandHandler(c.storageUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateSchedulePickupCommandHandler() commands.SchedulePickupCommandHandler {
	return commands.NewSchedulePickupCommandHandler(c.storageUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreatePickupItemCommandHandler() commands.PickupItemCommandHandler {
	return commands.NewPickupItemCommandHandler(c.storageUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateItemAlertCommandHandler() commands.ItemAlertCommandHandler {
	return commands.NewItemAlertCommandHandler(c.storageUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateBulkScanCommandHandler() commands.BulkScanCommandHandler {
	return commands.NewBulkScanCommandHandler(c.storageUoWFactory(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateFlagOverdueItemsCommandHandler() commands.FlagOverdueItemsCommandHandler {
	return commands.NewFlagOverdueItemsCommandHandler(c.storageUoWFactory(), c.clock)
}

// Queries

func (c *CompositionRoot) CreateGetStorageUtilizationQueryHandler() queries.GetStorageUtilizationQueryHandler {
	return queries.NewGetStorageUtilizationQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetLocationPathQueryHandler() queries.GetLocationPathQueryHandler {
	return queries.NewGetLocationPathQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUrgentItemsQueryHandler() queries.GetUrgentItemsQueryHandler {
	return queries.NewGetUrgentItemsQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncStorageUoWFactory func() commands.StorageUoW

func (f FuncStorageUoWFactory) Create() commands.StorageUoW {
	return f()
}
