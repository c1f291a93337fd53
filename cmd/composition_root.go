package cmd

import (
	"context"
	"log/slog"
	"time"

	"factoryorders/internal/adapters/out/postgres"
	"factoryorders/internal/adapters/out/postgres/auditrepo"
	"factoryorders/internal/core/application/usecases/commands"
	"factoryorders/internal/core/application/usecases/queries"
	"factoryorders/internal/core/domain/model/access"
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/core/ports"
	"factoryorders/internal/jobs"
	"factoryorders/internal/observability"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into handlers. Handlers are cheap value
// types, so each Create call builds a fresh one over the shared factories.
type CompositionRoot struct {
	config      Config
	gormDB      *gorm.DB
	uowFactory  *postgres.GormUnitOfWorkFactory
	metrics     *observability.Metrics
	auditLogger ports.AuditLogger
	notifier    ports.Notifier
	logger      *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	metrics *observability.Metrics,
	logger *slog.Logger,
) CompositionRoot {
	auditLogger := observability.NewSwallowingAuditLogger(
		auditrepo.NewGormAuditRepository(gormDB),
		metrics,
		logger,
	)
	notifier := observability.NewSafeNotifier(logDispatcher{logger: logger}, metrics, logger)

	return CompositionRoot{
		config:      config,
		gormDB:      gormDB,
		uowFactory:  postgres.NewGormUnitOfWorkFactory(gormDB),
		metrics:     metrics,
		auditLogger: auditLogger,
		notifier:    notifier,
		logger:      logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) billingUoWFactory() commands.BillingUoWFactory {
	return FuncBillingUoWFactory(func() commands.BillingUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) purgeUoWFactory() commands.PurgeUoWFactory {
	return FuncPurgeUoWFactory(func() commands.PurgeUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.config.OrderNumberPrefix, c.auditLogger)
}

func (c *CompositionRoot) CreateTransitionOrderStatusCommandHandler() commands.TransitionOrderStatusCommandHandler {
	return commands.NewTransitionOrderStatusCommandHandler(c.orderUoWFactory(), c.auditLogger, c.notifier)
}

func (c *CompositionRoot) CreateAddProductCommandHandler() commands.AddProductCommandHandler {
	return commands.NewAddProductCommandHandler(c.orderUoWFactory(), c.auditLogger)
}

func (c *CompositionRoot) CreateSetManufacturerPriceCommandHandler() commands.SetManufacturerPriceCommandHandler {
	return commands.NewSetManufacturerPriceCommandHandler(c.orderUoWFactory(), c.auditLogger)
}

func (c *CompositionRoot) CreateSetMarginOverrideCommandHandler() commands.SetMarginOverrideCommandHandler {
	return commands.NewSetMarginOverrideCommandHandler(c.orderUoWFactory(), c.auditLogger)
}

func (c *CompositionRoot) CreateSetOrderMarginCommandHandler() commands.SetOrderMarginCommandHandler {
	return commands.NewSetOrderMarginCommandHandler(c.orderUoWFactory(), c.auditLogger)
}

func (c *CompositionRoot) CreateUpdateSystemConfigCommandHandler() commands.UpdateSystemConfigCommandHandler {
	return commands.NewUpdateSystemConfigCommandHandler(c.orderUoWFactory(), c.auditLogger)
}

func (c *CompositionRoot) CreateRepairMarginsCommandHandler() commands.RepairMarginsCommandHandler {
	return commands.NewRepairMarginsCommandHandler(c.orderUoWFactory(), c.auditLogger)
}

func (c *CompositionRoot) CreateRouteProductCommandHandler() commands.RouteProductCommandHandler {
	return commands.NewRouteProductCommandHandler(c.orderUoWFactory(), c.auditLogger)
}

func (c *CompositionRoot) CreateLockProductCommandHandler() commands.LockProductCommandHandler {
	return commands.NewLockProductCommandHandler(c.orderUoWFactory(), c.auditLogger)
}

func (c *CompositionRoot) CreateSoftDeleteProductCommandHandler() commands.SoftDeleteProductCommandHandler {
	return commands.NewSoftDeleteProductCommandHandler(c.orderUoWFactory(), c.auditLogger)
}

func (c *CompositionRoot) CreateCreateInvoiceCommandHandler() commands.CreateInvoiceCommandHandler {
	return commands.NewCreateInvoiceCommandHandler(c.billingUoWFactory(), c.auditLogger)
}

func (c *CompositionRoot) CreateMarkInvoicePaidCommandHandler() commands.MarkInvoicePaidCommandHandler {
	return commands.NewMarkInvoicePaidCommandHandler(c.billingUoWFactory(), c.auditLogger, c.notifier)
}

func (c *CompositionRoot) CreateApproveItemCommandHandler() commands.ApproveItemCommandHandler {
	return commands.NewApproveItemCommandHandler(c.orderUoWFactory(), c.auditLogger)
}

func (c *CompositionRoot) CreateSweepExpiredDraftsCommandHandler() (commands.SweepExpiredDraftsCommandHandler, error) {
	serviceID, err := kernel.UUIDFromString(c.config.ServiceActorID)
	if err != nil {
		return commands.SweepExpiredDraftsCommandHandler{}, err
	}
	return commands.NewSweepExpiredDraftsCommandHandler(c.purgeUoWFactory(), c.auditLogger, serviceID), nil
}

func (c *CompositionRoot) CreateGetUnpricedProductsQueryHandler() queries.GetUnpricedProductsQueryHandler {
	return queries.NewGetUnpricedProductsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeletedProductsQueryHandler() queries.GetDeletedProductsQueryHandler {
	return queries.NewGetDeletedProductsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAuditTrailQueryHandler() queries.GetAuditTrailQueryHandler {
	return queries.NewGetAuditTrailQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPricingDiagnosticsQueryHandler() queries.GetPricingDiagnosticsQueryHandler {
	return queries.NewGetPricingDiagnosticsQueryHandler(c.gormDB)
}

// CreateJobManager builds the background job set: the nightly draft sweep
// and the hourly margin repair batch.
func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	sweepHandler, err := c.CreateSweepExpiredDraftsCommandHandler()
	if err != nil {
		return nil, err
	}

	retention := time.Duration(c.config.DraftRetentionDays) * 24 * time.Hour
	sweepCmd, err := commands.NewSweepExpiredDraftsCommand(retention)
	if err != nil {
		return nil, err
	}

	serviceID, err := kernel.UUIDFromString(c.config.ServiceActorID)
	if err != nil {
		return nil, err
	}
	repairCmd, err := commands.NewRepairMarginsCommand(serviceID, access.RoleAdmin)
	if err != nil {
		return nil, err
	}

	return jobs.NewJobManager(
		jobs.NewDraftExpiryJob(sweepHandler, sweepCmd, c.metrics, c.logger),
		jobs.NewMarginRepairJob(c.CreateRepairMarginsCommandHandler(), repairCmd, c.metrics, c.logger),
	), nil
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncBillingUoWFactory func() commands.BillingUoW

func (f FuncBillingUoWFactory) Create() commands.BillingUoW {
	return f()
}

type FuncPurgeUoWFactory func() commands.PurgeUoW

func (f FuncPurgeUoWFactory) Create() commands.PurgeUoW {
	return f()
}

// logDispatcher is the notification transport until a real email/SMS
// gateway is connected. It writes each notification to the service log.
type logDispatcher struct {
	logger *slog.Logger
}

func (d logDispatcher) Dispatch(
	_ context.Context,
	userID kernel.UUID,
	kind ports.NotificationKind,
	message string,
	relatedOrderID kernel.UUID,
) error {
	d.logger.Info("notification dispatched",
		"user_id", userID.String(),
		"kind", string(kind),
		"message", message,
		"order_id", relatedOrderID.String(),
	)
	return nil
}
