package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"factoryorders/cmd"
	"factoryorders/internal/adapters/in/http"
	"factoryorders/internal/adapters/out/postgres/auditrepo"
	"factoryorders/internal/adapters/out/postgres/billingrepo"
	"factoryorders/internal/adapters/out/postgres/orderrepo"
	"factoryorders/internal/adapters/out/postgres/pricingrepo"
	"factoryorders/internal/adapters/out/postgres/productrepo"
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/observability"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	config := getConfig(logger)

	gormDB, err := openDatabase(config)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	if err = migrate(gormDB, config); err != nil {
		logger.Error("database migration failed", "error", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)

	root := cmd.NewCompositionRoot(config, gormDB, metrics, logger)

	jobManager, err := root.CreateJobManager()
	if err != nil {
		logger.Error("job wiring failed", "error", err)
		os.Exit(1)
	}
	if err = jobManager.StartAll(); err != nil {
		logger.Error("job startup failed", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	sweepHandler, err := root.CreateSweepExpiredDraftsCommandHandler()
	if err != nil {
		logger.Error("sweep wiring failed", "error", err)
		os.Exit(1)
	}

	e := echo.New()
	e.HideBanner = true

	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	server := http.NewServer(
		root.CreateCreateOrderCommandHandler(),
		root.CreateTransitionOrderStatusCommandHandler(),
		root.CreateAddProductCommandHandler(),
		root.CreateSetManufacturerPriceCommandHandler(),
		root.CreateSetMarginOverrideCommandHandler(),
		root.CreateSetOrderMarginCommandHandler(),
		root.CreateUpdateSystemConfigCommandHandler(),
		root.CreateRepairMarginsCommandHandler(),
		root.CreateRouteProductCommandHandler(),
		root.CreateLockProductCommandHandler(),
		root.CreateSoftDeleteProductCommandHandler(),
		root.CreateCreateInvoiceCommandHandler(),
		root.CreateMarkInvoicePaidCommandHandler(),
		root.CreateApproveItemCommandHandler(),
		sweepHandler,
		root.CreateGetUnpricedProductsQueryHandler(),
		root.CreateGetDeletedProductsQueryHandler(),
		root.CreateGetAuditTrailQueryHandler(),
		root.CreateGetPricingDiagnosticsQueryHandler(),
		time.Duration(config.DraftRetentionDays)*24*time.Hour,
	)
	server.RegisterRoutes(e)

	go func() {
		if startErr := e.Start("0.0.0.0:" + config.HTTPPort); startErr != nil {
			logger.Info("http server stopped", "error", startErr)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = e.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}

func getConfig(logger *slog.Logger) cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		logger.Info("no .env file, using process environment")
	}

	return cmd.Config{
		HTTPPort:   envOr("HTTP_PORT", "8080"),
		DBHost:     envOr("DB_HOST", "localhost"),
		DBPort:     envOr("DB_PORT", "5432"),
		DBUser:     envOr("DB_USER", "postgres"),
		DBPassword: envOr("DB_PASSWORD", "postgres"),
		DBName:     envOr("DB_NAME", "factoryorders"),
		DBSslMode:  envOr("DB_SSLMODE", "disable"),

		OrderNumberPrefix:  envOr("ORDER_NUMBER_PREFIX", "FO"),
		DraftRetentionDays: envIntOr("DRAFT_RETENTION_DAYS", 15, logger),
		ServiceActorID:     envOr("SERVICE_ACTOR_ID", kernel.NewUUID().String()),

		DefaultMarginPercent:         envFloatOr("DEFAULT_MARGIN_PERCENT", 80, logger),
		DefaultShippingMarginPercent: envFloatOr("DEFAULT_SHIPPING_MARGIN_PERCENT", 20, logger),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int, logger *slog.Logger) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logger.Warn("invalid integer in environment, using default", "key", key, "value", v)
		return fallback
	}
	return n
}

func envFloatOr(key string, fallback float64, logger *slog.Logger) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		logger.Warn("invalid float in environment, using default", "key", key, "value", v)
		return fallback
	}
	return f
}

func openDatabase(config cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		config.DBHost, config.DBUser, config.DBPassword,
		config.DBName, config.DBPort, config.DBSslMode,
	)
	return gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
}

// migrate creates the schema, the order number sequence, and seeds the
// margin defaults if they are not configured yet.
func migrate(db *gorm.DB, config cmd.Config) error {
	if err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&productrepo.ProductDTO{},
		&productrepo.ItemDTO{},
		&pricingrepo.OrderMarginDTO{},
		&pricingrepo.SystemConfigDTO{},
		&billingrepo.InvoiceDTO{},
		&billingrepo.InvoiceItemDTO{},
		&auditrepo.EntryDTO{},
	); err != nil {
		return err
	}

	if err := db.Exec("CREATE SEQUENCE IF NOT EXISTS order_number_seq").Error; err != nil {
		return err
	}

	margin, err := kernel.NewPercent(config.DefaultMarginPercent)
	if err != nil {
		return err
	}
	shippingMargin, err := kernel.NewPercent(config.DefaultShippingMarginPercent)
	if err != nil {
		return err
	}

	return pricingrepo.NewGormPricingRepository(db).
		SeedDefaults(context.Background(), margin, shippingMargin)
}
