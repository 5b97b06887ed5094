package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"marketplace/cmd"
	httpin "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/carrier"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/paymentrepo"
	"marketplace/internal/adapters/out/postgres/returnrepo"
	"marketplace/internal/adapters/out/postgres/suborderrepo"
	redisadapter "marketplace/internal/adapters/out/redis"
	"marketplace/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	configs := getConfigs(logger)

	gormDB := mustConnectDB(configs, logger)
	mustMigrate(gormDB, logger)

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		logger.Error("Failed to build composition root", "error", err)
		os.Exit(1)
	}

	carrierClient, err := carrier.NewClient(configs.CarrierBaseURL)
	if err != nil {
		logger.Error("Failed to build carrier client", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: configs.RedisAddr})
	dedupeStore, err := redisadapter.NewDedupeStore(redisClient)
	if err != nil {
		logger.Error("Failed to build dedupe store", "error", err)
		os.Exit(1)
	}

	carrierSyncJob := jobs.NewCarrierSyncJob(
		app.CreateGetTrackedParcelsQueryHandler(),
		carrierClient,
		app.CreateApplyCarrierUpdateCommandHandler(),
		logger,
	)
	settlementJob := jobs.NewSettlementJob(
		app.CreateGetReleasablePaymentsQueryHandler(),
		app.CreateReleasePaymentCommandHandler(),
		logger,
	)

	jobManager := jobs.NewJobManager(carrierSyncJob, settlementJob)
	if err := jobManager.StartAll(); err != nil {
		logger.Error("Failed to start jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	startWebServer(&app, dedupeStore, logger, configs.HTTPPort)
}

func getConfigs(logger *slog.Logger) cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		logger.Warn("No .env file found, relying on environment", "error", err)
	}

	shippingFee, err := strconv.ParseInt(os.Getenv("SHIPPING_FEE_CENTS"), 10, 64)
	if err != nil {
		logger.Error("SHIPPING_FEE_CENTS must be an integer", "error", err)
		os.Exit(1)
	}

	return cmd.Config{
		HTTPPort:         os.Getenv("HTTP_PORT"),
		DBHost:           os.Getenv("DB_HOST"),
		DBPort:           os.Getenv("DB_PORT"),
		DBUser:           os.Getenv("DB_USER"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBName:           os.Getenv("DB_NAME"),
		DBSslMode:        os.Getenv("DB_SSLMODE"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		CarrierBaseURL:   os.Getenv("CARRIER_BASE_URL"),
		ShippingFeeCents: shippingFee,
	}
}

func mustConnectDB(configs cmd.Config, logger *slog.Logger) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode,
	)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	return gormDB
}

func mustMigrate(gormDB *gorm.DB, logger *slog.Logger) {
	err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&suborderrepo.SubOrderDTO{},
		&suborderrepo.ItemDTO{},
		&paymentrepo.PaymentDTO{},
		&paymentrepo.HistoryDTO{},
		&returnrepo.RequestDTO{},
		&returnrepo.ItemDTO{},
		&returnrepo.HistoryDTO{},
		&returnrepo.SettingsDTO{},
	)
	if err != nil {
		logger.Error("Failed to migrate database schema", "error", err)
		os.Exit(1)
	}
}

func startWebServer(app *cmd.CompositionRoot, dedupeStore *redisadapter.DedupeStore, logger *slog.Logger, port string) {
	server := httpin.NewServer(
		app.CreateDecomposeOrderCommandHandler(),
		app.CreateAcceptSubOrderCommandHandler(),
		app.CreateRejectSubOrderCommandHandler(),
		app.CreateCancelSubOrderCommandHandler(),
		app.CreateApplyCarrierUpdateCommandHandler(),
		app.CreateReleasePaymentCommandHandler(),
		app.CreateCreateReturnRequestCommandHandler(),
		app.CreateApproveReturnCommandHandler(),
		app.CreateRejectReturnCommandHandler(),
		app.CreateStartReturnProcessingCommandHandler(),
		app.CreateCompleteReturnCommandHandler(),
		app.CreateUpdateReturnSettingsCommandHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateGetSellerSubOrdersQueryHandler(),
		app.CreateGetReleasablePaymentsQueryHandler(),
		app.CreateGetReturnRequestsQueryHandler(),
		dedupeStore,
		logger,
	)

	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
