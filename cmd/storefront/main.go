package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fekuna/omnipos-storefront/config"
	"github.com/fekuna/omnipos-storefront/internal/catalog"
	"github.com/fekuna/omnipos-storefront/internal/cli"
	"github.com/fekuna/omnipos-storefront/internal/httpapi"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/fekuna/omnipos-storefront/internal/media"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	accountH "github.com/fekuna/omnipos-storefront/internal/account/handler"
	accountRepoPkg "github.com/fekuna/omnipos-storefront/internal/account/repository"
	accountUCPkg "github.com/fekuna/omnipos-storefront/internal/account/usecase"

	cartRepoPkg "github.com/fekuna/omnipos-storefront/internal/cart/repository"

	catalogH "github.com/fekuna/omnipos-storefront/internal/catalog/handler"
	catalogRepoPkg "github.com/fekuna/omnipos-storefront/internal/catalog/repository"
	catalogUCPkg "github.com/fekuna/omnipos-storefront/internal/catalog/usecase"

	catH "github.com/fekuna/omnipos-storefront/internal/category/handler"
	catRepoPkg "github.com/fekuna/omnipos-storefront/internal/category/repository"
	catUCPkg "github.com/fekuna/omnipos-storefront/internal/category/usecase"

	checkoutH "github.com/fekuna/omnipos-storefront/internal/checkout/handler"
	checkoutUCPkg "github.com/fekuna/omnipos-storefront/internal/checkout/usecase"

	orderH "github.com/fekuna/omnipos-storefront/internal/order/handler"
	orderRepoPkg "github.com/fekuna/omnipos-storefront/internal/order/repository"
	orderUCPkg "github.com/fekuna/omnipos-storefront/internal/order/usecase"

	prodH "github.com/fekuna/omnipos-storefront/internal/product/handler"
	prodRepoPkg "github.com/fekuna/omnipos-storefront/internal/product/repository"
	prodUCPkg "github.com/fekuna/omnipos-storefront/internal/product/usecase"

	sessionRepoPkg "github.com/fekuna/omnipos-storefront/internal/session/repository"
	sessionUCPkg "github.com/fekuna/omnipos-storefront/internal/session/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

func run() int {
	// The API reads bill, order and line amounts as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	appLogger := logger.NewZapLogger(&logger.ZapLoggerConfig{
		IsDevelopment:     cfg.App.AppEnv == "development",
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	})
	defer appLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open the session store and restore the last login
	sessionRepo, err := sessionRepoPkg.NewSQLiteRepository(cfg.Session.DBPath)
	if err != nil {
		appLogger.Error("Could not open session store", zap.String("path", cfg.Session.DBPath), zap.Error(err))
		return cli.ExitFailure
	}
	defer sessionRepo.Close()

	sessionUC := sessionUCPkg.NewSessionUseCase(sessionRepo, appLogger)
	if err := sessionUC.Restore(ctx); err != nil {
		appLogger.Warn("Could not restore session, continuing signed out", zap.Error(err))
	}

	// 4. Initialize API client and Repositories
	api := httpapi.NewClient(&httpapi.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.RequestTimeout,
	}, appLogger)

	accountRepo := accountRepoPkg.NewHTTPRepository(api)
	cartRepo := cartRepoPkg.NewHTTPRepository(api)
	catRepo := catRepoPkg.NewHTTPRepository(api)
	orderRepo := orderRepoPkg.NewHTTPRepository(api)
	prodRepo := prodRepoPkg.NewHTTPRepository(api)

	// 5. Initialize Redis (optional catalog snapshot)
	var snapshots catalog.SnapshotRepository
	if cfg.Redis.Enabled {
		redisClient, err := catalogRepoPkg.NewRedisClient(ctx, cfg.Redis.Addr,
			catalogRepoPkg.WithPassword(cfg.Redis.Password),
			catalogRepoPkg.WithDB(cfg.Redis.DB),
		)
		if err != nil {
			appLogger.Warn("Could not connect to Redis, catalog snapshots disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			snapshots = catalogRepoPkg.NewRedisSnapshotRepository(redisClient, cfg.Redis.Prefix)
			appLogger.Debug("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
		}
	}

	// 6. Initialize Cloudinary
	uploader, err := media.NewCloudinaryUploader(cfg.Cloudinary.URL, cfg.Cloudinary.Folder, appLogger)
	if err != nil {
		appLogger.Error("Invalid Cloudinary configuration", zap.Error(err))
		return cli.ExitFailure
	}

	// 7. Initialize UseCases
	catalogUC := catalogUCPkg.NewCatalogUseCase(prodRepo, catRepo, snapshots, cfg.API.ProductPageSize, appLogger)
	if err := catalogUC.Seed(ctx); err != nil {
		appLogger.Warn("Could not load catalog snapshot", zap.Error(err))
	}

	accountUC := accountUCPkg.NewAccountUseCase(accountRepo, sessionUC, appLogger)
	catUC := catUCPkg.NewCategoryUseCase(catRepo, sessionUC, catalogUC, appLogger)
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, sessionUC, uploader, catalogUC, appLogger)
	orderUC := orderUCPkg.NewOrderUseCase(orderRepo, sessionUC, appLogger)
	checkoutUC := checkoutUCPkg.NewCheckoutUseCase(cartRepo, orderRepo, accountUC, sessionUC, catalogUC, appLogger,
		checkoutUCPkg.WithNotifier(checkoutH.NewAdjustmentPrinter(os.Stderr)),
	)

	// 8. Initialize Handlers
	accountHandler := accountH.NewAccountHandler(accountUC, sessionUC, appLogger)
	catalogHandler := catalogH.NewCatalogHandler(catalogUC, prodUC, appLogger)
	catHandler := catH.NewCategoryHandler(catUC, appLogger)
	checkoutHandler := checkoutH.NewCheckoutHandler(checkoutUC, sessionUC, appLogger)
	orderHandler := orderH.NewOrderHandler(orderUC, appLogger)
	prodHandler := prodH.NewProductHandler(prodUC, appLogger)

	// 9. Register Commands
	opts := &cli.RootOptions{}

	admin := &cobra.Command{
		Use:   "admin",
		Short: "Manage products, categories and orders (administrators only)",
	}
	admin.AddCommand(prodHandler.AdminCommand(opts), catHandler.AdminCommand(opts))
	admin.AddCommand(orderHandler.AdminCommands(opts)...)

	var commands []*cobra.Command
	commands = append(commands, accountHandler.Commands(opts)...)
	commands = append(commands, catalogHandler.Commands(opts)...)
	commands = append(commands, checkoutHandler.Commands(opts)...)
	commands = append(commands, orderHandler.Command(opts), admin)

	root := cli.NewRootCommand(opts, commands...)
	return cli.Execute(ctx, root, opts)
}
