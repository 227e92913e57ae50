package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"budget-core/core/config"
	"budget-core/core/events"
	"budget-core/core/livequery"
	"budget-core/core/loader"
	"budget-core/core/logger"
	"budget-core/core/metrics"
	"budget-core/core/middleware/auth"
	"budget-core/core/middleware/rayid"
	"budget-core/core/numfmt"
	"budget-core/core/storage"

	"budget-core/feature/accounts"
	"budget-core/feature/budget"
	"budget-core/feature/integrity"
	"budget-core/feature/preferences"
	"budget-core/feature/transactions"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "budget-core/docs/swagger"
)

// @title Budget Core API
// @version 1.0
// @description Accounts, budgets and transaction imports.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the budget server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		// 1. Configuration and logger
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 2. Database. Features that need it stay disabled when it is unreachable.
		var db *gorm.DB
		if conn, err := openDatabase(cfg.Database, logg); err != nil {
			logg.Warn("Database unavailable", zap.Error(err))
		} else {
			db = conn
			logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))
		}

		// 3. Storage and change events
		var store storage.Client
		if client, err := openStorage(ctx, cfg.Storage); err != nil {
			logg.Warn("Storage unavailable, imports disabled", zap.Error(err))
		} else {
			store = client
		}

		publisher, err := events.New(&cfg.Events, logg)
		if err != nil {
			logg.Fatal("Failed to connect to message broker", zap.Error(err))
		}
		defer publisher.Close()

		// 4. Number format: configured default, then the stored preference
		formatter := numfmt.NewFormatter(cfg.Format)
		registry := livequery.NewRegistry(logg)

		var (
			accountSvc     *accounts.Service
			budgetSvc      *budget.Service
			preferenceSvc  *preferences.Service
			transactionSvc *transactions.Service
		)
		if db != nil {
			preferenceSvc = preferences.NewService(db, formatter, logg)
			if err := preferenceSvc.Load(ctx); err != nil {
				logg.Warn("Failed to load number format preference", zap.Error(err))
			}
			accountSvc = accounts.NewService(db, formatter, registry, publisher, logg)
			budgetSvc = budget.NewService(db, formatter, registry, publisher, logg)
			transactionSvc = transactions.NewService(db, store, cfg.Storage.Bucket, formatter, registry, publisher, logg)
		}

		// 5. Feature loader
		mgr := loader.NewManager(logg)
		mgr.Register(preferences.NewFeature(preferenceSvc))
		mgr.Register(accounts.NewFeature(accountSvc))
		mgr.Register(budget.NewFeature(budgetSvc))
		mgr.Register(transactions.NewFeature(transactionSvc))
		mgr.Register(integrity.NewFeature(store, cfg.Storage.Bucket, logg, db, models))

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimit(),
		})

		// 6. Middleware. RayID goes first so every log line carries it.
		app.Use(rayid.New())
		app.Use(logger.Middleware(logg))

		app.Get("/swagger/*", swagger.HandlerDefault)
		metrics.Register(app, cfg.Metrics)

		if cfg.Server.IsAuthEnabled() {
			public := []string{"/swagger"}
			if cfg.Metrics.Enabled && cfg.Metrics.Path != "" {
				public = append(public, cfg.Metrics.Path)
			}
			app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey, SkipPrefixes: public}))
		} else {
			logg.Warn("API key not set, authentication disabled")
		}

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 7. Serve until interrupted
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		timeout := time.Duration(cfg.Server.ShutdownTimeoutSeconds) * time.Second
		if err := app.ShutdownWithTimeout(timeout); err != nil {
			logg.Warn("Shutdown did not complete cleanly", zap.Error(err))
		}
		if accountSvc != nil {
			accountSvc.Close()
		}
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
