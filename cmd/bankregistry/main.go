package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	handler "github.com/zdziszkee/bank-registry/internal/api/handlers"
	"github.com/zdziszkee/bank-registry/internal/api/router"
	"github.com/zdziszkee/bank-registry/internal/cache"
	"github.com/zdziszkee/bank-registry/internal/clients"
	config "github.com/zdziszkee/bank-registry/internal/configurations"
	"github.com/zdziszkee/bank-registry/internal/database"
	"github.com/zdziszkee/bank-registry/internal/logging"
	"github.com/zdziszkee/bank-registry/internal/metrics"
	parser "github.com/zdziszkee/bank-registry/internal/parsers"
	"github.com/zdziszkee/bank-registry/internal/readers/csv"
	repository "github.com/zdziszkee/bank-registry/internal/repositories"
	seeder "github.com/zdziszkee/bank-registry/internal/seeders"
	service "github.com/zdziszkee/bank-registry/internal/services"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to configuration file")
	seedFile := flag.String("seed", "", "Path to a bank CSV file to seed an empty registry from")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	// Override config with command line flags if provided
	if *seedFile != "" {
		cfg.Data.SeedFile = *seedFile
		cfg.Data.AutoLoad = true
	}

	logger, err := logging.New(cfg.Log, cfg.AppName)
	if err != nil {
		logrus.Fatalf("Failed to configure logging: %v", err)
	}

	// Initialize database
	db, err := database.New(cfg.Database, logger.WithField("component", "database"))
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	healthChecks := map[string]handler.HealthChecker{"db": db}

	// Initialize repository, cached when redis is configured
	repo := repository.NewSQLBankRepository(db)
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 10*time.Second)
	redisClient, err := cache.New(startupCtx, cfg.Redis)
	cancelStartup()
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to redis")
	}
	if redisClient != nil {
		defer redisClient.Close()
		repo = repository.NewCachedBankRepository(repo, redisClient.Client, cfg.Redis.TTL, logger)
		healthChecks["redis"] = redisClient
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	// Initialize service
	bankService := service.NewBankService(repo, logger,
		service.WithClient(clients.NewBankHTTPClient(cfg.Client, logger)),
		service.WithMetrics(m),
	)

	// Seed sample data if configured
	if cfg.Data.AutoLoad {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		s := seeder.NewSeeder(repo, bankService, &csv.CSVBanksReader{}, parser.NewBanksParser(logger), logger)
		if _, err := s.SeedFile(ctx, cfg.Data.SeedFile); err != nil {
			logger.WithError(err).Warn("Failed to seed sample banks")
		}
		cancel()
	}

	// Setup routes
	app := router.SetupRoutes(
		handler.NewBankHandler(bankService, logger),
		handler.NewHealthHandler(healthChecks, logger),
		router.Options{
			AppName:      cfg.AppName,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			Metrics:      m,
			Gatherer:     prometheus.DefaultGatherer,
			Logger:       logger,
		},
	)

	// Start server in a goroutine so we can handle graceful shutdown
	go func() {
		logger.WithField("address", cfg.Server.Address()).Info("Starting server")
		if err := app.Listen(cfg.Server.Address()); err != nil {
			logger.WithError(err).Fatal("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server exiting")
}
