package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/angelmondragon/shopfloor/api/routes"
	"github.com/angelmondragon/shopfloor/internal/auth"
	"github.com/angelmondragon/shopfloor/internal/dashboard"
	"github.com/angelmondragon/shopfloor/internal/inventory"
	"github.com/angelmondragon/shopfloor/internal/sales"
	"github.com/angelmondragon/shopfloor/internal/users"
	"github.com/angelmondragon/shopfloor/pkg/auth/session"
	"github.com/angelmondragon/shopfloor/pkg/config"
	"github.com/angelmondragon/shopfloor/pkg/db"
	"github.com/angelmondragon/shopfloor/pkg/logger"
	"github.com/angelmondragon/shopfloor/pkg/metrics"
	"github.com/angelmondragon/shopfloor/pkg/migrate"
	"github.com/angelmondragon/shopfloor/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeAutoRun(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run migrations", err)
		os.Exit(1)
	}

	var (
		redisClient  *redis.Client
		sessionStore session.Store = session.NewMemoryStore()
	)
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		sessionStore = redisClient
	} else {
		logg.Info(ctx, "redis not configured, sessions kept in memory and login rate limiting disabled")
	}

	sessionManager, err := session.NewManager(sessionStore, cfg.JWT)
	if err != nil {
		logg.Error(ctx, "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	saleMetrics := metrics.NewSaleMetrics(registry)
	authMetrics := metrics.NewAuthMetrics(registry)

	defaultPrice := cfg.Report.DefaultPriceDecimal()
	inventoryRepo := inventory.NewRepository(dbClient.DB())
	salesRepo := sales.NewRepository(dbClient.DB())
	usersRepo := users.NewRepository(dbClient.DB())

	inventoryService, err := inventory.NewService(inventoryRepo, dbClient, logg)
	requireService(ctx, logg, "inventory", err)

	salesService, err := sales.NewService(sales.ServiceParams{
		Repo:         salesRepo,
		Inventory:    inventoryRepo,
		DB:           dbClient,
		Logger:       logg,
		Metrics:      saleMetrics,
		DefaultPrice: defaultPrice,
	})
	requireService(ctx, logg, "sales", err)

	dashboardService, err := dashboard.NewService(salesRepo, inventoryRepo, defaultPrice)
	requireService(ctx, logg, "dashboard", err)

	usersService, err := users.NewService(usersRepo, dbClient, cfg.Password, logg)
	requireService(ctx, logg, "users", err)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       usersRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
		Metrics:        authMetrics,
		Logger:         logg,
	})
	requireService(ctx, logg, "auth", err)

	if cfg.FeatureFlags.SeedAdmin {
		if _, err := usersService.EnsureAdmin(ctx); err != nil {
			logg.Error(ctx, "failed to seed admin user", err)
			os.Exit(1)
		}
	}

	if cfg.FeatureFlags.SeedSamples {
		if _, err := inventoryService.SeedSamples(ctx); err != nil {
			logg.Error(ctx, "failed to seed sample inventory", err)
			os.Exit(1)
		}
	}

	addr := cfg.App.Addr()
	srvCtx := logg.WithFields(ctx, map[string]any{
		"env":       cfg.App.Env,
		"addr":      addr,
		"db_driver": cfg.DB.Driver,
	})
	logg.Info(srvCtx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			sessionManager,
			registry,
			authService,
			inventoryService,
			salesService,
			dashboardService,
			usersService,
		),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			logg.Error(srvCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(srvCtx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(srvCtx, "graceful shutdown failed", err)
	}
}

func requireService(ctx context.Context, logg *logger.Logger, name string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, "failed to create "+name+" service", err)
	os.Exit(1)
}
