package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/furniture-store/internal/api/http"
	"github.com/spec-kit/furniture-store/internal/api/http/handlers"
	"github.com/spec-kit/furniture-store/internal/auth"
	"github.com/spec-kit/furniture-store/internal/cache"
	"github.com/spec-kit/furniture-store/internal/config"
	"github.com/spec-kit/furniture-store/internal/events"
	"github.com/spec-kit/furniture-store/internal/observability"
	"github.com/spec-kit/furniture-store/internal/persistence"
	"github.com/spec-kit/furniture-store/internal/repository"
	"github.com/spec-kit/furniture-store/internal/repository/memory"
	"github.com/spec-kit/furniture-store/internal/seed"
	"github.com/spec-kit/furniture-store/internal/service"
	"github.com/spec-kit/furniture-store/internal/uploads"
	"github.com/spec-kit/furniture-store/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if cfg.Auth.UsesDefaultSecrets() {
		logger.Warn("running with default JWT_SECRET or ADMIN_SECRET; override both outside development")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	probes := map[string]handlers.Pinger{}
	var repos repository.Set
	if cfg.Postgres.DSN != "" {
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		defer pg.Close()

		if cfg.Postgres.RunMigrations {
			if err := pg.Migrate(ctx, cfg.Postgres.MigrationsDir); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		repos = pg.Repositories()
		probes["postgres"] = pg
	} else {
		logger.Warn("POSTGRES_DSN not set; using in-memory storage")
		repos = memory.NewStore().Set()
	}

	var catalogCache cache.Store = cache.Noop{}
	if cfg.Redis.Addr != "" {
		redis := persistence.NewRedis(ctx, cfg.Redis, logger)
		defer redis.Close()
		catalogCache = redis.CatalogCache("catalog:")
		probes["redis"] = redis
	}

	files, err := uploads.NewStorage(cfg.Uploads.Dir, cfg.Uploads.URLPrefix)
	if err != nil {
		logger.Fatal("failed to prepare uploads", zap.Error(err))
	}

	hasher := auth.NewHasher(cfg.Auth.BcryptCost)
	if cfg.Seed.UsersPath != "" {
		created, err := seed.Users(ctx, repos.Users, hasher, cfg.Seed.UsersPath, logger)
		if err != nil {
			logger.Fatal("failed to seed users", zap.Error(err))
		}
		logger.Info("user seeding finished", zap.Int("created", created))
	}

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartNotificationWorker(dispatcher, service.NewNotificationService(logger, cfg.Notification), logger)

	app := httptransport.NewServer(httptransport.ServerDeps{
		Config:     cfg,
		Logger:     logger,
		Metrics:    observability.NewMetrics(),
		Repos:      repos,
		Cache:      catalogCache,
		Uploads:    files,
		Dispatcher: dispatcher,
		Hasher:     hasher,
		Probes:     probes,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(cfg.App.RequestTimeout()); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
