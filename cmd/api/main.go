package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/updoc-health/updoc/internal/api/http"
	"github.com/updoc-health/updoc/internal/api/http/handlers"
	"github.com/updoc-health/updoc/internal/config"
	"github.com/updoc-health/updoc/internal/events"
	"github.com/updoc-health/updoc/internal/observability"
	"github.com/updoc-health/updoc/internal/persistence"
	"github.com/updoc-health/updoc/internal/repository"
	"github.com/updoc-health/updoc/internal/service"
	"github.com/updoc-health/updoc/internal/store"
	"github.com/updoc-health/updoc/internal/worker"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations && pg.PoolHandle() != nil {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	tickets := store.NewTicketCollection()
	audit := store.NewAuditLog()
	users := store.NewUserDirectory()

	var archive repository.ActionArchive
	if pool := pg.PoolHandle(); pool != nil {
		archive = repository.NewActionArchive(pool)
	}

	dispatcher := events.NewInMemoryDispatcher()
	if redis.Client != nil {
		events.NewRedisPublisher(redis.Client, logger).RegisterHandlers(dispatcher)
	}

	identityService := service.NewIdentityService(users)
	ticketService := service.NewTicketService(service.TicketDependencies{
		Tickets:    tickets,
		Audit:      audit,
		Users:      users,
		Archive:    archive,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	queryService := service.NewTicketQueryService(tickets, users)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Users:   handlers.NewUsersHandler(identityService),
		Tickets: handlers.NewTicketsHandler(ticketService, queryService, identityService),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
