package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/plasma-social/plasma-backend/api/routes"
	"github.com/plasma-social/plasma-backend/internal/comments"
	"github.com/plasma-social/plasma-backend/internal/content"
	"github.com/plasma-social/plasma-backend/internal/earnings"
	"github.com/plasma-social/plasma-backend/internal/interactions"
	"github.com/plasma-social/plasma-backend/internal/subscriptions"
	"github.com/plasma-social/plasma-backend/internal/users"
	"github.com/plasma-social/plasma-backend/pkg/config"
	"github.com/plasma-social/plasma-backend/pkg/db"
	"github.com/plasma-social/plasma-backend/pkg/logger"
	"github.com/plasma-social/plasma-backend/pkg/metrics"
	"github.com/plasma-social/plasma-backend/pkg/migrate"
	"github.com/plasma-social/plasma-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

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
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()

	conn := dbClient.DB()
	userRepo := users.NewRepository(conn)
	contentRepo := content.NewRepository(conn)

	userService, err := users.NewService(users.ServiceParams{
		UserRepo: userRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create user service", err)
		os.Exit(1)
	}

	contentService, err := content.NewService(content.ServiceParams{
		ContentRepo: contentRepo,
		UserRepo:    userRepo,
		DBClient:    dbClient,
		Logger:      logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create content service", err)
		os.Exit(1)
	}

	interactionService, err := interactions.NewService(interactions.ServiceParams{
		InteractionRepo: interactions.NewRepository(conn),
		ContentRepo:     contentRepo,
		UserRepo:        userRepo,
		DBClient:        dbClient,
		Logger:          logg,
		Metrics:         metrics.NewInteractionMetrics(registry),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create interaction service", err)
		os.Exit(1)
	}

	earningService, err := earnings.NewService(earnings.ServiceParams{
		EarningRepo: earnings.NewRepository(conn),
		UserRepo:    userRepo,
		ContentRepo: contentRepo,
		DBClient:    dbClient,
		Logger:      logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create earnings service", err)
		os.Exit(1)
	}

	commentService, err := comments.NewService(comments.ServiceParams{
		CommentRepo: comments.NewRepository(conn),
		ContentRepo: contentRepo,
		UserRepo:    userRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create comment service", err)
		os.Exit(1)
	}

	subscriptionService, err := subscriptions.NewService(subscriptions.ServiceParams{
		SubscriptionRepo: subscriptions.NewRepository(conn),
		UserRepo:         userRepo,
		DBClient:         dbClient,
		Logger:           logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create subscription service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:              cfg,
			Logger:              logg,
			DBPinger:            dbClient,
			Redis:               redisClient,
			Registry:            registry,
			UserService:         userService,
			ContentService:      contentService,
			InteractionService:  interactionService,
			EarningService:      earningService,
			CommentService:      commentService,
			SubscriptionService: subscriptionService,
		}),
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-runCtx.Done():
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "api server shutdown failed", err)
		}
	}
}
