package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/getbarcodesolutions-star/GBS/internal/auth"
	"github.com/getbarcodesolutions-star/GBS/internal/cache"
	"github.com/getbarcodesolutions-star/GBS/internal/config"
	h "github.com/getbarcodesolutions-star/GBS/internal/http"
	"github.com/getbarcodesolutions-star/GBS/internal/publisher"
	"github.com/getbarcodesolutions-star/GBS/internal/repository"
	"github.com/getbarcodesolutions-star/GBS/internal/service"
	"github.com/redis/go-redis/v9"
)

func main() {
	config.SetupLogger()
	cfg := config.Load()

	ctx := context.Background()

	mongoDB, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		slog.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer mongoDB.Client().Disconnect(ctx)
	slog.Info("connected to MongoDB", "uri", cfg.MongoURI)

	cartRepo := repository.NewMongoCartRepository(mongoDB)
	orderRepo := repository.NewMongoOrderRepository(mongoDB)
	outboxRepo := repository.NewMongoOutboxRepository(mongoDB)
	createIndexes(ctx, cartRepo, orderRepo, outboxRepo)

	catalog, err := repository.NewSqliteCatalog(cfg.CatalogDBPath)
	if err != nil {
		slog.Error("failed to open catalog", "error", err)
		os.Exit(1)
	}
	defer catalog.Close()
	if err := catalog.RunMigrations(cfg.MigrationsPath); err != nil {
		slog.Error("failed to run catalog migrations", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("redis connection failed", "error", err)
		os.Exit(1)
	}

	cartCache := cache.NewRedisCache(redisClient)
	cartService := service.NewCartService(cartRepo, cartCache)
	orderService := service.NewOrderService(orderRepo, outboxRepo, catalog, cartService)

	pollerCtx, stopPoller := context.WithCancel(ctx)
	defer stopPoller()
	poller := publisher.NewOutboxPoller(outboxRepo, cfg.KafkaBrokers...)
	go poller.Run(pollerCtx)

	verifier := auth.NewHMACVerifier(cfg.AuthSecret)
	router := h.NewRouter(
		verifier,
		h.NewOrderHandler(orderService),
		h.NewCartHandler(cartService, catalog),
		h.NewProductHandler(catalog),
		cfg.RequestTimeout,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  cfg.RequestTimeout,
		WriteTimeout: cfg.RequestTimeout,
		IdleTimeout:  cfg.RequestTimeout * 2,
	}

	go func() {
		slog.Info("storefront API starting", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	stopPoller()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited")
}

type indexCreator interface {
	CreateIndexes(ctx context.Context) error
}

func createIndexes(ctx context.Context, repos ...interface{}) {
	for _, r := range repos {
		if c, ok := r.(indexCreator); ok {
			if err := c.CreateIndexes(ctx); err != nil {
				slog.Warn("failed to create indexes", "error", err)
			}
		}
	}
}
