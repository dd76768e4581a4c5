package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"resortdesk/internal/cache"
	"resortdesk/internal/config"
	"resortdesk/internal/database"
	"resortdesk/internal/events"
	"resortdesk/internal/modules/realtime"
	"resortdesk/internal/pkg/jwt"
	"resortdesk/internal/pkg/logger"
	"resortdesk/internal/server"
	"resortdesk/internal/statuslog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("config: " + err.Error())
	}

	log := logger.New(cfg.AppEnv)
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}

	deps := server.Dependencies{
		Config: cfg,
		DB:     db,
		JWT:    jwt.New(cfg.JWTSecret, cfg.JWTTTL),
		Hub:    realtime.NewHub(log.Named("realtime")),
		Logger: log,
	}

	if cfg.RedisAddr != "" {
		client, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Warn("redis unavailable, using in-memory cache", zap.Error(err))
		} else {
			defer client.Close()
			deps.Cache = cache.NewRedis(client)
			log.Info("dashboard cache: redis", zap.String("addr", cfg.RedisAddr))
		}
	}

	if cfg.RabbitMQURL != "" {
		pub, err := events.NewAMQPPublisher(cfg.RabbitMQURL, cfg.EventsQueue, log)
		if err != nil {
			log.Warn("rabbitmq unavailable, events disabled", zap.Error(err))
		} else {
			defer pub.Close()
			deps.Events = pub
			log.Info("events: rabbitmq", zap.String("queue", cfg.EventsQueue))
		}
	}

	if cfg.MongoURI != "" {
		store, disconnect, err := statuslog.OpenMongoStore(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			log.Warn("mongodb unavailable, status history kept in SQL", zap.Error(err))
		} else {
			defer func() { _ = disconnect(context.Background()) }()
			deps.History = store
			log.Info("room status history: mongodb", zap.String("db", cfg.MongoDB))
		}
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", cfg.HTTPAddr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
