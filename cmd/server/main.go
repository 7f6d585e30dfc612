package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/agrifeed/config"
	"github.com/d60-Lab/agrifeed/internal/aiclient"
	"github.com/d60-Lab/agrifeed/internal/api"
	"github.com/d60-Lab/agrifeed/internal/api/handler"
	"github.com/d60-Lab/agrifeed/internal/repository"
	"github.com/d60-Lab/agrifeed/internal/service"
	"github.com/d60-Lab/agrifeed/pkg/database"
	"github.com/d60-Lab/agrifeed/pkg/logger"
	"github.com/d60-Lab/agrifeed/pkg/telemetry"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func main() {
	cfg := must(config.Load())
	if err := logger.Init(cfg.Server.Mode); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer := must(telemetry.InitTracer(ctx, "agrifeed", cfg.Trace.Endpoint))
	defer func() { _ = shutdownTracer(context.Background()) }()

	db := must(database.InitDB(cfg))

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	// repositories & services
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	userRepo := repository.NewUserRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	contactRepo := repository.NewContactRepository(db)

	notifier := service.NewNotifier(notifRepo, cfg.Notifier.QueueSize)
	stopNotifier := notifier.Start(cfg.Notifier.Workers)

	feedCache := service.NewFeedCache(rdb, time.Duration(cfg.Redis.FeedTTLSeconds)*time.Second)
	postSvc := service.NewPostService(postRepo, commentRepo, likeRepo, userRepo, feedCache)
	interactionSvc := service.NewInteractionService(postRepo, commentRepo, likeRepo, userRepo, notifier, feedCache)
	notifSvc := service.NewNotificationService(notifRepo, userRepo)
	contactSvc := service.NewContactService(contactRepo)

	h := handler.New(
		postSvc, interactionSvc, notifSvc, contactSvc,
		aiclient.NewPredictClient(cfg.AI.PredictEndpoint),
		aiclient.NewPredictClient(cfg.AI.FertilizerEndpoint),
		aiclient.NewTextClient(cfg.AI.TextEndpoint, cfg.AI.TextAPIKey, cfg.AI.TextModel),
	)
	r := api.NewRouter(cfg, h)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server exited", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	_ = stopNotifier(shutdownCtx)
}
