package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yourorg/vidtube/services/content-service/internal/auth"
	"github.com/yourorg/vidtube/services/content-service/internal/cache"
	"github.com/yourorg/vidtube/services/content-service/internal/config"
	"github.com/yourorg/vidtube/services/content-service/internal/events"
	"github.com/yourorg/vidtube/services/content-service/internal/handlers"
	"github.com/yourorg/vidtube/services/content-service/internal/repository"
	"github.com/yourorg/vidtube/services/content-service/internal/routes"
	"github.com/yourorg/vidtube/services/content-service/internal/services"
	"github.com/yourorg/vidtube/services/content-service/internal/storage"
	"github.com/yourorg/vidtube/services/content-service/internal/utils"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		panic(err)
	}
	dev := cfg.App.Env == "development"

	logger, err := utils.NewLogger(dev)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	// Mongo
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	mc, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		logger.Fatalf("mongo connect: %v", err)
	}
	db := mc.Database(cfg.Mongo.Database)

	userRepo := repository.NewUserRepo(db.Collection("users"))
	tweetRepo := repository.NewTweetRepo(db.Collection("tweets"))
	subRepo := repository.NewSubscriptionRepo(db.Collection("subscriptions"))
	likeRepo := repository.NewLikeRepo(db.Collection("likes"))

	if err := subRepo.EnsureIndexes(ctx); err != nil {
		logger.Fatalf("subscription indexes: %v", err)
	}
	if err := likeRepo.EnsureIndexes(ctx); err != nil {
		logger.Fatalf("like indexes: %v", err)
	}

	// Redis (optional)
	var countCache services.CountCache
	var redisCli *cache.Client
	if cfg.Redis.Addr != "" {
		redisCli, err = cache.NewRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.CountCacheTTL)
		if err != nil {
			logger.Fatalf("redis connect: %v", err)
		}
		countCache = redisCli
	}

	// Kafka (optional)
	var publisher *events.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = events.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
	}

	// S3 store
	store, err := storage.NewS3Store(context.Background(), cfg.AWS.Region, cfg.AWS.Bucket, cfg.AWS.Endpoint, cfg.S3.PublicRead)
	if err != nil {
		logger.Fatalf("s3 init: %v", err)
	}

	// services
	presignTTL := time.Duration(cfg.S3.PresignTTL) * time.Second
	tweetSvc := services.NewTweetService(tweetRepo, userRepo, publisher)
	subSvc := services.NewSubscriptionService(subRepo, countCache, publisher, logger)
	likeSvc := services.NewLikeService(likeRepo, tweetRepo, publisher)
	mediaSvc := services.NewMediaService(userRepo, store, presignTTL)

	// JWT verifier
	verifier, err := auth.NewJWTVerifier(cfg.JWT.PublicKeyPath)
	if err != nil {
		logger.Fatalf("jwt init: %v", err)
	}

	// fiber app & routes
	app := fiber.New(fiber.Config{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorHandler: utils.ErrorHandler,
	})
	routes.Register(app, routes.Handlers{
		Tweets:        handlers.NewTweetHandler(tweetSvc),
		Subscriptions: handlers.NewSubscriptionHandler(subSvc),
		Likes:         handlers.NewLikeHandler(likeSvc),
		Media:         handlers.NewMediaHandler(mediaSvc),
	}, verifier)

	// start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.Port)
		logger.Infof("starting content service on %s", addr)
		if err := app.Listen(addr); err != nil {
			logger.Fatalf("listen failed: %v", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	logger.Info("shutdown requested")
	timeoutCtx, cancel2 := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel2()

	_ = app.Shutdown()
	_ = publisher.Close()
	if redisCli != nil {
		_ = redisCli.Close()
	}
	_ = mc.Disconnect(timeoutCtx)
	logger.Info("shutdown completed")
}
