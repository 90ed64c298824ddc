package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/fathima-sithara/media-catalog/internal/config"
	"github.com/fathima-sithara/media-catalog/internal/handlers"
	"github.com/fathima-sithara/media-catalog/internal/middleware"
	"github.com/fathima-sithara/media-catalog/internal/repository"
	"github.com/fathima-sithara/media-catalog/internal/routes"
	"github.com/fathima-sithara/media-catalog/internal/services"
	"github.com/fathima-sithara/media-catalog/internal/storage"
	"github.com/fathima-sithara/media-catalog/internal/utils"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	// load config
	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		panic(err)
	}
	dev := cfg.App.Env == "development"

	// logger
	logger, err := utils.NewLogger(dev, cfg.Log.Level)
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
	userRepo := repository.NewMongoUserRepo(db, "users")
	mediaRepo := repository.NewMongoMediaRepo(db, "media")
	imageRepo := repository.NewMongoImageRepo(db, "images")

	// S3 store
	store, err := storage.NewS3Store(context.Background(), cfg.AWS.Region, cfg.AWS.Bucket, cfg.AWS.Endpoint)
	if err != nil {
		logger.Fatalf("s3 init: %v", err)
	}

	// services
	jwtMgr := utils.NewJWTManager(cfg.JWT.Secret, cfg.TokenTTL)
	uploader := services.NewUploader(store)
	authSvc := services.NewAuthService(userRepo, jwtMgr)
	movieSvc := services.NewMovieService(mediaRepo, imageRepo, uploader)

	// fiber app & routes
	app := fiber.New(fiber.Config{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    20 * 1024 * 1024, // inline image payloads
	})
	app.Use(middleware.RequestLogger(logger))

	limiter := middleware.NewIPRateLimiter(cfg.RateLimit.PerMinute, logger)
	routes.Setup(app,
		handlers.NewAuthHandler(authSvc),
		handlers.NewMovieHandler(movieSvc),
		jwtMgr,
		limiter,
	)

	// start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.Port)
		logger.Infof("starting media catalog on %s", addr)
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
	_ = mc.Disconnect(timeoutCtx)
	logger.Info("shutdown completed")
}
