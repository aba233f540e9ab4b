package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/medilink-notifier/internal/application/directory"
	fileapp "github.com/medilink-notifier/internal/application/file"
	mailapp "github.com/medilink-notifier/internal/application/mail"
	"github.com/medilink-notifier/internal/application/push"
	"github.com/medilink-notifier/internal/application/recovery"
	"github.com/medilink-notifier/internal/config"
	"github.com/medilink-notifier/internal/infrastructure/dynamo"
	jwtinfra "github.com/medilink-notifier/internal/infrastructure/jwt"
	redisinfra "github.com/medilink-notifier/internal/infrastructure/redis"
	s3infra "github.com/medilink-notifier/internal/infrastructure/s3"
	"github.com/medilink-notifier/internal/infrastructure/smtp"
	"github.com/medilink-notifier/internal/infrastructure/sns"
	"github.com/medilink-notifier/internal/pkg/logger"
	transporthttp "github.com/medilink-notifier/internal/transport/http"
)

// @title        MediLink notifier API
// @version      1.0
// @description  Transactional mail, password reset and push notification relay.
// @BasePath     /
// @securityDefinitions.apikey BearerAuth
// @in           header
// @name         Authorization
func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()
	if envErr != nil {
		logger.Log.Infow("no .env file found, reading from environment")
	}

	ctx := context.Background()

	awsCfg, err := dynamo.LoadAWSConfig(ctx, cfg)
	if err != nil {
		logger.Log.Fatalw("load aws config", "error", err)
	}
	dynamoClient := dynamo.NewClient(awsCfg, cfg)
	if !cfg.IsProduction() {
		dynamo.Bootstrap(ctx, dynamoClient, cfg.DynamoTables)
	}

	// Push-token cache (optional).
	var tokenCache directory.TokenCache
	if cfg.RedisAddr != "" {
		if rdb, err := redisinfra.NewClient(ctx, cfg); err == nil {
			tokenCache = redisinfra.NewTokenCache(rdb, cfg.TokenCacheTTL)
			defer rdb.Close()
		} else {
			logger.Log.Warnw("token cache not available", "error", err)
		}
	}

	resolver := directory.NewResolver([]directory.Partition{
		{Name: directory.PartitionUsers, Store: dynamo.NewDirectoryRepo(dynamoClient, directory.PartitionUsers, cfg.DynamoTables.Users)},
		{Name: directory.PartitionPatients, Store: dynamo.NewDirectoryRepo(dynamoClient, directory.PartitionPatients, cfg.DynamoTables.Patients)},
		{Name: directory.PartitionPractitioners, Store: dynamo.NewDirectoryRepo(dynamoClient, directory.PartitionPractitioners, cfg.DynamoTables.Practitioners)},
	}, tokenCache)

	// JWT provider (optional, graceful fallback if keys are missing).
	pushDeps := push.ServiceDeps{Notifications: dynamo.NewNotificationRepo(dynamoClient, cfg.DynamoTables.Notifications)}
	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		jwtProvider = p
		pushDeps.Signer = p
	} else {
		logger.Log.Warnw("jwt provider not available", "error", err)
	}

	// SNS push sender (optional, graceful fallback).
	if sender, err := sns.NewPushSender(awsCfg, cfg); err == nil {
		pushDeps.Sender = sender
	} else {
		logger.Log.Warnw("push sender not available", "error", err)
	}

	s3Store := s3infra.NewStore(s3infra.NewClient(awsCfg, cfg), cfg.S3BucketName)

	deps := &transporthttp.Deps{
		Directory: resolver,
		Mail:      mailapp.NewService(mailapp.ServiceDeps{Mailer: smtp.NewMailer(cfg)}),
		Recovery:  recovery.NewService(recovery.ServiceDeps{Directory: resolver}),
		Push:      push.NewService(pushDeps),
		Files: fileapp.NewService(fileapp.ServiceDeps{
			Objects: s3Store,
			Files:   dynamo.NewFileRepo(dynamoClient, cfg.DynamoTables.Files),
		}),
		JWTProvider: jwtProvider,
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      transporthttp.NewRouter(cfg, deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Log.Infow("server starting", "port", cfg.AppPort, "env", cfg.AppEnv, "strict_auth", cfg.StrictAuth())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatalw("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Infow("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("forced shutdown", "error", err)
		return
	}
	logger.Log.Infow("server stopped")
}
