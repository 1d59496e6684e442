package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hongminglow/platform-accounts/internal/auth"
	"github.com/hongminglow/platform-accounts/internal/cache"
	"github.com/hongminglow/platform-accounts/internal/config"
	"github.com/hongminglow/platform-accounts/internal/events"
	"github.com/hongminglow/platform-accounts/internal/logger"
	"github.com/hongminglow/platform-accounts/internal/models"
	"github.com/hongminglow/platform-accounts/internal/server"
	"github.com/hongminglow/platform-accounts/internal/service/account"
	postgres "github.com/hongminglow/platform-accounts/internal/storage/postgres"
)

func main() {
	loadLocalEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	appLogger := logger.New("platform-accounts", cfg.LogLevel)
	slog.SetDefault(appLogger)

	ctx := context.Background()
	userStore, err := postgres.NewUserStore(ctx, cfg.DatabaseURL, appLogger)
	if err != nil {
		fatal(appLogger, "init database", err)
	}
	defer userStore.Close()

	hasher, err := auth.NewHasher(cfg.BcryptCost)
	if err != nil {
		fatal(appLogger, "init password hasher", err)
	}
	tokens, err := auth.NewTokenManager(cfg.JWTSecret)
	if err != nil {
		fatal(appLogger, "init token manager", err)
	}

	var opts []account.Option
	if cfg.CacheEnabled() {
		client, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			appLogger.Warn("redis unavailable; platform cache disabled", "addr", cfg.RedisAddr, "error", err)
		} else {
			platformCache := cache.NewPlatformCache(client, cfg.PlatformCacheTTL)
			defer platformCache.Close()
			opts = append(opts, account.WithCache(platformCache))
		}
	}
	if cfg.EventsEnabled() {
		publisher, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			appLogger.Warn("kafka unavailable; account events disabled", "brokers", cfg.KafkaBrokers, "error", err)
		} else {
			defer publisher.Close()
			opts = append(opts, account.WithEvents(publisher))
		}
	}

	svc := account.New(userStore, hasher, tokens, models.NewRoleAssigner(cfg.AdminEmails), appLogger, opts...)
	srv, err := server.New(cfg, svc, appLogger)
	if err != nil {
		fatal(appLogger, "init http server", err)
	}

	go func() {
		appLogger.Info("platform accounts listening", "addr", cfg.HTTPAddress())
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal(appLogger, "http server", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		appLogger.Error("graceful shutdown", "error", err)
	}
	appLogger.Info("server stopped")
}

func fatal(l *slog.Logger, msg string, err error) {
	l.Error(msg, "error", err)
	os.Exit(1)
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}
}
