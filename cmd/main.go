package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dtroode/userdir/database"
	"github.com/dtroode/userdir/internal/api/http/router"
	"github.com/dtroode/userdir/internal/cache"
	rediscache "github.com/dtroode/userdir/internal/cache/redis"
	"github.com/dtroode/userdir/internal/config"
	"github.com/dtroode/userdir/internal/logger"
	"github.com/dtroode/userdir/internal/model"
	"github.com/dtroode/userdir/internal/repository/postgres"
	"github.com/dtroode/userdir/internal/server"
	"github.com/dtroode/userdir/internal/service"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	if err := database.Migrate(ctx, cfg.Database.WriteURL); err != nil {
		logger.Fatal("failed to migrate database", "error", err)
	}

	writeDB, err := postgres.NewConnection(ctx, cfg.Database.WriteURL)
	if err != nil {
		logger.Fatal("failed to connect to write endpoint", "error", err)
	}
	defer writeDB.Close()

	readDB, err := postgres.NewConnection(ctx, cfg.Database.ReadURL)
	if err != nil {
		logger.Fatal("failed to connect to read endpoint", "error", err)
	}
	defer readDB.Close()

	userRepo := postgres.NewUserRepository(writeDB, readDB)
	userCache := connectCache(ctx, cfg, logger)
	defer func() {
		if err := userCache.Close(context.Background()); err != nil {
			logger.Error("error closing cache", "error", err)
		}
	}()

	userService := service.NewUser(userRepo, userCache, logger)

	r := router.New(userService, logger)
	httpServer := server.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

// connectCache attempts the redis connection once. On failure the service
// keeps serving from the store alone for the rest of the process
// lifetime.
func connectCache(ctx context.Context, cfg *config.Config, logger *logger.Logger) model.UserCache {
	userCache, err := rediscache.New(ctx, rediscache.Config{
		Addr: cfg.Redis.Addr(),
		DB:   cfg.Redis.DB,
		TTL:  cfg.Redis.TTL(),
	})
	if err != nil {
		logger.Warn("cache unavailable, running without cache",
			"address", cfg.Redis.Addr(),
			"error", err.Error())
		return cache.Disabled{}
	}

	logger.Info("cache connected",
		"address", cfg.Redis.Addr(),
		"ttl", cfg.Redis.TTL().String())

	return userCache
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
