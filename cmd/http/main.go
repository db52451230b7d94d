package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"craftynet/api/internal/config"
	"craftynet/api/internal/handler"
	"craftynet/api/internal/logger"
	"craftynet/api/internal/repository"
	"craftynet/api/internal/service"
)

func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logr := logger.New(cfg.Env, cfg.LogLevel)

	// 2. Setup Database
	ctx := context.Background()
	dbPool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logr.WithError(err).Fatal("database unavailable")
	}
	defer dbPool.Close()
	logr.Info("connected to database")

	// 3. Setup Logic
	requester := repository.NewRequester(dbPool, logr)
	resourceService := service.NewResourceService(requester)
	h := handler.NewHandler(resourceService, service.Resources(), logr)

	// 4. Setup Server
	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: h,
	}

	// 5. Run Server with Graceful Shutdown
	go func() {
		logr.Infof("server running on http://localhost:%s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.WithError(err).Fatal("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 2)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logr.Info("shutting down server")

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logr.WithError(err).Error("server forced to shutdown")
		return
	}
	logr.Info("server exited")
}
