package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jefin3273/connect-crave/configs"
	"github.com/jefin3273/connect-crave/middlewares"
	"github.com/jefin3273/connect-crave/routes"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := configs.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	logger, err := configs.NewLogger(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	// DB
	db, err := configs.ConnectionDB(cfg)
	if err != nil {
		logger.Fatal("connect database", zap.Error(err))
	}

	// migrate
	if err := configs.SetupDatabase(db); err != nil {
		logger.Fatal("migrate database", zap.Error(err))
	}
	if cfg.SeedDemoData {
		if err := configs.SeedRestaurants(db, logger); err != nil {
			logger.Fatal("seed restaurants", zap.Error(err))
		}
	}

	// cache + events (ทั้งคู่ optional)
	rdb, err := configs.NewRedis(cfg)
	if err != nil {
		logger.Fatal("connect redis", zap.Error(err))
	}
	if rdb != nil {
		defer rdb.Close()
	}
	pub, err := configs.NewEventPublisher(cfg)
	if err != nil {
		logger.Fatal("init event publisher", zap.Error(err))
	}
	if pub != nil {
		defer pub.Close()
	}

	// HTTP
	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestLogger(logger))
	routes.RegisterRoutes(r, routes.Deps{
		Cfg: cfg, DB: db, Redis: rdb, Publisher: pub, Log: logger,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server running", zap.String("addr", srv.Addr),
			zap.String("events", cfg.EventsDriver), zap.Bool("redis", rdb != nil))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
