package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"storeapi/internal/config"
	"storeapi/internal/db"
	"storeapi/internal/events"
	"storeapi/internal/handlers"
	"storeapi/internal/logging"
	authmw "storeapi/internal/middleware/auth"
	"storeapi/internal/repo"
	"storeapi/internal/search"
	"storeapi/internal/service"
	httpserver "storeapi/internal/transport/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gormDB, err := db.Open(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	gormRepo := repo.New(gormDB)

	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers)
	}

	var searchSvc *search.Service
	if cfg.ESURL != "" {
		esClient, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			log.Fatalf("elasticsearch error: %v", err)
		}
		searchSvc = &search.Service{ES: esClient, Index: "products"}
	}

	authSvc := &service.AuthService{
		Repo:          gormRepo,
		JWTSecret:     []byte(cfg.JWTSecret),
		RefreshSecret: []byte(cfg.RefreshSecret),
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: cfg.CORSOrigins}))
	e.Use(logging.RequestLogger(logger))

	deps := &httpserver.Deps{
		AuthHandler:    &handlers.AuthHandler{Svc: authSvc, Producer: producer},
		StoreHandler:   &handlers.StoreHandler{Repo: gormRepo, Producer: producer, Search: searchSvc},
		ProductHandler: &handlers.ProductHandler{Repo: gormRepo, Producer: producer, Search: searchSvc},
		AuthMW:         authmw.New(gormRepo, []byte(cfg.JWTSecret)),
	}
	if searchSvc != nil {
		deps.SearchHandler = &handlers.SearchHandler{Search: searchSvc}
	}
	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()
	logger.Info("server started", "port", cfg.ServerPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Printf("kafka close error: %v", err)
		}
	}

	logger.Info("shutdown complete")
}
