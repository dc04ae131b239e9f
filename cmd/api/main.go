package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"advocacy-platform/internal/auth"
	"advocacy-platform/internal/bookmark"
	"advocacy-platform/internal/chain"
	"advocacy-platform/internal/config"
	"advocacy-platform/internal/eventlog"
	"advocacy-platform/internal/httpapi"
	"advocacy-platform/internal/insurance"
	"advocacy-platform/internal/timeline"
	"advocacy-platform/internal/wiki"
	"advocacy-platform/pkg/logger"
	"advocacy-platform/pkg/utils"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	authManager, err := auth.NewManager(cfg.Auth)
	if err != nil {
		log.Error("auth init failed", "err", err)
		os.Exit(1)
	}

	db, err := utils.OpenPostgres(rootCtx, "pgx", cfg.PostgresDSN(), utils.PostgresPoolConfig{})
	if err != nil {
		log.Error("postgres init failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb, err := utils.OpenRedis(rootCtx, utils.RedisConfig{Addr: cfg.RedisAddr()})
	if err != nil {
		log.Error("redis init failed", "err", err)
		os.Exit(1)
	}
	defer rdb.Close()

	// Services, Postgres-backed with the Redis heatmap cache on top.
	events := eventlog.NewService(
		chain.NewPostgresStateStore(db),
		eventlog.NewPostgresRepo(db),
		eventlog.RetryPolicy{MaxAttempts: cfg.Chain.MaxAppendAttempts},
	)
	wikiSvc := wiki.NewService(wiki.NewPostgresRepo(db), events)
	timelines := timeline.NewService(timeline.NewPostgresRepo(db))
	bookmarks := bookmark.NewService(bookmark.NewPostgresRepo(db))
	insuranceSvc := insurance.NewService(insurance.NewPostgresRepo(db), insurance.NewRedisCache(rdb))

	if err := wikiSvc.EnsureSeed(rootCtx); err != nil {
		log.Error("wiki seed failed", "err", err)
		os.Exit(1)
	}
	if err := insuranceSvc.EnsureSeed(rootCtx); err != nil {
		log.Error("insurance seed failed", "err", err)
		os.Exit(1)
	}

	// Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))

	h := httpapi.Handlers{
		Auth:      authManager,
		Events:    events,
		Wiki:      wikiSvc,
		Timelines: timelines,
		Bookmarks: bookmarks,
		Insurance: insuranceSvc,
	}
	registerRoutes(r, h, auth.RequireAccessToken(authManager))

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}
}
