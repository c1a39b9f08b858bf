package main

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "review_analyzer/internal/adapters/http_server"
	"review_analyzer/internal/adapters/observability"
	redisad "review_analyzer/internal/adapters/redis"
	"review_analyzer/internal/app"
	"review_analyzer/internal/shared"
	mysqlrepo "review_analyzer/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	if cfg.MigrationsDir != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := mysqlrepo.Migrate(ctx, db, cfg.MigrationsDir)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("migrations failed")
		}
		log.Info().Str("dir", cfg.MigrationsDir).Msg("migrations applied")
	}

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	sentiment, keypoints := app.Upstreams(cfg)
	q := app.NewQueryService(repo, cache, cfg.CacheTTL)
	a := app.NewAnalysisService(sentiment, keypoints, repo, cache)

	// http
	srv := server.New()
	metrics := observability.MetricsHandler(observability.InitRegistry())
	srv.Mount("/metrics", metrics)
	observability.Serve(cfg.MetricsAddr, metrics)
	srv.MountHandlers(&server.Handlers{Q: q, A: a})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 10 * time.Second}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
