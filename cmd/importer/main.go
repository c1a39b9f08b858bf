package main

import (
	"context"
	"database/sql"
	"os"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"review_analyzer/internal/adapters/observability"
	redisad "review_analyzer/internal/adapters/redis"
	"review_analyzer/internal/app"
	"review_analyzer/internal/importer"
	"review_analyzer/internal/shared"
	mysqlrepo "review_analyzer/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	if len(os.Args) < 2 {
		log.Fatal().Msg("usage: importer <reviews.jsonl>")
	}
	path := os.Args[1]

	log.Info().
		Str("file", path).
		Int("workers", cfg.ImportWorkers).
		Msg("importer starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	f, err := os.Open(path)
	if err != nil {
		log.Fatal().Err(err).Msg("open input failed")
	}
	defer f.Close()

	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	sentiment, keypoints := app.Upstreams(cfg)
	svc := app.NewAnalysisService(sentiment, keypoints, repo, cache)

	res, err := importer.Run(ctx, f, svc, cfg.ImportWorkers)
	if err != nil {
		log.Error().Err(err).Msg("import aborted")
	}
	log.Info().
		Int("read", res.Read).
		Int("analyzed", res.Analyzed).
		Int("failed", res.Failed).
		Msg("import completed")
}
