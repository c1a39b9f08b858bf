package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv        string
	HTTPAddr      string
	MetricsAddr   string
	MySQLDSN      string
	MigrationsDir string
	RedisAddr     string
	RedisDB       int
	RedisPass     string
	CacheTTL      time.Duration

	HFBaseURL string
	HFKey     string
	HFModel   string
	HFRPS     int

	GeminiBaseURL string
	GeminiKey     string
	GeminiModel   string
	GeminiRPS     int

	ImportWorkers int
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:        env("APP_ENV", "prod"),
		HTTPAddr:      env("HTTP_ADDR", ":8080"),
		MetricsAddr:   env("METRICS_ADDR", ""),
		MySQLDSN:      env("MYSQL_DSN", "root:root@tcp(localhost:3306)/product_review_db?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		MigrationsDir: env("MIGRATIONS_DIR", ""),
		RedisAddr:     env("REDIS_ADDR", "localhost:6379"),
		RedisPass:     env("REDIS_PASSWORD", ""),
		RedisDB:       atoi("REDIS_DB", 0),
		CacheTTL:      time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,

		HFBaseURL: env("HF_BASE_URL", "https://api-inference.huggingface.co"),
		HFKey:     env("HF_API_KEY", ""),
		HFModel:   env("HF_MODEL", "distilbert-base-uncased-finetuned-sst-2-english"),
		HFRPS:     atoi("HF_RPS", 5),

		GeminiBaseURL: env("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		GeminiKey:     env("GEMINI_API_KEY", ""),
		GeminiModel:   env("GEMINI_MODEL", "gemini-1.5-flash"),
		GeminiRPS:     atoi("GEMINI_RPS", 2),

		ImportWorkers: atoi("IMPORT_WORKERS", 4),
	}
	if c.HFKey == "" {
		log.Warn().Msg("HF_API_KEY is empty; sentiment uses the keyword fallback")
	}
	if c.GeminiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is empty; key points use the sentence fallback")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
