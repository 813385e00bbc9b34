package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	RelayURL    string
	RelayRPS    int
	Workers     int
	StorageBase string
	Bucket      string
	SiteURL     string
	CacheTTL    time.Duration
	SubmitTTL   time.Duration
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
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/offmarket?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisDB:     atoi("REDIS_DB", 0),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RelayURL:    env("RELAY_URL", ""),
		RelayRPS:    atoi("RELAY_RPS", 5),
		Workers:     atoi("RELAY_WORKERS", 4),
		StorageBase: env("STORAGE_BASE_URL", ""),
		Bucket:      env("STORAGE_BUCKET", "contracts"),
		SiteURL:     env("SITE_BASE_URL", "https://www.offmarket-estates.example"),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		SubmitTTL:   time.Duration(atoi("SUBMIT_TTL_SECONDS", 120)) * time.Second,
	}
	if c.RelayURL == "" {
		log.Warn().Msg("RELAY_URL is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
