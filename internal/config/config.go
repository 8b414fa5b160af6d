// README: Config loader with env defaults for HTTP, timings, and provider keys.
package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	Log struct {
		Level string
	}
	Sim struct {
		MatchDelay    time.Duration
		SearchTimeout time.Duration
		TickInterval  time.Duration
		SettleDelay   time.Duration
		RandomSeed    int64 // 0 means time-seeded
	}
	AI struct {
		GeminiKey string // optional; blank selects the static fallback provider
	}
	Maps struct {
		APIKey string // optional; blank disables route estimates
	}
}

func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("CARONA_HTTP_ADDR", ":8080")
	cfg.Log.Level = envOrDefault("CARONA_LOG_LEVEL", "info")
	cfg.Sim.MatchDelay = envOrDefaultDuration("CARONA_MATCH_DELAY", 2500*time.Millisecond)
	cfg.Sim.SearchTimeout = envOrDefaultDuration("CARONA_SEARCH_TIMEOUT", 10*time.Second)
	cfg.Sim.TickInterval = envOrDefaultDuration("CARONA_PROGRESS_TICK", 500*time.Millisecond)
	cfg.Sim.SettleDelay = envOrDefaultDuration("CARONA_SETTLE_DELAY", time.Second)
	cfg.Sim.RandomSeed = envOrDefaultInt64("CARONA_RANDOM_SEED", 0)
	cfg.AI.GeminiKey = os.Getenv("GEMINI_API_KEY")
	cfg.Maps.APIKey = os.Getenv("MAPS_API_KEY")
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
