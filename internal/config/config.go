package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	DatabaseURL string
	RedisURL    string

	HTTPPort        int
	APIKey          string
	RateLimitPerMin int

	TelegramBotToken string
	PnLSourceURL     string

	OpenAIAPIKey string
	OpenAIModel  string

	TrustAlpha         float64
	MaterialityPnLPct  float64
	ResolverPollSecs   int
	ResolverBatchSize  int
	OutcomeDeadlineHrs int
	PerfCacheTTLSecs   int
}

func Load() *Config {
	cfg := &Config{
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
		APIKey:           strings.TrimSpace(os.Getenv("API_KEY")),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		PnLSourceURL:     strings.TrimSpace(os.Getenv("PNL_SOURCE_URL")),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: DATABASE_URL not set")
	}
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set, defaulting to localhost:6379")
		cfg.RedisURL = "localhost:6379"
	}
	if cfg.APIKey == "" {
		log.Println("Warning: API_KEY not set, HTTP API is unauthenticated")
	}
	if cfg.TelegramBotToken == "" {
		log.Println("Warning: TELEGRAM_BOT_TOKEN not set, bot disabled")
	}
	if cfg.OpenAIAPIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set, decision explainer will use the local fallback")
	}
	if cfg.PnLSourceURL == "" {
		log.Println("Warning: PNL_SOURCE_URL not set, automatic outcome resolution disabled")
	}

	cfg.HTTPPort = 8080
	if v := strings.TrimSpace(os.Getenv("HTTP_PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HTTPPort = n
		}
	}

	cfg.RateLimitPerMin = 120
	if v := strings.TrimSpace(os.Getenv("RATE_LIMIT_PER_MIN")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RateLimitPerMin = n
		}
	}

	cfg.OpenAIModel = strings.TrimSpace(os.Getenv("OPENAI_MODEL"))
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = "gpt-4o-mini"
	}

	cfg.TrustAlpha = 0.10
	if v := strings.TrimSpace(os.Getenv("TRUST_ALPHA")); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil && n > 0 && n < 1 {
			cfg.TrustAlpha = n
		}
	}

	cfg.MaterialityPnLPct = 0.5
	if v := strings.TrimSpace(os.Getenv("MATERIALITY_PNL_PCT")); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil && n > 0 {
			cfg.MaterialityPnLPct = n
		}
	}

	cfg.ResolverPollSecs = 300
	if v := strings.TrimSpace(os.Getenv("RESOLVER_POLL_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ResolverPollSecs = n
		}
	}

	cfg.ResolverBatchSize = 40
	if v := strings.TrimSpace(os.Getenv("RESOLVER_BATCH")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ResolverBatchSize = n
		}
	}

	cfg.OutcomeDeadlineHrs = 24
	if v := strings.TrimSpace(os.Getenv("OUTCOME_DEADLINE_HOURS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.OutcomeDeadlineHrs = n
		}
	}

	cfg.PerfCacheTTLSecs = 30
	if v := strings.TrimSpace(os.Getenv("PERF_CACHE_TTL_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PerfCacheTTLSecs = n
		}
	}

	return cfg
}
