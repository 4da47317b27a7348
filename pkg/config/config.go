package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Defaults applied when the environment does not override them.
var (
	DefaultTickers         = []string{"AAPL", "MSFT", "NVDA"}
	DefaultAllowSetupTypes = []string{"REVERSION", "TREND_RESET", "MOMENTUM"}
)

const (
	DefaultLookback         = "6mo"
	DefaultInterval         = "1d"
	DefaultMaxAlertsPerWeek = 1
	DefaultMinScoreToBuy    = 0.62
	DefaultStateFile        = "data/state.json"
	DefaultPortfolioFile    = "data/portfolio.json"
	DefaultScanCron         = "0 0 22 * * 1-5"
	DefaultWeeklyCron       = "0 0 8 * * 1"
)

// Config holds all runtime settings used across the app.
// Loaded once at startup and passed into every component; no ambient lookups.
type Config struct {
	// Universe
	Tickers  []string
	Lookback string
	Interval string

	// Decision rules
	MaxBuyAlertsPerWeek int
	MinScoreToBuy       float64
	AllowSetupTypes     []string

	// Persisted documents
	StateFile     string
	PortfolioFile string

	// Telegram
	TelegramBotToken string
	TelegramChatID   string
	DryRun           bool

	// Scheduler
	ScanCron   string
	WeeklyCron string

	// Logging
	LogLevel  string
	LogFormat string
}

// Load reads configuration from .env/environment and falls back to defaults.
// This function is the only place that calls os.Getenv.
func Load() (*Config, error) {
	// Best effort: a missing .env file is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		Tickers:             splitUpper(os.Getenv("TICKERS"), DefaultTickers),
		Lookback:            getEnv("LOOKBACK", DefaultLookback),
		Interval:            getEnv("INTERVAL", DefaultInterval),
		MaxBuyAlertsPerWeek: DefaultMaxAlertsPerWeek,
		MinScoreToBuy:       DefaultMinScoreToBuy,
		AllowSetupTypes:     splitUpper(os.Getenv("ALLOW_SETUP_TYPES"), DefaultAllowSetupTypes),
		StateFile:           getEnv("STATE_FILE", DefaultStateFile),
		PortfolioFile:       getEnv("PORTFOLIO_FILE", DefaultPortfolioFile),
		TelegramBotToken:    os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:      os.Getenv("TELEGRAM_CHAT_ID"),
		DryRun:              parseBool(getEnv("DRY_RUN", "true")),
		ScanCron:            getEnv("SCAN_CRON", DefaultScanCron),
		WeeklyCron:          getEnv("WEEKLY_CRON", DefaultWeeklyCron),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "console"),
	}

	// Malformed numeric settings are programmer error; fail fast at startup.
	if v := os.Getenv("MAX_ALERTS_PER_WEEK"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_ALERTS_PER_WEEK %q: %w", v, err)
		}
		cfg.MaxBuyAlertsPerWeek = n
	}
	if v := os.Getenv("MIN_SCORE_TO_BUY"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid MIN_SCORE_TO_BUY %q: %w", v, err)
		}
		cfg.MinScoreToBuy = f
	}

	return cfg, nil
}

// getEnv returns the environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// parseBool interprets the truthy spellings accepted for DRY_RUN.
func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}

// splitUpper splits a comma-separated list, trimming and upper-casing entries.
// Returns a copy of fallback when the raw value is empty.
func splitUpper(raw string, fallback []string) []string {
	if strings.TrimSpace(raw) == "" {
		out := make([]string, len(fallback))
		copy(out, fallback)
		return out
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if s := strings.ToUpper(strings.TrimSpace(part)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
