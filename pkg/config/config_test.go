package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so the host environment cannot
// leak into the assertions. t.Setenv restores the originals afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TICKERS", "LOOKBACK", "INTERVAL",
		"MAX_ALERTS_PER_WEEK", "MIN_SCORE_TO_BUY", "ALLOW_SETUP_TYPES",
		"STATE_FILE", "PORTFOLIO_FILE",
		"TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "DRY_RUN",
		"SCAN_CRON", "WEEKLY_CRON", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"AAPL", "MSFT", "NVDA"}, cfg.Tickers)
	assert.Equal(t, "6mo", cfg.Lookback)
	assert.Equal(t, "1d", cfg.Interval)
	assert.Equal(t, 1, cfg.MaxBuyAlertsPerWeek)
	assert.Equal(t, 0.62, cfg.MinScoreToBuy)
	assert.Equal(t, []string{"REVERSION", "TREND_RESET", "MOMENTUM"}, cfg.AllowSetupTypes)
	assert.Equal(t, "data/state.json", cfg.StateFile)
	assert.Equal(t, "data/portfolio.json", cfg.PortfolioFile)
	assert.True(t, cfg.DryRun, "missing credentials default to dry-run")
	assert.Equal(t, "0 0 22 * * 1-5", cfg.ScanCron)
	assert.Equal(t, "0 0 8 * * 1", cfg.WeeklyCron)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TICKERS", "tsla, amd ,GOOG")
	t.Setenv("LOOKBACK", "1y")
	t.Setenv("MAX_ALERTS_PER_WEEK", "3")
	t.Setenv("MIN_SCORE_TO_BUY", "0.7")
	t.Setenv("ALLOW_SETUP_TYPES", "momentum")
	t.Setenv("DRY_RUN", "false")
	t.Setenv("STATE_FILE", "/tmp/s.json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"TSLA", "AMD", "GOOG"}, cfg.Tickers)
	assert.Equal(t, "1y", cfg.Lookback)
	assert.Equal(t, 3, cfg.MaxBuyAlertsPerWeek)
	assert.Equal(t, 0.7, cfg.MinScoreToBuy)
	assert.Equal(t, []string{"MOMENTUM"}, cfg.AllowSetupTypes)
	assert.False(t, cfg.DryRun)
	assert.Equal(t, "/tmp/s.json", cfg.StateFile)
}

func TestLoad_MalformedNumbersFailFast(t *testing.T) {
	clearEnv(t)
	t.Setenv("MAX_ALERTS_PER_WEEK", "two")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAX_ALERTS_PER_WEEK")

	clearEnv(t)
	t.Setenv("MIN_SCORE_TO_BUY", "high")

	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MIN_SCORE_TO_BUY")
}

func TestParseBool(t *testing.T) {
	for _, v := range []string{"1", "true", "TRUE", "yes", "Y", " y "} {
		assert.Truef(t, parseBool(v), "parseBool(%q)", v)
	}
	for _, v := range []string{"", "0", "false", "no", "off", "nope"} {
		assert.Falsef(t, parseBool(v), "parseBool(%q)", v)
	}
}
