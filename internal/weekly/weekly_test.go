package weekly

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/stockbot/internal/contracts"
	"github.com/wonny/stockbot/internal/decision"
	"github.com/wonny/stockbot/internal/rank"
	"github.com/wonny/stockbot/internal/store"
	"github.com/wonny/stockbot/internal/telegram"
	"github.com/wonny/stockbot/pkg/config"
	"github.com/wonny/stockbot/pkg/logger"
)

type fakeProvider struct {
	bars map[string][]contracts.Bar
}

func (f *fakeProvider) DailyBars(_ context.Context, ticker string) ([]contracts.Bar, error) {
	return f.bars[ticker], nil
}

// momentumBars is a rising, mildly oscillating series whose last bar closes
// well above both moving averages with positive five-day momentum.
func momentumBars(n int) []contracts.Bar {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	bars := make([]contracts.Bar, n)
	for i := range bars {
		base := 100 + 0.05*float64(i)
		osc := 0.4
		if i%2 == 1 {
			osc = -0.3
		}
		c := base + osc
		if i == n-1 {
			c = base + 2
		}
		bars[i] = contracts.Bar{
			Date:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}

func newTestRunner(t *testing.T, tickers []string, provider *fakeProvider, minScore float64) *Runner {
	t.Helper()

	dir := t.TempDir()
	cfg := &config.Config{
		Tickers:             tickers,
		MaxBuyAlertsPerWeek: 1,
		MinScoreToBuy:       minScore,
		StateFile:           filepath.Join(dir, "state.json"),
		PortfolioFile:       filepath.Join(dir, "portfolio.json"),
		DryRun:              true,
		LogLevel:            "error",
		LogFormat:           "json",
	}
	log := logger.New(cfg)
	st := store.New(cfg, log)
	ranker := rank.New(rank.DefaultWeights(), log)
	engine := decision.New(cfg, st, log)
	notifier := telegram.New(cfg, log)
	return NewRunner(cfg, provider, ranker, engine, notifier, log)
}

func TestRun_BuysTopMomentumCandidate(t *testing.T) {
	provider := &fakeProvider{bars: map[string][]contracts.Bar{
		"AAPL": momentumBars(115),
	}}
	r := newTestRunner(t, []string{"AAPL"}, provider, 0.10)

	outcome, err := r.Run(context.Background(), 3, false)
	require.NoError(t, err)
	require.Len(t, outcome.Ranked, 1)

	c := outcome.Ranked[0]
	assert.Equal(t, "AAPL", c.Ticker)
	assert.Equal(t, contracts.SetupMomentum, c.SetupType)
	assert.Greater(t, c.Mom5, 0.0)
	assert.Greater(t, c.DistSMA50Pct, 0.0)

	assert.False(t, outcome.Repeat)
	assert.Equal(t, contracts.ActionBuy, outcome.Decision.Action)
	assert.Equal(t, "AAPL", outcome.Decision.Ticker)
	assert.Equal(t, "full", outcome.Decision.PositionSizing)
}

func TestRun_RerunIsIdempotent(t *testing.T) {
	provider := &fakeProvider{bars: map[string][]contracts.Bar{
		"AAPL": momentumBars(115),
	}}
	r := newTestRunner(t, []string{"AAPL"}, provider, 0.10)

	first, err := r.Run(context.Background(), 3, false)
	require.NoError(t, err)
	second, err := r.Run(context.Background(), 3, true)
	require.NoError(t, err)

	assert.True(t, second.Repeat)
	assert.Equal(t, first.Decision, second.Decision)
}

func TestRun_ShortHistoryExcludedFromRanking(t *testing.T) {
	provider := &fakeProvider{bars: map[string][]contracts.Bar{
		"AAPL":  momentumBars(115),
		"NEWCO": momentumBars(70), // 21 valid rows, below the minimum
	}}
	r := newTestRunner(t, []string{"AAPL", "NEWCO"}, provider, 0.10)

	outcome, err := r.Run(context.Background(), 3, false)
	require.NoError(t, err)

	require.Len(t, outcome.Ranked, 1)
	assert.Equal(t, "AAPL", outcome.Ranked[0].Ticker)
}

func TestRun_NoCandidatesStillDecides(t *testing.T) {
	provider := &fakeProvider{bars: map[string][]contracts.Bar{}}
	r := newTestRunner(t, []string{"AAPL"}, provider, 0.10)

	outcome, err := r.Run(context.Background(), 3, false)
	require.NoError(t, err)

	assert.Empty(t, outcome.Ranked)
	assert.Equal(t, contracts.ActionSkip, outcome.Decision.Action)
	assert.Equal(t, "no eligible candidates", outcome.Decision.Reason)
}
