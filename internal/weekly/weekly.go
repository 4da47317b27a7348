// Package weekly runs the weekly path: score every ticker's latest feature
// row, rank, decide, and report.
package weekly

import (
	"context"

	"github.com/wonny/stockbot/internal/contracts"
	"github.com/wonny/stockbot/internal/decision"
	"github.com/wonny/stockbot/internal/indicators"
	"github.com/wonny/stockbot/internal/marketdata"
	"github.com/wonny/stockbot/internal/rank"
	"github.com/wonny/stockbot/internal/telegram"
	"github.com/wonny/stockbot/pkg/config"
	"github.com/wonny/stockbot/pkg/logger"
)

// Outcome is the result of one weekly run.
type Outcome struct {
	Ranked   []contracts.Candidate
	Decision contracts.DecisionRecord
	// Repeat marks an idempotent re-entry into an already-decided week.
	Repeat bool
}

// Runner wires the weekly pipeline together.
type Runner struct {
	cfg      *config.Config
	provider marketdata.Provider
	ranker   *rank.Ranker
	engine   *decision.Engine
	notifier *telegram.Client
	logger   *logger.Logger
}

// NewRunner creates a weekly runner.
func NewRunner(cfg *config.Config, provider marketdata.Provider, ranker *rank.Ranker, engine *decision.Engine, notifier *telegram.Client, log *logger.Logger) *Runner {
	return &Runner{
		cfg:      cfg,
		provider: provider,
		ranker:   ranker,
		engine:   engine,
		notifier: notifier,
		logger:   log,
	}
}

// Run scores each ticker on its latest complete feature row, ranks the
// candidates, and makes (or re-returns) this week's decision. When send is
// set the top-N report goes out through the notifier; a failed send never
// invalidates the already-recorded decision.
func (r *Runner) Run(ctx context.Context, topN int, send bool) (*Outcome, error) {
	var candidates []contracts.Candidate

	for _, ticker := range r.cfg.Tickers {
		bars, err := r.provider.DailyBars(ctx, ticker)
		if err != nil {
			r.logger.WithError(err).WithField("ticker", ticker).Warn("Fetch failed, skipping")
			continue
		}
		if len(bars) == 0 {
			r.logger.WithField("ticker", ticker).Warn("No data returned")
			continue
		}

		rows := indicators.Build(bars)
		candidate, ok := r.ranker.ScoreTable(ticker, rows)
		if !ok {
			r.logger.WithField("ticker", ticker).Warn("Not enough history for scoring")
			continue
		}
		candidates = append(candidates, candidate)
	}

	ranked := r.ranker.Rank(candidates)

	record, repeat, err := r.engine.Decide(ranked, topN)
	if err != nil {
		return nil, err
	}
	outcome := &Outcome{Ranked: ranked, Decision: record, Repeat: repeat}

	if send {
		if err := r.notifier.Send(ctx, Report(outcome, topN)); err != nil {
			r.logger.WithError(err).Error("Failed to send weekly report")
		}
	}

	return outcome, nil
}
