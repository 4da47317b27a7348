// Package replay re-evaluates the signal rules on historical prefixes of a
// series to show when alerts would have fired.
package replay

import (
	"context"

	"github.com/wonny/stockbot/internal/contracts"
	"github.com/wonny/stockbot/internal/indicators"
	"github.com/wonny/stockbot/internal/marketdata"
	"github.com/wonny/stockbot/internal/signals"
	"github.com/wonny/stockbot/pkg/logger"
)

// Hit is one historical signal occurrence.
type Hit struct {
	Ticker string `json:"ticker"`
	contracts.Signal
}

// Signals replays the detector over the last maxDays bars of a ticker.
// Each evaluation sees only the prefix up to its day; the detector's
// no-look-ahead guarantee makes this equivalent to having run live.
func Signals(ctx context.Context, provider marketdata.Provider, ticker string, maxDays int, log *logger.Logger) ([]Hit, error) {
	bars, err := provider.DailyBars(ctx, ticker)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		log.WithField("ticker", ticker).Warn("No data for replay")
		return nil, nil
	}

	// Indicators are computed once over the full series; slicing the
	// feature table by position is identical to recomputing per prefix
	// because every feature is a trailing window.
	rows := indicators.Build(bars)

	start := len(rows) - maxDays
	if start < 60 {
		start = 60
	}

	var hits []Hit
	for i := start; i < len(rows); i++ {
		if sig, ok := signals.Detect(rows[:i+1]); ok {
			hits = append(hits, Hit{Ticker: ticker, Signal: sig})
		}
	}

	log.WithFields(map[string]interface{}{
		"ticker": ticker,
		"days":   maxDays,
		"hits":   len(hits),
	}).Info("Replay finished")
	return hits, nil
}
