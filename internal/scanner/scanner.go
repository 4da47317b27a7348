// Package scanner runs the daily signal scan across the configured tickers
// and sends one combined alert for everything that fired.
package scanner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wonny/stockbot/internal/contracts"
	"github.com/wonny/stockbot/internal/indicators"
	"github.com/wonny/stockbot/internal/marketdata"
	"github.com/wonny/stockbot/internal/signals"
	"github.com/wonny/stockbot/internal/store"
	"github.com/wonny/stockbot/internal/telegram"
	"github.com/wonny/stockbot/pkg/config"
	"github.com/wonny/stockbot/pkg/logger"
)

// Alert is a fired signal for one ticker.
type Alert struct {
	Ticker string           `json:"ticker"`
	Signal contracts.Signal `json:"signal"`
}

// Result summarizes one scan run.
type Result struct {
	Alerts []Alert
}

// Scanner orchestrates the scan path: throttle, fetch, features, signal,
// notify, persist.
type Scanner struct {
	cfg      *config.Config
	provider marketdata.Provider
	store    *store.Store
	notifier *telegram.Client
	logger   *logger.Logger
	now      func() time.Time
}

// New creates a scanner.
func New(cfg *config.Config, provider marketdata.Provider, st *store.Store, notifier *telegram.Client, log *logger.Logger) *Scanner {
	return &Scanner{
		cfg:      cfg,
		provider: provider,
		store:    st,
		notifier: notifier,
		logger:   log,
		now:      time.Now,
	}
}

// Run scans all configured tickers. Data unavailability skips the ticker and
// never aborts the batch; only storage failures are fatal.
func (s *Scanner) Run(ctx context.Context) (*Result, error) {
	s.logger.WithFields(map[string]interface{}{
		"tickers":  strings.Join(s.cfg.Tickers, ","),
		"lookback": s.cfg.Lookback,
		"interval": s.cfg.Interval,
	}).Info("Starting scan")

	state, err := s.store.LoadState()
	if err != nil {
		return nil, err
	}

	// Inbound commands first so a /hb flip applies to this run's summary.
	if err := s.notifier.Sync(ctx, state); err != nil {
		s.logger.WithError(err).Warn("Telegram command sync failed")
	}

	week := contracts.ISOWeekKey(s.now())
	var alerts []Alert

	for _, ticker := range s.cfg.Tickers {
		if !state.CanSendWeeklyAlert(week, ticker) {
			s.logger.WithField("ticker", ticker).Info("Already alerted this week, skipping")
			continue
		}

		bars, err := s.provider.DailyBars(ctx, ticker)
		if err != nil {
			s.logger.WithError(err).WithField("ticker", ticker).Warn("Fetch failed, skipping")
			continue
		}
		if len(bars) == 0 {
			s.logger.WithField("ticker", ticker).Warn("No data returned")
			continue
		}

		rows := indicators.Build(bars)
		sig, ok := signals.Detect(rows)
		if !ok {
			continue
		}

		s.logger.WithFields(map[string]interface{}{
			"ticker": ticker,
			"date":   sig.Date,
		}).Info("Signal detected")
		alerts = append(alerts, Alert{Ticker: ticker, Signal: sig})
		state.IncrementWeeklyAlert(week, ticker)
	}

	if len(alerts) > 0 {
		s.logger.WithField("alerts", len(alerts)).Info("Sending alert to Telegram")
		if err := s.notifier.Send(ctx, formatAlerts(alerts)); err != nil {
			// The throttle counters still persist; a lost message is
			// acceptable, a double alert is not.
			s.logger.WithError(err).Error("Failed to send alert")
		}
	} else {
		s.logger.Info("No buy setups today")
	}

	if state.Telegram.HeartbeatEnabled {
		summary := fmt.Sprintf("Scan complete: %d tickers, %d alert(s) found.",
			len(s.cfg.Tickers), len(alerts))
		if err := s.notifier.Send(ctx, summary); err != nil {
			s.logger.WithError(err).Warn("Failed to send heartbeat")
		}
	}

	if err := s.store.SaveState(state); err != nil {
		return nil, err
	}

	return &Result{Alerts: alerts}, nil
}

// formatAlerts renders one combined HTML message for all fired tickers.
func formatAlerts(alerts []Alert) string {
	lines := []string{"<b>BUY SETUPS FOUND</b>"}
	for _, a := range alerts {
		lines = append(lines, fmt.Sprintf(
			"\n<b>%s</b> (%s)"+
				"\nClose: %.2f"+
				"\nSMA20/SMA50: %.2f / %.2f"+
				"\nRSI14: %.1f"+
				"\nVol: %.0f (avg20: %.0f)",
			a.Ticker, a.Signal.Date,
			a.Signal.Close,
			a.Signal.SMA20, a.Signal.SMA50,
			a.Signal.RSI14,
			a.Signal.Volume, a.Signal.Vol20,
		))
	}
	return strings.Join(lines, "\n")
}
