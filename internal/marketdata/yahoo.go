package marketdata

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/shopspring/decimal"

	"github.com/wonny/stockbot/internal/contracts"
	"github.com/wonny/stockbot/pkg/logger"
)

// Yahoo fetches daily bars from the Yahoo Finance chart API.
type Yahoo struct {
	lookback string
	interval datetime.Interval
	logger   *logger.Logger
}

// NewYahoo creates a Yahoo provider for the configured lookback/interval.
func NewYahoo(lookback, interval string, log *logger.Logger) *Yahoo {
	return &Yahoo{
		lookback: lookback,
		interval: toInterval(interval),
		logger:   log,
	}
}

// DailyBars downloads OHLCV history for a ticker. A symbol with no data in
// the window yields an empty slice, not an error.
func (y *Yahoo) DailyBars(ctx context.Context, ticker string) ([]contracts.Bar, error) {
	now := time.Now()
	start, err := StartFromLookback(now, y.lookback)
	if err != nil {
		return nil, err
	}

	y.logger.WithFields(map[string]interface{}{
		"ticker":   ticker,
		"lookback": y.lookback,
		"interval": string(y.interval),
	}).Info("Downloading price history")

	params := &chart.Params{
		Symbol:   ticker,
		Interval: y.interval,
		Start:    datetime.New(&start),
		End:      datetime.New(&now),
	}
	params.Context = &ctx

	iter := chart.Get(params)

	var bars []contracts.Bar
	for iter.Next() {
		b := iter.Bar()
		if b.Close.Equal(decimal.Zero) && b.Open.Equal(decimal.Zero) &&
			b.High.Equal(decimal.Zero) && b.Low.Equal(decimal.Zero) {
			continue // null bars (holidays etc.)
		}
		bars = append(bars, contracts.Bar{
			Date:   time.Unix(int64(b.Timestamp), 0),
			Open:   b.Open.InexactFloat64(),
			High:   b.High.InexactFloat64(),
			Low:    b.Low.InexactFloat64(),
			Close:  b.Close.InexactFloat64(),
			Volume: float64(b.Volume),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", ticker, err)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })

	if len(bars) == 0 {
		y.logger.WithField("ticker", ticker).Warn("Empty response from data source")
	}
	return bars, nil
}

// toInterval maps config interval strings onto the chart API's values.
func toInterval(s string) datetime.Interval {
	switch s {
	case "", "1d":
		return datetime.OneDay
	case "5d":
		return datetime.FiveDay
	case "1mo":
		return datetime.OneMonth
	default:
		return datetime.Interval(s)
	}
}
