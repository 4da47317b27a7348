// Package indicators turns a raw OHLCV series into a feature table of
// rolling technical indicators.
package indicators

import (
	"math"

	"github.com/montanaflynn/stats"

	"github.com/wonny/stockbot/internal/contracts"
)

// rsiEpsilon substitutes a zero average loss so RSI never divides by zero.
const rsiEpsilon = 1e-9

// Build computes SMA20/50, RSI14, VOL20, MOM5, ATR14 and VOLAT20 for each
// bar. The output has the same row count as the input; rows whose look-back
// window is incomplete hold NaN in the affected fields. An empty input
// yields an empty table.
func Build(bars []contracts.Bar) []contracts.FeatureRow {
	n := len(bars)
	rows := make([]contracts.FeatureRow, n)
	if n == 0 {
		return rows
	}

	closes := make([]float64, n)
	volumes := make([]float64, n)
	for i, b := range bars {
		closes[i] = b.Close
		volumes[i] = b.Volume
		rows[i] = contracts.FeatureRow{
			Date:    b.Date,
			Close:   b.Close,
			High:    b.High,
			Low:     b.Low,
			Volume:  b.Volume,
			SMA20:   math.NaN(),
			SMA50:   math.NaN(),
			RSI14:   math.NaN(),
			Vol20:   math.NaN(),
			Mom5:    math.NaN(),
			ATR14:   math.NaN(),
			Volat20: math.NaN(),
		}
	}

	// Day-over-day close deltas split into gains and losses, daily percent
	// returns, and true ranges. Index 0 has no previous close; its true
	// range degrades to high-low.
	gains := make([]float64, n)
	losses := make([]float64, n)
	returns := make([]float64, n)
	trueRanges := make([]float64, n)
	trueRanges[0] = bars[0].High - bars[0].Low
	for i := 1; i < n; i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains[i] = delta
		} else {
			losses[i] = -delta
		}
		if closes[i-1] != 0 {
			returns[i] = closes[i]/closes[i-1] - 1
		}
		prevClose := closes[i-1]
		trueRanges[i] = math.Max(bars[i].High-bars[i].Low,
			math.Max(math.Abs(bars[i].High-prevClose), math.Abs(bars[i].Low-prevClose)))
	}

	for i := 0; i < n; i++ {
		if i >= 19 {
			rows[i].SMA20 = mean(closes[i-19 : i+1])
			rows[i].Vol20 = mean(volumes[i-19 : i+1])
		}
		if i >= 49 {
			rows[i].SMA50 = mean(closes[i-49 : i+1])
		}
		if i >= 14 {
			avgGain := mean(gains[i-13 : i+1])
			avgLoss := mean(losses[i-13 : i+1])
			if avgLoss == 0 {
				avgLoss = rsiEpsilon
			}
			rs := avgGain / avgLoss
			rows[i].RSI14 = 100 - (100 / (1 + rs))
		}
		if i >= 5 && closes[i-5] != 0 {
			rows[i].Mom5 = closes[i]/closes[i-5] - 1
		}
		if i >= 13 {
			rows[i].ATR14 = mean(trueRanges[i-13 : i+1])
		}
		if i >= 20 {
			rows[i].Volat20 = stddev(returns[i-19 : i+1])
		}
	}

	return rows
}

// mean averages a non-empty window.
func mean(window []float64) float64 {
	m, err := stats.Mean(window)
	if err != nil {
		return math.NaN()
	}
	return m
}

// stddev is the sample standard deviation of a window.
func stddev(window []float64) float64 {
	sd, err := stats.StandardDeviationSample(window)
	if err != nil {
		return math.NaN()
	}
	return sd
}
