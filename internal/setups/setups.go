// Package setups classifies feature rows into setup categories via ordered
// threshold rules.
package setups

import (
	"math"

	"github.com/wonny/stockbot/internal/contracts"
)

// Classify maps (rsi14, dist_sma50_pct, mom5) to a setup type. Rules are
// evaluated in this exact order, first match wins:
//
//	REVERSION:   rsi14 <= 20 AND dist_sma50_pct <= -0.04
//	TREND_RESET: 25 <= rsi14 <= 45 AND |dist_sma50_pct| <= 0.02
//	MOMENTUM:    mom5 > 0 AND dist_sma50_pct > 0
//	else UNKNOWN
func Classify(rsi14, distSMA50Pct, mom5 float64) contracts.SetupType {
	rsi14 = zeroNaN(rsi14)
	dist := zeroNaN(distSMA50Pct)
	mom5 = zeroNaN(mom5)

	switch {
	case rsi14 <= 20 && dist <= -0.04:
		return contracts.SetupReversion
	case rsi14 >= 25 && rsi14 <= 45 && math.Abs(dist) <= 0.02:
		return contracts.SetupTrendReset
	case mom5 > 0 && dist > 0:
		return contracts.SetupMomentum
	default:
		return contracts.SetupUnknown
	}
}

// DistSMA50Pct is the fractional distance of close above SMA50.
// Zero when SMA50 is zero or missing.
func DistSMA50Pct(close, sma50 float64) float64 {
	if sma50 == 0 || math.IsNaN(sma50) {
		return 0
	}
	return (close - sma50) / sma50
}

func zeroNaN(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
