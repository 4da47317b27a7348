package setups

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/stockbot/internal/contracts"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		rsi  float64
		dist float64
		mom  float64
		want contracts.SetupType
	}{
		{"deep oversold", 18, -0.06, -0.01, contracts.SetupReversion},
		{"reversion at boundaries", 20, -0.04, 0, contracts.SetupReversion},
		{"oversold but near sma50", 18, -0.03, 0, contracts.SetupUnknown},
		{"pullback in trend", 35, 0.01, -0.005, contracts.SetupTrendReset},
		{"trend reset lower rsi bound", 25, -0.02, 0, contracts.SetupTrendReset},
		{"trend reset upper rsi bound", 45, 0.02, 0, contracts.SetupTrendReset},
		{"rsi just above reset band", 45.01, 0.01, 0, contracts.SetupUnknown},
		{"momentum", 55, 0.03, 0.02, contracts.SetupMomentum},
		{"momentum needs positive dist", 55, 0, 0.02, contracts.SetupUnknown},
		{"momentum needs positive mom", 55, 0.03, 0, contracts.SetupUnknown},
		{"neutral", 50, -0.01, -0.01, contracts.SetupUnknown},
		{"nan inputs treated as zero", math.NaN(), math.NaN(), math.NaN(), contracts.SetupUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.rsi, tt.dist, tt.mom))
		})
	}
}

// The rules overlap on paper (rsi 20 with dist -0.04 could read as both
// oversold and in-band momentum territory for other inputs); ordered
// evaluation must make the outcome deterministic and first-match.
func TestClassify_FirstMatchWins(t *testing.T) {
	// REVERSION conditions plus a positive mom5 would also satisfy nothing
	// else, but MOMENTUM-looking inputs inside the TREND_RESET band must
	// classify as TREND_RESET.
	got := Classify(30, 0.01, 0.5)
	assert.Equal(t, contracts.SetupTrendReset, got)

	for _, rsi := range []float64{0, 10, 20, 25, 30, 45, 50, 65, 80, 100} {
		for _, dist := range []float64{-0.10, -0.04, -0.02, 0, 0.01, 0.02, 0.05} {
			for _, mom := range []float64{-0.05, 0, 0.05} {
				want := contracts.SetupUnknown
				switch {
				case rsi <= 20 && dist <= -0.04:
					want = contracts.SetupReversion
				case rsi >= 25 && rsi <= 45 && math.Abs(dist) <= 0.02:
					want = contracts.SetupTrendReset
				case mom > 0 && dist > 0:
					want = contracts.SetupMomentum
				}
				assert.Equalf(t, want, Classify(rsi, dist, mom),
					"rsi=%v dist=%v mom=%v", rsi, dist, mom)
			}
		}
	}
}

func TestDistSMA50Pct(t *testing.T) {
	assert.InDelta(t, 0.04, DistSMA50Pct(104, 100), 1e-9)
	assert.InDelta(t, -0.05, DistSMA50Pct(95, 100), 1e-9)
	assert.Equal(t, 0.0, DistSMA50Pct(100, 0), "zero sma50 degrades to zero distance")
	assert.Equal(t, 0.0, DistSMA50Pct(100, math.NaN()))
}
