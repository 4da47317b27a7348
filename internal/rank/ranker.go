// Package rank scores instruments from their latest feature row and orders
// them into the weekly ranked table.
package rank

import (
	"math"
	"sort"

	"github.com/wonny/stockbot/internal/contracts"
	"github.com/wonny/stockbot/internal/setups"
	"github.com/wonny/stockbot/pkg/logger"
)

// minValidRows excludes instruments with too little history from the ranking
// entirely; they are never scored as zero.
const minValidRows = 60

// Weights defines the sub-score weights for the composite score.
type Weights struct {
	RSI        float64
	Momentum   float64
	Volatility float64
	Distance   float64
}

// DefaultWeights returns the fixed production weights. They sum to 1.0.
func DefaultWeights() Weights {
	return Weights{
		RSI:        0.35,
		Momentum:   0.30,
		Volatility: 0.20,
		Distance:   0.15,
	}
}

// Valid checks that weights sum to 1.0, allowing small floating point error.
func (w Weights) Valid() bool {
	sum := w.RSI + w.Momentum + w.Volatility + w.Distance
	return sum >= 0.99 && sum <= 1.01
}

// Ranker computes composite scores and ranks candidates.
type Ranker struct {
	weights Weights
	logger  *logger.Logger
}

// New creates a new ranker.
func New(weights Weights, log *logger.Logger) *Ranker {
	return &Ranker{weights: weights, logger: log}
}

// ScoreTable scores the latest valid row of a feature table. ok is false when
// the table has fewer than 60 valid rows; such instruments are excluded from
// the ranking.
func (r *Ranker) ScoreTable(ticker string, rows []contracts.FeatureRow) (contracts.Candidate, bool) {
	valid := contracts.FilterValid(rows)
	if len(valid) < minValidRows {
		return contracts.Candidate{}, false
	}
	return r.scoreRow(ticker, valid[len(valid)-1]), true
}

// scoreRow computes the four normalized sub-scores and the weighted
// composite for one feature row.
func (r *Ranker) scoreRow(ticker string, row contracts.FeatureRow) contracts.Candidate {
	dist := setups.DistSMA50Pct(row.Close, row.SMA50)

	rsiScore := 1 - math.Min(math.Abs(row.RSI14-50)/50, 1)
	momScore := clamp(row.Mom5*5, -1, 1)
	volScore := 0.0
	if !math.IsNaN(row.Volat20) {
		volScore = 1 - math.Min(row.Volat20*10, 1)
	}
	distScore := 1 - math.Min(math.Abs(dist)*5, 1)

	finalScore := r.weights.RSI*rsiScore +
		r.weights.Momentum*momScore +
		r.weights.Volatility*volScore +
		r.weights.Distance*distScore

	c := contracts.Candidate{
		Ticker:       ticker,
		Date:         row.Date.Format("2006-01-02"),
		Close:        row.Close,
		SMA20:        row.SMA20,
		SMA50:        row.SMA50,
		RSI14:        row.RSI14,
		Mom5:         row.Mom5,
		ATR14:        row.ATR14,
		Volat20:      row.Volat20,
		DistSMA50Pct: dist,
		RSIScore:     rsiScore,
		MomScore:     momScore,
		VolScore:     volScore,
		DistScore:    distScore,
		FinalScore:   finalScore,
	}
	c.SetupType = setups.Classify(c.RSI14, c.DistSMA50Pct, c.Mom5)

	r.logger.WithFields(map[string]interface{}{
		"ticker": ticker,
		"score":  finalScore,
		"setup":  c.SetupType,
	}).Debug("Scored candidate")

	return c
}

// Rank sorts candidates by final score descending. The sort is stable so
// ties keep their input order; tie-breaking among near-equal scores is the
// decision engine's job, not the ranker's.
func (r *Ranker) Rank(candidates []contracts.Candidate) []contracts.Candidate {
	ranked := make([]contracts.Candidate, len(candidates))
	copy(ranked, candidates)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].FinalScore > ranked[j].FinalScore
	})

	if len(ranked) > 0 {
		r.logger.WithFields(map[string]interface{}{
			"candidates": len(ranked),
			"top_ticker": ranked[0].Ticker,
			"top_score":  ranked[0].FinalScore,
		}).Info("Ranking completed")
	}

	return ranked
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
