package decision

import "github.com/wonny/stockbot/internal/contracts"

// scoreEpsilon bounds how close to the maximum score a candidate must be to
// enter the tie-break.
const scoreEpsilon = 0.01

// pickBest selects the winning candidate among the eligible rows. All rows
// within scoreEpsilon of the maximum score are retained; a single survivor
// wins outright, otherwise the setup-specific tie key decides:
//
//	REVERSION:   ascending (rsi14, dist_sma50_pct), more oversold wins
//	TREND_RESET: ascending |dist_sma50_pct|, closest to the average wins
//	MOMENTUM:    ascending -mom5, strongest momentum wins
//	other:       sorts last
//
// Returns nil when there are no eligible rows.
func pickBest(eligible []contracts.Candidate) *contracts.Candidate {
	if len(eligible) == 0 {
		return nil
	}

	best := eligible[0].FinalScore
	for _, c := range eligible[1:] {
		if c.FinalScore > best {
			best = c.FinalScore
		}
	}

	var tied []contracts.Candidate
	for _, c := range eligible {
		if c.FinalScore >= best-scoreEpsilon {
			tied = append(tied, c)
		}
	}

	winner := tied[0]
	for _, c := range tied[1:] {
		if keyLess(tieKey(c), tieKey(winner)) {
			winner = c
		}
	}
	return &winner
}

// tieKey encodes the setup-specific ordering as a lexicographic float key.
func tieKey(c contracts.Candidate) []float64 {
	switch c.SetupType {
	case contracts.SetupReversion:
		return []float64{c.RSI14, c.DistSMA50Pct}
	case contracts.SetupTrendReset:
		d := c.DistSMA50Pct
		if d < 0 {
			d = -d
		}
		return []float64{d}
	case contracts.SetupMomentum:
		return []float64{-c.Mom5}
	default:
		return []float64{999.0}
	}
}

// keyLess compares two tie keys lexicographically. A shorter key that is a
// prefix of the other does not sort before it.
func keyLess(a, b []float64) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
