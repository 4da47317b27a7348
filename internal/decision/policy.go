package decision

import "github.com/wonny/stockbot/internal/contracts"

// EntryPolicy is the position-sizing and risk guidance derived from a setup
// type. The mapping is a closed table; every setup type resolves to exactly
// one policy.
type EntryPolicy struct {
	PositionSizing string
	EntryType      string
	EntryLogic     string
	Invalidation   string
}

// PolicyFor maps a setup type to its entry policy. REVERSION and any
// unrecognized type share the most defensive quarter-size limit entry.
func PolicyFor(setup contracts.SetupType) EntryPolicy {
	switch setup {
	case contracts.SetupMomentum:
		return EntryPolicy{
			PositionSizing: "full",
			EntryType:      "market",
			EntryLogic:     "Buy on strength while above SMA20.",
			Invalidation:   "Close back below SMA20.",
		}
	case contracts.SetupTrendReset:
		return EntryPolicy{
			PositionSizing: "half",
			EntryType:      "wait-for-confirmation",
			EntryLogic:     "Enter on reclaim of prior day high.",
			Invalidation:   "Close below SMA50.",
		}
	default:
		return EntryPolicy{
			PositionSizing: "quarter",
			EntryType:      "limit",
			EntryLogic:     "Buy on pullback near SMA20.",
			Invalidation:   "Close below recent swing low.",
		}
	}
}
