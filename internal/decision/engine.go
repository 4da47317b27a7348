// Package decision renders the idempotent weekly BUY/HOLD/SKIP decision
// against the persisted state and portfolio documents.
package decision

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/wonny/stockbot/internal/contracts"
	"github.com/wonny/stockbot/internal/store"
	"github.com/wonny/stockbot/pkg/config"
	"github.com/wonny/stockbot/pkg/logger"
)

// Engine decides at most once per ISO week. It is the only writer of the
// state and portfolio documents.
type Engine struct {
	cfg    *config.Config
	store  *store.Store
	logger *logger.Logger
	now    func() time.Time
}

// New creates a decision engine.
func New(cfg *config.Config, st *store.Store, log *logger.Logger) *Engine {
	return &Engine{
		cfg:    cfg,
		store:  st,
		logger: log,
		now:    time.Now,
	}
}

// Decide evaluates the top topN candidates of a ranked table and records one
// decision for the current ISO week. Re-entering an already-decided week
// returns the stored record unchanged with repeat=true; nothing is mutated.
// Storage failures are returned to the caller, never swallowed.
func (e *Engine) Decide(ranked []contracts.Candidate, topN int) (contracts.DecisionRecord, bool, error) {
	today := e.now()
	week := contracts.ISOWeekKey(today)
	date := today.Format("2006-01-02")

	state, err := e.store.LoadState()
	if err != nil {
		return contracts.DecisionRecord{}, false, fmt.Errorf("load state: %w", err)
	}
	portfolio, err := e.store.LoadPortfolio()
	if err != nil {
		return contracts.DecisionRecord{}, false, fmt.Errorf("load portfolio: %w", err)
	}

	if prior, ok := state.WeeklyDecisions[week]; ok {
		// Idempotent re-entry: report, never re-record.
		e.logger.WithFields(map[string]interface{}{
			"week":      week,
			"action":    prior.Action,
			"buy_used":  state.BuyUsed(week),
			"open_pick": strPtrOr(state.OpenPick, ""),
		}).Info("Decision already recorded for this week")
		return prior, true, nil
	}

	topSlice := ranked
	if topN > 0 && len(ranked) > topN {
		topSlice = ranked[:topN]
	}

	var eligible []contracts.Candidate
	var ineligibleReasons []string
	for _, c := range topSlice {
		if reason := e.ineligibleReason(c, state, portfolio, week); reason != "" {
			ineligibleReasons = append(ineligibleReasons, reason)
			continue
		}
		eligible = append(eligible, c)
	}

	winner := pickBest(eligible)
	if winner == nil {
		reason := "no eligible candidates"
		if len(ineligibleReasons) > 0 {
			reason = ineligibleReasons[0]
		}
		record := contracts.DecisionRecord{
			Action: contracts.ActionSkip,
			Week:   week,
			Date:   date,
			Reason: reason,
			StateUpdates: contracts.StateUpdates{
				WeeklyBuyUsed: state.BuyUsed(week),
				OpenPick:      state.OpenPick,
			},
		}
		if err := e.persist(state, portfolio, week, record, nil); err != nil {
			return contracts.DecisionRecord{}, false, err
		}
		e.logger.WithFields(map[string]interface{}{
			"week":   week,
			"reason": reason,
		}).Info("Weekly decision: SKIP")
		return record, false, nil
	}

	policy := PolicyFor(winner.SetupType)
	record := contracts.DecisionRecord{
		Action:         contracts.ActionBuy,
		Week:           week,
		Date:           date,
		Ticker:         winner.Ticker,
		SetupType:      winner.SetupType,
		PositionSizing: policy.PositionSizing,
		EntryLogic: &contracts.EntryLogic{
			Type:  policy.EntryType,
			Logic: policy.EntryLogic,
		},
		RiskLogic: &contracts.RiskLogic{
			Invalidation: policy.Invalidation,
			Stop:         stopText(winner.Close, winner.ATR14),
		},
		Reasoning: buildReasoning(*winner, ranked),
		StateUpdates: contracts.StateUpdates{
			WeeklyBuyUsed: state.BuyUsed(week) + 1,
			OpenPick:      &winner.Ticker,
		},
	}

	holding := &contracts.Holding{
		Ticker:         winner.Ticker,
		SetupType:      winner.SetupType,
		EntryDate:      date,
		EntryPrice:     winner.Close,
		PositionSizing: policy.PositionSizing,
		Week:           week,
	}
	if err := e.persist(state, portfolio, week, record, holding); err != nil {
		return contracts.DecisionRecord{}, false, err
	}

	e.logger.WithFields(map[string]interface{}{
		"week":   week,
		"ticker": winner.Ticker,
		"setup":  winner.SetupType,
		"score":  winner.FinalScore,
	}).Info("Weekly decision: BUY")
	return record, false, nil
}

// ineligibleReason applies the eligibility gates in evaluation order and
// returns the first failing reason, or "" when the candidate passes all.
func (e *Engine) ineligibleReason(c contracts.Candidate, state *contracts.State, portfolio *contracts.Portfolio, week string) string {
	if c.FinalScore < e.cfg.MinScoreToBuy {
		return "below MIN_SCORE_TO_BUY"
	}
	if !c.SetupType.InList(e.cfg.AllowSetupTypes) {
		return "setup type not allowed"
	}
	if portfolio.Holds(c.Ticker) {
		return "already held"
	}
	if state.BuyUsed(week) >= e.cfg.MaxBuyAlertsPerWeek {
		return "weekly limit reached"
	}
	return ""
}

// persist records the decision into both documents. State first: losing a
// portfolio append is recoverable from history, a lost decision is not.
func (e *Engine) persist(state *contracts.State, portfolio *contracts.Portfolio, week string, record contracts.DecisionRecord, holding *contracts.Holding) error {
	state.WeeklyDecisions[week] = record
	if record.Action == contracts.ActionBuy {
		state.WeeklyBuyUsed[week] = contracts.BuyCount(state.BuyUsed(week) + 1)
		state.OpenPick = &record.Ticker
	} else {
		state.WeeklyBuyUsed[week] = contracts.BuyCount(state.BuyUsed(week))
	}
	if err := e.store.SaveState(state); err != nil {
		return fmt.Errorf("save state: %w", err)
	}

	if holding != nil {
		portfolio.Holdings = append(portfolio.Holdings, *holding)
	}
	portfolio.History = append(portfolio.History, record)
	if err := e.store.SavePortfolio(portfolio); err != nil {
		return fmt.Errorf("save portfolio: %w", err)
	}
	return nil
}

// stopText formats the 2xATR stop, or "n/a" when ATR is unavailable.
func stopText(close, atr14 float64) string {
	if atr14 == 0 || math.IsNaN(atr14) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", close-2*atr14)
}

// buildReasoning phrases the winner's score gap against the #2 and #3
// ranked candidates.
func buildReasoning(winner contracts.Candidate, ranked []contracts.Candidate) string {
	if len(ranked) == 0 {
		return "Insufficient ranking data to compare candidates."
	}

	lines := []string{fmt.Sprintf(
		"Selected %s as top eligible setup (%s, score %.3f).",
		winner.Ticker, winner.SetupType, winner.FinalScore,
	)}

	for i := 1; i < len(ranked) && i < 3; i++ {
		gap := winner.FinalScore - ranked[i].FinalScore
		lines = append(lines, fmt.Sprintf(
			"Outranked #%d: %s by %.3f score points.",
			i+1, ranked[i].Ticker, gap,
		))
	}

	return strings.Join(lines, " ")
}

func strPtrOr(p *string, fallback string) string {
	if p != nil {
		return *p
	}
	return fallback
}
