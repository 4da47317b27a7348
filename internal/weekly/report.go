package weekly

import (
	"fmt"
	"strings"
	"time"

	"github.com/wonny/stockbot/internal/contracts"
)

var medals = []string{"\U0001F947", "\U0001F948", "\U0001F949"}

// Report renders the weekly top-N message plus the decision block. A week
// re-queried after a BUY reads as HOLD; a re-queried SKIP stays a SKIP.
func Report(outcome *Outcome, topN int) string {
	today := time.Now().Format("2006-01-02")
	shown := topN
	if len(outcome.Ranked) < shown {
		shown = len(outcome.Ranked)
	}

	lines := []string{fmt.Sprintf("<b>TOP %d SETUPS (as of %s)</b>", shown, today)}

	if len(outcome.Ranked) == 0 {
		lines = append(lines, "\nNo valid data / not enough history for scoring.")
	} else {
		for i := 0; i < shown; i++ {
			c := outcome.Ranked[i]
			medal := fmt.Sprintf("%d.", i+1)
			if i < len(medals) {
				medal = medals[i]
			}
			lines = append(lines, fmt.Sprintf(
				"\n%s <b>%s</b> (%s)"+
					"\nScore: %.3f"+
					"\nClose: %.2f"+
					"\nRSI14: %.1f | MOM5: %.2f%%"+
					"\nDist→SMA50: %.2f%% | Vol(20d): %.2f%%"+
					"\nSetup: %s",
				medal, c.Ticker, c.Date,
				c.FinalScore,
				c.Close,
				c.RSI14, c.Mom5*100,
				c.DistSMA50Pct*100, c.Volat20*100,
				c.SetupType,
			))
		}
	}

	lines = append(lines, "\n<b>WEEKLY DECISION</b>")
	lines = append(lines, decisionLines(outcome)...)
	return strings.Join(lines, "\n")
}

// decisionLines formats the decision block for the three outcomes.
func decisionLines(outcome *Outcome) []string {
	d := outcome.Decision

	if outcome.Repeat && d.Action == contracts.ActionBuy {
		return []string{
			"Action: HOLD (already decided this week)",
			fmt.Sprintf("Reason: Holding %s from this week's BUY.", d.Ticker),
		}
	}

	switch d.Action {
	case contracts.ActionBuy:
		lines := []string{
			fmt.Sprintf("Action: BUY %s (%s)", d.Ticker, d.SetupType),
			fmt.Sprintf("Position: %s", d.PositionSizing),
		}
		if d.EntryLogic != nil {
			lines = append(lines, fmt.Sprintf("Entry: %s — %s", d.EntryLogic.Type, d.EntryLogic.Logic))
		}
		if d.RiskLogic != nil {
			lines = append(lines, fmt.Sprintf("Risk: %s | Stop: %s", d.RiskLogic.Invalidation, d.RiskLogic.Stop))
		}
		lines = append(lines, fmt.Sprintf("Reasoning: %s", d.Reasoning))
		return lines
	default:
		return []string{
			"Action: SKIP (no eligible picks)",
			fmt.Sprintf("Reason: %s", d.Reason),
		}
	}
}
