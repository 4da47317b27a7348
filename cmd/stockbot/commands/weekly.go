package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/stockbot/internal/decision"
	"github.com/wonny/stockbot/internal/marketdata"
	"github.com/wonny/stockbot/internal/rank"
	"github.com/wonny/stockbot/internal/store"
	"github.com/wonny/stockbot/internal/telegram"
	"github.com/wonny/stockbot/internal/weekly"
)

var (
	weeklyTopN   int
	weeklyNoSend bool
)

// weeklyCmd scores and ranks all tickers and records this week's decision.
var weeklyCmd = &cobra.Command{
	Use:   "weekly",
	Short: "Rank setups and record the weekly BUY/HOLD/SKIP decision",
	RunE:  runWeekly,
}

func init() {
	weeklyCmd.Flags().IntVar(&weeklyTopN, "top", 3, "number of top candidates to consider")
	weeklyCmd.Flags().BoolVar(&weeklyNoSend, "no-send", false, "skip the Telegram report")
	rootCmd.AddCommand(weeklyCmd)
}

func runWeekly(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	st := store.New(cfg, log)
	provider := marketdata.NewYahoo(cfg.Lookback, cfg.Interval, log)
	notifier := telegram.New(cfg, log)
	ranker := rank.New(rank.DefaultWeights(), log)
	engine := decision.New(cfg, st, log)

	runner := weekly.NewRunner(cfg, provider, ranker, engine, notifier, log)
	outcome, err := runner.Run(cmd.Context(), weeklyTopN, !weeklyNoSend)
	if err != nil {
		return err
	}

	fmt.Printf("%-4s %-8s %-12s %8s %-12s\n", "#", "TICKER", "DATE", "SCORE", "SETUP")
	for i, c := range outcome.Ranked {
		fmt.Printf("%-4d %-8s %-12s %8.3f %-12s\n", i+1, c.Ticker, c.Date, c.FinalScore, c.SetupType)
	}

	out, err := json.MarshalIndent(outcome.Decision, "", "  ")
	if err != nil {
		return err
	}
	fmt.Printf("\nDecision:\n%s\n", out)
	return nil
}
