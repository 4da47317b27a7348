package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/stockbot/internal/marketdata"
	"github.com/wonny/stockbot/internal/replay"
)

var replayDays int

// replayCmd backtests the signal rules over a window of past days.
var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay past data to see when signals would have fired",
	RunE:  runReplay,
}

func init() {
	replayCmd.Flags().IntVar(&replayDays, "days", 180, "number of past days to replay")
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	provider := marketdata.NewYahoo(cfg.Lookback, cfg.Interval, log)

	var hits []replay.Hit
	for _, ticker := range cfg.Tickers {
		tickerHits, err := replay.Signals(cmd.Context(), provider, ticker, replayDays, log)
		if err != nil {
			log.WithError(err).WithField("ticker", ticker).Warn("Replay failed, skipping")
			continue
		}
		hits = append(hits, tickerHits...)
	}

	if len(hits) == 0 {
		fmt.Println("No historical signals found.")
		return nil
	}

	fmt.Printf("%-8s %-12s %10s %10s %10s %8s\n", "TICKER", "DATE", "CLOSE", "SMA20", "SMA50", "RSI14")
	for _, h := range hits {
		fmt.Printf("%-8s %-12s %10.2f %10.2f %10.2f %8.1f\n",
			h.Ticker, h.Date, h.Close, h.SMA20, h.SMA50, h.RSI14)
	}
	fmt.Printf("\n%d signal(s) found\n", len(hits))
	return nil
}
