package commands

import (
	"github.com/spf13/cobra"

	"github.com/wonny/stockbot/internal/marketdata"
	"github.com/wonny/stockbot/internal/scanner"
	"github.com/wonny/stockbot/internal/store"
	"github.com/wonny/stockbot/internal/telegram"
)

// scanCmd runs one daily scan across the configured tickers.
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan all tickers and alert on buy setups",
	RunE:  runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	st := store.New(cfg, log)
	provider := marketdata.NewYahoo(cfg.Lookback, cfg.Interval, log)
	notifier := telegram.New(cfg, log)

	_, err = scanner.New(cfg, provider, st, notifier, log).Run(cmd.Context())
	return err
}
