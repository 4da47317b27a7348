package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/stockbot/pkg/config"
	"github.com/wonny/stockbot/pkg/logger"
)

var (
	// Global flags; empty/negative means "not set", keep the env value.
	flagTickers       string
	flagLookback      string
	flagInterval      string
	flagStateFile     string
	flagPortfolioFile string
	flagMaxAlerts     int
	flagBotToken      string
	flagChatID        string
	flagDryRun        bool
	flagVerbose       bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stockbot",
	Short: "Weekly stock setup scanner and decision engine",
	Long: `Stockbot CLI

Scans daily price history for rule-based technical setups, ranks candidates
weekly, and records one idempotent BUY/HOLD/SKIP decision per ISO week.

Examples:
  stockbot scan
  stockbot replay --days 180
  stockbot weekly --top 3
  stockbot telegram listen
  stockbot schedule`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagTickers, "tickers", "", "comma-separated tickers (overrides TICKERS)")
	pf.StringVar(&flagLookback, "lookback", "", "history window, e.g. 6mo (overrides LOOKBACK)")
	pf.StringVar(&flagInterval, "interval", "", "bar interval, e.g. 1d (overrides INTERVAL)")
	pf.StringVar(&flagStateFile, "state-file", "", "state document path (overrides STATE_FILE)")
	pf.StringVar(&flagPortfolioFile, "portfolio-file", "", "portfolio document path (overrides PORTFOLIO_FILE)")
	pf.IntVar(&flagMaxAlerts, "max-alerts-per-week", -1, "weekly buy cap (overrides MAX_ALERTS_PER_WEEK)")
	pf.StringVar(&flagBotToken, "telegram-bot-token", "", "bot token (overrides TELEGRAM_BOT_TOKEN)")
	pf.StringVar(&flagChatID, "telegram-chat-id", "", "chat id (overrides TELEGRAM_CHAT_ID)")
	pf.BoolVar(&flagDryRun, "dry-run", false, "log messages instead of sending")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "verbose output")
}

// loadConfig builds the runtime config from env/.env plus CLI overrides and
// creates the logger.
func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	if flagTickers != "" {
		var tickers []string
		for _, t := range strings.Split(flagTickers, ",") {
			if s := strings.ToUpper(strings.TrimSpace(t)); s != "" {
				tickers = append(tickers, s)
			}
		}
		cfg.Tickers = tickers
	}
	if flagLookback != "" {
		cfg.Lookback = flagLookback
	}
	if flagInterval != "" {
		cfg.Interval = flagInterval
	}
	if flagStateFile != "" {
		cfg.StateFile = flagStateFile
	}
	if flagPortfolioFile != "" {
		cfg.PortfolioFile = flagPortfolioFile
	}
	if flagMaxAlerts >= 0 {
		cfg.MaxBuyAlertsPerWeek = flagMaxAlerts
	}
	if flagBotToken != "" {
		cfg.TelegramBotToken = flagBotToken
	}
	if flagChatID != "" {
		cfg.TelegramChatID = flagChatID
	}
	if flagDryRun {
		cfg.DryRun = true
	}
	if flagVerbose {
		cfg.LogLevel = "debug"
	}

	return cfg, logger.New(cfg), nil
}
