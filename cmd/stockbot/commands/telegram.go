package commands

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/stockbot/internal/store"
	"github.com/wonny/stockbot/internal/telegram"
)

// telegramCmd groups the notification channel admin commands.
var telegramCmd = &cobra.Command{
	Use:   "telegram",
	Short: "Administer the Telegram channel",
	Long: `Administer the Telegram notification channel.

Example:
  stockbot telegram test --message "hello"
  stockbot telegram get --offset 12345
  stockbot telegram sync
  stockbot telegram listen --poll-seconds 2`,
}

var (
	telegramTestCmd = &cobra.Command{
		Use:   "test",
		Short: "Send a test message",
		RunE:  runTelegramTest,
	}

	telegramGetCmd = &cobra.Command{
		Use:   "get",
		Short: "Print recent chat messages",
		RunE:  runTelegramGet,
	}

	telegramSyncCmd = &cobra.Command{
		Use:   "sync",
		Short: "Process pending inbound commands once",
		RunE:  runTelegramSync,
	}

	telegramListenCmd = &cobra.Command{
		Use:   "listen",
		Short: "Long-poll for messages and commands until interrupted",
		RunE:  runTelegramListen,
	}

	// Flags
	telegramMessage   string
	telegramOffset    int64
	telegramPollSecs  float64
	telegramNoLogMsgs bool
)

func init() {
	rootCmd.AddCommand(telegramCmd)
	telegramCmd.AddCommand(telegramTestCmd)
	telegramCmd.AddCommand(telegramGetCmd)
	telegramCmd.AddCommand(telegramSyncCmd)
	telegramCmd.AddCommand(telegramListenCmd)

	telegramTestCmd.Flags().StringVar(&telegramMessage, "message", "Stockbot test message", "message text")
	telegramGetCmd.Flags().Int64Var(&telegramOffset, "offset", 0, "fetch updates starting at this id")
	telegramListenCmd.Flags().Float64Var(&telegramPollSecs, "poll-seconds", 1.0, "pause between polls")
	telegramListenCmd.Flags().BoolVar(&telegramNoLogMsgs, "no-log-messages", false, "do not log chat messages")
}

func runTelegramTest(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	return telegram.New(cfg, log).Send(cmd.Context(), telegramMessage)
}

func runTelegramGet(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	var offset *int64
	if telegramOffset != 0 {
		offset = &telegramOffset
	}
	next, err := telegram.New(cfg, log).LogMessages(cmd.Context(), offset)
	if err != nil {
		return err
	}
	if next != nil {
		fmt.Printf("Next offset: %d\n", *next)
	}
	return nil
}

func runTelegramSync(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	st := store.New(cfg, log)
	state, err := st.LoadState()
	if err != nil {
		return err
	}
	if err := telegram.New(cfg, log).Sync(cmd.Context(), state); err != nil {
		return err
	}
	return st.SaveState(state)
}

func runTelegramListen(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	st := store.New(cfg, log)
	state, err := st.LoadState()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	poll := time.Duration(telegramPollSecs * float64(time.Second))
	listener := telegram.NewListener(telegram.New(cfg, log), st, log, poll, !telegramNoLogMsgs)
	return listener.Listen(ctx, state)
}
