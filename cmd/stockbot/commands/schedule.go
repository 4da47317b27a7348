package commands

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/stockbot/internal/decision"
	"github.com/wonny/stockbot/internal/marketdata"
	"github.com/wonny/stockbot/internal/rank"
	"github.com/wonny/stockbot/internal/scanner"
	"github.com/wonny/stockbot/internal/scheduler"
	"github.com/wonny/stockbot/internal/store"
	"github.com/wonny/stockbot/internal/telegram"
	"github.com/wonny/stockbot/internal/weekly"
)

var scheduleTopN int

// scheduleCmd runs the scan and weekly pipelines on their cron schedules
// until interrupted.
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run scan and weekly jobs on cron schedules",
	RunE:  runSchedule,
}

func init() {
	scheduleCmd.Flags().IntVar(&scheduleTopN, "top", 3, "number of top candidates for the weekly job")
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	st := store.New(cfg, log)
	provider := marketdata.NewYahoo(cfg.Lookback, cfg.Interval, log)
	notifier := telegram.New(cfg, log)
	ranker := rank.New(rank.DefaultWeights(), log)
	engine := decision.New(cfg, st, log)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched := scheduler.New(log)
	if err := sched.AddJob(ctx, &scheduler.ScanJob{
		Scanner:  scanner.New(cfg, provider, st, notifier, log),
		CronSpec: cfg.ScanCron,
	}); err != nil {
		return err
	}
	if err := sched.AddJob(ctx, &scheduler.WeeklyJob{
		Runner:   weekly.NewRunner(cfg, provider, ranker, engine, notifier, log),
		CronSpec: cfg.WeeklyCron,
		TopN:     scheduleTopN,
	}); err != nil {
		return err
	}

	sched.Start()
	defer sched.Stop()

	log.Info("Scheduler running, press Ctrl+C to stop")
	<-ctx.Done()
	return nil
}
