package scheduler

import (
	"context"

	"github.com/wonny/stockbot/internal/scanner"
	"github.com/wonny/stockbot/internal/weekly"
)

// ScanJob runs the daily signal scan.
type ScanJob struct {
	Scanner  *scanner.Scanner
	CronSpec string
}

func (j *ScanJob) Name() string     { return "scan" }
func (j *ScanJob) Schedule() string { return j.CronSpec }

func (j *ScanJob) Run(ctx context.Context) error {
	_, err := j.Scanner.Run(ctx)
	return err
}

// WeeklyJob runs the weekly rank-and-decide pipeline. Re-firing within an
// already-decided week is harmless; the decision engine short-circuits.
type WeeklyJob struct {
	Runner   *weekly.Runner
	CronSpec string
	TopN     int
}

func (j *WeeklyJob) Name() string     { return "weekly" }
func (j *WeeklyJob) Schedule() string { return j.CronSpec }

func (j *WeeklyJob) Run(ctx context.Context) error {
	_, err := j.Runner.Run(ctx, j.TopN, true)
	return err
}
