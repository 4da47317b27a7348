package contracts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// BuyCount is a weekly buy counter. Older documents stored it as a boolean;
// unmarshaling maps false→0 and true→1.
type BuyCount int

// UnmarshalJSON accepts both integer and legacy boolean encodings.
func (c *BuyCount) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "true":
		*c = 1
		return nil
	case "false", "null":
		*c = 0
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid buy count %s: %w", data, err)
	}
	*c = BuyCount(n)
	return nil
}

// TelegramState is the persisted notification sync cursor and heartbeat flag.
type TelegramState struct {
	HeartbeatEnabled bool   `json:"heartbeat_enabled"`
	LastUpdateID     *int64 `json:"last_update_id"`
}

// State is the process-wide persisted document: alert throttle counters,
// the per-week decision log, and the telegram sync state. The decision
// engine is the only writer.
type State struct {
	// week key → ticker → alert count (scan-path throttle)
	WeeklyAlertCounts map[string]map[string]int `json:"weekly_alert_counts_by_ticker"`
	// week key → authoritative decision
	WeeklyDecisions map[string]DecisionRecord `json:"weekly_decisions"`
	// week key → buys taken (independent of the scan-path throttle)
	WeeklyBuyUsed map[string]BuyCount `json:"weekly_buy_used"`
	OpenPick      *string             `json:"open_pick"`
	Telegram      TelegramState       `json:"telegram"`
}

// NewState returns an empty state document with all sections present.
func NewState() *State {
	return &State{
		WeeklyAlertCounts: map[string]map[string]int{},
		WeeklyDecisions:   map[string]DecisionRecord{},
		WeeklyBuyUsed:     map[string]BuyCount{},
	}
}

// Normalize fills sections absent from an on-disk document with defaults.
func (s *State) Normalize() {
	if s.WeeklyAlertCounts == nil {
		s.WeeklyAlertCounts = map[string]map[string]int{}
	}
	if s.WeeklyDecisions == nil {
		s.WeeklyDecisions = map[string]DecisionRecord{}
	}
	if s.WeeklyBuyUsed == nil {
		s.WeeklyBuyUsed = map[string]BuyCount{}
	}
}

// BuyUsed returns the number of buys taken in a week.
func (s *State) BuyUsed(week string) int {
	return int(s.WeeklyBuyUsed[week])
}

// CanSendWeeklyAlert reports whether a ticker has not alerted yet this week.
func (s *State) CanSendWeeklyAlert(week, ticker string) bool {
	return s.WeeklyAlertCounts[week][ticker] < 1
}

// IncrementWeeklyAlert bumps the per-ticker alert count for a week.
func (s *State) IncrementWeeklyAlert(week, ticker string) {
	if s.WeeklyAlertCounts[week] == nil {
		s.WeeklyAlertCounts[week] = map[string]int{}
	}
	s.WeeklyAlertCounts[week][ticker]++
}

// ISOWeekKey converts a time to an ISO year-week key like "2026-03".
func ISOWeekKey(t time.Time) string {
	y, w := t.ISOWeek()
	return fmt.Sprintf("%d-%02d", y, w)
}
