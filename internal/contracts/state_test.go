package contracts

import (
	"encoding/json"
	"testing"
	"time"
)

func TestBuyCount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		data string
		want BuyCount
	}{
		{"integer", `2`, 2},
		{"zero", `0`, 0},
		{"legacy true", `true`, 1},
		{"legacy false", `false`, 0},
		{"null", `null`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c BuyCount
			if err := json.Unmarshal([]byte(tt.data), &c); err != nil {
				t.Fatalf("Unmarshal(%s) error: %v", tt.data, err)
			}
			if c != tt.want {
				t.Errorf("Unmarshal(%s) = %d, want %d", tt.data, c, tt.want)
			}
		})
	}

	var c BuyCount
	if err := json.Unmarshal([]byte(`"oops"`), &c); err == nil {
		t.Error("expected error for string value")
	}
}

func TestState_LegacyBuyUsedDocument(t *testing.T) {
	raw := `{"weekly_buy_used": {"2026-03": true, "2026-04": false, "2026-05": 2}}`

	state := &State{}
	if err := json.Unmarshal([]byte(raw), state); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	state.Normalize()

	if got := state.BuyUsed("2026-03"); got != 1 {
		t.Errorf("BuyUsed(2026-03) = %d, want 1", got)
	}
	if got := state.BuyUsed("2026-04"); got != 0 {
		t.Errorf("BuyUsed(2026-04) = %d, want 0", got)
	}
	if got := state.BuyUsed("2026-05"); got != 2 {
		t.Errorf("BuyUsed(2026-05) = %d, want 2", got)
	}
	if got := state.BuyUsed("2026-06"); got != 0 {
		t.Errorf("BuyUsed(unknown week) = %d, want 0", got)
	}
}

func TestState_Normalize(t *testing.T) {
	state := &State{}
	state.Normalize()

	if state.WeeklyAlertCounts == nil || state.WeeklyDecisions == nil || state.WeeklyBuyUsed == nil {
		t.Fatal("Normalize() left nil sections")
	}
	if state.OpenPick != nil {
		t.Error("OpenPick should default to nil")
	}
}

func TestState_WeeklyAlertThrottle(t *testing.T) {
	state := NewState()
	week := "2026-10"

	if !state.CanSendWeeklyAlert(week, "AAPL") {
		t.Error("fresh state should allow an alert")
	}
	state.IncrementWeeklyAlert(week, "AAPL")
	if state.CanSendWeeklyAlert(week, "AAPL") {
		t.Error("ticker should be throttled after one alert")
	}
	if !state.CanSendWeeklyAlert(week, "MSFT") {
		t.Error("other tickers stay unthrottled")
	}
	if !state.CanSendWeeklyAlert("2026-11", "AAPL") {
		t.Error("a new week resets the throttle")
	}
}

func TestISOWeekKey(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC), "2026-03"},
		{time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), "2026-36"},
		// Jan 1 2027 falls in ISO week 53 of 2026.
		{time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), "2026-53"},
	}

	for _, tt := range tests {
		if got := ISOWeekKey(tt.date); got != tt.want {
			t.Errorf("ISOWeekKey(%s) = %s, want %s", tt.date.Format("2006-01-02"), got, tt.want)
		}
	}
}
