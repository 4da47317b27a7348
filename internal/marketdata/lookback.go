package marketdata

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// StartFromLookback resolves a lookback window like "6mo", "1y", "90d" or
// "4wk" to the start time of the fetch range.
func StartFromLookback(now time.Time, lookback string) (time.Time, error) {
	s := strings.ToLower(strings.TrimSpace(lookback))

	parse := func(suffix string) (int, bool) {
		if !strings.HasSuffix(s, suffix) {
			return 0, false
		}
		n, err := strconv.Atoi(strings.TrimSuffix(s, suffix))
		if err != nil || n <= 0 {
			return 0, false
		}
		return n, true
	}

	// Order matters: "mo" before "o", "wk" before "k".
	if n, ok := parse("mo"); ok {
		return now.AddDate(0, -n, 0), nil
	}
	if n, ok := parse("y"); ok {
		return now.AddDate(-n, 0, 0), nil
	}
	if n, ok := parse("wk"); ok {
		return now.AddDate(0, 0, -7*n), nil
	}
	if n, ok := parse("d"); ok {
		return now.AddDate(0, 0, -n), nil
	}

	return time.Time{}, fmt.Errorf("invalid lookback %q", lookback)
}
