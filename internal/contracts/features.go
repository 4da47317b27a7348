package contracts

import (
	"math"
	"time"
)

// FeatureRow is the derived feature set for one (instrument, date).
// Rolling fields hold NaN until their look-back window is complete; such rows
// keep their position in the table and are filtered by consumers, never
// zero-filled.
type FeatureRow struct {
	Date   time.Time
	Close  float64
	High   float64
	Low    float64
	Volume float64

	SMA20   float64
	SMA50   float64
	RSI14   float64
	Vol20   float64
	Mom5    float64
	ATR14   float64
	Volat20 float64
}

// Valid reports whether every rolling feature has a complete window.
func (r FeatureRow) Valid() bool {
	for _, v := range []float64{r.SMA20, r.SMA50, r.RSI14, r.Vol20, r.Mom5, r.ATR14, r.Volat20} {
		if math.IsNaN(v) {
			return false
		}
	}
	return true
}

// FilterValid returns the rows with complete windows, preserving order.
func FilterValid(rows []FeatureRow) []FeatureRow {
	out := make([]FeatureRow, 0, len(rows))
	for _, r := range rows {
		if r.Valid() {
			out = append(out, r)
		}
	}
	return out
}
