// Package signals evaluates the daily buy-setup rules on a feature table.
package signals

import (
	"github.com/wonny/stockbot/internal/contracts"
)

// minValidRows is the history required before the detector may fire.
const minValidRows = 60

// Detect inspects the last two valid rows of a feature table and returns a
// signal snapshot if every rule holds:
//
//	reclaim:  prev close below SMA20, last close back above it
//	trend:    SMA20 above SMA50
//	rsi:      RSI14 below 65 (not overbought)
//	volume:   volume above its 20-day average
//
// Detect only reads the rows it is given, so evaluating a truncated prefix of
// a series never uses information beyond that prefix. Replay depends on this.
func Detect(rows []contracts.FeatureRow) (contracts.Signal, bool) {
	valid := contracts.FilterValid(rows)
	if len(valid) < minValidRows {
		return contracts.Signal{}, false
	}

	last := valid[len(valid)-1]
	prev := valid[len(valid)-2]

	reclaimSMA20 := prev.Close < prev.SMA20 && last.Close > last.SMA20
	trendOK := last.SMA20 > last.SMA50
	rsiOK := last.RSI14 < 65
	volOK := last.Volume > last.Vol20

	if !(reclaimSMA20 && trendOK && rsiOK && volOK) {
		return contracts.Signal{}, false
	}

	return contracts.Signal{
		Date:   last.Date.Format("2006-01-02"),
		Close:  last.Close,
		SMA20:  last.SMA20,
		SMA50:  last.SMA50,
		RSI14:  last.RSI14,
		Volume: last.Volume,
		Vol20:  last.Vol20,
	}, true
}
