package contracts

// Signal is the snapshot returned when the daily buy-setup rules fire,
// taken from the last valid feature row.
type Signal struct {
	Date   string  `json:"date"`
	Close  float64 `json:"close"`
	SMA20  float64 `json:"sma20"`
	SMA50  float64 `json:"sma50"`
	RSI14  float64 `json:"rsi14"`
	Volume float64 `json:"volume"`
	Vol20  float64 `json:"vol20"`
}
