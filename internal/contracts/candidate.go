package contracts

// Candidate is the latest feature row of an instrument augmented with its
// score breakdown and setup classification. final_score is roughly in
// [-1, 1]; higher is better.
type Candidate struct {
	Ticker string `json:"ticker"`
	Date   string `json:"date"`

	Close   float64 `json:"close"`
	SMA20   float64 `json:"sma20"`
	SMA50   float64 `json:"sma50"`
	RSI14   float64 `json:"rsi14"`
	Mom5    float64 `json:"mom5"`
	ATR14   float64 `json:"atr14"`
	Volat20 float64 `json:"volat20"`

	DistSMA50Pct float64 `json:"dist_sma50_pct"`

	RSIScore   float64 `json:"rsi_score"`
	MomScore   float64 `json:"mom_score"`
	VolScore   float64 `json:"vol_score"`
	DistScore  float64 `json:"dist_score"`
	FinalScore float64 `json:"final_score"`

	SetupType SetupType `json:"setup_type"`
}
