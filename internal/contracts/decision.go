package contracts

// Action is the weekly decision verb.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionHold Action = "HOLD"
	ActionSkip Action = "SKIP"
)

// EntryLogic describes how a BUY should be entered.
type EntryLogic struct {
	Type  string `json:"type"`
	Logic string `json:"logic"`
}

// RiskLogic describes what invalidates a BUY and where the stop sits.
type RiskLogic struct {
	Invalidation string `json:"invalidation"`
	Stop         string `json:"stop"`
}

// StateUpdates snapshots the throttle counters as of the decision.
type StateUpdates struct {
	WeeklyBuyUsed int     `json:"weekly_buy_used"`
	OpenPick      *string `json:"open_pick"`
}

// DecisionRecord is the authoritative decision for one ISO week. Exactly one
// record exists per week; once recorded it is never overwritten, only
// re-returned.
type DecisionRecord struct {
	Action         Action       `json:"action"`
	Week           string       `json:"week"`
	Date           string       `json:"date"`
	Ticker         string       `json:"ticker,omitempty"`
	SetupType      SetupType    `json:"setup_type,omitempty"`
	PositionSizing string       `json:"position_sizing,omitempty"`
	EntryLogic     *EntryLogic  `json:"entry_logic,omitempty"`
	RiskLogic      *RiskLogic   `json:"risk_logic,omitempty"`
	Reasoning      string       `json:"reasoning,omitempty"`
	Reason         string       `json:"reason,omitempty"`
	StateUpdates   StateUpdates `json:"state_updates"`
}
