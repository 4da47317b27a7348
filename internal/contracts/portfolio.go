package contracts

// Holding is an open position recorded after a BUY decision. Positions stay
// until externally closed; closing is out of scope here.
type Holding struct {
	Ticker         string    `json:"ticker"`
	SetupType      SetupType `json:"setup_type"`
	EntryDate      string    `json:"entry_date"`
	EntryPrice     float64   `json:"entry_price"`
	PositionSizing string    `json:"position_sizing"`
	Week           string    `json:"week"`
}

// Portfolio is the persisted holdings document plus an append-only decision
// history.
type Portfolio struct {
	Holdings []Holding        `json:"holdings"`
	History  []DecisionRecord `json:"history"`
}

// NewPortfolio returns an empty portfolio document.
func NewPortfolio() *Portfolio {
	return &Portfolio{
		Holdings: []Holding{},
		History:  []DecisionRecord{},
	}
}

// Normalize fills sections absent from an on-disk document with defaults.
func (p *Portfolio) Normalize() {
	if p.Holdings == nil {
		p.Holdings = []Holding{}
	}
	if p.History == nil {
		p.History = []DecisionRecord{}
	}
}

// Holds reports whether a ticker is currently in the holdings list.
func (p *Portfolio) Holds(ticker string) bool {
	for _, h := range p.Holdings {
		if h.Ticker == ticker {
			return true
		}
	}
	return false
}
