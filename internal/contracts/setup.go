package contracts

// SetupType is the fixed category of technical pattern a candidate matches.
type SetupType string

const (
	SetupReversion  SetupType = "REVERSION"
	SetupTrendReset SetupType = "TREND_RESET"
	SetupMomentum   SetupType = "MOMENTUM"
	SetupUnknown    SetupType = "UNKNOWN"
)

// InList reports whether the setup type appears in an allow-list of names.
// An empty list allows everything.
func (s SetupType) InList(allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if string(s) == a {
			return true
		}
	}
	return false
}
