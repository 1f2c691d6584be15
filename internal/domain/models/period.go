package models

// Period is the instrument's position in its earnings cycle.
type Period int

const (
	// PeriodCrush covers the few days right after earnings or a named
	// catalyst, when implied volatility collapses.
	PeriodCrush Period = iota
	// PeriodQuiet is the run-up to the next earnings report.
	PeriodQuiet
	// PeriodOpen is the rest of the cycle.
	PeriodOpen
)

func (p Period) String() string {
	switch p {
	case PeriodCrush:
		return "CRUSH"
	case PeriodQuiet:
		return "QUIET"
	case PeriodOpen:
		return "OPEN"
	default:
		return "UNKNOWN"
	}
}

// PeriodResult is the classified period plus the days remaining in it.
// DaysLeft for OPEN counts down to the next quarter end.
type PeriodResult struct {
	Period   Period
	DaysLeft int
}
