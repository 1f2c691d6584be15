package models

import "time"

// Tier controls which signal labels are surfaced for an instrument.
// Tier 1 instruments show GREEN and YELLOW; tier 2 shows GREEN only.
type Tier int

const (
	Tier1 Tier = 1
	Tier2 Tier = 2
)

// CatalystEvent is a named, dated catalyst (FDA decision, product launch, ...)
// that opens a CRUSH window the same way an earnings report does.
type CatalystEvent struct {
	Name string
	Date time.Time
}

// Split records a stock split so pre-split closes can be normalized.
type Split struct {
	Date  time.Time
	Ratio float64 // 2 means 2-for-1
}

// Instrument is a watchlist entry with its static per-symbol policy.
// Earnings dates are refreshed by collaborators; everything here is
// session-stable configuration.
type Instrument struct {
	Symbol            string
	Name              string
	Tier              Tier
	IV                float64 // implied volatility, informational only
	FiscalAnchorMonth time.Month
	Events            []CatalystEvent
	Splits            []Split
	Adjusted          bool // true when the provider already returns split-adjusted closes

	// Authoritative earnings dates when known; zero when the
	// earnings-cycle estimator must fill them in.
	LastEarn time.Time
	NextEarn time.Time
	QtrEnd   time.Time
}

// LatestEventOnOrBefore returns the most recent catalyst event dated on or
// before t, or nil if none is configured. The period classifier decides
// whether the event is still inside its CRUSH window.
func (in *Instrument) LatestEventOnOrBefore(t time.Time) *CatalystEvent {
	var best *CatalystEvent
	for i := range in.Events {
		e := &in.Events[i]
		if e.Date.After(t) {
			continue
		}
		if best == nil || e.Date.After(best.Date) {
			best = e
		}
	}
	return best
}
