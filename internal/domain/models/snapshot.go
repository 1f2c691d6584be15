package models

import "time"

// InstrumentSnapshot is the full input vector for one instrument at one
// evaluation date. It is built fresh per (instrument, date) pair and never
// mutated after construction.
type InstrumentSnapshot struct {
	Symbol string
	Price  float64
	High52 float64
	Low52  float64
	IV     float64
	Tier   Tier

	// Earnings cycle dates. Zero values mean "unknown"; the snapshot
	// builder substitutes estimated dates before the classifier runs.
	LastEarn time.Time
	NextEarn time.Time
	QtrEnd   time.Time

	// EventDate is an optional named catalyst date; zero when none.
	EventName string
	EventDate time.Time

	// Window is the trailing price window for drawdown detection,
	// oldest first. Typically 8 points covering 7 trading days.
	Window []PricePoint
}
