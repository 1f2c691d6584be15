package models

import "time"

// HistoricalResult is one instrument evaluated as of a past date: the
// point-in-time snapshot values, the resulting signal, and the forward
// performance from that date to the latest known close.
type HistoricalResult struct {
	Symbol string
	Date   time.Time

	Price    float64
	High52   float64
	Low52    float64
	IV       float64 // carried from defaults; not derivable historically
	Tier     Tier
	LastEarn time.Time
	NextEarn time.Time
	QtrEnd   time.Time

	Signal SignalResult

	// Chart is the down-sampled close series from Date forward.
	Chart []float64
	// CurrentPrice is the latest close; ForwardReturn the percent move
	// from the resolved historical close to it. Nil when the date could
	// not be resolved against the series.
	CurrentPrice  float64
	ForwardReturn *float64
}

// BacktestReport is the full time-machine response for one date.
type BacktestReport struct {
	Date    time.Time
	Results []HistoricalResult

	// BenchmarkReturn is the reference index return over the same span;
	// nil when the benchmark series cannot resolve the date.
	BenchmarkReturn *float64
	// MeanSignalReturn averages ForwardReturn across instruments whose
	// signal was visible on Date; nil when no signal fired.
	MeanSignalReturn *float64
}

// SignalDate is one entry of the signal-date index: a trading date on
// which at least one watched instrument surfaced a signal.
type SignalDate struct {
	Date      time.Time
	HasGreen  bool
	HasYellow bool
}
