package models

import "time"

// PricePoint is one daily close: unix seconds and a positive close price.
type PricePoint struct {
	TS    int64
	Close float64
}

// PriceSeries is a strictly increasing sequence of daily closes for one
// symbol. It is built once per session and never mutated by the engine.
type PriceSeries []PricePoint

// Len returns the number of points.
func (s PriceSeries) Len() int { return len(s) }

// Last returns the most recent point and true, or a zero point and false
// when the series is empty.
func (s PriceSeries) Last() (PricePoint, bool) {
	if len(s) == 0 {
		return PricePoint{}, false
	}
	return s[len(s)-1], true
}

// Closes copies out the close column.
func (s PriceSeries) Closes() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Close
	}
	return out
}

// Bar is a persisted end-of-day record as stored in ClickHouse and carried
// over the ingest pipeline.
type Bar struct {
	Symbol    string
	Timestamp int64 // unix seconds
	Close     float64
	Volume    float64
}

// BarTime returns the bar timestamp as UTC time.
func (b *Bar) BarTime() time.Time { return time.Unix(b.Timestamp, 0).UTC() }
