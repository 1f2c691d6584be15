package service

import "SignalDesk/internal/domain/models"

// WatchlistSource supplies the session's watched instruments with their
// static defaults (tier, IV, fiscal calendar, catalyst events, splits).
type WatchlistSource interface {
	Instruments() []models.Instrument
	Instrument(symbol string) (models.Instrument, bool)
	// Benchmark returns the reference index symbol used to contextualize
	// backtested returns.
	Benchmark() string
}
