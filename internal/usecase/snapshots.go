package usecase

import (
	"time"

	"SignalDesk/internal/domain/models"
	"SignalDesk/internal/services/engine"
	"SignalDesk/internal/services/series"
	"SignalDesk/pkg/util"
)

// BuildSnapshot assembles the input vector for one instrument at one
// evaluation date from its price series and static defaults. Tier and IV
// carry through unchanged; price, range, and window come from point-in-
// time resolution; earnings dates come from authoritative data when the
// evaluation date is current, and from the fiscal-calendar estimator
// otherwise. Returns false when the date predates the series.
func BuildSnapshot(in models.Instrument, s models.PriceSeries, asOf time.Time, live bool) (models.InstrumentSnapshot, bool) {
	price, ok := series.PriceAt(s, asOf)
	if !ok {
		return models.InstrumentSnapshot{}, false
	}
	high, low, _ := series.RangeAt(s, asOf)

	snap := models.InstrumentSnapshot{
		Symbol: in.Symbol,
		Price:  price,
		High52: high,
		Low52:  low,
		IV:     in.IV,
		Tier:   in.Tier,
		Window: series.WindowAt(s, asOf),
	}

	// Authoritative earnings dates describe the current cycle only; for
	// historical evaluation they would leak future information, so the
	// estimator always supplies them there.
	if live {
		snap.LastEarn = in.LastEarn
		snap.NextEarn = in.NextEarn
		snap.QtrEnd = in.QtrEnd
	}
	if snap.LastEarn.IsZero() || snap.NextEarn.IsZero() || snap.QtrEnd.IsZero() {
		est := engine.EstimateEarningsDates(engine.FiscalCalendar{Anchor: in.FiscalAnchorMonth}, asOf)
		if snap.LastEarn.IsZero() {
			snap.LastEarn = est.LastEarn
		}
		if snap.NextEarn.IsZero() {
			snap.NextEarn = est.NextEarn
		}
		if snap.QtrEnd.IsZero() {
			snap.QtrEnd = est.QtrEnd
		}
	}

	if ev := in.LatestEventOnOrBefore(util.EndOfDay(asOf)); ev != nil {
		snap.EventName = ev.Name
		snap.EventDate = ev.Date
	}
	return snap, true
}

// EvaluateSnapshot runs the full classification pipeline on a prepared
// snapshot: period, drawdown, then the composite score. Always recomputed
// together so period and drawdown never mix evaluation dates.
func EvaluateSnapshot(asOf time.Time, snap models.InstrumentSnapshot) models.SignalResult {
	period := engine.ClassifyPeriod(asOf, snap)
	dd := engine.DetectDrawdown(snap.Window)
	return engine.ScoreSignal(asOf, snap, period, dd)
}
