package usecase

import (
	"context"
	"fmt"
	"time"

	domrepo "SignalDesk/internal/domain/repository"
	domsvc "SignalDesk/internal/domain/service"
	"SignalDesk/internal/domain/models"
	"SignalDesk/pkg/util"
)

// SignalEvaluator evaluates the watchlist through the scoring pipeline
// for a live or historical date.
type SignalEvaluator struct {
	store   domrepo.SeriesStore
	watch   domsvc.WatchlistSource
	metrics domrepo.Metrics
}

func NewSignalEvaluator(store domrepo.SeriesStore, watch domsvc.WatchlistSource, metrics domrepo.Metrics) *SignalEvaluator {
	return &SignalEvaluator{store: store, watch: watch, metrics: metrics}
}

// EvaluateAll scores every watched instrument as of asOf. Instruments
// whose series cannot resolve the date are skipped; "no data" is an
// expected condition during historical navigation, not an error.
func (e *SignalEvaluator) EvaluateAll(ctx context.Context, asOf time.Time, live bool) ([]models.SignalResult, error) {
	start := time.Now()
	asOf = util.Midnight(asOf)

	out := make([]models.SignalResult, 0, len(e.watch.Instruments()))
	for _, in := range e.watch.Instruments() {
		res, ok, err := e.evaluateOne(ctx, in, asOf, live)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		out = append(out, res)
	}
	e.metrics.RecordLatency("evaluate_all", time.Since(start).Seconds())
	return out, nil
}

// Evaluate scores a single symbol as of asOf.
func (e *SignalEvaluator) Evaluate(ctx context.Context, symbol string, asOf time.Time, live bool) (models.SignalResult, error) {
	in, ok := e.watch.Instrument(symbol)
	if !ok {
		return models.SignalResult{}, fmt.Errorf("symbol %s not in watchlist", symbol)
	}
	res, resolved, err := e.evaluateOne(ctx, in, util.Midnight(asOf), live)
	if err != nil {
		return models.SignalResult{}, err
	}
	if !resolved {
		return models.SignalResult{}, fmt.Errorf("no data for %s at %s", symbol, asOf.Format("2006-01-02"))
	}
	return res, nil
}

func (e *SignalEvaluator) evaluateOne(ctx context.Context, in models.Instrument, asOf time.Time, live bool) (models.SignalResult, bool, error) {
	s, err := e.store.GetDailySeries(ctx, in.Symbol)
	if err != nil {
		e.metrics.RecordError("series_fetch")
		return models.SignalResult{}, false, fmt.Errorf("series %s: %w", in.Symbol, err)
	}
	snap, ok := BuildSnapshot(in, s, asOf, live)
	if !ok {
		return models.SignalResult{}, false, nil
	}
	res := EvaluateSnapshot(asOf, snap)
	if res.Visible {
		e.metrics.RecordSignal(res.Label.String(), res.Symbol)
	}
	return res, true, nil
}
