package usecase

import (
	"context"
	"fmt"
	"time"

	domrepo "SignalDesk/internal/domain/repository"
	domsvc "SignalDesk/internal/domain/service"
	"SignalDesk/internal/domain/models"
	"SignalDesk/internal/services/series"
	applogger "SignalDesk/pkg/logger"
	"SignalDesk/pkg/util"
)

// BacktestUseCase replays the scoring pipeline against a past date and
// reports the forward returns from that date to the latest close.
type BacktestUseCase struct {
	store   domrepo.SeriesStore
	watch   domsvc.WatchlistSource
	metrics domrepo.Metrics
	l       *applogger.Logger
}

func NewBacktestUseCase(store domrepo.SeriesStore, watch domsvc.WatchlistSource, metrics domrepo.Metrics) *BacktestUseCase {
	return &BacktestUseCase{store: store, watch: watch, metrics: metrics}
}

// SetLogger injects a structured logger.
func (uc *BacktestUseCase) SetLogger(l *applogger.Logger) { uc.l = l }

// Run evaluates the whole watchlist as of date. Instruments whose series
// do not reach back that far are skipped.
func (uc *BacktestUseCase) Run(ctx context.Context, date time.Time) (*models.BacktestReport, error) {
	start := time.Now()
	date = util.Midnight(date)

	report := &models.BacktestReport{Date: date}
	var visibleSum float64
	var visibleCount int

	for _, in := range uc.watch.Instruments() {
		s, err := uc.store.GetDailySeries(ctx, in.Symbol)
		if err != nil {
			uc.metrics.RecordError("series_fetch")
			return nil, fmt.Errorf("series %s: %w", in.Symbol, err)
		}
		snap, ok := BuildSnapshot(in, s, date, false)
		if !ok {
			if uc.l != nil {
				uc.l.Debug("backtest skip: date predates series",
					applogger.String("symbol", in.Symbol),
					applogger.String("date", date.Format("2006-01-02")),
				)
			}
			continue
		}

		hr := models.HistoricalResult{
			Symbol:   in.Symbol,
			Date:     date,
			Price:    snap.Price,
			High52:   snap.High52,
			Low52:    snap.Low52,
			IV:       snap.IV,
			Tier:     snap.Tier,
			LastEarn: snap.LastEarn,
			NextEarn: snap.NextEarn,
			QtrEnd:   snap.QtrEnd,
			Signal:   EvaluateSnapshot(date, snap),
			Chart:    series.ChartFrom(s, date),
		}
		if last, ok := s.Last(); ok {
			hr.CurrentPrice = last.Close
		}
		if ret, ok := series.ReturnSince(s, date); ok {
			hr.ForwardReturn = &ret
			if hr.Signal.Visible {
				visibleSum += ret
				visibleCount++
			}
		}
		report.Results = append(report.Results, hr)
	}

	if visibleCount > 0 {
		mean := visibleSum / float64(visibleCount)
		report.MeanSignalReturn = &mean
	}

	if bench := uc.watch.Benchmark(); bench != "" {
		bs, err := uc.store.GetDailySeries(ctx, bench)
		if err != nil {
			// the benchmark is contextual; its absence must not fail the backtest
			uc.metrics.RecordError("benchmark_fetch")
			if uc.l != nil {
				uc.l.Warn("benchmark series unavailable", applogger.String("symbol", bench), applogger.Error(err))
			}
		} else if ret, ok := series.ReturnSince(bs, date); ok {
			report.BenchmarkReturn = &ret
		}
	}

	uc.metrics.RecordLatency("backtest", time.Since(start).Seconds())
	return report, nil
}
