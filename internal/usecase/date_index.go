package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	domrepo "SignalDesk/internal/domain/repository"
	domsvc "SignalDesk/internal/domain/service"
	"SignalDesk/internal/domain/models"
	icache "SignalDesk/internal/service/cache"
	"SignalDesk/internal/services/series"
	applogger "SignalDesk/pkg/logger"
	"SignalDesk/pkg/util"
)

const indexCacheKey = "signal_dates"

// SignalDateIndex precomputes every trading date in the supported
// lookback window on which at least one watched instrument surfaced a
// signal. Building runs the full pipeline over O(instruments x trading
// days) and is memoized per session; navigation reads the cached index.
type SignalDateIndex struct {
	store   domrepo.SeriesStore
	watch   domsvc.WatchlistSource
	metrics domrepo.Metrics
	cache   *icache.TTLCache
	ttl     time.Duration
	l       *applogger.Logger

	mu sync.Mutex // serializes rebuilds
}

func NewSignalDateIndex(store domrepo.SeriesStore, watch domsvc.WatchlistSource, metrics domrepo.Metrics, ttl time.Duration) *SignalDateIndex {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &SignalDateIndex{
		store:   store,
		watch:   watch,
		metrics: metrics,
		cache:   icache.NewTTLCache(),
		ttl:     ttl,
	}
}

// SetLogger injects a structured logger.
func (ix *SignalDateIndex) SetLogger(l *applogger.Logger) { ix.l = l }

// Dates returns the ordered signal-date index, building it on first use.
func (ix *SignalDateIndex) Dates(ctx context.Context) ([]models.SignalDate, error) {
	if v, ok := ix.cache.Get(indexCacheKey); ok {
		return v.([]models.SignalDate), nil
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()
	// another caller may have built it while we waited
	if v, ok := ix.cache.Get(indexCacheKey); ok {
		return v.([]models.SignalDate), nil
	}

	dates, err := ix.build(ctx)
	if err != nil {
		return nil, err
	}
	ix.cache.Set(indexCacheKey, dates, ix.ttl)
	return dates, nil
}

// Prev returns the latest signal date strictly before date, or nil at the
// start of the index.
func (ix *SignalDateIndex) Prev(ctx context.Context, date time.Time) (*models.SignalDate, error) {
	dates, err := ix.Dates(ctx)
	if err != nil {
		return nil, err
	}
	target := util.Midnight(date)
	// first index at or after target; predecessor is the answer
	i := sort.Search(len(dates), func(i int) bool { return !dates[i].Date.Before(target) })
	if i == 0 {
		return nil, nil
	}
	d := dates[i-1]
	return &d, nil
}

// Next returns the earliest signal date strictly after date, or nil at
// the end of the index.
func (ix *SignalDateIndex) Next(ctx context.Context, date time.Time) (*models.SignalDate, error) {
	dates, err := ix.Dates(ctx)
	if err != nil {
		return nil, err
	}
	target := util.Midnight(date)
	i := sort.Search(len(dates), func(i int) bool { return dates[i].Date.After(target) })
	if i == len(dates) {
		return nil, nil
	}
	d := dates[i]
	return &d, nil
}

func (ix *SignalDateIndex) build(ctx context.Context) ([]models.SignalDate, error) {
	start := time.Now()
	entries := make(map[int64]*models.SignalDate)

	for _, in := range ix.watch.Instruments() {
		s, err := ix.store.GetDailySeries(ctx, in.Symbol)
		if err != nil {
			ix.metrics.RecordError("series_fetch")
			return nil, fmt.Errorf("series %s: %w", in.Symbol, err)
		}
		if s.Len() < series.MinIndexableBars {
			if ix.l != nil {
				ix.l.Warn("series too short to index",
					applogger.String("symbol", in.Symbol),
					applogger.Int("bars", s.Len()),
				)
			}
			continue
		}
		// the first indexable bar is the one with a full 52-week window
		// behind it
		for idx := series.MinIndexableBars - 1; idx < s.Len(); idx++ {
			day := util.Midnight(time.Unix(s[idx].TS, 0))
			snap, ok := BuildSnapshot(in, s, day, false)
			if !ok {
				continue
			}
			res := EvaluateSnapshot(day, snap)
			if !res.Visible {
				continue
			}
			e := entries[day.Unix()]
			if e == nil {
				e = &models.SignalDate{Date: day}
				entries[day.Unix()] = e
			}
			switch res.Label {
			case models.LabelGreen:
				e.HasGreen = true
			case models.LabelYellow:
				e.HasYellow = true
			}
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
	}

	out := make([]models.SignalDate, 0, len(entries))
	for _, e := range entries {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	ix.metrics.RecordIndexBuild(time.Since(start).Seconds(), len(out))
	if ix.l != nil {
		ix.l.Info("signal date index built",
			applogger.Int("dates", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}
