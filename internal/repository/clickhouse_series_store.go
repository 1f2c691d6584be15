package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"SignalDesk/internal/domain/models"
	domrepo "SignalDesk/internal/domain/repository"
	domsvc "SignalDesk/internal/domain/service"
	"SignalDesk/internal/services/series"
	pkgcache "SignalDesk/pkg/cache"
	pkgch "SignalDesk/pkg/clickhouse"
	applogger "SignalDesk/pkg/logger"
)

// SeriesBackfill supplies daily close history from an external provider
// for instruments the local store has not accumulated yet.
type SeriesBackfill interface {
	DailyCloses(ctx context.Context, symbol string, from, to time.Time) (models.PriceSeries, error)
}

// CHSeriesStore implements SeriesStore backed by ClickHouse, with an
// optional layered cache in front of the daily-close query and an
// optional REST backfill behind it.
type CHSeriesStore struct {
	db      *sql.DB
	table   string
	watch   domsvc.WatchlistSource
	cache   pkgcache.Service
	ttl     time.Duration
	history SeriesBackfill
	l       *applogger.Logger
}

func NewCHSeriesStore(ch *pkgch.Client, table string, watch domsvc.WatchlistSource) *CHSeriesStore {
	if table == "" {
		table = "signaldesk.daily_bars"
	}
	return &CHSeriesStore{db: ch.DB(), table: table, ttl: 10 * time.Minute, watch: watch}
}

// SetLogger injects a structured logger.
func (s *CHSeriesStore) SetLogger(l *applogger.Logger) { s.l = l }

// SetCache enables read-through caching of resolved series.
func (s *CHSeriesStore) SetCache(c pkgcache.Service, ttl time.Duration) {
	s.cache = c
	if ttl > 0 {
		s.ttl = ttl
	}
}

// SetHistory enables backfill from an external daily-close provider when
// the local table holds fewer bars than a full lookback window.
func (s *CHSeriesStore) SetHistory(h SeriesBackfill) { s.history = h }

// GetDailySeries returns the full daily close history for symbol in
// ascending timestamp order, split-adjusted when the watchlist marks the
// raw feed as unadjusted.
func (s *CHSeriesStore) GetDailySeries(ctx context.Context, symbol string) (models.PriceSeries, error) {
	if s.cache != nil {
		var cached models.PriceSeries
		if err := s.cache.Get(ctx, seriesKey(symbol), &cached); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	start := time.Now()
	const qtpl = `
        SELECT ts, close
        FROM %s
        WHERE symbol = ?
        ORDER BY ts ASC
    `
	q := fmt.Sprintf(qtpl, s.table)
	rows, err := s.db.QueryContext(ctx, q, symbol)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse daily_series query error",
				applogger.String("table", s.table),
				applogger.String("symbol", symbol),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("get daily series: %w", err)
	}
	defer rows.Close()

	out := make(models.PriceSeries, 0, 1024)
	for rows.Next() {
		var ts time.Time
		var c float64
		if err := rows.Scan(&ts, &c); err != nil {
			if s.l != nil {
				s.l.Error("clickhouse daily_series scan error",
					applogger.String("table", s.table),
					applogger.String("symbol", symbol),
					applogger.Error(err),
				)
			}
			return nil, fmt.Errorf("scan close: %w", err)
		}
		out = append(out, models.PricePoint{TS: ts.Unix(), Close: c})
	}
	if err := rows.Err(); err != nil {
		if s.l != nil {
			s.l.Error("clickhouse daily_series rows error",
				applogger.String("table", s.table),
				applogger.String("symbol", symbol),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("rows: %w", err)
	}

	if len(out) < series.MinIndexableBars && s.history != nil {
		now := time.Now()
		fetched, ferr := s.history.DailyCloses(ctx, symbol, now.AddDate(-2, 0, 0), now)
		if ferr != nil {
			if s.l != nil {
				s.l.Warn("history backfill error",
					applogger.String("symbol", symbol),
					applogger.Error(ferr),
				)
			}
		} else if len(fetched) > len(out) {
			if s.l != nil {
				s.l.Info("history backfill",
					applogger.String("symbol", symbol),
					applogger.Int("local_rows", len(out)),
					applogger.Int("fetched_rows", len(fetched)),
				)
			}
			out = fetched
		}
	}

	out = s.adjust(symbol, out)

	if s.l != nil {
		s.l.Info("clickhouse daily_series ok",
			applogger.String("table", s.table),
			applogger.String("symbol", symbol),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}

	if s.cache != nil && len(out) > 0 {
		_ = s.cache.Set(ctx, seriesKey(symbol), out, s.ttl)
	}
	return out, nil
}

func (s *CHSeriesStore) adjust(symbol string, raw models.PriceSeries) models.PriceSeries {
	if s.watch == nil {
		return raw
	}
	in, ok := s.watch.Instrument(symbol)
	if !ok || in.Adjusted || len(in.Splits) == 0 {
		return raw
	}
	return series.AdjustSplits(raw, in.Splits)
}

func seriesKey(symbol string) string { return "series:daily:" + symbol }

var _ domrepo.SeriesStore = (*CHSeriesStore)(nil)
