package usecase

import (
	"context"
	"testing"
	"time"

	"SignalDesk/internal/domain/models"
	"SignalDesk/internal/services/series"
)

func indexFixture(bars int) (*SignalDateIndex, *fakeStore, time.Time) {
	from := day(2023, time.June, 1)
	store := &fakeStore{series: map[string]models.PriceSeries{
		"AAA": decliningSeries(from, bars, 1000),
	}}
	watch := &fakeWatch{ins: []models.Instrument{{Symbol: "AAA", Tier: models.Tier1}}}
	return NewSignalDateIndex(store, watch, nopMetrics{}, time.Minute), store, from
}

func TestSignalDateIndexBuild(t *testing.T) {
	ix, _, from := indexFixture(260)

	dates, err := ix.Dates(context.Background())
	if err != nil {
		t.Fatalf("Dates: %v", err)
	}
	// indexable dates start at the first bar with a full 52-week window
	want := 260 - series.MinIndexableBars + 1
	if len(dates) != want {
		t.Fatalf("index size = %d, want %d", len(dates), want)
	}
	first := from.AddDate(0, 0, series.MinIndexableBars-1)
	if !dates[0].Date.Equal(first) {
		t.Fatalf("first date = %s, want %s", dates[0].Date, first)
	}
	for i, d := range dates {
		if !d.HasGreen {
			t.Fatalf("date %s should have a green signal", d.Date)
		}
		if i > 0 && !dates[i-1].Date.Before(d.Date) {
			t.Fatalf("index not sorted at %d", i)
		}
	}
}

func TestSignalDateIndexSkipsShortSeries(t *testing.T) {
	ix, _, _ := indexFixture(100)

	dates, err := ix.Dates(context.Background())
	if err != nil {
		t.Fatalf("Dates: %v", err)
	}
	if len(dates) != 0 {
		t.Fatalf("short series must not be indexed, got %d dates", len(dates))
	}
}

func TestSignalDateIndexMemoized(t *testing.T) {
	ix, store, _ := indexFixture(260)

	if _, err := ix.Dates(context.Background()); err != nil {
		t.Fatalf("first Dates: %v", err)
	}
	if _, err := ix.Dates(context.Background()); err != nil {
		t.Fatalf("second Dates: %v", err)
	}
	if store.calls != 1 {
		t.Fatalf("series fetched %d times, want 1", store.calls)
	}
}

func TestSignalDateNavigation(t *testing.T) {
	ix, _, _ := indexFixture(260)
	ctx := context.Background()

	dates, err := ix.Dates(ctx)
	if err != nil {
		t.Fatalf("Dates: %v", err)
	}
	if len(dates) < 4 {
		t.Fatalf("fixture too small: %d dates", len(dates))
	}

	// strictly before: the predecessor, or nil at the start
	prev, err := ix.Prev(ctx, dates[3].Date)
	if err != nil {
		t.Fatalf("Prev: %v", err)
	}
	if prev == nil || !prev.Date.Equal(dates[2].Date) {
		t.Fatalf("Prev(%s) = %v, want %s", dates[3].Date, prev, dates[2].Date)
	}
	if prev, _ = ix.Prev(ctx, dates[0].Date); prev != nil {
		t.Fatalf("Prev at start = %v, want nil", prev)
	}

	// strictly after: the successor, or nil at the end
	next, err := ix.Next(ctx, dates[3].Date)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if next == nil || !next.Date.Equal(dates[4].Date) {
		t.Fatalf("Next(%s) = %v, want %s", dates[3].Date, next, dates[4].Date)
	}
	last := dates[len(dates)-1].Date
	if next, _ = ix.Next(ctx, last); next != nil {
		t.Fatalf("Next at end = %v, want nil", next)
	}

	// a date far past the index still resolves to the last entry
	prev, err = ix.Prev(ctx, last.AddDate(1, 0, 0))
	if err != nil {
		t.Fatalf("Prev: %v", err)
	}
	if prev == nil || !prev.Date.Equal(last) {
		t.Fatalf("Prev past end = %v, want %s", prev, last)
	}
}
