package series

import (
	"testing"
	"time"

	"SignalDesk/internal/domain/models"
)

// daily builds a series of consecutive trading days starting 2023-01-02,
// closing at base+i.
func daily(n int, base float64) models.PriceSeries {
	start := time.Date(2023, 1, 2, 21, 0, 0, 0, time.UTC) // 21:00 close
	s := make(models.PriceSeries, n)
	for i := 0; i < n; i++ {
		s[i] = models.PricePoint{
			TS:    start.AddDate(0, 0, i).Unix(),
			Close: base + float64(i),
		}
	}
	return s
}

func day(s models.PriceSeries, i int) time.Time {
	return time.Unix(s[i].TS, 0).UTC()
}

func TestClosestIndexRoundTrip(t *testing.T) {
	s := daily(50, 100)
	for _, i := range []int{0, 1, 25, 48, 49} {
		got, ok := PriceAt(s, day(s, i))
		if !ok {
			t.Fatalf("index %d: expected resolution", i)
		}
		if got != s[i].Close {
			t.Fatalf("index %d: expected close %f, got %f", i, s[i].Close, got)
		}
	}
}

func TestClosestIndexBeforeAllData(t *testing.T) {
	s := daily(10, 100)
	target := day(s, 0).AddDate(0, 0, -5)
	if idx := ClosestIndex(s, target); idx != -1 {
		t.Fatalf("expected -1 before first point, got %d", idx)
	}
	if _, ok := PriceAt(s, target); ok {
		t.Fatalf("expected unresolvable price")
	}
}

func TestClosestIndexClampsPastEnd(t *testing.T) {
	s := daily(300, 100)
	target := day(s, 299).AddDate(0, 0, 30)
	idx := ClosestIndex(s, target)
	if idx != 299 {
		t.Fatalf("expected clamp to last index, got %d", idx)
	}
	got, ok := PriceAt(s, target)
	if !ok || got != s[299].Close {
		t.Fatalf("expected last close, got %f ok=%v", got, ok)
	}
}

func TestClosestIndexMonotonic(t *testing.T) {
	s := daily(40, 100)
	prev := -2
	for d := -3; d < 45; d++ {
		target := day(s, 0).AddDate(0, 0, d)
		idx := ClosestIndex(s, target)
		if idx < prev {
			t.Fatalf("index decreased: %d after %d at day offset %d", idx, prev, d)
		}
		prev = idx
	}
}

func TestRangeAtFullWindow(t *testing.T) {
	s := daily(300, 100) // strictly increasing closes
	high, low, ok := RangeAt(s, day(s, 299))
	if !ok {
		t.Fatalf("expected resolution")
	}
	if high != s[299].Close {
		t.Fatalf("expected high %f, got %f", s[299].Close, high)
	}
	// 252-bar window ends at 299, starts at 48
	if low != s[48].Close {
		t.Fatalf("expected low %f, got %f", s[48].Close, low)
	}
}

func TestRangeAtShortHistory(t *testing.T) {
	s := daily(20, 100)
	high, low, ok := RangeAt(s, day(s, 19))
	if !ok || low != s[0].Close || high != s[19].Close {
		t.Fatalf("expected range over all 20 bars, got %f/%f ok=%v", high, low, ok)
	}
}

func TestDrawdownAtRequiresHistory(t *testing.T) {
	s := daily(20, 100)
	res := DrawdownAt(s, day(s, 5))
	if res.Mode != models.DrawdownNormal || res.PctChange != 0 || res.WindowDays != 0 {
		t.Fatalf("expected empty NORMAL result below window, got %+v", res)
	}

	res = DrawdownAt(s, day(s, 10))
	if res.WindowDays != 7 {
		t.Fatalf("expected 7-day window, got %d", res.WindowDays)
	}
}

func TestChartFromDownsamples(t *testing.T) {
	s := daily(400, 100)
	chart := ChartFrom(s, day(s, 0))
	if len(chart) == 0 || len(chart) > 40 {
		t.Fatalf("expected at most 40 points, got %d", len(chart))
	}
	if chart[len(chart)-1] != s[399].Close {
		t.Fatalf("final close must always be included, got %f", chart[len(chart)-1])
	}
	for i := 1; i < len(chart); i++ {
		if chart[i] <= chart[i-1] {
			t.Fatalf("expected chronological order on a rising series")
		}
	}
}

func TestChartFromBeforeSeries(t *testing.T) {
	s := daily(50, 100)
	if chart := ChartFrom(s, day(s, 0).AddDate(0, 0, -1)); chart != nil {
		t.Fatalf("expected nil chart for a date before all data, got %v", chart)
	}
}

func TestChartFromShortRemainder(t *testing.T) {
	s := daily(50, 100)
	if chart := ChartFrom(s, day(s, 49)); chart != nil {
		t.Fatalf("expected nil chart with one point left, got %v", chart)
	}
	chart := ChartFrom(s, day(s, 48))
	if len(chart) != 2 {
		t.Fatalf("expected 2 points, got %d", len(chart))
	}
}

func TestReturnSince(t *testing.T) {
	s := daily(10, 100) // 100 .. 109
	r, ok := ReturnSince(s, day(s, 0))
	if !ok {
		t.Fatalf("expected resolution")
	}
	if r != 9 {
		t.Fatalf("expected 9 pct, got %f", r)
	}
	if _, ok := ReturnSince(s, day(s, 0).AddDate(0, 0, -10)); ok {
		t.Fatalf("expected unresolvable return before history")
	}
}

func TestAdjustSplits(t *testing.T) {
	s := daily(10, 100)
	splitDate := day(s, 5)
	adj := AdjustSplits(s, []models.Split{{Date: splitDate, Ratio: 2}})
	for i := 0; i < 5; i++ {
		if adj[i].Close != s[i].Close/2 {
			t.Fatalf("pre-split close %d not halved: %f", i, adj[i].Close)
		}
	}
	for i := 5; i < 10; i++ {
		if adj[i].Close != s[i].Close {
			t.Fatalf("post-split close %d must be untouched: %f", i, adj[i].Close)
		}
	}
	// original series must not be mutated
	if s[0].Close != 100 {
		t.Fatalf("input series mutated")
	}
}
