package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"SignalDesk/internal/domain/models"
)

// fakeStore serves canned series and counts fetches.
type fakeStore struct {
	series map[string]models.PriceSeries
	err    error
	calls  int
}

func (f *fakeStore) GetDailySeries(_ context.Context, symbol string) (models.PriceSeries, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.series[symbol], nil
}

type fakeWatch struct {
	ins   []models.Instrument
	bench string
}

func (f *fakeWatch) Instruments() []models.Instrument { return f.ins }

func (f *fakeWatch) Instrument(symbol string) (models.Instrument, bool) {
	for _, in := range f.ins {
		if in.Symbol == symbol {
			return in, true
		}
	}
	return models.Instrument{}, false
}

func (f *fakeWatch) Benchmark() string { return f.bench }

type nopMetrics struct{}

func (nopMetrics) RecordMessageSent(string, string)  {}
func (nopMetrics) RecordError(string)                {}
func (nopMetrics) RecordLastPrice(string, float64)   {}
func (nopMetrics) RecordLatency(string, float64)     {}
func (nopMetrics) RecordSignal(string, string)       {}
func (nopMetrics) RecordIndexBuild(float64, int)     {}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// decliningSeries yields n consecutive daily closes falling by 1 from start.
// The latest close is always the 52-week low, so the price score is maximal.
func decliningSeries(from time.Time, n int, start float64) models.PriceSeries {
	s := make(models.PriceSeries, n)
	for i := 0; i < n; i++ {
		s[i] = models.PricePoint{TS: from.AddDate(0, 0, i).Unix(), Close: start - float64(i)}
	}
	return s
}

func TestEvaluateAllSkipsUnresolvable(t *testing.T) {
	from := day(2024, time.January, 2)
	store := &fakeStore{series: map[string]models.PriceSeries{
		"AAA": decliningSeries(from, 300, 500),
		// BBB starts later; the asOf date predates it
		"BBB": decliningSeries(from.AddDate(0, 0, 200), 100, 500),
	}}
	watch := &fakeWatch{ins: []models.Instrument{
		{Symbol: "AAA", Tier: models.Tier1},
		{Symbol: "BBB", Tier: models.Tier1},
	}}
	eval := NewSignalEvaluator(store, watch, nopMetrics{})

	asOf := from.AddDate(0, 0, 100)
	out, err := eval.EvaluateAll(context.Background(), asOf, false)
	if err != nil {
		t.Fatalf("EvaluateAll: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 result, got %d", len(out))
	}
	if out[0].Symbol != "AAA" {
		t.Fatalf("expected AAA, got %s", out[0].Symbol)
	}
}

func TestEvaluateGreenNearLow(t *testing.T) {
	from := day(2024, time.January, 2)
	store := &fakeStore{series: map[string]models.PriceSeries{
		"AAA": decliningSeries(from, 300, 500),
	}}
	watch := &fakeWatch{ins: []models.Instrument{{Symbol: "AAA", Tier: models.Tier1}}}
	eval := NewSignalEvaluator(store, watch, nopMetrics{})

	asOf := from.AddDate(0, 0, 299)
	res, err := eval.Evaluate(context.Background(), "AAA", asOf, false)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	// the latest close is the 52-week low: full price score, no penalty
	if res.Components.PriceScore != 3 {
		t.Fatalf("price score = %d, want 3", res.Components.PriceScore)
	}
	if res.Components.NearHighPenalty != 0 {
		t.Fatalf("near-high penalty = %d, want 0", res.Components.NearHighPenalty)
	}
	if res.Label != models.LabelGreen {
		t.Fatalf("label = %s, want GREEN", res.Label)
	}
	if !res.Visible {
		t.Fatal("GREEN signal should be visible")
	}
}

func TestEvaluateUnknownSymbol(t *testing.T) {
	eval := NewSignalEvaluator(&fakeStore{}, &fakeWatch{}, nopMetrics{})
	if _, err := eval.Evaluate(context.Background(), "ZZZ", day(2024, time.June, 3), true); err == nil {
		t.Fatal("expected error for unknown symbol")
	}
}

func TestEvaluateAllPropagatesStoreError(t *testing.T) {
	store := &fakeStore{err: errors.New("boom")}
	watch := &fakeWatch{ins: []models.Instrument{{Symbol: "AAA", Tier: models.Tier1}}}
	eval := NewSignalEvaluator(store, watch, nopMetrics{})
	if _, err := eval.EvaluateAll(context.Background(), day(2024, time.June, 3), true); err == nil {
		t.Fatal("expected store error to propagate")
	}
}
