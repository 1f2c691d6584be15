package usecase

import (
	"context"
	"testing"
	"time"

	"SignalDesk/internal/domain/models"
)

func TestBacktestRun(t *testing.T) {
	from := day(2024, time.January, 2)
	store := &fakeStore{series: map[string]models.PriceSeries{
		"AAA": decliningSeries(from, 300, 500),
		"SPY": decliningSeries(from, 300, 400),
	}}
	watch := &fakeWatch{
		ins:   []models.Instrument{{Symbol: "AAA", Tier: models.Tier1}},
		bench: "SPY",
	}
	bt := NewBacktestUseCase(store, watch, nopMetrics{})

	date := from.AddDate(0, 0, 250)
	report, err := bt.Run(context.Background(), date)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(report.Results))
	}

	hr := report.Results[0]
	if hr.Symbol != "AAA" {
		t.Fatalf("symbol = %s, want AAA", hr.Symbol)
	}
	if hr.ForwardReturn == nil {
		t.Fatal("expected forward return")
	}
	if *hr.ForwardReturn >= 0 {
		t.Fatalf("declining series must have negative forward return, got %.2f", *hr.ForwardReturn)
	}
	if hr.CurrentPrice != 201 {
		t.Fatalf("current price = %.2f, want 201", hr.CurrentPrice)
	}
	if len(hr.Chart) < 2 || len(hr.Chart) > 40 {
		t.Fatalf("chart length = %d, want 2..40", len(hr.Chart))
	}
	if hr.Chart[len(hr.Chart)-1] != 201 {
		t.Fatalf("chart must end at the latest close, got %.2f", hr.Chart[len(hr.Chart)-1])
	}

	if !hr.Signal.Visible {
		t.Fatal("expected a visible signal near the 52-week low")
	}
	if report.MeanSignalReturn == nil {
		t.Fatal("expected mean signal return")
	}
	if *report.MeanSignalReturn != *hr.ForwardReturn {
		t.Fatalf("mean = %.2f, want %.2f", *report.MeanSignalReturn, *hr.ForwardReturn)
	}
	if report.BenchmarkReturn == nil {
		t.Fatal("expected benchmark return")
	}
}

func TestBacktestBenchmarkUnavailable(t *testing.T) {
	from := day(2024, time.January, 2)
	store := &fakeStore{series: map[string]models.PriceSeries{
		"AAA": decliningSeries(from, 300, 500),
	}}
	watch := &fakeWatch{
		ins:   []models.Instrument{{Symbol: "AAA", Tier: models.Tier1}},
		bench: "SPY", // no series for it
	}
	bt := NewBacktestUseCase(store, watch, nopMetrics{})

	report, err := bt.Run(context.Background(), from.AddDate(0, 0, 250))
	if err != nil {
		t.Fatalf("missing benchmark must not fail the backtest: %v", err)
	}
	if report.BenchmarkReturn != nil {
		t.Fatal("benchmark return should be nil without benchmark data")
	}
	if len(report.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(report.Results))
	}
}

func TestBacktestDatePredatesAll(t *testing.T) {
	from := day(2024, time.January, 2)
	store := &fakeStore{series: map[string]models.PriceSeries{
		"AAA": decliningSeries(from, 300, 500),
	}}
	watch := &fakeWatch{ins: []models.Instrument{{Symbol: "AAA", Tier: models.Tier1}}}
	bt := NewBacktestUseCase(store, watch, nopMetrics{})

	report, err := bt.Run(context.Background(), day(2020, time.January, 2))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Results) != 0 {
		t.Fatalf("expected no results, got %d", len(report.Results))
	}
	if report.MeanSignalReturn != nil {
		t.Fatal("mean signal return should be nil with no results")
	}
}
