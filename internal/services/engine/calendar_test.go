package engine

import (
	"testing"
	"time"
)

func TestQuarterEndsDefault(t *testing.T) {
	ends := DefaultFiscalCalendar().QuarterEnds(2024)
	want := []time.Time{
		date(2024, 3, 31),
		date(2024, 6, 30),
		date(2024, 9, 30),
		date(2024, 12, 31),
	}
	if len(ends) != 4 {
		t.Fatalf("expected 4 quarter ends, got %d", len(ends))
	}
	for i := range want {
		if !ends[i].Equal(want[i]) {
			t.Fatalf("quarter %d: expected %v, got %v", i, want[i], ends[i])
		}
	}
}

func TestQuarterEndsOffsetCalendar(t *testing.T) {
	ends := FiscalCalendar{Anchor: time.December}.QuarterEnds(2024)
	want := []time.Time{
		date(2024, 3, 31),
		date(2024, 6, 30),
		date(2024, 9, 30),
		date(2024, 12, 31),
	}
	for i := range want {
		if !ends[i].Equal(want[i]) {
			t.Fatalf("quarter %d: expected %v, got %v", i, want[i], ends[i])
		}
	}

	ends = FiscalCalendar{Anchor: time.January}.QuarterEnds(2024)
	want = []time.Time{
		date(2024, 1, 31),
		date(2024, 4, 30),
		date(2024, 7, 31),
		date(2024, 10, 31),
	}
	for i := range want {
		if !ends[i].Equal(want[i]) {
			t.Fatalf("offset quarter %d: expected %v, got %v", i, want[i], ends[i])
		}
	}
}

func TestEstimateEarningsDates(t *testing.T) {
	got := EstimateEarningsDates(DefaultFiscalCalendar(), date(2024, 5, 15))
	if !got.QtrEnd.Equal(date(2024, 6, 30)) {
		t.Fatalf("expected qtr end 2024-06-30, got %v", got.QtrEnd)
	}
	// prev quarter end + 28 days
	if !got.LastEarn.Equal(date(2024, 4, 28)) {
		t.Fatalf("expected last earn 2024-04-28, got %v", got.LastEarn)
	}
	// next quarter end + 28 days
	if !got.NextEarn.Equal(date(2024, 7, 28)) {
		t.Fatalf("expected next earn 2024-07-28, got %v", got.NextEarn)
	}
}

func TestEstimateEarningsDatesOnQuarterEnd(t *testing.T) {
	// a date falling exactly on a quarter end belongs to that quarter
	got := EstimateEarningsDates(DefaultFiscalCalendar(), date(2024, 6, 30))
	if !got.LastEarn.Equal(date(2024, 7, 28)) {
		t.Fatalf("expected last earn 2024-07-28, got %v", got.LastEarn)
	}
	if !got.QtrEnd.Equal(date(2024, 9, 30)) {
		t.Fatalf("expected qtr end 2024-09-30, got %v", got.QtrEnd)
	}
}

func TestEstimateEarningsDatesYearBoundary(t *testing.T) {
	got := EstimateEarningsDates(DefaultFiscalCalendar(), date(2024, 1, 10))
	if !got.LastEarn.Equal(date(2024, 1, 28)) {
		t.Fatalf("expected last earn 2024-01-28 (Dec qtr + 28d), got %v", got.LastEarn)
	}
	if !got.QtrEnd.Equal(date(2024, 3, 31)) {
		t.Fatalf("expected qtr end 2024-03-31, got %v", got.QtrEnd)
	}
}
