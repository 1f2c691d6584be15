package util

import (
	"strconv"
	"testing"
	"time"
)

func TestParseDateISO(t *testing.T) {
	got, ok := ParseDate("2024-10-10")
	if !ok {
		t.Fatalf("expected ok")
	}
	want := time.Date(2024, 10, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseDateUnix(t *testing.T) {
	ts := time.Date(2024, 10, 10, 15, 30, 0, 0, time.UTC).Unix()
	got, ok := ParseDate(strconv.FormatInt(ts, 10))
	if !ok {
		t.Fatalf("expected ok")
	}
	if !got.Equal(time.Date(2024, 10, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected midnight truncation, got %v", got)
	}
}

func TestParseDateEmpty(t *testing.T) {
	if _, ok := ParseDate(""); ok {
		t.Fatalf("expected not ok")
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2024, 10, 10, 23, 59, 59, 0, time.UTC)
	b := time.Date(2024, 10, 13, 0, 0, 1, 0, time.UTC)
	if d := DaysBetween(a, b); d != 3 {
		t.Fatalf("expected 3 days, got %d", d)
	}
	if d := DaysBetween(b, a); d != -3 {
		t.Fatalf("expected -3 days, got %d", d)
	}
	if d := DaysBetween(a, a); d != 0 {
		t.Fatalf("expected 0 days, got %d", d)
	}
}

func TestEndOfDay(t *testing.T) {
	a := time.Date(2024, 10, 10, 3, 0, 0, 0, time.UTC)
	got := EndOfDay(a)
	if got.Hour() != 23 || got.Minute() != 59 || got.Second() != 59 {
		t.Fatalf("unexpected end of day %v", got)
	}
	if got.Day() != 10 {
		t.Fatalf("end of day crossed date boundary: %v", got)
	}
}

func TestAddDays(t *testing.T) {
	a := time.Date(2024, 2, 28, 12, 0, 0, 0, time.UTC)
	got := AddDays(a, 2)
	if !got.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date %v", got)
	}
}
