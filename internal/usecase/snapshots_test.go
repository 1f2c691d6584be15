package usecase

import (
	"testing"
	"time"

	"SignalDesk/internal/domain/models"
)

func TestBuildSnapshotLiveUsesAuthoritativeDates(t *testing.T) {
	from := day(2024, time.January, 2)
	s := decliningSeries(from, 300, 500)
	in := models.Instrument{
		Symbol:   "AAA",
		Tier:     models.Tier1,
		IV:       33.5,
		LastEarn: day(2024, time.July, 30),
		NextEarn: day(2024, time.October, 29),
		QtrEnd:   day(2024, time.September, 30),
	}

	asOf := from.AddDate(0, 0, 250)
	snap, ok := BuildSnapshot(in, s, asOf, true)
	if !ok {
		t.Fatal("snapshot should resolve")
	}
	if !snap.LastEarn.Equal(in.LastEarn) || !snap.NextEarn.Equal(in.NextEarn) || !snap.QtrEnd.Equal(in.QtrEnd) {
		t.Fatal("live snapshot must carry authoritative earnings dates")
	}
	if snap.Price != 250 {
		t.Fatalf("price = %.2f, want 250", snap.Price)
	}
	if snap.IV != 33.5 || snap.Tier != models.Tier1 {
		t.Fatal("tier and IV must carry through unchanged")
	}
	if len(snap.Window) != 8 {
		t.Fatalf("window length = %d, want 8", len(snap.Window))
	}
}

func TestBuildSnapshotHistoricalIgnoresAuthoritativeDates(t *testing.T) {
	from := day(2024, time.January, 2)
	s := decliningSeries(from, 300, 500)
	in := models.Instrument{
		Symbol:   "AAA",
		Tier:     models.Tier1,
		LastEarn: day(2024, time.July, 30),
		NextEarn: day(2024, time.October, 29),
		QtrEnd:   day(2024, time.September, 30),
	}

	// authoritative dates describe the current cycle; replaying a past
	// date must re-estimate them or future information leaks in
	asOf := from.AddDate(0, 0, 30)
	snap, ok := BuildSnapshot(in, s, asOf, false)
	if !ok {
		t.Fatal("snapshot should resolve")
	}
	if snap.LastEarn.Equal(in.LastEarn) {
		t.Fatal("historical snapshot must not carry authoritative LastEarn")
	}
	if snap.LastEarn.IsZero() || snap.NextEarn.IsZero() || snap.QtrEnd.IsZero() {
		t.Fatal("estimator must fill all earnings dates")
	}
	if !snap.LastEarn.Before(asOf.AddDate(0, 0, 1)) {
		t.Fatalf("estimated LastEarn %s should not be after asOf %s", snap.LastEarn, asOf)
	}
	if !snap.NextEarn.After(asOf) {
		t.Fatalf("estimated NextEarn %s should be after asOf %s", snap.NextEarn, asOf)
	}
}

func TestBuildSnapshotBeforeSeries(t *testing.T) {
	from := day(2024, time.January, 2)
	s := decliningSeries(from, 300, 500)
	in := models.Instrument{Symbol: "AAA", Tier: models.Tier1}

	if _, ok := BuildSnapshot(in, s, day(2023, time.June, 1), false); ok {
		t.Fatal("date before the series must not resolve")
	}
}

func TestBuildSnapshotPicksLatestEvent(t *testing.T) {
	from := day(2024, time.January, 2)
	s := decliningSeries(from, 300, 500)
	in := models.Instrument{
		Symbol: "AAA",
		Tier:   models.Tier1,
		Events: []models.CatalystEvent{
			{Name: "launch", Date: day(2024, time.March, 1)},
			{Name: "fda", Date: day(2024, time.June, 10)},
			{Name: "future", Date: day(2024, time.December, 1)},
		},
	}

	asOf := day(2024, time.July, 1)
	snap, ok := BuildSnapshot(in, s, asOf, false)
	if !ok {
		t.Fatal("snapshot should resolve")
	}
	if snap.EventName != "fda" {
		t.Fatalf("event = %q, want fda", snap.EventName)
	}
	if !snap.EventDate.Equal(day(2024, time.June, 10)) {
		t.Fatalf("event date = %s", snap.EventDate)
	}
}

func TestEvaluateSnapshotIdempotent(t *testing.T) {
	from := day(2024, time.January, 2)
	s := decliningSeries(from, 300, 500)
	in := models.Instrument{Symbol: "AAA", Tier: models.Tier1}

	asOf := from.AddDate(0, 0, 260)
	snap, ok := BuildSnapshot(in, s, asOf, false)
	if !ok {
		t.Fatal("snapshot should resolve")
	}
	a := EvaluateSnapshot(asOf, snap)
	b := EvaluateSnapshot(asOf, snap)
	if a != b {
		t.Fatalf("evaluation not idempotent: %+v vs %+v", a, b)
	}
}
