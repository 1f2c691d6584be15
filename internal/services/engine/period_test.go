package engine

import (
	"testing"
	"time"

	"SignalDesk/internal/domain/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestClassifyPeriodCrushAfterEarnings(t *testing.T) {
	snap := models.InstrumentSnapshot{
		LastEarn: date(2024, 5, 1),
		NextEarn: date(2024, 8, 1),
		QtrEnd:   date(2024, 6, 30),
	}
	// two days after earnings: CRUSH with one day left, no matter how
	// close the next earnings date is
	res := ClassifyPeriod(date(2024, 5, 3), snap)
	if res.Period != models.PeriodCrush {
		t.Fatalf("expected CRUSH, got %v", res.Period)
	}
	if res.DaysLeft != 1 {
		t.Fatalf("expected 1 day left, got %d", res.DaysLeft)
	}
}

func TestClassifyPeriodCrushFromEvent(t *testing.T) {
	snap := models.InstrumentSnapshot{
		EventDate: date(2024, 5, 10),
		EventName: "FDA decision",
		LastEarn:  date(2024, 2, 1),
		NextEarn:  date(2024, 5, 12), // would be QUIET without the event
		QtrEnd:    date(2024, 3, 31),
	}
	res := ClassifyPeriod(date(2024, 5, 10), snap)
	if res.Period != models.PeriodCrush {
		t.Fatalf("expected CRUSH from event, got %v", res.Period)
	}
	if res.DaysLeft != 3 {
		t.Fatalf("expected 3 days left, got %d", res.DaysLeft)
	}
}

func TestClassifyPeriodCrushFromStaleNextEarn(t *testing.T) {
	// NextEarn just passed but LastEarn was not refreshed
	snap := models.InstrumentSnapshot{
		LastEarn: date(2024, 2, 1),
		NextEarn: date(2024, 5, 1),
		QtrEnd:   date(2024, 6, 30),
	}
	res := ClassifyPeriod(date(2024, 5, 2), snap)
	if res.Period != models.PeriodCrush {
		t.Fatalf("expected CRUSH, got %v", res.Period)
	}
}

func TestClassifyPeriodQuietBeforeQuarterEnd(t *testing.T) {
	snap := models.InstrumentSnapshot{
		LastEarn: date(2024, 4, 28),
		NextEarn: date(2024, 7, 28),
		QtrEnd:   date(2024, 6, 30),
	}
	res := ClassifyPeriod(date(2024, 6, 15), snap)
	if res.Period != models.PeriodQuiet {
		t.Fatalf("expected QUIET, got %v", res.Period)
	}
	if res.DaysLeft != 43 {
		t.Fatalf("expected 43 days to next earnings, got %d", res.DaysLeft)
	}
}

func TestClassifyPeriodQuietNearEarnings(t *testing.T) {
	snap := models.InstrumentSnapshot{
		LastEarn: date(2024, 4, 28),
		NextEarn: date(2024, 7, 28),
		QtrEnd:   date(2024, 6, 30),
	}
	res := ClassifyPeriod(date(2024, 7, 10), snap)
	if res.Period != models.PeriodQuiet {
		t.Fatalf("expected QUIET inside the 21-day lead, got %v", res.Period)
	}
	if res.DaysLeft != 18 {
		t.Fatalf("expected 18 days left, got %d", res.DaysLeft)
	}
}

func TestClassifyPeriodOpen(t *testing.T) {
	// mid-cycle: quarter end already behind us, next earnings far out
	snap := models.InstrumentSnapshot{
		LastEarn: date(2024, 4, 28),
		NextEarn: date(2024, 10, 28),
		QtrEnd:   date(2024, 6, 30),
	}
	res := ClassifyPeriod(date(2024, 7, 15), snap)
	if res.Period != models.PeriodOpen {
		t.Fatalf("expected OPEN, got %v", res.Period)
	}
	// stale June quarter end rolls forward to September 30
	if res.DaysLeft != 77 {
		t.Fatalf("expected 77 days to quarter end, got %d", res.DaysLeft)
	}
}

func TestClassifyPeriodOpenStaleQuarterEndRollsForward(t *testing.T) {
	// QtrEnd already passed without refresh: countdown rolls to the next
	// quarter instead of going negative
	snap := models.InstrumentSnapshot{
		LastEarn: date(2024, 1, 28),
		NextEarn: date(2024, 10, 28),
		QtrEnd:   date(2024, 3, 31),
	}
	res := ClassifyPeriod(date(2024, 5, 15), snap)
	if res.Period != models.PeriodOpen {
		t.Fatalf("expected OPEN, got %v", res.Period)
	}
	if res.DaysLeft < 0 {
		t.Fatalf("days left must not be negative, got %d", res.DaysLeft)
	}
}

func TestClassifyPeriodIdempotent(t *testing.T) {
	snap := models.InstrumentSnapshot{
		LastEarn: date(2024, 4, 28),
		NextEarn: date(2024, 7, 28),
		QtrEnd:   date(2024, 6, 30),
	}
	today := date(2024, 6, 15)
	a := ClassifyPeriod(today, snap)
	b := ClassifyPeriod(today, snap)
	if a != b {
		t.Fatalf("expected identical results, got %+v vs %+v", a, b)
	}
}
