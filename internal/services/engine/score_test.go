package engine

import (
	"testing"
	"time"

	"SignalDesk/internal/domain/models"
)

var asOf = time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

func quiet() models.PeriodResult  { return models.PeriodResult{Period: models.PeriodQuiet, DaysLeft: 10} }
func open() models.PeriodResult   { return models.PeriodResult{Period: models.PeriodOpen, DaysLeft: 40} }
func normal() models.DrawdownResult {
	return models.DrawdownResult{Mode: models.DrawdownNormal}
}
func crisis() models.DrawdownResult {
	return models.DrawdownResult{Mode: models.DrawdownCrisis, PctChange: -9, WindowDays: 5}
}

func TestScoreSignalQuietMidRange(t *testing.T) {
	// pctAboveLow ~29.1, pctBelowHigh ~43.4
	snap := models.InstrumentSnapshot{
		Symbol: "ACME", Price: 38.53, High52: 68.10, Low52: 29.84, IV: 70, Tier: models.Tier1,
	}
	res := ScoreSignal(asOf, snap, quiet(), normal())
	if res.Components.PriceScore != 1 {
		t.Fatalf("expected price score 1, got %d", res.Components.PriceScore)
	}
	if res.Components.NearHighPenalty != 0 {
		t.Fatalf("expected no near-high penalty, got %d", res.Components.NearHighPenalty)
	}
	if res.Components.CrisisBonus != 0 || res.Components.PeriodBonus != 1 {
		t.Fatalf("unexpected components %+v", res.Components)
	}
	if res.Score != 2 || res.FloorApplied {
		t.Fatalf("expected raw score 2 with no floor, got %d (floor=%v)", res.Score, res.FloorApplied)
	}
	if res.Label != models.LabelYellow {
		t.Fatalf("expected YELLOW, got %v", res.Label)
	}
}

func TestScoreSignalCrisisFloor(t *testing.T) {
	// same price position but in crisis: bonus plus guaranteed floor
	snap := models.InstrumentSnapshot{
		Symbol: "ACME", Price: 38.53, High52: 68.10, Low52: 29.84, Tier: models.Tier1,
	}
	res := ScoreSignal(asOf, snap, open(), crisis())
	if res.Components.CrisisBonus != 2 {
		t.Fatalf("expected crisis bonus 2, got %d", res.Components.CrisisBonus)
	}
	if res.Score < 2 {
		t.Fatalf("crisis floor violated: score %d", res.Score)
	}
}

func TestScoreSignalNearLowFloorAlreadyMet(t *testing.T) {
	// pctAboveLow = 8: price score 3, OPEN penalty -1 -> raw 2; floor
	// condition holds but the raw score already meets it
	snap := models.InstrumentSnapshot{
		Symbol: "ACME", Price: 108, High52: 200, Low52: 100, Tier: models.Tier1,
	}
	res := ScoreSignal(asOf, snap, open(), normal())
	if res.Components.PriceScore != 3 || res.Components.PeriodBonus != -1 {
		t.Fatalf("unexpected components %+v", res.Components)
	}
	if res.Score != 2 || res.FloorApplied {
		t.Fatalf("expected score 2 without floor kicking in, got %d (floor=%v)", res.Score, res.FloorApplied)
	}
	if res.Label != models.LabelYellow {
		t.Fatalf("expected YELLOW, got %v", res.Label)
	}
	if !res.Visible {
		t.Fatalf("tier-1 YELLOW must be visible")
	}
}

func TestScoreSignalFloorRaisesScore(t *testing.T) {
	// near the low but OPEN with a near-high... not possible near the low;
	// construct raw < 2 via crisis on a high-priced instrument instead:
	// priceScore 0 (far above low), periodBonus -1, crisisBonus +2 -> raw 1
	snap := models.InstrumentSnapshot{
		Symbol: "ACME", Price: 180, High52: 500, Low52: 100, Tier: models.Tier1,
	}
	res := ScoreSignal(asOf, snap, open(), crisis())
	raw := res.Components.PriceScore + res.Components.NearHighPenalty +
		res.Components.CrisisBonus + res.Components.PeriodBonus
	if raw >= 2 {
		t.Fatalf("test setup wrong, raw=%d", raw)
	}
	if res.Score != 2 || !res.FloorApplied {
		t.Fatalf("expected floored score 2, got %d (floor=%v)", res.Score, res.FloorApplied)
	}
}

func TestScoreSignalNearHighPenalty(t *testing.T) {
	// within 20% of the high and not in crisis
	snap := models.InstrumentSnapshot{
		Symbol: "ACME", Price: 90, High52: 100, Low52: 40, Tier: models.Tier1,
	}
	res := ScoreSignal(asOf, snap, quiet(), normal())
	if res.Components.NearHighPenalty != -1 {
		t.Fatalf("expected near-high penalty, got %d", res.Components.NearHighPenalty)
	}

	// the same position in crisis is not penalized
	res = ScoreSignal(asOf, snap, quiet(), crisis())
	if res.Components.NearHighPenalty != 0 {
		t.Fatalf("crisis must suppress the near-high penalty, got %d", res.Components.NearHighPenalty)
	}
}

func TestScoreSignalTierGate(t *testing.T) {
	// tier-2 YELLOW is demoted to not-visible but keeps its label
	snap := models.InstrumentSnapshot{
		Symbol: "VOLA", Price: 108, High52: 200, Low52: 100, Tier: models.Tier2,
	}
	res := ScoreSignal(asOf, snap, open(), normal())
	if res.Label != models.LabelYellow {
		t.Fatalf("expected YELLOW, got %v", res.Label)
	}
	if res.Visible {
		t.Fatalf("tier-2 YELLOW must not be visible")
	}

	// tier-2 GREEN is visible
	snap.Low52 = 100
	snap.Price = 105
	res = ScoreSignal(asOf, snap, quiet(), normal())
	if res.Label != models.LabelGreen || !res.Visible {
		t.Fatalf("expected visible GREEN, got %v visible=%v", res.Label, res.Visible)
	}
}

func TestScoreSignalDegenerateRange(t *testing.T) {
	// zero 52-week range must not divide by zero or award price score
	snap := models.InstrumentSnapshot{
		Symbol: "BAD", Price: 10, High52: 0, Low52: 0, Tier: models.Tier1,
	}
	res := ScoreSignal(asOf, snap, quiet(), normal())
	if res.Components.PriceScore != 0 {
		t.Fatalf("degenerate low must not award price score, got %d", res.Components.PriceScore)
	}
	if res.Components.NearHighPenalty != 0 {
		t.Fatalf("degenerate high must not penalize, got %d", res.Components.NearHighPenalty)
	}
}

func TestScoreSignalIdempotent(t *testing.T) {
	snap := models.InstrumentSnapshot{
		Symbol: "ACME", Price: 38.53, High52: 68.10, Low52: 29.84, Tier: models.Tier1,
	}
	a := ScoreSignal(asOf, snap, quiet(), normal())
	b := ScoreSignal(asOf, snap, quiet(), normal())
	if a != b {
		t.Fatalf("expected identical results")
	}
}
