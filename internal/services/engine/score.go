package engine

import (
	"math"
	"time"

	"SignalDesk/internal/domain/models"
)

const (
	// nearLowPct is the distance above the 52-week low inside which the
	// floor override protects the score.
	nearLowPct = 10.0
	// nearHighPct is the distance below the 52-week high inside which a
	// penalty applies (unless a crisis is in progress).
	nearHighPct = 20.0
	// floorScore is the guaranteed minimum under the floor conditions.
	floorScore = 2
	greenScore = 3
)

// ScoreSignal combines price position, drawdown state, and period into the
// composite score, applies the floor override, and maps the result to a
// label gated by the instrument's tier.
func ScoreSignal(asOf time.Time, snap models.InstrumentSnapshot, period models.PeriodResult, dd models.DrawdownResult) models.SignalResult {
	pctAboveLow := pctRatio(snap.Price-snap.Low52, snap.Low52)
	pctBelowHigh := pctRatio(snap.High52-snap.Price, snap.High52)

	var c models.ScoreComponents
	switch {
	case pctAboveLow <= nearLowPct:
		c.PriceScore = 3
	case pctAboveLow <= 20:
		c.PriceScore = 2
	case pctAboveLow <= 50:
		c.PriceScore = 1
	}
	if pctBelowHigh < nearHighPct && dd.Mode != models.DrawdownCrisis {
		c.NearHighPenalty = -1
	}
	if dd.Mode == models.DrawdownCrisis {
		c.CrisisBonus = 2
	}
	switch period.Period {
	case models.PeriodQuiet:
		c.PeriodBonus = 1
	case models.PeriodCrush:
		c.PeriodBonus = 0
	case models.PeriodOpen:
		c.PeriodBonus = -1
	}

	raw := c.PriceScore + c.NearHighPenalty + c.CrisisBonus + c.PeriodBonus

	// Near the low and in crisis are protective conditions that must never
	// be silently suppressed by a negative period bonus.
	score := raw
	floorApplied := false
	if (pctAboveLow <= nearLowPct || dd.Mode == models.DrawdownCrisis) && score < floorScore {
		score = floorScore
		floorApplied = true
	}

	label := models.LabelDim
	switch {
	case score >= greenScore:
		label = models.LabelGreen
	case score == floorScore:
		label = models.LabelYellow
	}

	return models.SignalResult{
		Symbol:       snap.Symbol,
		AsOf:         asOf,
		Score:        score,
		Components:   c,
		FloorApplied: floorApplied,
		Label:        label,
		Visible:      visibleForTier(snap.Tier, label),
		Period:       period,
		Drawdown:     dd,
		Price:        snap.Price,
		High52:       snap.High52,
		Low52:        snap.Low52,
		IV:           snap.IV,
		Tier:         snap.Tier,
	}
}

// visibleForTier applies the tier gate: tier 1 surfaces GREEN and YELLOW,
// tier 2 surfaces GREEN only. A demoted YELLOW keeps its label.
func visibleForTier(tier models.Tier, label models.SignalLabel) bool {
	switch label {
	case models.LabelGreen:
		return true
	case models.LabelYellow:
		return tier == models.Tier1
	default:
		return false
	}
}

// pctRatio returns num/den*100, or +Inf for a degenerate denominator so a
// broken 52-week range contributes no favorable score.
func pctRatio(num, den float64) float64 {
	if den <= 0 {
		return math.Inf(1)
	}
	return num / den * 100
}
