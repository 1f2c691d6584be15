package engine

import (
	"SignalDesk/internal/domain/models"
)

const (
	// crisisDropPct is the percent change at or below which a drawdown
	// qualifies as a crisis.
	crisisDropPct = -8.0
	// crisisWindowDays is the maximum trading-day span for a crisis; a
	// bigger drop spread over a longer window does not count.
	crisisWindowDays = 7
)

// DetectDrawdown classifies the trailing price window. The window length
// is caller-supplied policy; this only measures the change across it.
// Fewer than two points means NORMAL with zero change.
func DetectDrawdown(window []models.PricePoint) models.DrawdownResult {
	if len(window) < 2 {
		return models.DrawdownResult{Mode: models.DrawdownNormal}
	}
	oldest := window[0]
	latest := window[len(window)-1]
	windowDays := len(window) - 1
	if oldest.Close <= 0 {
		return models.DrawdownResult{Mode: models.DrawdownNormal, WindowDays: windowDays}
	}
	pct := (latest.Close - oldest.Close) / oldest.Close * 100
	mode := models.DrawdownNormal
	if pct <= crisisDropPct && windowDays <= crisisWindowDays {
		mode = models.DrawdownCrisis
	}
	return models.DrawdownResult{Mode: mode, PctChange: pct, WindowDays: windowDays}
}
