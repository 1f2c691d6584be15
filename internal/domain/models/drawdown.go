package models

// DrawdownMode classifies the trailing price window.
type DrawdownMode int

const (
	DrawdownNormal DrawdownMode = iota
	DrawdownCrisis
)

func (m DrawdownMode) String() string {
	if m == DrawdownCrisis {
		return "CRISIS"
	}
	return "NORMAL"
}

// DrawdownResult is the outcome of trailing-window drawdown detection:
// the percent change over the window and whether it qualifies as a crisis.
type DrawdownResult struct {
	Mode       DrawdownMode
	PctChange  float64
	WindowDays int
}
