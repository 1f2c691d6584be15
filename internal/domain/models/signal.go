package models

import "time"

// SignalLabel is the discrete alert level mapped from the composite score.
type SignalLabel int

const (
	LabelDim SignalLabel = iota
	LabelYellow
	LabelGreen
)

func (l SignalLabel) String() string {
	switch l {
	case LabelGreen:
		return "GREEN"
	case LabelYellow:
		return "YELLOW"
	default:
		return "DIM"
	}
}

// ScoreComponents breaks the composite score into its summed terms.
type ScoreComponents struct {
	PriceScore      int
	NearHighPenalty int
	CrisisBonus     int
	PeriodBonus     int
}

// SignalResult is the scored signal for one instrument at one date.
// Visible folds in the tier policy: a tier-2 YELLOW keeps its label but
// is not surfaced.
type SignalResult struct {
	Symbol       string
	AsOf         time.Time
	Score        int
	Components   ScoreComponents
	FloorApplied bool
	Label        SignalLabel
	Visible      bool

	Period   PeriodResult
	Drawdown DrawdownResult
	Price    float64
	High52   float64
	Low52    float64
	IV       float64
	Tier     Tier
}
