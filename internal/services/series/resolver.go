package series

import (
	"sort"
	"time"

	"SignalDesk/internal/domain/models"
	"SignalDesk/internal/services/engine"
	"SignalDesk/pkg/util"
)

const (
	// rollingWindowBars is one year of trading days for the 52-week range.
	rollingWindowBars = 252
	// drawdownWindowBars is the trailing window handed to the drawdown
	// detector.
	drawdownWindowBars = 7
	// chartMaxPoints bounds the down-sampled forward series.
	chartMaxPoints = 40
	// MinIndexableBars is the shortest series for which a point-in-time
	// 52-week range is meaningful.
	MinIndexableBars = rollingWindowBars + 1
)

// ClosestIndex returns the latest index whose timestamp is at or before
// the end of the target calendar day. Returns -1 when the date predates
// all data; clamps to the last index when the date is at or past the most
// recent point.
func ClosestIndex(s models.PriceSeries, date time.Time) int {
	if len(s) == 0 {
		return -1
	}
	end := util.EndOfDay(date).Unix()
	// first index with TS > end; the answer is the one before it
	i := sort.Search(len(s), func(i int) bool { return s[i].TS > end })
	return i - 1
}

// PriceAt resolves the close on or nearest before the target date.
func PriceAt(s models.PriceSeries, date time.Time) (float64, bool) {
	idx := ClosestIndex(s, date)
	if idx < 0 {
		return 0, false
	}
	return s[idx].Close, true
}

// RangeAt computes the trailing 52-week high/low as of the target date,
// over fewer bars when history is short.
func RangeAt(s models.PriceSeries, date time.Time) (high, low float64, ok bool) {
	idx := ClosestIndex(s, date)
	if idx < 0 {
		return 0, 0, false
	}
	start := idx - rollingWindowBars + 1
	if start < 0 {
		start = 0
	}
	high, low = s[start].Close, s[start].Close
	for _, p := range s[start+1 : idx+1] {
		if p.Close > high {
			high = p.Close
		}
		if p.Close < low {
			low = p.Close
		}
	}
	return high, low, true
}

// WindowAt returns the trailing drawdown window ending at the resolved
// index: drawdownWindowBars+1 points, oldest first. Empty when the index
// cannot cover a full window.
func WindowAt(s models.PriceSeries, date time.Time) []models.PricePoint {
	idx := ClosestIndex(s, date)
	if idx < drawdownWindowBars {
		return nil
	}
	out := make([]models.PricePoint, drawdownWindowBars+1)
	copy(out, s[idx-drawdownWindowBars:idx+1])
	return out
}

// DrawdownAt runs drawdown detection on the trailing window as of the
// target date. An unresolvable or too-early date yields NORMAL with zero
// change.
func DrawdownAt(s models.PriceSeries, date time.Time) models.DrawdownResult {
	return engine.DetectDrawdown(WindowAt(s, date))
}

// ChartFrom down-samples the closes from the resolved index to the end of
// the series to at most chartMaxPoints, sampling backward from the final
// close so it is always included. Returns nil when the date predates the
// series or fewer than two points remain.
func ChartFrom(s models.PriceSeries, date time.Time) []float64 {
	idx := ClosestIndex(s, date)
	if idx < 0 {
		return nil
	}
	n := len(s) - idx
	if n < 2 {
		return nil
	}
	stride := (n + chartMaxPoints - 1) / chartMaxPoints
	var out []float64
	for i := len(s) - 1; i >= idx; i -= stride {
		out = append(out, s[i].Close)
	}
	// reverse into chronological order
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// ReturnSince computes the percent return from the close resolved at date
// to the latest close.
func ReturnSince(s models.PriceSeries, date time.Time) (float64, bool) {
	then, ok := PriceAt(s, date)
	if !ok || then <= 0 {
		return 0, false
	}
	last, ok := s.Last()
	if !ok {
		return 0, false
	}
	return (last.Close - then) / then * 100, true
}

// AdjustSplits divides closes dated before each split by the split ratio
// so pre-split history is comparable to current prices. Applied once at
// ingest; a no-op for providers that already return adjusted closes.
func AdjustSplits(s models.PriceSeries, splits []models.Split) models.PriceSeries {
	if len(splits) == 0 || len(s) == 0 {
		return s
	}
	out := make(models.PriceSeries, len(s))
	copy(out, s)
	for _, sp := range splits {
		if sp.Ratio <= 0 {
			continue
		}
		cut := util.Midnight(sp.Date).Unix()
		for i := range out {
			if out[i].TS < cut {
				out[i].Close /= sp.Ratio
			}
		}
	}
	return out
}
