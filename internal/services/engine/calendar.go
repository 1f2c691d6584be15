package engine

import (
	"sort"
	"time"

	"SignalDesk/pkg/util"
)

// earningsLagDays is the typical gap between a fiscal quarter end and the
// earnings report for that quarter.
const earningsLagDays = 28

// FiscalCalendar generates quarter-end dates from an anchor month. The
// default anchor is March (Mar/Jun/Sep/Dec); offset calendars shift all
// four quarters together.
type FiscalCalendar struct {
	Anchor time.Month
}

// DefaultFiscalCalendar is the standard Mar/Jun/Sep/Dec cycle.
func DefaultFiscalCalendar() FiscalCalendar { return FiscalCalendar{Anchor: time.March} }

// QuarterEnds returns the four quarter-end dates of the given year in
// ascending order, each anchored at the last calendar day of its month.
func (c FiscalCalendar) QuarterEnds(year int) []time.Time {
	anchor := c.Anchor
	if anchor == 0 {
		anchor = time.March
	}
	out := make([]time.Time, 0, 4)
	for q := 0; q < 4; q++ {
		m := time.Month((int(anchor)-1+3*q)%12 + 1)
		// day 0 of the next month is the last day of m
		out = append(out, time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC))
	}
	sortTimes(out)
	return out
}

// EarningsDates is the estimated earnings cycle around a date.
type EarningsDates struct {
	LastEarn time.Time
	NextEarn time.Time
	QtrEnd   time.Time
}

// EstimateEarningsDates estimates the earnings cycle around date from the
// fiscal calendar alone. It is a heuristic for historical dates where no
// authoritative earnings calendar exists and must never override real data.
func EstimateEarningsDates(cal FiscalCalendar, date time.Time) EarningsDates {
	date = util.Midnight(date)

	// Enumerate quarter ends from one year before to one year after so the
	// window always brackets the date.
	var ends []time.Time
	for y := date.Year() - 1; y <= date.Year()+1; y++ {
		ends = append(ends, cal.QuarterEnds(y)...)
	}
	sortTimes(ends)

	var prev, next time.Time
	for _, qe := range ends {
		if !qe.After(date) {
			prev = qe
			continue
		}
		next = qe
		break
	}

	out := EarningsDates{QtrEnd: next}
	if !prev.IsZero() {
		out.LastEarn = util.AddDays(prev, earningsLagDays)
	}
	if !next.IsZero() {
		out.NextEarn = util.AddDays(next, earningsLagDays)
	}
	return out
}

func sortTimes(ts []time.Time) {
	sort.Slice(ts, func(i, j int) bool { return ts[i].Before(ts[j]) })
}
