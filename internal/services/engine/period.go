package engine

import (
	"time"

	"SignalDesk/internal/domain/models"
	"SignalDesk/pkg/util"
)

const (
	// crushWindowDays is how long after earnings (or a named catalyst)
	// the CRUSH period lasts.
	crushWindowDays = 3
	// quietLeadDays is how far before the next earnings date the QUIET
	// period begins.
	quietLeadDays = 21
)

// ClassifyPeriod assigns the instrument's earnings-cycle period as of
// today. Rule order is load-bearing: CRUSH must win over QUIET/OPEN even
// when both conditions hold.
func ClassifyPeriod(today time.Time, snap models.InstrumentSnapshot) models.PeriodResult {
	// A named catalyst opens the same post-event window as earnings.
	if !snap.EventDate.IsZero() {
		if elapsed := util.DaysBetween(snap.EventDate, today); elapsed >= 0 && elapsed <= crushWindowDays {
			return models.PeriodResult{Period: models.PeriodCrush, DaysLeft: crushWindowDays - elapsed}
		}
	}
	if !snap.LastEarn.IsZero() {
		if elapsed := util.DaysBetween(snap.LastEarn, today); elapsed >= 0 && elapsed <= crushWindowDays {
			return models.PeriodResult{Period: models.PeriodCrush, DaysLeft: crushWindowDays - elapsed}
		}
	}
	// The next-earnings date may have just passed without LastEarn being
	// refreshed yet; it still anchors a CRUSH window.
	if !snap.NextEarn.IsZero() {
		if elapsed := util.DaysBetween(snap.NextEarn, today); elapsed >= 0 && elapsed <= crushWindowDays {
			return models.PeriodResult{Period: models.PeriodCrush, DaysLeft: crushWindowDays - elapsed}
		}
	}
	if !snap.QtrEnd.IsZero() && !snap.NextEarn.IsZero() {
		if util.DaysBetween(snap.QtrEnd, today) <= 0 && util.DaysBetween(today, snap.NextEarn) > 0 {
			return models.PeriodResult{Period: models.PeriodQuiet, DaysLeft: util.DaysBetween(today, snap.NextEarn)}
		}
	}
	if !snap.NextEarn.IsZero() {
		if left := util.DaysBetween(today, snap.NextEarn); left >= 0 && left <= quietLeadDays {
			return models.PeriodResult{Period: models.PeriodQuiet, DaysLeft: left}
		}
	}
	return models.PeriodResult{Period: models.PeriodOpen, DaysLeft: openDaysLeft(today, snap.QtrEnd)}
}

// openDaysLeft counts down to the quarter end. A stale quarter end (already
// passed without being refreshed) rolls forward in three-month steps so the
// countdown never goes negative.
func openDaysLeft(today time.Time, qtrEnd time.Time) int {
	if qtrEnd.IsZero() {
		return 0
	}
	for util.DaysBetween(today, qtrEnd) < 0 {
		qtrEnd = util.Midnight(qtrEnd.AddDate(0, 3, 0))
	}
	return util.DaysBetween(today, qtrEnd)
}
