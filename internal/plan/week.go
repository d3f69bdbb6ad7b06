package plan

import "time"

// atMidnight reduces a timestamp to its calendar date, pinned to UTC so
// that day subtraction is exact. Week math must never mix locations,
// otherwise a run logged near midnight can land in the neighboring week,
// and DST shifts would make some days count as 23 or 25 hours.
func atMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CurrentWeek returns the 1-indexed training week for the given day:
// floor(whole days since planStart / 7) + 1.
// Returns 0 when today is before planStart. Values above TotalWeeks are
// returned as is, the caller decides what a finished plan looks like.
// planStart is expected to be a Monday, but that is a configuration
// contract and not checked here.
func CurrentWeek(today, planStart time.Time) int {
	today = atMidnight(today)
	planStart = atMidnight(planStart)

	if today.Before(planStart) {
		return 0
	}

	days := int(today.Sub(planStart).Hours() / 24)
	return days/7 + 1
}

// WeekDateRange returns the inclusive 7-day span of plan week n:
// [planStart + 7(n-1) days, planStart + 7(n-1)+6 days].
func WeekDateRange(planStart time.Time, n int) (from, to time.Time) {
	from = atMidnight(planStart).AddDate(0, 0, 7*(n-1))
	to = from.AddDate(0, 0, 6)
	return from, to
}
