// Package recurrence computes the due dates of recurring template
// transactions inside a lookahead window.
//
// The computation is a stateless window scan: every run re-derives the
// occurrence sequence from the template's anchor date and emits only the
// dates that fall inside [rangeStart, rangeEnd]. Nothing here persists a
// "next due" cursor; idempotency comes from the caller's dedup check.
package recurrence

import (
	"time"

	"github.com/moneta/finance-tracker/pkg/models"
)

// maxOccurrencesPerScan bounds a single window scan so a corrupt anchor far
// in the past cannot loop unreasonably long.
const maxOccurrencesPerScan = 100000

// DueDates returns the ordered calendar dates on which occurrences of a
// template with the given anchor date and rule fall within
// [rangeStart, rangeEnd], both inclusive. The anchor itself is never
// emitted; the sequence starts one recurrence step after it.
//
// An unknown rule, or models.NEVER, yields no dates.
func DueDates(anchor time.Time, rule models.Recurrence, rangeStart, rangeEnd time.Time) []string {
	if !known(rule) {
		return nil
	}

	start := Truncate(rangeStart)
	end := Truncate(rangeEnd)

	var due []string
	for n := 1; n <= maxOccurrencesPerScan; n++ {
		cursor := occurrence(anchor, rule, n)
		if cursor.Before(start) {
			// Fast-forward past occurrences already behind the window.
			continue
		}
		if cursor.After(end) {
			break
		}
		due = append(due, cursor.Format(models.DateLayout))
	}
	return due
}

// Truncate drops the time-of-day, keeping the calendar date in UTC.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func known(rule models.Recurrence) bool {
	switch rule {
	case models.DAILY, models.WEEKLY, models.BIWEEKLY, models.MONTHLY, models.YEARLY:
		return true
	}
	return false
}

// occurrence returns the nth occurrence after the anchor date.
//
// Monthly and yearly steps are computed from the anchor's day-of-month on
// every step, clamped to the last day of the target month. Anchoring on
// Jan 31 therefore yields Feb 28 (or 29) and then Mar 31 again, rather
// than drifting to the 28th forever or rolling over into March the way
// raw AddDate arithmetic would.
func occurrence(anchor time.Time, rule models.Recurrence, n int) time.Time {
	anchor = Truncate(anchor)
	switch rule {
	case models.DAILY:
		return anchor.AddDate(0, 0, n)
	case models.WEEKLY:
		return anchor.AddDate(0, 0, 7*n)
	case models.BIWEEKLY:
		return anchor.AddDate(0, 0, 14*n)
	case models.MONTHLY:
		return addMonthsClamped(anchor, n)
	case models.YEARLY:
		return addMonthsClamped(anchor, 12*n)
	}
	return anchor
}

// addMonthsClamped advances t by the given number of calendar months,
// clamping the day-of-month to the last day of the target month.
func addMonthsClamped(t time.Time, months int) time.Time {
	firstOfTarget := time.Date(t.Year(), t.Month()+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	day := t.Day()
	if last := lastDayOfMonth(firstOfTarget); day > last {
		day = last
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, time.UTC)
}

// lastDayOfMonth returns the number of days in t's month.
func lastDayOfMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
