package domain

import "time"

// RecurrenceUnit is the calendar unit a recurrence rule steps by.
type RecurrenceUnit string

const (
	UnitDay   RecurrenceUnit = "DAY"
	UnitWeek  RecurrenceUnit = "WEEK"
	UnitMonth RecurrenceUnit = "MONTH"
	UnitYear  RecurrenceUnit = "YEAR"
)

// RecurrenceRule is a pure value type describing how a recurring series
// steps forward: every Interval units. The two policy flags that influence
// stepping (working-day shift and start-day-inclusive counting) live on the
// transaction, not the rule.
type RecurrenceRule struct {
	Interval int            `json:"interval"`
	Unit     RecurrenceUnit `json:"unit"`
}

// Valid reports whether the rule is structurally usable.
func (r RecurrenceRule) Valid() bool {
	if r.Interval < 1 {
		return false
	}
	switch r.Unit {
	case UnitDay, UnitWeek, UnitMonth, UnitYear:
		return true
	}
	return false
}

// NextOccurrence computes the occurrence following from. It is pure and
// deterministic; callers enumerate a series by feeding each result back in,
// bounding the walk with a horizon or end date themselves.
//
// For day-unit rules, includeStartDayInCount counts the start day as day 1,
// so the effective step is interval-1 days. The flag has no effect for
// week/month/year rules. When adjustToWorkingDay is set, a candidate landing
// on Saturday or Sunday shifts forward to the following Monday.
//
// Returns ok=false only for structurally invalid rules.
func (r RecurrenceRule) NextOccurrence(from time.Time, includeStartDayInCount, adjustToWorkingDay bool) (time.Time, bool) {
	if !r.Valid() {
		return time.Time{}, false
	}

	var next time.Time
	switch r.Unit {
	case UnitDay:
		days := r.Interval
		if includeStartDayInCount {
			days--
		}
		next = from.AddDate(0, 0, days)
	case UnitWeek:
		next = from.AddDate(0, 0, 7*r.Interval)
	case UnitMonth:
		next = from.AddDate(0, r.Interval, 0)
	case UnitYear:
		next = from.AddDate(r.Interval, 0, 0)
	}

	if adjustToWorkingDay {
		switch next.Weekday() {
		case time.Saturday:
			next = next.AddDate(0, 0, 2)
		case time.Sunday:
			next = next.AddDate(0, 0, 1)
		}
	}
	return next, true
}
