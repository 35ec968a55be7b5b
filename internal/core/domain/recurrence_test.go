package domain_test

import (
	"testing"
	"time"

	"github.com/centsible/centsible_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRecurrenceRule_NextOccurrence_DayCounting(t *testing.T) {
	rule := domain.RecurrenceRule{Interval: 15, Unit: domain.UnitDay}
	from := date(2026, time.February, 2)

	next, ok := rule.NextOccurrence(from, true, false)
	assert.True(t, ok)
	assert.Equal(t, date(2026, time.February, 16), next, "start day counts as day 1")

	next, ok = rule.NextOccurrence(from, false, false)
	assert.True(t, ok)
	assert.Equal(t, date(2026, time.February, 17), next)
}

func TestRecurrenceRule_NextOccurrence_Units(t *testing.T) {
	from := date(2026, time.January, 31)

	tests := []struct {
		name            string
		rule            domain.RecurrenceRule
		includeStartDay bool
		want            time.Time
	}{
		{
			name: "every week",
			rule: domain.RecurrenceRule{Interval: 1, Unit: domain.UnitWeek},
			want: date(2026, time.February, 7),
		},
		{
			name: "every two weeks",
			rule: domain.RecurrenceRule{Interval: 2, Unit: domain.UnitWeek},
			want: date(2026, time.February, 14),
		},
		{
			name: "monthly rolls over short months",
			rule: domain.RecurrenceRule{Interval: 1, Unit: domain.UnitMonth},
			want: date(2026, time.March, 3), // Jan 31 + 1 month normalises past Feb 28
		},
		{
			name: "yearly",
			rule: domain.RecurrenceRule{Interval: 1, Unit: domain.UnitYear},
			want: date(2027, time.January, 31),
		},
		{
			name:            "includeStartDayInCount is a no-op for week rules",
			rule:            domain.RecurrenceRule{Interval: 1, Unit: domain.UnitWeek},
			includeStartDay: true,
			want:            date(2026, time.February, 7),
		},
		{
			name:            "includeStartDayInCount is a no-op for month rules",
			rule:            domain.RecurrenceRule{Interval: 1, Unit: domain.UnitMonth},
			includeStartDay: true,
			want:            date(2026, time.March, 3),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, ok := tt.rule.NextOccurrence(from, tt.includeStartDay, false)
			assert.True(t, ok)
			assert.Equal(t, tt.want, next)
		})
	}
}

func TestRecurrenceRule_NextOccurrence_WorkingDayShift(t *testing.T) {
	// 2026-02-06 is a Friday, so a daily step of 1/2/3 lands on
	// Saturday/Sunday/Monday respectively.
	friday := date(2026, time.February, 6)
	rule := func(n int) domain.RecurrenceRule {
		return domain.RecurrenceRule{Interval: n, Unit: domain.UnitDay}
	}

	sat, ok := rule(1).NextOccurrence(friday, false, true)
	assert.True(t, ok)
	assert.Equal(t, date(2026, time.February, 9), sat, "Saturday shifts to Monday")
	assert.Equal(t, time.Monday, sat.Weekday())

	sun, ok := rule(2).NextOccurrence(friday, false, true)
	assert.True(t, ok)
	assert.Equal(t, date(2026, time.February, 9), sun, "Sunday shifts to Monday")
	assert.Equal(t, time.Monday, sun.Weekday())

	mon, ok := rule(3).NextOccurrence(friday, false, true)
	assert.True(t, ok)
	assert.Equal(t, date(2026, time.February, 9), mon, "weekday candidates are untouched")
}

func TestRecurrenceRule_NextOccurrence_ShiftNeverLandsOnWeekend(t *testing.T) {
	rule := domain.RecurrenceRule{Interval: 1, Unit: domain.UnitDay}
	cur := date(2026, time.January, 1)
	for i := 0; i < 60; i++ {
		next, ok := rule.NextOccurrence(cur, false, true)
		assert.True(t, ok)
		assert.NotEqual(t, time.Saturday, next.Weekday())
		assert.NotEqual(t, time.Sunday, next.Weekday())
		cur = next
	}
}

func TestRecurrenceRule_NextOccurrence_InvalidRules(t *testing.T) {
	tests := []struct {
		name string
		rule domain.RecurrenceRule
	}{
		{"zero interval", domain.RecurrenceRule{Interval: 0, Unit: domain.UnitDay}},
		{"negative interval", domain.RecurrenceRule{Interval: -3, Unit: domain.UnitMonth}},
		{"unknown unit", domain.RecurrenceRule{Interval: 1, Unit: "FORTNIGHT"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := tt.rule.NextOccurrence(date(2026, time.January, 1), false, false)
			assert.False(t, ok)
			assert.False(t, tt.rule.Valid())
		})
	}
}
