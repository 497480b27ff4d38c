// Package recur materializes RecurringPattern rules into concrete schedule
// entries. Expansion is pure: no clock reads, no storage.
package recur

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"crewdesk/internal/domain"
)

// NotePrefix marks entries produced by expansion. Regeneration strips
// entries carrying it before inserting a fresh batch, which keeps repeated
// applies idempotent.
const NotePrefix = "Generated from recurring pattern"

const (
	// PreviewCount bounds an ad-hoc expansion of a single pattern.
	PreviewCount = 10
	// ApplyCount is how many instances each active pattern contributes
	// when patterns are applied to the schedule.
	ApplyCount = 20

	// horizonDays caps patterns without an end date. Unbounded patterns are
	// not infinite; they see one year of lookahead from their start date.
	horizonDays = 365

	startHour = 9
	endHour   = 17
)

var ErrBadInterval = errors.New("recurrence interval must be at least 1")

// Expand produces at most limit entries for the pattern, ordered by date.
// Each instance runs 09:00-17:00 on its matched day with status "scheduled"
// and a deterministic id, so expanding the same pattern twice yields the
// same ids. now stamps CreatedAt/UpdatedAt only.
//
// A weekly pattern with no weekdays selected matches nothing and yields
// zero instances; that is the rule's meaning, not an error.
func Expand(p domain.RecurringPattern, limit int, now time.Time) ([]domain.ScheduleEntry, error) {
	if p.Interval < 1 {
		return nil, ErrBadInterval
	}
	end := p.StartDate.AddDate(0, 0, horizonDays)
	if p.EndDate != nil {
		end = *p.EndDate
	}

	var out []domain.ScheduleEntry
	for step := 0; len(out) < limit; step++ {
		cur := stepDate(p, step)
		if cur.After(end) {
			break
		}
		if matches(p, cur) {
			out = append(out, instance(p, cur, now))
		}
	}
	return out, nil
}

// IsGenerated reports whether an entry was produced by pattern expansion.
func IsGenerated(e domain.ScheduleEntry) bool {
	return strings.Contains(e.Notes, NotePrefix)
}

// stepDate returns the date examined at the given iteration. Daily and
// weekly stepping is exact day arithmetic. Monthly and yearly stepping is
// anchored to the start date: the target month is advanced first and the
// day clamped to its length, so a day-31 pattern lands on the 28th/30th in
// short months (and then fails the day-of-month match) instead of drifting
// the way naive AddDate normalization would.
func stepDate(p domain.RecurringPattern, step int) time.Time {
	n := step * p.Interval
	switch p.Frequency {
	case domain.Daily:
		return p.StartDate.AddDate(0, 0, n)
	case domain.Weekly:
		return p.StartDate.AddDate(0, 0, 7*n)
	case domain.Monthly:
		return addMonthsClamped(p.StartDate, n)
	case domain.Yearly:
		return addMonthsClamped(p.StartDate, 12*n)
	}
	return p.StartDate.AddDate(0, 0, n)
}

func matches(p domain.RecurringPattern, cur time.Time) bool {
	switch p.Frequency {
	case domain.Daily:
		return true
	case domain.Weekly:
		for _, d := range p.DaysOfWeek {
			if int(cur.Weekday()) == d {
				return true
			}
		}
		return false
	case domain.Monthly:
		day := p.DayOfMonth
		if day == 0 {
			day = 1
		}
		return cur.Day() == day
	case domain.Yearly:
		return cur.Month() == p.StartDate.Month() && cur.Day() == p.StartDate.Day()
	}
	return false
}

func instance(p domain.RecurringPattern, day time.Time, now time.Time) domain.ScheduleEntry {
	start := time.Date(day.Year(), day.Month(), day.Day(), startHour, 0, 0, 0, day.Location())
	end := time.Date(day.Year(), day.Month(), day.Day(), endHour, 0, 0, 0, day.Location())
	return domain.ScheduleEntry{
		ID:        instanceID(p.ID, start),
		CompanyID: p.CompanyID,
		JobID:     p.JobID,
		StartTime: start,
		EndTime:   end,
		Status:    domain.EntryScheduled,
		Notes:     NotePrefix + ": " + p.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// instanceID derives a stable id from the pattern id and the instance start
// timestamp, so re-expansion reproduces identical ids for de-duplication.
func instanceID(patternID string, start time.Time) string {
	seed := patternID + "|" + strconv.FormatInt(start.UnixMilli(), 10)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(seed)).String()
}

func addMonthsClamped(t time.Time, months int) time.Time {
	y := t.Year()
	m := int(t.Month()) - 1 + months
	y += m / 12
	m = m % 12
	if m < 0 {
		m += 12
		y--
	}
	month := time.Month(m + 1)
	day := t.Day()
	if last := daysIn(y, month); day > last {
		day = last
	}
	return time.Date(y, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
