package group

import (
	"encoding/json"
	"strings"
	"time"

	"absentee_notification_bot/internal/domain/calendar"
)

// ScheduleDays is the ordered set of weekday tokens ("sun", "tue", ...) on
// which a group meets. An empty set means the group meets every day.
type ScheduleDays []string

var weekdayTokens = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

// ParseScheduleDays decodes the JSON array stored in groups.schedule_days.
// Anything that does not decode is treated as "no schedule configured".
func ParseScheduleDays(raw string) ScheduleDays {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ScheduleDays{}
	}
	var days []string
	if err := json.Unmarshal([]byte(raw), &days); err != nil {
		return ScheduleDays{}
	}
	if days == nil {
		return ScheduleDays{}
	}
	return ScheduleDays(days)
}

// Weekdays maps the tokens through the fixed table. Unknown tokens are dropped.
func (s ScheduleDays) Weekdays() map[time.Weekday]bool {
	set := make(map[time.Weekday]bool, len(s))
	for _, token := range s {
		if wd, ok := weekdayTokens[strings.ToLower(strings.TrimSpace(token))]; ok {
			set[wd] = true
		}
	}
	return set
}

// Meets reports whether a session is expected on d.
func (s ScheduleDays) Meets(d calendar.Date) bool {
	if len(s) == 0 {
		return true
	}
	return s.Weekdays()[d.Weekday()]
}

// ResolveSessionDates lists, in ascending order, the dates of the given month
// on which the schedule expects a session.
func ResolveSessionDates(days ScheduleDays, year int, month time.Month) []calendar.Date {
	last := calendar.DaysIn(year, month)
	dates := make([]calendar.Date, 0, last)

	if len(days) == 0 {
		for d := 1; d <= last; d++ {
			dates = append(dates, calendar.Date{Year: year, Month: month, Day: d})
		}
		return dates
	}

	weekdays := days.Weekdays()
	for d := 1; d <= last; d++ {
		date := calendar.Date{Year: year, Month: month, Day: d}
		if weekdays[date.Weekday()] {
			dates = append(dates, date)
		}
	}
	return dates
}
