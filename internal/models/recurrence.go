package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// Recurrence describes how often a task repeats. Weekdays only applies to
// weekly recurrences.
type Recurrence struct {
	Frequency Frequency      `json:"frequency"`
	Weekdays  []time.Weekday `json:"weekdays,omitempty"`
}

var isoWeekOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// String renders the recurrence the way it is stored in a task's repeat
// column, e.g. "Every week on Wed, Thu".
func (r Recurrence) String() string {
	switch r.Frequency {
	case FrequencyDaily:
		return "Every day"
	case FrequencyWeekly:
		if len(r.Weekdays) == 0 {
			return "Every week"
		}
		set := make(map[time.Weekday]bool, len(r.Weekdays))
		for _, wd := range r.Weekdays {
			set[wd] = true
		}
		var days []string
		for _, wd := range isoWeekOrder {
			if set[wd] {
				days = append(days, wd.String()[:3])
			}
		}
		return "Every week on " + strings.Join(days, ", ")
	case FrequencyMonthly:
		return "Every month"
	default:
		return ""
	}
}

// ParseRecurrence is the inverse of String. The empty string is a task that
// does not repeat and yields the zero Recurrence.
func ParseRecurrence(s string) (Recurrence, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return Recurrence{}, nil
	case strings.EqualFold(s, "Every day"):
		return Recurrence{Frequency: FrequencyDaily}, nil
	case strings.EqualFold(s, "Every month"):
		return Recurrence{Frequency: FrequencyMonthly}, nil
	case strings.EqualFold(s, "Every week"):
		return Recurrence{Frequency: FrequencyWeekly}, nil
	}

	const prefix = "every week on "
	if !strings.HasPrefix(strings.ToLower(s), prefix) {
		return Recurrence{}, fmt.Errorf("invalid recurrence: %q", s)
	}
	days, err := ParseWeekdays(s[len(prefix):])
	if err != nil {
		return Recurrence{}, err
	}
	return Recurrence{Frequency: FrequencyWeekly, Weekdays: days}, nil
}

// ParseFrequency accepts daily/weekly/monthly in any case.
func ParseFrequency(s string) (Frequency, error) {
	switch f := Frequency(strings.ToLower(strings.TrimSpace(s))); f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return f, nil
	default:
		return "", fmt.Errorf("invalid frequency: %q (expected daily, weekly or monthly)", s)
	}
}

var dayMap = map[string]time.Weekday{
	"sun":       time.Sunday,
	"sunday":    time.Sunday,
	"mon":       time.Monday,
	"monday":    time.Monday,
	"tue":       time.Tuesday,
	"tuesday":   time.Tuesday,
	"wed":       time.Wednesday,
	"wednesday": time.Wednesday,
	"thu":       time.Thursday,
	"thursday":  time.Thursday,
	"fri":       time.Friday,
	"friday":    time.Friday,
	"sat":       time.Saturday,
	"saturday":  time.Saturday,
}

// ParseWeekdays parses a comma-separated list of weekday names or numbers
// (0=Sunday). Duplicates are dropped.
func ParseWeekdays(s string) ([]time.Weekday, error) {
	var weekdays []time.Weekday
	seen := make(map[time.Weekday]bool)

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		wd, ok := dayMap[part]
		if !ok {
			num, err := strconv.Atoi(part)
			if err != nil || num < 0 || num > 6 {
				return nil, fmt.Errorf("invalid weekday: %s", part)
			}
			wd = time.Weekday(num)
		}
		if !seen[wd] {
			seen[wd] = true
			weekdays = append(weekdays, wd)
		}
	}

	return weekdays, nil
}
