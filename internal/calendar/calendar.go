// Package calendar builds the week strip and month grid shown by the home and
// calendar views. Weeks are ISO weeks: Monday first, Sunday last.
package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/habithub/internal/constants"
)

// ErrInvalidDate is returned for a date key that is not YYYY-MM-DD.
var ErrInvalidDate = errors.New("invalid date")

// WeekDay is one day of the seven-day strip.
type WeekDay struct {
	DayName   string `json:"day_name"`
	DayNumber string `json:"day_number"`
	FullDate  string `json:"full_date"`
	IsToday   bool   `json:"is_today"`
}

// CalendarDay is one cell of a month grid.
type CalendarDay struct {
	Day          string `json:"day"`
	Date         string `json:"date"`
	FullDate     string `json:"full_date"`
	CurrentMonth bool   `json:"current_month"`
	IsToday      bool   `json:"is_today"`
}

// MonthData names the month a grid shows.
type MonthData struct {
	Month string `json:"month"`
	Year  string `json:"year"`
}

// DateKey formats t as the canonical YYYY-MM-DD key in t's own location.
func DateKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDateKey parses a YYYY-MM-DD key as midnight in the local zone.
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(constants.DateFormat, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q (expected YYYY-MM-DD)", ErrInvalidDate, key)
	}
	return t, nil
}

// midnight truncates t to the start of its calendar day in t's location.
func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// sameDay compares calendar days, ignoring the time of day.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// startOfISOWeek returns the Monday on or before t.
func startOfISOWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return midnight(t).AddDate(0, 0, -offset)
}

// endOfISOWeek returns the Sunday on or after t.
func endOfISOWeek(t time.Time) time.Time {
	return startOfISOWeek(t).AddDate(0, 0, 6)
}

// WeekDates returns Monday through Sunday of the ISO week containing now.
func WeekDates(now time.Time) []WeekDay {
	start := startOfISOWeek(now)
	days := make([]WeekDay, 7)
	for i := range days {
		date := start.AddDate(0, 0, i)
		days[i] = WeekDay{
			DayName:   date.Format(constants.DayNameFormat),
			DayNumber: date.Format(constants.DayNumberFormat),
			FullDate:  DateKey(date),
			IsToday:   sameDay(date, now),
		}
	}
	return days
}

// WeekRange returns the first and last date keys of the ISO week containing now.
func WeekRange(now time.Time) (start, end string) {
	return DateKey(startOfISOWeek(now)), DateKey(endOfISOWeek(now))
}

// resolve picks the reference date: ref when given, otherwise now. A
// malformed ref is an error rather than a silent fallback.
func resolve(ref string, now time.Time) (time.Time, error) {
	if ref == "" {
		return now, nil
	}
	t, err := ParseDateKey(ref)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, now.Location()), nil
}

// MonthDays returns the grid for the month containing ref (or now when ref is
// empty), padded with the neighbouring months' days to whole ISO weeks.
// IsToday is always relative to now, not to ref.
func MonthDays(ref string, now time.Time) ([]CalendarDay, error) {
	target, err := resolve(ref, now)
	if err != nil {
		return nil, err
	}

	first := time.Date(target.Year(), target.Month(), 1, 0, 0, 0, 0, target.Location())
	last := first.AddDate(0, 1, -1)
	start := startOfISOWeek(first)
	end := endOfISOWeek(last)

	var days []CalendarDay
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, CalendarDay{
			Day:          d.Format(constants.DayNameFormat),
			Date:         d.Format(constants.DayNumberFormat),
			FullDate:     DateKey(d),
			CurrentMonth: d.Month() == target.Month() && d.Year() == target.Year(),
			IsToday:      sameDay(d, now),
		})
	}
	return days, nil
}

// GetMonthData returns the month name and year for ref (or now).
func GetMonthData(ref string, now time.Time) (MonthData, error) {
	target, err := resolve(ref, now)
	if err != nil {
		return MonthData{}, err
	}
	return MonthData{
		Month: target.Format(constants.MonthNameFormat),
		Year:  target.Format(constants.YearFormat),
	}, nil
}

// FormatDate renders a date key as "15 Feb 2024".
func FormatDate(key string) (string, error) {
	t, err := ParseDateKey(key)
	if err != nil {
		return "", err
	}
	return t.Format(constants.DisplayDateFormat), nil
}

// FormatDateWithDay renders a date key as "February, 15th, Thursday".
func FormatDateWithDay(key string) (string, error) {
	t, err := ParseDateKey(key)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s, %s, %s",
		t.Format(constants.MonthNameFormat),
		humanize.Ordinal(t.Day()),
		t.Weekday()), nil
}

// ShiftDays moves a date key by n days.
func ShiftDays(key string, n int) (string, error) {
	t, err := ParseDateKey(key)
	if err != nil {
		return "", err
	}
	return DateKey(t.AddDate(0, 0, n)), nil
}

// OnDay returns the calendar date of day at now's UTC time of day, in UTC.
// Records stamped this way group under day's date key.
func OnDay(day, now time.Time) time.Time {
	now = now.UTC()
	return time.Date(day.Year(), day.Month(), day.Day(),
		now.Hour(), now.Minute(), now.Second(), 0, time.UTC)
}

// ShiftMonth moves a date key to the first day of the month n months away.
func ShiftMonth(key string, n int) (string, error) {
	t, err := ParseDateKey(key)
	if err != nil {
		return "", err
	}
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return DateKey(first.AddDate(0, n, 0)), nil
}
