package storage

import (
	"fmt"
	"time"

	"github.com/julianstephens/habithub/internal/constants"
)

// DayBounds converts inclusive date keys to the half-open UTC interval
// [from, to) covering both days completely.
func DayBounds(start, end string) (from, to time.Time, err error) {
	from, err = time.Parse(constants.DateFormat, start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	last, err := time.Parse(constants.DateFormat, end)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	if last.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("end date %s before start date %s", end, start)
	}
	return from, last.AddDate(0, 0, 1), nil
}
