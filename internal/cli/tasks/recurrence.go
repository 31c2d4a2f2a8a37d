package tasks

import (
	"fmt"

	"github.com/julianstephens/habithub/internal/models"
)

// buildRepeat turns the --repeat and --weekdays flags into the stored repeat
// text. An empty frequency means the task does not repeat.
func buildRepeat(freq, weekdays string) (string, error) {
	if freq == "" {
		if weekdays != "" {
			return "", fmt.Errorf("--weekdays requires --repeat weekly")
		}
		return "", nil
	}
	f, err := models.ParseFrequency(freq)
	if err != nil {
		return "", err
	}
	rec := models.Recurrence{Frequency: f}
	if weekdays != "" {
		if f != models.FrequencyWeekly {
			return "", fmt.Errorf("--weekdays only applies to weekly recurrence")
		}
		if rec.Weekdays, err = models.ParseWeekdays(weekdays); err != nil {
			return "", err
		}
	}
	return rec.String(), nil
}
