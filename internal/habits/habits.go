// Package habits shapes task records into per-day habit lists and applies
// optimistic completion toggles to them.
package habits

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habithub/internal/constants"
	"github.com/julianstephens/habithub/internal/models"
)

// ErrMissingCreatedAt is returned for a record without a creation timestamp.
var ErrMissingCreatedAt = errors.New("task record has no creation timestamp")

const defaultEmoji = "📝"

var tagEmoji = map[string]string{
	constants.TagFitness:      "🏃",
	constants.TagStudyRoutine: "📚",
	constants.TagWork:         "💻",
	constants.TagHobby:        "🎵",
	constants.TagDailyRoutine: "🌞",
}

// EmojiForTag returns the glyph shown for a task tag.
func EmojiForTag(tag string) string {
	if e, ok := tagEmoji[tag]; ok {
		return e
	}
	return defaultEmoji
}

// DateOf returns the bucket key of a record: the UTC date of its creation
// timestamp.
func DateOf(task models.Task) (string, error) {
	if task.CreatedAt.IsZero() {
		return "", fmt.Errorf("%w (id %d)", ErrMissingCreatedAt, task.ID)
	}
	return task.CreatedAt.UTC().Format(constants.DateFormat), nil
}

// TaskToHabit projects a stored task onto its display form.
func TaskToHabit(task models.Task) (models.Habit, error) {
	date, err := DateOf(task)
	if err != nil {
		return models.Habit{}, err
	}
	return models.Habit{
		ID:        strconv.FormatInt(task.ID, 10),
		Title:     task.Name,
		Emoji:     EmojiForTag(task.Tag),
		Completed: task.Completed,
		Date:      date,
	}, nil
}

// GroupByDate buckets records by creation date, keeping input order inside
// each bucket. Dates with no records have no key.
func GroupByDate(tasks []models.Task) (models.HabitsByDate, error) {
	grouped := make(models.HabitsByDate)
	for _, task := range tasks {
		h, err := TaskToHabit(task)
		if err != nil {
			return nil, err
		}
		grouped[h.Date] = append(grouped[h.Date], h)
	}
	return grouped, nil
}

// NewLocalID returns an id for a record that only exists on this device,
// in the form "<unix millis>-<random>".
func NewLocalID(now time.Time) string {
	random := strings.ReplaceAll(uuid.New().String(), "-", "")
	return fmt.Sprintf("%d-%s", now.UnixMilli(), random[:constants.LocalIDSuffixChars])
}

// IsLocalID reports whether id was produced by NewLocalID rather than the
// backend.
func IsLocalID(id string) bool {
	if _, err := strconv.ParseInt(id, 10, 64); err == nil {
		return false
	}
	return strings.Contains(id, "-")
}
