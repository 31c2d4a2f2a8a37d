package habits

import (
	"strings"

	"github.com/julianstephens/habithub/internal/constants"
	"github.com/julianstephens/habithub/internal/models"
)

// Category is a filter chip.
type Category string

const (
	CategoryAll           Category = "All"
	CategoryDailyRoutine  Category = constants.TagDailyRoutine
	CategoryStudyRoutine  Category = constants.TagStudyRoutine
	CategoryFitness       Category = constants.TagFitness
	CategoryWork          Category = constants.TagWork
	CategoryHobby         Category = constants.TagHobby
	CategoryUncategorized Category = "Uncategorized"
)

var emojiCategory = map[string]Category{
	"🏃": CategoryFitness,
	"📚": CategoryStudyRoutine,
	"💻": CategoryWork,
	"🎵": CategoryHobby,
	"🌞": CategoryDailyRoutine,
}

// Categories returns the chips in display order.
func Categories() []Category {
	return []Category{
		CategoryAll,
		CategoryDailyRoutine,
		CategoryStudyRoutine,
		CategoryFitness,
		CategoryWork,
		CategoryHobby,
		CategoryUncategorized,
	}
}

// ParseCategory matches a chip label case-insensitively.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories() {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, true
		}
	}
	return "", false
}

// DeriveCategory maps a habit's emoji onto a category. Unmapped emoji
// report false.
func DeriveCategory(h models.Habit) (Category, bool) {
	c, ok := emojiCategory[h.Emoji]
	return c, ok
}

// FilterByTag narrows a day's habits to one category, preserving order.
// All returns the input unchanged; Uncategorized selects habits whose emoji
// has no category.
func FilterByTag(list []models.Habit, tag Category) []models.Habit {
	if tag == CategoryAll {
		return list
	}
	out := make([]models.Habit, 0, len(list))
	for _, h := range list {
		c, ok := DeriveCategory(h)
		switch {
		case tag == CategoryUncategorized && !ok:
			out = append(out, h)
		case ok && c == tag:
			out = append(out, h)
		}
	}
	return out
}
