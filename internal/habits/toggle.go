package habits

import "github.com/julianstephens/habithub/internal/models"

// Rollback restores the completion flag a Toggle changed. It sets the old
// value rather than flipping, so applying it twice is harmless.
type Rollback func(models.HabitsByDate) models.HabitsByDate

// Find returns the habit with id in the given date's list.
func Find(state models.HabitsByDate, date, id string) (models.Habit, bool) {
	for _, h := range state[date] {
		if h.ID == id {
			return h, true
		}
	}
	return models.Habit{}, false
}

func setCompleted(state models.HabitsByDate, date, id string, completed bool) models.HabitsByDate {
	list, ok := state[date]
	if !ok {
		return state
	}
	next := make(models.HabitsByDate, len(state))
	for k, v := range state {
		next[k] = v
	}
	copied := append([]models.Habit(nil), list...)
	for i := range copied {
		if copied[i].ID == id {
			copied[i].Completed = completed
		}
	}
	next[date] = copied
	return next
}

// Toggle flips the completion of one habit. The returned state is a new map
// sharing untouched date lists with the input; state itself is not modified.
// When the habit is not in that date's list the input is returned with ok
// false and a no-op rollback.
func Toggle(state models.HabitsByDate, date, id string) (next models.HabitsByDate, undo Rollback, ok bool) {
	h, found := Find(state, date, id)
	if !found {
		return state, func(s models.HabitsByDate) models.HabitsByDate { return s }, false
	}

	previous := h.Completed
	next = setCompleted(state, date, id, !previous)
	undo = func(s models.HabitsByDate) models.HabitsByDate {
		if _, ok := Find(s, date, id); !ok {
			return s
		}
		return setCompleted(s, date, id, previous)
	}
	return next, undo, true
}
