package models

import "time"

// Task is a persisted task record, one row of the tasks table.
type Task struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name_task"`
	Description string    `json:"description_task"`
	Color       string    `json:"color_task"`
	Repeat      string    `json:"repeat_task"` // Recurrence.String() form
	Tag         string    `json:"tag_task"`
	CreatedAt   time.Time `json:"created_at"`
	Completed   bool      `json:"completed"`
}

// Habit is the display projection of a Task for one calendar date.
type Habit struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Emoji     string `json:"emoji"`
	Completed bool   `json:"completed"`
	Date      string `json:"date"` // YYYY-MM-DD
}

// HabitsByDate maps a date key to that day's habits in retrieval order.
type HabitsByDate map[string][]Habit

// Clone returns a copy whose slices can be modified without touching h.
func (h HabitsByDate) Clone() HabitsByDate {
	out := make(HabitsByDate, len(h))
	for date, list := range h {
		out[date] = append([]Habit(nil), list...)
	}
	return out
}

// Count returns the total number of habits across all dates.
func (h HabitsByDate) Count() int {
	n := 0
	for _, list := range h {
		n += len(list)
	}
	return n
}
