// Package habits holds the calendar views and the completion toggle.
package habits

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habithub/internal/calendar"
	"github.com/julianstephens/habithub/internal/cli"
	"github.com/julianstephens/habithub/internal/constants"
	hab "github.com/julianstephens/habithub/internal/habits"
	"github.com/julianstephens/habithub/internal/models"
)

// dateOrToday resolves an optional --date flag against the tracker clock.
func dateOrToday(ctx *cli.Context, date string) (string, error) {
	if date == "" {
		return calendar.DateKey(ctx.Tracker.Now()), nil
	}
	if _, err := calendar.ParseDateKey(date); err != nil {
		return "", err
	}
	return date, nil
}

func printHabit(ctx *cli.Context, h models.Habit) {
	ctx.Printf("  %s %s %s  (id %s)\n", cli.Checkbox(h.Completed), h.Emoji, h.Title, h.ID)
}

func completedCount(list []models.Habit) int {
	n := 0
	for _, h := range list {
		if h.Completed {
			n++
		}
	}
	return n
}

type WeekCmd struct{}

func (c *WeekCmd) Run(ctx *cli.Context) error {
	grouped, err := ctx.Tracker.HabitsForWeek(ctx.Context())
	if err != nil {
		return err
	}

	for _, d := range calendar.WeekDates(ctx.Tracker.Now()) {
		list := grouped[d.FullDate]
		marker := ""
		if d.IsToday {
			marker = " (today)"
		}
		ctx.Printf("%s %s%s  %d/%d\n", d.DayName, d.DayNumber, marker, completedCount(list), len(list))
		for _, h := range list {
			printHabit(ctx, h)
		}
	}
	return nil
}

type MonthCmd struct {
	Date string `help:"Any date in the month to show (YYYY-MM-DD, default: today)."`
}

func (c *MonthCmd) Run(ctx *cli.Context) error {
	now := ctx.Tracker.Now()
	days, err := calendar.MonthDays(c.Date, now)
	if err != nil {
		return err
	}
	data, err := calendar.GetMonthData(c.Date, now)
	if err != nil {
		return err
	}
	grouped, err := ctx.Tracker.HabitsForMonth(ctx.Context(), c.Date)
	if err != nil {
		return err
	}

	ctx.Printf("%s %s\n", data.Month, data.Year)
	ctx.Println(" Mo   Tu   We   Th   Fr   Sa   Su")
	var row strings.Builder
	for i, d := range days {
		row.WriteString(monthCell(d, grouped[d.FullDate]))
		if i%7 == 6 {
			ctx.Println(strings.TrimRight(row.String(), " "))
			row.Reset()
		} else {
			row.WriteString(" ")
		}
	}
	ctx.Println()
	ctx.Println("[dd] today  * has habits  ✓ all done")
	return nil
}

// monthCell renders one four-column grid cell. Days outside the month are
// blank.
func monthCell(d calendar.CalendarDay, list []models.Habit) string {
	if !d.CurrentMonth {
		return "    "
	}
	mark := " "
	switch {
	case len(list) > 0 && completedCount(list) == len(list):
		mark = "✓"
	case len(list) > 0:
		mark = "*"
	}
	if d.IsToday {
		return fmt.Sprintf("[%2s]", d.Date)
	}
	return fmt.Sprintf(" %2s%s", d.Date, mark)
}

type DayCmd struct {
	Date string `help:"Date to show (YYYY-MM-DD, default: today)."`
	Tag  string `help:"Only show habits in this category." default:"All"`
}

func (c *DayCmd) Run(ctx *cli.Context) error {
	date, err := dateOrToday(ctx, c.Date)
	if err != nil {
		return err
	}
	tag, ok := hab.ParseCategory(c.Tag)
	if !ok {
		names := make([]string, 0, len(hab.Categories()))
		for _, cat := range hab.Categories() {
			names = append(names, string(cat))
		}
		return fmt.Errorf("unknown category %q (one of: %s)", c.Tag, strings.Join(names, ", "))
	}

	list, err := ctx.Tracker.HabitsForDate(ctx.Context(), date)
	if err != nil {
		return err
	}
	list = hab.FilterByTag(list, tag)

	title, err := calendar.FormatDateWithDay(date)
	if err != nil {
		return err
	}
	ctx.Println(title)
	if len(list) == 0 {
		ctx.Println(constants.MsgEmptyDay)
		return nil
	}
	for _, h := range list {
		printHabit(ctx, h)
	}
	return nil
}

type HabitCmd struct {
	Toggle HabitToggleCmd `cmd:"" help:"Toggle a habit's completion for a day."`
}

type HabitToggleCmd struct {
	ID   string `arg:"" help:"Habit id."`
	Date string `help:"Date the habit belongs to (YYYY-MM-DD, default: today)."`
}

func (c *HabitToggleCmd) Run(ctx *cli.Context) error {
	date, err := dateOrToday(ctx, c.Date)
	if err != nil {
		return err
	}
	list, err := ctx.Tracker.HabitsForDate(ctx.Context(), date)
	if err != nil {
		return err
	}
	if _, ok := hab.Find(models.HabitsByDate{date: list}, date, c.ID); !ok {
		return fmt.Errorf("habit %s not found on %s", c.ID, date)
	}

	state, err := ctx.Tracker.ToggleCompletion(ctx.Context(), models.HabitsByDate{date: list}, date, c.ID)
	if err != nil {
		return err
	}
	h, _ := hab.Find(state, date, c.ID)
	ctx.Printf("%s %s\n", cli.Checkbox(h.Completed), h.Title)
	return nil
}
