package tasks

import (
	"github.com/julianstephens/habithub/internal/calendar"
	"github.com/julianstephens/habithub/internal/cli"
	"github.com/julianstephens/habithub/internal/models"
)

type TaskAddCmd struct {
	Name        string `arg:"" help:"Task name."`
	Description string `short:"d" help:"Longer description (Markdown)."`
	Color       string `short:"c" help:"Card colour from the palette (default #ADF7B6)."`
	Tag         string `short:"t" help:"Category tag (Daily Routine|Study Routine|Fitness|Work|Hobby)."`
	Repeat      string `short:"r" help:"Recurrence (daily|weekly|monthly)."`
	Weekdays    string `short:"w" help:"Comma-separated weekdays for weekly recurrence."`
	Date        string `help:"Day the task belongs to (YYYY-MM-DD, default: today)."`
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	repeat, err := buildRepeat(c.Repeat, c.Weekdays)
	if err != nil {
		return err
	}

	task := models.Task{
		Name:        c.Name,
		Description: c.Description,
		Color:       c.Color,
		Tag:         c.Tag,
		Repeat:      repeat,
	}
	if c.Date != "" {
		day, err := calendar.ParseDateKey(c.Date)
		if err != nil {
			return err
		}
		task.CreatedAt = calendar.OnDay(day, ctx.Tracker.Now())
	}

	created, err := ctx.Tracker.CreateTask(ctx.Context(), task)
	if err != nil {
		return err
	}
	ctx.Printf("Added task: %s (ID: %d) on %s\n", created.Name, created.ID, calendar.DateKey(created.CreatedAt))
	return nil
}
