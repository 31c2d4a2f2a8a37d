package tasks

import (
	"fmt"

	"github.com/julianstephens/habithub/internal/calendar"
	"github.com/julianstephens/habithub/internal/cli"
)

type TaskEditCmd struct {
	ID          int64   `arg:"" help:"Task ID."`
	Name        *string `help:"New task name."`
	Description *string `short:"d" help:"New description."`
	Color       *string `short:"c" help:"New card colour."`
	Tag         *string `short:"t" help:"New tag (empty to clear)."`
	Repeat      *string `short:"r" help:"New recurrence (daily|weekly|monthly, empty to clear)."`
	Weekdays    string  `short:"w" help:"Weekdays for weekly recurrence."`
	Date        *string `help:"Move the task to another day (YYYY-MM-DD)."`
	Completed   *bool   `help:"Set completion status."`
}

func (c *TaskEditCmd) Run(ctx *cli.Context) error {
	task, err := ctx.Tracker.GetTask(ctx.Context(), c.ID)
	if err != nil {
		return fmt.Errorf("failed to find task: %w", err)
	}

	if c.Name != nil {
		task.Name = *c.Name
	}
	if c.Description != nil {
		task.Description = *c.Description
	}
	if c.Color != nil {
		task.Color = *c.Color
	}
	if c.Tag != nil {
		task.Tag = *c.Tag
	}
	if c.Repeat != nil {
		if task.Repeat, err = buildRepeat(*c.Repeat, c.Weekdays); err != nil {
			return err
		}
	} else if c.Weekdays != "" {
		return fmt.Errorf("--weekdays requires --repeat weekly")
	}
	if c.Date != nil {
		day, err := calendar.ParseDateKey(*c.Date)
		if err != nil {
			return err
		}
		task.CreatedAt = calendar.OnDay(day, task.CreatedAt)
	}
	if c.Completed != nil {
		task.Completed = *c.Completed
	}

	if err := ctx.Tracker.UpdateTask(ctx.Context(), task); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	ctx.Printf("Updated task: %s\n", task.Name)
	return nil
}
