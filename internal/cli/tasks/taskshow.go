package tasks

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/julianstephens/habithub/internal/calendar"
	"github.com/julianstephens/habithub/internal/cli"
	"github.com/julianstephens/habithub/internal/habits"
	"github.com/julianstephens/habithub/internal/models"
)

type TaskShowCmd struct {
	ID int64 `arg:"" help:"Task ID."`
}

func (c *TaskShowCmd) Run(ctx *cli.Context) error {
	task, err := ctx.Tracker.GetTask(ctx.Context(), c.ID)
	if err != nil {
		return fmt.Errorf("failed to find task: %w", err)
	}

	date, err := calendar.FormatDate(calendar.DateKey(task.CreatedAt))
	if err != nil {
		return err
	}

	ctx.Printf("%s %s\n", habits.EmojiForTag(task.Tag), task.Name)
	ctx.Printf("  ID:     %d\n", task.ID)
	ctx.Printf("  Date:   %s\n", date)
	ctx.Printf("  Status: %s\n", status(task))
	if task.Tag != "" {
		ctx.Printf("  Tag:    %s\n", task.Tag)
	}
	ctx.Printf("  Colour: %s\n", task.Color)
	if task.Repeat != "" {
		ctx.Printf("  Repeat: %s\n", task.Repeat)
	}

	if strings.TrimSpace(task.Description) == "" {
		return nil
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(80))
	if err != nil {
		return err
	}
	out, err := r.Render(task.Description)
	if err != nil {
		return fmt.Errorf("failed to render description: %w", err)
	}
	ctx.Println()
	ctx.Printf("%s", out)
	return nil
}

func status(task models.Task) string {
	if task.Completed {
		return "done"
	}
	return "open"
}
