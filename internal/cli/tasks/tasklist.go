package tasks

import (
	"fmt"

	"github.com/julianstephens/habithub/internal/calendar"
	"github.com/julianstephens/habithub/internal/cli"
	"github.com/julianstephens/habithub/internal/habits"
)

type TaskListCmd struct {
	Tag string `help:"Only list tasks with this tag."`
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	tasks, err := ctx.Tracker.ListTasks(ctx.Context())
	if err != nil {
		return fmt.Errorf("failed to get tasks: %w", err)
	}

	shown := 0
	for _, task := range tasks {
		if c.Tag != "" && task.Tag != c.Tag {
			continue
		}
		if shown == 0 {
			ctx.Println("Tasks:")
		}
		shown++

		repeat := ""
		if task.Repeat != "" {
			repeat = ", " + task.Repeat
		}
		ctx.Printf("  %s %s %s (ID: %d, %s%s)\n",
			cli.Checkbox(task.Completed), habits.EmojiForTag(task.Tag),
			cli.Truncate(task.Name, 40), task.ID, calendar.DateKey(task.CreatedAt), repeat)
	}
	if shown == 0 {
		ctx.Println("No tasks found")
	}
	return nil
}
