package tasks

import (
	"fmt"

	"github.com/julianstephens/habithub/internal/cli"
)

type TaskDeleteCmd struct {
	ID int64 `arg:"" help:"Task ID."`
}

func (c *TaskDeleteCmd) Run(ctx *cli.Context) error {
	task, err := ctx.Tracker.GetTask(ctx.Context(), c.ID)
	if err != nil {
		return fmt.Errorf("failed to find task: %w", err)
	}
	if err := ctx.Tracker.DeleteTask(ctx.Context(), c.ID); err != nil {
		return err
	}
	ctx.Printf("Deleted task: %s\n", task.Name)
	return nil
}
