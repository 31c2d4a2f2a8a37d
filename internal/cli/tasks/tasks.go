// Package tasks holds the task management commands.
package tasks

type TaskCmd struct {
	Add    TaskAddCmd    `cmd:"" help:"Add a new task."`
	List   TaskListCmd   `cmd:"" help:"List tasks, newest first."`
	Show   TaskShowCmd   `cmd:"" help:"Show a task."`
	Edit   TaskEditCmd   `cmd:"" help:"Edit an existing task."`
	Delete TaskDeleteCmd `cmd:"" help:"Delete a task."`
}
