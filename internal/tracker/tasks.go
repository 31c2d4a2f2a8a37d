package tracker

import (
	"context"
	"fmt"
	"strings"

	"github.com/julianstephens/habithub/internal/calendar"
	"github.com/julianstephens/habithub/internal/logger"
	"github.com/julianstephens/habithub/internal/models"
	"github.com/julianstephens/habithub/internal/validation"
)

// prepare validates and normalises the user-editable fields of a task.
func prepare(task models.Task) (models.Task, error) {
	task.Name = strings.TrimSpace(task.Name)
	res := validation.Validate(
		map[string]string{validation.FieldTaskName: task.Name},
		validation.NewTaskRules,
		validation.NewTaskMessages,
	)
	if !res.Valid {
		return task, fmt.Errorf("%w: %s", ErrInvalidTask, res.Errors[validation.FieldTaskName])
	}

	var err error
	if task.Tag, err = NormalizeTag(task.Tag); err != nil {
		return task, err
	}
	if task.Color, err = NormalizeColor(task.Color); err != nil {
		return task, err
	}
	if task.Repeat != "" {
		rec, err := models.ParseRecurrence(task.Repeat)
		if err != nil {
			return task, fmt.Errorf("%w: %v", ErrInvalidTask, err)
		}
		task.Repeat = rec.String()
	}
	return task, nil
}

// CreateTask stores a new task owned by the signed-in user. A zero CreatedAt
// schedules it for the local today.
func (t *Tracker) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	task, err := prepare(task)
	if err != nil {
		return models.Task{}, err
	}
	if err := t.beginWrite(ctx); err != nil {
		return models.Task{}, err
	}

	if task.UserID, err = t.userID(ctx); err != nil {
		return models.Task{}, err
	}
	if task.CreatedAt.IsZero() {
		now := t.now()
		task.CreatedAt = calendar.OnDay(now, now)
	}
	task.CreatedAt = task.CreatedAt.UTC()

	created, err := call(ctx, t, func(ctx context.Context) (models.Task, error) {
		return t.store.AddTask(ctx, task)
	})
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to create task: %w", err)
	}
	logger.Info("task created", "id", created.ID, "name", created.Name)
	return created, nil
}

// ListTasks returns the signed-in user's tasks, newest first.
func (t *Tracker) ListTasks(ctx context.Context) ([]models.Task, error) {
	uid, err := t.userID(ctx)
	if err != nil {
		return nil, err
	}
	return call(ctx, t, func(ctx context.Context) ([]models.Task, error) {
		return t.store.GetTasks(ctx, uid)
	})
}

func (t *Tracker) GetTask(ctx context.Context, id int64) (models.Task, error) {
	return call(ctx, t, func(ctx context.Context) (models.Task, error) {
		return t.store.GetTask(ctx, id)
	})
}

// UpdateTask replaces the editable fields of an existing task.
func (t *Tracker) UpdateTask(ctx context.Context, task models.Task) error {
	task, err := prepare(task)
	if err != nil {
		return err
	}
	if task.CreatedAt.IsZero() {
		return fmt.Errorf("%w: missing creation date", ErrInvalidTask)
	}
	if err := t.beginWrite(ctx); err != nil {
		return err
	}
	return exec(ctx, t, func(ctx context.Context) error {
		return t.store.UpdateTask(ctx, task)
	})
}

func (t *Tracker) DeleteTask(ctx context.Context, id int64) error {
	if err := t.beginWrite(ctx); err != nil {
		return err
	}
	if err := exec(ctx, t, func(ctx context.Context) error {
		return t.store.DeleteTask(ctx, id)
	}); err != nil {
		return err
	}
	logger.Info("task deleted", "id", id)
	return nil
}
