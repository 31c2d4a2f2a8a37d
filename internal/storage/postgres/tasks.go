package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/habithub/internal/models"
	"github.com/julianstephens/habithub/internal/storage"
)

const taskColumns = `id, user_id, name, description, color, repeat, tag, created_at, completed`

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (models.Task, error) {
	var t models.Task
	if err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.Description, &t.Color, &t.Repeat, &t.Tag, &t.CreatedAt, &t.Completed); err != nil {
		return models.Task{}, err
	}
	t.CreatedAt = t.CreatedAt.UTC()
	return t, nil
}

func collectTasks(rows *sql.Rows) ([]models.Task, error) {
	defer rows.Close()
	tasks := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *Store) AddTask(ctx context.Context, task models.Task) (models.Task, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO user_tasks (user_id, name, description, color, repeat, tag, created_at, completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		task.UserID, task.Name, task.Description, task.Color, task.Repeat, task.Tag,
		task.CreatedAt.UTC(), task.Completed,
	).Scan(&task.ID)
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to insert task: %w", err)
	}
	task.CreatedAt = task.CreatedAt.UTC()
	return task, nil
}

func (s *Store) GetTask(ctx context.Context, id int64) (models.Task, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM user_tasks WHERE id = $1`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, fmt.Errorf("task %d: %w", id, storage.ErrNotFound)
	}
	return t, err
}

// GetTasks returns userID's tasks. The database is shared, so an empty
// userID only matches tasks created while signed out.
func (s *Store) GetTasks(ctx context.Context, userID string) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+taskColumns+` FROM user_tasks
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

func (s *Store) GetTasksInRange(ctx context.Context, userID, start, end string) ([]models.Task, error) {
	from, to, err := storage.DayBounds(start, end)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+taskColumns+` FROM user_tasks
		WHERE created_at >= $1 AND created_at < $2 AND user_id = $3
		ORDER BY created_at ASC, id ASC`, from, to, userID)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

func affectedOne(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("task %d: %w", id, storage.ErrNotFound)
	}
	return nil
}

func (s *Store) UpdateTask(ctx context.Context, task models.Task) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE user_tasks
		SET name = $1, description = $2, color = $3, repeat = $4, tag = $5, created_at = $6, completed = $7
		WHERE id = $8`,
		task.Name, task.Description, task.Color, task.Repeat, task.Tag,
		task.CreatedAt.UTC(), task.Completed, task.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return affectedOne(res, task.ID)
}

func (s *Store) SetTaskCompletion(ctx context.Context, id int64, completed bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE user_tasks SET completed = $1 WHERE id = $2`, completed, id)
	if err != nil {
		return fmt.Errorf("failed to update task status: %w", err)
	}
	return affectedOne(res, id)
}

func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM user_tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return affectedOne(res, id)
}
