package sqlite

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
	var createdAt string
	if err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.Description, &t.Color, &t.Repeat, &t.Tag, &createdAt, &t.Completed); err != nil {
		return models.Task{}, err
	}
	ts, err := parseTime(createdAt)
	if err != nil {
		return models.Task{}, fmt.Errorf("task %d: bad created_at %q: %w", t.ID, createdAt, err)
	}
	t.CreatedAt = ts
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
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO user_tasks (user_id, name, description, color, repeat, tag, created_at, completed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		task.UserID, task.Name, task.Description, task.Color, task.Repeat, task.Tag,
		formatTime(task.CreatedAt), task.Completed,
	)
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to insert task: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to read task id: %w", err)
	}
	task.ID = id
	task.CreatedAt = task.CreatedAt.UTC()
	return task, nil
}

func (s *Store) GetTask(ctx context.Context, id int64) (models.Task, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM user_tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, fmt.Errorf("task %d: %w", id, storage.ErrNotFound)
	}
	return t, err
}

// GetTasks returns userID's tasks. The file belongs to one person, so an
// empty userID matches every task.
func (s *Store) GetTasks(ctx context.Context, userID string) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+taskColumns+` FROM user_tasks
		WHERE (? = '' OR user_id = ?)
		ORDER BY created_at DESC, id DESC`, userID, userID)
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
		WHERE created_at >= ? AND created_at < ? AND (? = '' OR user_id = ?)
		ORDER BY created_at ASC, id ASC`,
		formatTime(from), formatTime(to), userID, userID)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

func affectedOne(res sql.Result, what string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", what, id, storage.ErrNotFound)
	}
	return nil
}

func (s *Store) UpdateTask(ctx context.Context, task models.Task) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE user_tasks
		SET name = ?, description = ?, color = ?, repeat = ?, tag = ?, created_at = ?, completed = ?
		WHERE id = ?`,
		task.Name, task.Description, task.Color, task.Repeat, task.Tag,
		formatTime(task.CreatedAt), task.Completed, task.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return affectedOne(res, "task", task.ID)
}

func (s *Store) SetTaskCompletion(ctx context.Context, id int64, completed bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE user_tasks SET completed = ? WHERE id = ?`, completed, id)
	if err != nil {
		return fmt.Errorf("failed to update task status: %w", err)
	}
	return affectedOne(res, "task", id)
}

func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM user_tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return affectedOne(res, "task", id)
}
