package storage

import (
	"context"
	"errors"

	"github.com/julianstephens/habithub/internal/models"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
	// ErrNotInitialized is returned by Load when the database was never set up.
	ErrNotInitialized = errors.New("storage not initialized, run 'habithub init' first")
)

type Provider interface {
	// Lifecycle
	Init(ctx context.Context) error
	Load(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error
	SchemaVersion(ctx context.Context) (current, latest int, err error)

	// Tasks
	AddTask(ctx context.Context, task models.Task) (models.Task, error)
	GetTask(ctx context.Context, id int64) (models.Task, error)
	// GetTasks returns the user's tasks, newest first. On a local SQLite
	// database an empty userID matches every task; shared backends match
	// only tasks created while signed out.
	GetTasks(ctx context.Context, userID string) ([]models.Task, error)
	// GetTasksInRange returns tasks whose UTC creation date lies in
	// [start, end] (inclusive date keys), oldest first.
	GetTasksInRange(ctx context.Context, userID, start, end string) ([]models.Task, error)
	UpdateTask(ctx context.Context, task models.Task) error
	SetTaskCompletion(ctx context.Context, id int64, completed bool) error
	DeleteTask(ctx context.Context, id int64) error

	// Users
	AddUser(ctx context.Context, user models.User) error
	GetUser(ctx context.Context, id string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	AddPasswordReset(ctx context.Context, reset models.PasswordReset) error

	// Utils
	GetConfigPath() string
}
