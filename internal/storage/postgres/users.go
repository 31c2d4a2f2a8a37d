package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/habithub/internal/models"
	"github.com/julianstephens/habithub/internal/storage"
)

func (s *Store) AddUser(ctx context.Context, user models.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Email, user.Name, user.PasswordHash, user.CreatedAt.UTC(),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("user %s: %w", user.Email, storage.ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *Store) getUser(ctx context.Context, where string, arg any) (models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, name, password_hash, created_at FROM users WHERE `+where, arg,
	).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, storage.ErrNotFound
	}
	return u, err
}

func (s *Store) GetUser(ctx context.Context, id string) (models.User, error) {
	return s.getUser(ctx, "id = $1", id)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	return s.getUser(ctx, "LOWER(email) = LOWER($1)", email)
}

func (s *Store) AddPasswordReset(ctx context.Context, reset models.PasswordReset) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO password_resets (token, user_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)`,
		reset.Token, reset.UserID, reset.CreatedAt.UTC(), reset.ExpiresAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert password reset: %w", err)
	}
	return nil
}
