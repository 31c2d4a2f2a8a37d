package migration

import (
	"context"
	"database/sql"
	"io/fs"
	"os"
	"testing"
	"testing/fstest"

	_ "github.com/lib/pq"

	"github.com/julianstephens/habithub/migrations"
)

// setupPostgresTestDB connects to the database named by POSTGRES_TEST_URL,
// e.g. postgres://user@localhost:5432/testdb?sslmode=disable
func setupPostgresTestDB(t *testing.T) *sql.DB {
	t.Helper()
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("failed to open postgres database: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Fatalf("failed to ping postgres database: %v", err)
	}

	drop := func() {
		for _, table := range []string{"password_resets", "user_tasks", "users", "test_users", "schema_version"} {
			db.Exec("DROP TABLE IF EXISTS " + table)
		}
	}
	drop()
	t.Cleanup(func() {
		drop()
		db.Close()
	})
	return db
}

func TestPostgresSetVersion(t *testing.T) {
	ctx := context.Background()
	db := setupPostgresTestDB(t)

	r, err := NewRunner(db, fstest.MapFS{}, DialectPostgres)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []int{1, 2} {
		if err := r.SetVersion(ctx, want); err != nil {
			t.Fatalf("SetVersion(%d): %v", want, err)
		}
		got, err := r.CurrentVersion(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("version = %d, want %d", got, want)
		}
	}
}

func TestPostgresEmbeddedMigrations(t *testing.T) {
	ctx := context.Background()
	db := setupPostgresTestDB(t)

	sub, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		t.Fatal(err)
	}
	r, err := NewRunner(db, sub, DialectPostgres)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.Apply(ctx); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if err := r.Validate(ctx); err != nil {
		t.Errorf("Validate: %v", err)
	}
}
