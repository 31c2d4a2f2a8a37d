package backup

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "habithub.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE user_tasks (id INTEGER PRIMARY KEY, name TEXT)`); err != nil {
		t.Fatalf("failed to create test table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO user_tasks (name) VALUES ('Run'), ('Read')`); err != nil {
		t.Fatalf("failed to insert test data: %v", err)
	}
	return dbPath
}

func countTasks(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer db.Close()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM user_tasks").Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

// fixedClock returns a manager clock advancing one second per call.
func fixedClock(start time.Time) func() time.Time {
	t := start
	return func() time.Time {
		cur := t
		t = t.Add(time.Second)
		return cur
	}
}

func TestCreate(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	path, err := mgr.Create(context.Background())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if filepath.Dir(path) != mgr.Dir() {
		t.Errorf("backup written to %s, want %s", path, mgr.Dir())
	}
	if got := countTasks(t, path); got != 2 {
		t.Errorf("backup has %d rows, want 2", got)
	}
}

func TestCreateMissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.Create(context.Background()); !errors.Is(err, ErrNoDatabase) {
		t.Errorf("Create() = %v, want ErrNoDatabase", err)
	}
}

func TestSameSecondGetsCounter(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	at := time.Date(2024, 2, 15, 9, 30, 0, 0, time.Local)
	mgr.now = func() time.Time { return at }

	first, err := mgr.Create(context.Background())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := mgr.Create(context.Background())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if first == second {
		t.Fatal("second backup overwrote the first")
	}
	if filepath.Base(second) != "habithub-20240215-093000-1.db" {
		t.Errorf("unexpected name %s", filepath.Base(second))
	}

	list, err := mgr.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("List() returned %d entries, want 2", len(list))
	}
}

func TestListNewestFirstAndIgnoresOtherFiles(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = fixedClock(time.Date(2024, 2, 15, 9, 0, 0, 0, time.Local))

	for i := 0; i < 3; i++ {
		if _, err := mgr.Create(context.Background()); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	for _, name := range []string{"notes.txt", "habithub-garbage.db", "habithub-20240215-090000-x.db"} {
		if err := os.WriteFile(filepath.Join(mgr.Dir(), name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	list, err := mgr.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("List() returned %d entries, want 3", len(list))
	}
	for i := 1; i < len(list); i++ {
		if !list[i-1].Timestamp.After(list[i].Timestamp) {
			t.Errorf("entries not sorted newest first: %v before %v", list[i-1].Timestamp, list[i].Timestamp)
		}
	}
}

func TestRotation(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = fixedClock(time.Date(2024, 2, 15, 9, 0, 0, 0, time.Local))

	for i := 0; i < MaxBackups+3; i++ {
		if _, err := mgr.Create(context.Background()); err != nil {
			t.Fatalf("Create #%d: %v", i, err)
		}
	}
	list, err := mgr.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != MaxBackups {
		t.Errorf("kept %d backups, want %d", len(list), MaxBackups)
	}
}

func TestRestore(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = fixedClock(time.Date(2024, 2, 15, 9, 0, 0, 0, time.Local))
	ctx := context.Background()

	snapshot, err := mgr.Create(ctx)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("DELETE FROM user_tasks"); err != nil {
		t.Fatal(err)
	}
	db.Close()

	previous, err := mgr.Restore(ctx, snapshot)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if got := countTasks(t, dbPath); got != 2 {
		t.Errorf("restored database has %d rows, want 2", got)
	}
	if previous == "" || countTasks(t, previous) != 0 {
		t.Errorf("pre-restore snapshot missing or wrong: %q", previous)
	}
}

func TestRestoreRejectsInvalidFile(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	bogus := filepath.Join(t.TempDir(), "bogus.db")
	if err := os.WriteFile(bogus, []byte("not a database"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.Restore(context.Background(), bogus); err == nil {
		t.Error("expected error restoring an invalid file")
	}
	if _, err := mgr.Restore(context.Background(), filepath.Join(t.TempDir(), "nope.db")); err == nil {
		t.Error("expected error restoring a missing file")
	}
	if got := countTasks(t, dbPath); got != 2 {
		t.Errorf("database changed after failed restore: %d rows", got)
	}
}
