package system

import (
	"context"
	"strings"
	"testing"

	"github.com/julianstephens/habithub/internal/models"
)

func TestInitCmd_ForceRecreatesDatabase(t *testing.T) {
	ctx, store, out := setupTestContext(t)

	if _, err := store.AddTask(context.Background(), models.Task{Name: "Read", CreatedAt: testNow}); err != nil {
		t.Fatalf("AddTask: %v", err)
	}

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("InitCmd.Run: %v", err)
	}
	if !strings.Contains(out.String(), "Removed existing database") {
		t.Errorf("expected removal notice, got:\n%s", out)
	}

	tasks, err := store.GetTasks(context.Background(), "")
	if err != nil {
		t.Fatalf("GetTasks: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("expected empty database after --force, got %d tasks", len(tasks))
	}
}

func TestInitCmd_IsIdempotent(t *testing.T) {
	ctx, _, _ := setupTestContext(t)

	for i := 0; i < 2; i++ {
		if err := (&InitCmd{}).Run(ctx); err != nil {
			t.Fatalf("InitCmd.Run #%d: %v", i+1, err)
		}
	}
}

func TestMigrateCmd_ReportsVersion(t *testing.T) {
	ctx, _, out := setupTestContext(t)

	if err := (&MigrateCmd{}).Run(ctx); err != nil {
		t.Fatalf("MigrateCmd.Run: %v", err)
	}
	if !strings.Contains(out.String(), "schema is at version 1 (latest 1)") {
		t.Errorf("unexpected output:\n%s", out)
	}
}
