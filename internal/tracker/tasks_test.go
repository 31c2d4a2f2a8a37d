package tracker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/habithub/internal/calendar"
	"github.com/julianstephens/habithub/internal/constants"
	"github.com/julianstephens/habithub/internal/models"
)

func TestCreateTaskDefaults(t *testing.T) {
	store := newFakeStore()
	tr := newTracker(store)

	created, err := tr.CreateTask(context.Background(), models.Task{
		Name:   "  Meditate ",
		Tag:    "daily routine",
		Repeat: "Every week on Thu, Wed",
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if created.ID == 0 || created.UserID != "u1" {
		t.Errorf("created = %+v", created)
	}
	if created.Name != "Meditate" || created.Tag != constants.TagDailyRoutine {
		t.Errorf("fields not normalised: %+v", created)
	}
	if created.Color != constants.DefaultCardColor {
		t.Errorf("color = %q, want default", created.Color)
	}
	if created.Repeat != "Every week on Wed, Thu" {
		t.Errorf("repeat = %q", created.Repeat)
	}
	if !created.CreatedAt.Equal(now) {
		t.Errorf("created_at = %v, want %v", created.CreatedAt, now)
	}
}

func TestCreateTaskKeepsExplicitDate(t *testing.T) {
	tr := newTracker(newFakeStore())
	when := day(20, 10)
	created, err := tr.CreateTask(context.Background(), models.Task{Name: "Later", CreatedAt: when})
	if err != nil {
		t.Fatal(err)
	}
	if !created.CreatedAt.Equal(when) {
		t.Errorf("created_at = %v, want %v", created.CreatedAt, when)
	}
}

func TestCreateTaskValidation(t *testing.T) {
	tests := []struct {
		name string
		task models.Task
	}{
		{"blank name", models.Task{Name: "   "}},
		{"unknown tag", models.Task{Name: "x", Tag: "Gardening"}},
		{"unknown color", models.Task{Name: "x", Color: "#000000"}},
		{"bad repeat", models.Task{Name: "x", Repeat: "Every fortnight"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			_, err := newTracker(store).CreateTask(context.Background(), tt.task)
			if !errors.Is(err, ErrInvalidTask) {
				t.Errorf("err = %v, want ErrInvalidTask", err)
			}
			if store.writeCalls != 0 {
				t.Error("invalid task reached the store")
			}
		})
	}
}

func TestCreateTaskOffline(t *testing.T) {
	store := newFakeStore()
	store.offline = true
	_, err := newTracker(store).CreateTask(context.Background(), models.Task{Name: "Run"})
	if !errors.Is(err, ErrOffline) {
		t.Errorf("err = %v, want ErrOffline", err)
	}
}

func TestUpdateAndDeleteTask(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore(models.Task{UserID: "u1", Name: "Run", CreatedAt: day(15, 7)})
	tr := newTracker(store)

	task, err := tr.GetTask(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	task.Name = "Run 5k"
	task.Color = "#cc2222"
	if err := tr.UpdateTask(ctx, task); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if got := store.tasks[1]; got.Name != "Run 5k" || got.Color != "#CC2222" {
		t.Errorf("stored = %+v", got)
	}

	if err := tr.DeleteTask(ctx, 1); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if _, err := tr.GetTask(ctx, 1); err == nil {
		t.Error("task still present after delete")
	}
}

func TestListTasksOnlyOwn(t *testing.T) {
	store := newFakeStore(
		models.Task{UserID: "u1", Name: "mine old", CreatedAt: day(1, 1)},
		models.Task{UserID: "u2", Name: "theirs", CreatedAt: day(2, 1)},
		models.Task{UserID: "u1", Name: "mine new", CreatedAt: day(3, 1)},
	)
	tasks, err := newTracker(store).ListTasks(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 2 || tasks[0].Name != "mine new" {
		t.Errorf("ListTasks() = %+v", tasks)
	}
}

func TestNormalizeColor(t *testing.T) {
	got, err := NormalizeColor("#adf7b6")
	if err != nil || got != "#ADF7B6" {
		t.Errorf("NormalizeColor() = %q, %v", got, err)
	}
}

func TestCreateTaskUsesLocalToday(t *testing.T) {
	kiritimati := time.FixedZone("LINT", 14*60*60)
	local := time.Date(2024, 2, 15, 9, 0, 0, 0, kiritimati) // 2024-02-14 19:00 UTC

	tr := newTracker(newFakeStore())
	tr.now = func() time.Time { return local }

	created, err := tr.CreateTask(context.Background(), models.Task{Name: "Morning run"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if got := calendar.DateKey(created.CreatedAt); got != "2024-02-15" {
		t.Errorf("created on %s, want 2024-02-15", got)
	}

	list, err := tr.HabitsForDate(context.Background(), calendar.DateKey(tr.Now()))
	if err != nil {
		t.Fatalf("HabitsForDate: %v", err)
	}
	if len(list) != 1 || list[0].Title != "Morning run" {
		t.Errorf("today's habits = %+v, want the new task", list)
	}
}
