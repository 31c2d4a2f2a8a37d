package habits

import (
	"bytes"
	"context"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/habithub/internal/calendar"
	"github.com/julianstephens/habithub/internal/cli"
	"github.com/julianstephens/habithub/internal/config"
	"github.com/julianstephens/habithub/internal/constants"
	"github.com/julianstephens/habithub/internal/keyring"
	"github.com/julianstephens/habithub/internal/models"
	"github.com/julianstephens/habithub/internal/retry"
	"github.com/julianstephens/habithub/internal/storage/sqlite"
	"github.com/julianstephens/habithub/internal/tracker"
)

// now is a Thursday.
var now = time.Date(2024, 2, 15, 9, 30, 0, 0, time.UTC)

func setupTestContext(t *testing.T) (*cli.Context, *sqlite.Store, *bytes.Buffer) {
	t.Helper()
	gokeyring.MockInit()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := sqlite.NewStore(dbPath)
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	cfg := &config.Config{Database: dbPath, RateLimit: 1000, SessionTTL: time.Hour}
	ctx := cli.NewContext(cfg, store, keyring.OS{})
	ctx.Tracker = tracker.New(store, ctx.Auth, tracker.Options{
		Retry: retry.Policy{MaxAttempts: 1},
		Clock: func() time.Time { return now },
	})
	out := &bytes.Buffer{}
	ctx.Out = out
	return ctx, store, out
}

func addTask(t *testing.T, store *sqlite.Store, name, tag string, at time.Time, done bool) models.Task {
	t.Helper()
	task, err := store.AddTask(context.Background(), models.Task{
		Name:      name,
		Tag:       tag,
		Color:     constants.DefaultCardColor,
		CreatedAt: at,
		Completed: done,
	})
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	return task
}

func TestWeekCmd(t *testing.T) {
	ctx, store, out := setupTestContext(t)
	addTask(t, store, "Run", constants.TagFitness, now, true)
	addTask(t, store, "Read", constants.TagStudyRoutine, now.AddDate(0, 0, -3), false)
	addTask(t, store, "Last week", "", now.AddDate(0, 0, -7), false)

	if err := (&WeekCmd{}).Run(ctx); err != nil {
		t.Fatalf("WeekCmd.Run: %v", err)
	}
	got := out.String()
	for _, want := range []string{
		"Mon 12  0/1",
		"Thu 15 (today)  1/1",
		"[x] 🏃 Run",
		"[ ] 📚 Read",
		"Sun 18  0/0",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Last week") {
		t.Errorf("task from the previous week leaked into output:\n%s", got)
	}
}

func TestMonthCmd(t *testing.T) {
	ctx, store, out := setupTestContext(t)
	addTask(t, store, "Run", constants.TagFitness, time.Date(2024, 2, 3, 8, 0, 0, 0, time.UTC), true)
	addTask(t, store, "Read", "", time.Date(2024, 2, 20, 8, 0, 0, 0, time.UTC), false)

	if err := (&MonthCmd{}).Run(ctx); err != nil {
		t.Fatalf("MonthCmd.Run: %v", err)
	}
	got := out.String()
	for _, want := range []string{"February 2024", "  3✓", " 20*", "[15]"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestMonthCmdInvalidDate(t *testing.T) {
	ctx, _, _ := setupTestContext(t)
	if err := (&MonthCmd{Date: "2024-13-01"}).Run(ctx); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestDayCmdFiltersByTag(t *testing.T) {
	ctx, store, out := setupTestContext(t)
	addTask(t, store, "Run", constants.TagFitness, now, false)
	addTask(t, store, "Code", constants.TagWork, now, false)
	addTask(t, store, "Misc", "", now, false)

	tests := []struct {
		tag     string
		want    []string
		notWant []string
	}{
		{tag: "All", want: []string{"Run", "Code", "Misc"}},
		{tag: "fitness", want: []string{"Run"}, notWant: []string{"Code", "Misc"}},
		{tag: "Uncategorized", want: []string{"Misc"}, notWant: []string{"Run", "Code"}},
		{tag: "Hobby", want: []string{constants.MsgEmptyDay}, notWant: []string{"Run"}},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			out.Reset()
			if err := (&DayCmd{Tag: tt.tag}).Run(ctx); err != nil {
				t.Fatalf("DayCmd.Run: %v", err)
			}
			got := out.String()
			if !strings.HasPrefix(got, "February, 15th, Thursday") {
				t.Errorf("unexpected header:\n%s", got)
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("output missing %q:\n%s", w, got)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(got, w) {
					t.Errorf("output unexpectedly contains %q:\n%s", w, got)
				}
			}
		})
	}
}

func TestDayCmdUnknownTag(t *testing.T) {
	ctx, _, _ := setupTestContext(t)
	err := (&DayCmd{Tag: "Gardening"}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "unknown category") {
		t.Errorf("DayCmd.Run() = %v, want unknown category error", err)
	}
}

func TestHabitToggleCmd(t *testing.T) {
	ctx, store, out := setupTestContext(t)
	task := addTask(t, store, "Run", constants.TagFitness, now, false)
	id := strconv.FormatInt(task.ID, 10)

	if err := (&HabitToggleCmd{ID: id}).Run(ctx); err != nil {
		t.Fatalf("HabitToggleCmd.Run: %v", err)
	}
	if !strings.Contains(out.String(), "[x] Run") {
		t.Errorf("unexpected output:\n%s", out)
	}
	stored, err := store.GetTask(context.Background(), task.ID)
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if !stored.Completed {
		t.Error("completion was not persisted")
	}

	if err := (&HabitToggleCmd{ID: "999"}).Run(ctx); err == nil {
		t.Error("expected error for unknown habit")
	}
	if err := (&HabitToggleCmd{ID: id, Date: "2024-02-14"}).Run(ctx); err == nil {
		t.Error("expected error for habit on a different day")
	}
}

func TestMonthCell(t *testing.T) {
	done := []models.Habit{{ID: "1", Completed: true}}
	pending := []models.Habit{{ID: "1"}, {ID: "2", Completed: true}}

	tests := []struct {
		name string
		day  calendar.CalendarDay
		list []models.Habit
		want string
	}{
		{name: "today", day: calendar.CalendarDay{Day: "Thu", Date: "15", CurrentMonth: true, IsToday: true}, want: "[15]"},
		{name: "all done", day: calendar.CalendarDay{Day: "Sat", Date: "3", CurrentMonth: true}, list: done, want: "  3✓"},
		{name: "pending", day: calendar.CalendarDay{Day: "Tue", Date: "20", CurrentMonth: true}, list: pending, want: " 20*"},
		{name: "empty", day: calendar.CalendarDay{Day: "Wed", Date: "7", CurrentMonth: true}, want: "  7 "},
		{name: "outside month", day: calendar.CalendarDay{Day: "Mon", Date: "29"}, list: done, want: "    "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := monthCell(tt.day, tt.list); got != tt.want {
				t.Errorf("monthCell() = %q, want %q", got, tt.want)
			}
		})
	}
}
