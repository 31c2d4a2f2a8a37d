package habits

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/julianstephens/habithub/internal/constants"
	"github.com/julianstephens/habithub/internal/models"
)

func ts(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("bad timestamp %q: %v", s, err)
	}
	return v
}

func TestTaskToHabit(t *testing.T) {
	task := models.Task{
		ID:        42,
		Name:      "Morning run",
		Tag:       constants.TagFitness,
		CreatedAt: ts(t, "2024-02-15T10:00:00Z"),
		Completed: true,
	}

	h, err := TaskToHabit(task)
	if err != nil {
		t.Fatalf("TaskToHabit() error: %v", err)
	}
	want := models.Habit{ID: "42", Title: "Morning run", Emoji: "🏃", Completed: true, Date: "2024-02-15"}
	if h != want {
		t.Errorf("TaskToHabit() = %+v, want %+v", h, want)
	}
}

func TestTaskToHabitUsesUTCDate(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	task := models.Task{ID: 1, CreatedAt: time.Date(2024, 2, 16, 1, 0, 0, 0, loc)}
	h, err := TaskToHabit(task)
	if err != nil {
		t.Fatalf("TaskToHabit() error: %v", err)
	}
	if h.Date != "2024-02-15" {
		t.Errorf("Date = %s, want 2024-02-15", h.Date)
	}
}

func TestTaskToHabitMissingCreatedAt(t *testing.T) {
	if _, err := TaskToHabit(models.Task{ID: 9}); !errors.Is(err, ErrMissingCreatedAt) {
		t.Errorf("TaskToHabit() error = %v, want ErrMissingCreatedAt", err)
	}
}

func TestEmojiForTag(t *testing.T) {
	tests := map[string]string{
		constants.TagFitness:      "🏃",
		constants.TagStudyRoutine: "📚",
		constants.TagWork:         "💻",
		constants.TagHobby:        "🎵",
		constants.TagDailyRoutine: "🌞",
		"Gardening":               "📝",
		"":                        "📝",
	}
	for tag, want := range tests {
		if got := EmojiForTag(tag); got != want {
			t.Errorf("EmojiForTag(%q) = %q, want %q", tag, got, want)
		}
	}
}

func TestGroupByDate(t *testing.T) {
	tasks := []models.Task{
		{ID: 1, Name: "one", CreatedAt: ts(t, "2024-02-15T10:00:00Z")},
		{ID: 2, Name: "two", CreatedAt: ts(t, "2024-02-15T18:00:00Z")},
		{ID: 3, Name: "three", CreatedAt: ts(t, "2024-02-16T09:00:00Z")},
	}

	got, err := GroupByDate(tasks)
	if err != nil {
		t.Fatalf("GroupByDate() error: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("GroupByDate() has %d dates, want 2", len(got))
	}
	day1 := got["2024-02-15"]
	if len(day1) != 2 || day1[0].ID != "1" || day1[1].ID != "2" {
		t.Errorf("2024-02-15 = %+v, want habits 1 then 2", day1)
	}
	day2 := got["2024-02-16"]
	if len(day2) != 1 || day2[0].ID != "3" {
		t.Errorf("2024-02-16 = %+v, want habit 3", day2)
	}
	if _, ok := got["2024-02-17"]; ok {
		t.Error("GroupByDate() created a key for a date with no records")
	}
}

func TestGroupByDateIsPartition(t *testing.T) {
	base := ts(t, "2024-03-01T00:00:00Z")
	var tasks []models.Task
	for i := 0; i < 50; i++ {
		tasks = append(tasks, models.Task{
			ID:        int64(i + 1),
			CreatedAt: base.Add(time.Duration(i*7) * time.Hour),
		})
	}

	got, err := GroupByDate(tasks)
	if err != nil {
		t.Fatalf("GroupByDate() error: %v", err)
	}
	if got.Count() != len(tasks) {
		t.Fatalf("Count() = %d, want %d", got.Count(), len(tasks))
	}

	seen := make(map[string]bool)
	for date, list := range got {
		prev := int64(0)
		for _, h := range list {
			if seen[h.ID] {
				t.Fatalf("habit %s appears twice", h.ID)
			}
			seen[h.ID] = true
			if h.Date != date {
				t.Errorf("habit %s with date %s filed under %s", h.ID, h.Date, date)
			}
			id, err := strconv.ParseInt(h.ID, 10, 64)
			if err != nil {
				t.Fatalf("bad id %q: %v", h.ID, err)
			}
			if id <= prev {
				t.Errorf("%s: habit %d follows %d, input order lost", date, id, prev)
			}
			prev = id
		}
	}
}

func TestGroupByDateRejectsMissingTimestamp(t *testing.T) {
	tasks := []models.Task{
		{ID: 1, CreatedAt: ts(t, "2024-02-15T10:00:00Z")},
		{ID: 2},
	}
	if _, err := GroupByDate(tasks); !errors.Is(err, ErrMissingCreatedAt) {
		t.Errorf("GroupByDate() error = %v, want ErrMissingCreatedAt", err)
	}
}

func TestGroupByDateEmpty(t *testing.T) {
	got, err := GroupByDate(nil)
	if err != nil {
		t.Fatalf("GroupByDate(nil) error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("GroupByDate(nil) = %v, want empty", got)
	}
}

func TestNewLocalID(t *testing.T) {
	now := time.UnixMilli(1708000000123)
	id := NewLocalID(now)

	if !regexp.MustCompile(`^1708000000123-[0-9a-f]{9}$`).MatchString(id) {
		t.Errorf("NewLocalID() = %q, want <millis>-<9 hex chars>", id)
	}
	if NewLocalID(now) == id {
		t.Error("NewLocalID() returned the same id twice")
	}
	if !IsLocalID(id) {
		t.Errorf("IsLocalID(%q) = false", id)
	}
	if IsLocalID("42") {
		t.Error("IsLocalID(42) = true")
	}
}

func TestFilterByTag(t *testing.T) {
	list := []models.Habit{
		{ID: "1", Emoji: "🏃"},
		{ID: "2", Emoji: "📚"},
		{ID: "3", Emoji: "🏃"},
		{ID: "4", Emoji: "⭐"},
		{ID: "5", Emoji: "🌞"},
	}

	ids := func(hs []models.Habit) []string {
		out := []string{}
		for _, h := range hs {
			out = append(out, h.ID)
		}
		return out
	}

	tests := []struct {
		tag  Category
		want []string
	}{
		{CategoryAll, []string{"1", "2", "3", "4", "5"}},
		{CategoryFitness, []string{"1", "3"}},
		{CategoryStudyRoutine, []string{"2"}},
		{CategoryDailyRoutine, []string{"5"}},
		{CategoryWork, []string{}},
		{CategoryUncategorized, []string{"4"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.tag), func(t *testing.T) {
			got := ids(FilterByTag(list, tt.tag))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FilterByTag(%s) = %v, want %v", tt.tag, got, tt.want)
			}
		})
	}
}

func TestFilterByTagAllIsIdentity(t *testing.T) {
	list := []models.Habit{{ID: "b"}, {ID: "a"}, {ID: "c", Emoji: "🏃"}}
	got := FilterByTag(list, CategoryAll)
	if !reflect.DeepEqual(got, list) {
		t.Errorf("FilterByTag(All) = %v, want %v", got, list)
	}
}

func TestDeriveCategory(t *testing.T) {
	if c, ok := DeriveCategory(models.Habit{Emoji: "💻"}); !ok || c != CategoryWork {
		t.Errorf("DeriveCategory(💻) = %q, %v", c, ok)
	}
	if _, ok := DeriveCategory(models.Habit{Emoji: "📝"}); ok {
		t.Error("DeriveCategory(📝) should be unmapped")
	}
}

func TestTagEmojiCategoryRoundTrip(t *testing.T) {
	for _, tag := range constants.Tags {
		c, ok := DeriveCategory(models.Habit{Emoji: EmojiForTag(tag)})
		if !ok || string(c) != tag {
			t.Errorf("tag %q -> %q -> %q, %v", tag, EmojiForTag(tag), c, ok)
		}
	}
}

func TestParseCategory(t *testing.T) {
	if c, ok := ParseCategory(" study routine"); !ok || c != CategoryStudyRoutine {
		t.Errorf("ParseCategory() = %q, %v", c, ok)
	}
	if _, ok := ParseCategory("Cooking"); ok {
		t.Error("ParseCategory(Cooking) should fail")
	}
	if cats := Categories(); cats[0] != CategoryAll {
		t.Errorf("Categories()[0] = %q, want All", cats[0])
	}
}
