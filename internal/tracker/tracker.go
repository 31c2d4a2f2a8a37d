// Package tracker connects the pure calendar and habit logic to persistence:
// it loads habits for a date range, creates and edits tasks, and persists
// completion toggles with retry and rollback.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/julianstephens/habithub/internal/calendar"
	"github.com/julianstephens/habithub/internal/constants"
	"github.com/julianstephens/habithub/internal/habits"
	"github.com/julianstephens/habithub/internal/logger"
	"github.com/julianstephens/habithub/internal/models"
	"github.com/julianstephens/habithub/internal/retry"
	"github.com/julianstephens/habithub/internal/storage"
)

var (
	ErrOffline     = errors.New(constants.MsgOffline)
	ErrInvalidID   = errors.New("invalid task id")
	ErrInvalidTask = errors.New("invalid task")
)

const probeTimeout = 5 * time.Second

// Store is the part of storage.Provider the tracker uses.
type Store interface {
	Ping(ctx context.Context) error
	AddTask(ctx context.Context, task models.Task) (models.Task, error)
	GetTask(ctx context.Context, id int64) (models.Task, error)
	GetTasks(ctx context.Context, userID string) ([]models.Task, error)
	GetTasksInRange(ctx context.Context, userID, start, end string) ([]models.Task, error)
	UpdateTask(ctx context.Context, task models.Task) error
	SetTaskCompletion(ctx context.Context, id int64, completed bool) error
	DeleteTask(ctx context.Context, id int64) error
}

// Session reports the signed-in user; "" means nobody is signed in.
type Session interface {
	CurrentUserID(ctx context.Context) (string, error)
}

type Options struct {
	Retry     retry.Policy
	RateLimit float64 // writes per second
	RateBurst int
	Clock     func() time.Time // nil means time.Now
}

func DefaultOptions() Options {
	return Options{
		Retry:     retry.DefaultPolicy(),
		RateLimit: constants.DefaultRateLimit,
		RateBurst: constants.DefaultRateBurst,
	}
}

type Tracker struct {
	store   Store
	session Session
	policy  retry.Policy
	limiter *rate.Limiter
	now     func() time.Time
}

func New(store Store, session Session, opts Options) *Tracker {
	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}
	burst := opts.RateBurst
	if burst <= 0 {
		burst = 1
	}
	now := opts.Clock
	if now == nil {
		now = time.Now
	}
	return &Tracker{
		store:   store,
		session: session,
		policy:  opts.Retry,
		limiter: rate.NewLimiter(limit, burst),
		now:     now,
	}
}

// Now is the tracker's clock.
func (t *Tracker) Now() time.Time {
	return t.now()
}

// call runs op under the retry policy. Missing rows are not retried.
func call[T any](ctx context.Context, t *Tracker, op func(context.Context) (T, error)) (T, error) {
	return retry.Do(ctx, t.policy, func(ctx context.Context) (T, error) {
		v, err := op(ctx)
		if errors.Is(err, storage.ErrNotFound) {
			return v, retry.Permanent(err)
		}
		return v, err
	})
}

func exec(ctx context.Context, t *Tracker, op func(context.Context) error) error {
	_, err := call(ctx, t, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}

// IsReachable probes the backend without retrying.
func (t *Tracker) IsReachable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	if err := t.store.Ping(ctx); err != nil {
		logger.Debug("backend unreachable", "err", err)
		return false
	}
	return true
}

// beginWrite checks connectivity and waits for the write limiter.
func (t *Tracker) beginWrite(ctx context.Context) error {
	if !t.IsReachable(ctx) {
		return ErrOffline
	}
	return t.limiter.Wait(ctx)
}

func (t *Tracker) userID(ctx context.Context) (string, error) {
	if t.session == nil {
		return "", nil
	}
	return t.session.CurrentUserID(ctx)
}

// HabitsForRange loads and groups the habits created between two inclusive
// date keys.
func (t *Tracker) HabitsForRange(ctx context.Context, start, end string) (models.HabitsByDate, error) {
	uid, err := t.userID(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := call(ctx, t, func(ctx context.Context) ([]models.Task, error) {
		return t.store.GetTasksInRange(ctx, uid, start, end)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	return habits.GroupByDate(tasks)
}

// HabitsForWeek loads the ISO week containing the tracker's current time.
func (t *Tracker) HabitsForWeek(ctx context.Context) (models.HabitsByDate, error) {
	start, end := calendar.WeekRange(t.now())
	return t.HabitsForRange(ctx, start, end)
}

// HabitsForMonth loads every cell of the month grid containing ref.
func (t *Tracker) HabitsForMonth(ctx context.Context, ref string) (models.HabitsByDate, error) {
	days, err := calendar.MonthDays(ref, t.now())
	if err != nil {
		return nil, err
	}
	return t.HabitsForRange(ctx, days[0].FullDate, days[len(days)-1].FullDate)
}

// HabitsForDate returns one day's habits in retrieval order.
func (t *Tracker) HabitsForDate(ctx context.Context, date string) ([]models.Habit, error) {
	if _, err := calendar.ParseDateKey(date); err != nil {
		return nil, err
	}
	grouped, err := t.HabitsForRange(ctx, date, date)
	if err != nil {
		return nil, err
	}
	return grouped[date], nil
}

// ParseID converts a habit id back to the task id. Local ids are rejected.
func ParseID(id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return n, nil
}

// SetCompletion persists a habit's completion flag. Records with a local id
// were never stored and succeed without a round trip.
func (t *Tracker) SetCompletion(ctx context.Context, id string, completed bool) error {
	if habits.IsLocalID(id) {
		logger.Debug("skipping persistence for local habit", "id", id)
		return nil
	}
	taskID, err := ParseID(id)
	if err != nil {
		return err
	}
	if err := t.beginWrite(ctx); err != nil {
		return err
	}
	return exec(ctx, t, func(ctx context.Context) error {
		return t.store.SetTaskCompletion(ctx, taskID, completed)
	})
}

// ToggleCompletion flips a habit optimistically and persists the new value.
// On failure it returns the rolled-back state together with the error. An
// id missing from the date's list is a no-op.
func (t *Tracker) ToggleCompletion(ctx context.Context, state models.HabitsByDate, date, id string) (models.HabitsByDate, error) {
	next, undo, ok := habits.Toggle(state, date, id)
	if !ok {
		logger.Debug("toggle ignored, habit not found", "date", date, "id", id)
		return state, nil
	}
	h, _ := habits.Find(next, date, id)
	if err := t.SetCompletion(ctx, id, h.Completed); err != nil {
		logger.Error("failed to update habit status, rolling back", "id", id, "err", err)
		return undo(next), err
	}
	return next, nil
}

// NormalizeTag maps user input onto one of the known tags. Empty input is
// allowed and means untagged.
func NormalizeTag(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	for _, tag := range constants.Tags {
		if strings.EqualFold(tag, s) {
			return tag, nil
		}
	}
	return "", fmt.Errorf("%w: unknown tag %q (one of: %s)", ErrInvalidTask, s, strings.Join(constants.Tags, ", "))
}

// NormalizeColor accepts a palette colour, case-insensitively. Empty input
// selects the default.
func NormalizeColor(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return constants.DefaultCardColor, nil
	}
	for _, c := range constants.CardColors {
		if strings.EqualFold(c, s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: unknown colour %q", ErrInvalidTask, s)
}
