package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habithub/internal/calendar"
	"github.com/julianstephens/habithub/internal/models"
	"github.com/julianstephens/habithub/internal/tui/components/habitlist"
	"github.com/julianstephens/habithub/internal/tui/components/monthgrid"
	"github.com/julianstephens/habithub/internal/tui/components/weekstrip"
	"github.com/julianstephens/habithub/internal/validation"
)

type SessionState int

const (
	StateWeek SessionState = iota
	StateMonth
	StateNewTask
	StateSignIn
)

// Tracker is the part of tracker.Tracker the TUI drives.
type Tracker interface {
	Now() time.Time
	HabitsForRange(ctx context.Context, start, end string) (models.HabitsByDate, error)
	HabitsForMonth(ctx context.Context, ref string) (models.HabitsByDate, error)
	SetCompletion(ctx context.Context, id string, completed bool) error
	CreateTask(ctx context.Context, task models.Task) (models.Task, error)
}

// Auth is the part of auth.Service the sign-in form uses.
type Auth interface {
	SignIn(ctx context.Context, email, password string) (models.Session, error)
	CurrentSession(ctx context.Context) (models.Session, error)
}

type TaskFormModel struct {
	Name        string
	Description string
	Tag         string
	Color       string
	Frequency   string
	Date        string
}

type SignInFormModel struct {
	Email    string
	Password string
}

type Model struct {
	tracker Tracker
	auth    Auth

	state     SessionState
	prevState SessionState
	keys      KeyMap
	help      help.Model

	week      weekstrip.Model
	habitList habitlist.Model
	month     monthgrid.Model

	// habits holds the loaded week; toggles are applied to it optimistically.
	habits models.HabitsByDate
	// seq identifies the latest load. Results carrying an older value are
	// dropped.
	seq     int
	loading bool

	form       *huh.Form
	formErrs   *validation.Form
	taskForm   *TaskFormModel
	signInForm *SignInFormModel

	session *models.Session
	banner  string
	notice  string

	quitting bool
	width    int
	height   int
}

// Habit list size before the first tea.WindowSizeMsg, and the smallest it
// shrinks to.
const (
	defaultListWidth  = 60
	defaultListHeight = 14
	minListWidth      = 20
	minListHeight     = 6
)

func New(tr Tracker, auth Auth) Model {
	now := tr.Now()
	today := calendar.DateKey(now)
	month, _ := monthgrid.New(today, now)
	m := Model{
		tracker:   tr,
		auth:      auth,
		state:     StateWeek,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		week:      weekstrip.New(today, now),
		habitList: habitlist.New(defaultListWidth, defaultListHeight),
		month:     month,
		habits:    models.HabitsByDate{},
	}
	if auth != nil {
		if s, err := auth.CurrentSession(context.Background()); err == nil {
			m.session = &s
		}
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return reloadMsg{} }
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Left, m.keys.Right}
	switch m.state {
	case StateWeek:
		keys = append(keys, m.keys.Toggle, m.keys.Add, m.keys.Category)
	case StateMonth:
		keys = append(keys, m.keys.PrevMonth, m.keys.NextMonth)
	}
	if m.banner != "" {
		keys = append(keys, m.keys.Retry, m.keys.Dismiss)
	}
	return append(keys, m.keys.SignIn, m.keys.Quit, m.keys.Help)
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help, m.keys.SignIn, m.keys.Retry, m.keys.Dismiss}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right, m.keys.Today}

	var actions []key.Binding
	switch m.state {
	case StateWeek:
		actions = []key.Binding{m.keys.Toggle, m.keys.Add, m.keys.Category}
	case StateMonth:
		actions = []key.Binding{m.keys.PrevMonth, m.keys.NextMonth}
	}
	return [][]key.Binding{global, navigation, actions}
}

// Selected is the date whose habits are listed.
func (m Model) Selected() string {
	return m.week.Selected()
}

// Habits returns the current, possibly optimistic, state of the loaded week.
func (m Model) Habits() models.HabitsByDate {
	return m.habits
}

func (m Model) Banner() string {
	return m.banner
}

func (m Model) State() SessionState {
	return m.state
}
