package habitlist

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habithub/internal/constants"
	"github.com/julianstephens/habithub/internal/habits"
	"github.com/julianstephens/habithub/internal/models"
)

// ToggleHabitMsg asks the parent to flip a habit's completion.
type ToggleHabitMsg struct {
	Date string
	ID   string
}

type AddTaskMsg struct{}

var (
	chipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)

	activeChipStyle = chipStyle.
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62"))
)

type Item struct {
	Habit models.Habit
}

func (i Item) Title() string {
	mark := "○"
	if i.Habit.Completed {
		mark = "✓"
	}
	return mark + " " + i.Habit.Emoji + " " + i.Habit.Title
}

func (i Item) Description() string {
	if c, ok := habits.DeriveCategory(i.Habit); ok {
		return string(c)
	}
	return string(habits.CategoryUncategorized)
}

func (i Item) FilterValue() string { return i.Habit.Title }

type KeyMap struct {
	Toggle   key.Binding
	Add      key.Binding
	NextChip key.Binding
	PrevChip key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/space", "toggle done"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add task"),
		),
		NextChip: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "next category"),
		),
		PrevChip: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "prev category"),
		),
	}
}

type Model struct {
	list     list.Model
	keys     KeyMap
	date     string
	all      []models.Habit
	category int
	loading  bool
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.Add, keys.NextChip}
	}
	return Model{list: l, keys: keys}
}

// SetHabits replaces the day's habits, keeping the cursor and the category.
func (m *Model) SetHabits(date string, list []models.Habit) {
	m.date = date
	m.all = list
	m.loading = false
	m.refresh()
}

func (m *Model) SetLoading(loading bool) {
	m.loading = loading
}

func (m Model) Category() habits.Category {
	return habits.Categories()[m.category]
}

// SetCategory selects a chip. Unknown categories are ignored.
func (m *Model) SetCategory(c habits.Category) {
	for i, cat := range habits.Categories() {
		if cat == c {
			m.category = i
			m.refresh()
			return
		}
	}
}

// Visible returns the habits shown under the current category.
func (m Model) Visible() []models.Habit {
	return habits.FilterByTag(m.all, m.Category())
}

func (m *Model) refresh() {
	visible := m.Visible()
	items := make([]list.Item, len(visible))
	for i, h := range visible {
		items[i] = Item{Habit: h}
	}
	idx := m.list.Index()
	m.list.SetItems(items)
	if idx >= len(items) && len(items) > 0 {
		idx = len(items) - 1
	}
	m.list.Select(idx)
}

func (m Model) Selected() (models.Habit, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i.Habit, ok
}

func (m *Model) Select(index int) {
	m.list.Select(index)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Toggle):
			if h, ok := m.Selected(); ok {
				date := m.date
				return m, func() tea.Msg { return ToggleHabitMsg{Date: date, ID: h.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddTaskMsg{} }
		case key.Matches(msg, m.keys.NextChip):
			m.category = (m.category + 1) % len(habits.Categories())
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.PrevChip):
			n := len(habits.Categories())
			m.category = (m.category - 1 + n) % n
			m.refresh()
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) chips() string {
	out := make([]string, 0, len(habits.Categories()))
	for i, c := range habits.Categories() {
		if i == m.category {
			out = append(out, activeChipStyle.Render(string(c)))
		} else {
			out = append(out, chipStyle.Render(string(c)))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, out...)
}

func (m Model) View() string {
	var body string
	switch {
	case m.loading:
		body = "\n  " + constants.MsgLoading
	case len(m.list.Items()) == 0:
		body = "\n  " + constants.MsgEmptyDay + "\n  Press 'a' to add one."
	default:
		body = m.list.View()
	}
	return strings.Join([]string{m.chips(), body}, "\n")
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
