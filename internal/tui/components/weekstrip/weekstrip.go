package weekstrip

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habithub/internal/calendar"
)

var (
	dayStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Align(lipgloss.Center).
			Width(7)

	selectedStyle = dayStyle.
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Bold(true)

	todayStyle = dayStyle.
			Foreground(lipgloss.Color("205")).
			Bold(true)
)

// Model is the seven-day strip above the habit list. The selected date may
// leave the displayed week, in which case the strip follows it.
type Model struct {
	days     []calendar.WeekDay
	selected string
	today    string
}

func New(selected string, now time.Time) Model {
	m := Model{today: calendar.DateKey(now)}
	m.Select(selected)
	return m
}

// Select moves the highlight to date, rebuilding the week around it. A
// malformed date is ignored.
func (m *Model) Select(date string) {
	t, err := calendar.ParseDateKey(date)
	if err != nil {
		return
	}
	m.selected = date
	m.days = calendar.WeekDates(t)
	for i := range m.days {
		m.days[i].IsToday = m.days[i].FullDate == m.today
	}
}

func (m Model) Selected() string {
	return m.selected
}

func (m Model) Days() []calendar.WeekDay {
	return m.days
}

// Range returns the first and last date key of the displayed week.
func (m Model) Range() (start, end string) {
	if len(m.days) == 0 {
		return "", ""
	}
	return m.days[0].FullDate, m.days[len(m.days)-1].FullDate
}

// Contains reports whether date is one of the displayed days.
func (m Model) Contains(date string) bool {
	for _, d := range m.days {
		if d.FullDate == date {
			return true
		}
	}
	return false
}

func (m Model) View() string {
	cells := make([]string, 0, len(m.days))
	for _, d := range m.days {
		label := d.DayName + "\n" + d.DayNumber
		switch {
		case d.FullDate == m.selected:
			cells = append(cells, selectedStyle.Render(label))
		case d.IsToday:
			cells = append(cells, todayStyle.Render(label))
		default:
			cells = append(cells, dayStyle.Render(label))
		}
	}
	return strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, cells...), " ")
}
