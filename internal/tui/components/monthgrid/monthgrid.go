package monthgrid

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habithub/internal/calendar"
	"github.com/julianstephens/habithub/internal/models"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	weekdayStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Width(5)
	cellStyle    = lipgloss.NewStyle().Width(5)
	outsideStyle = cellStyle.Foreground(lipgloss.Color("238"))
	todayStyle   = cellStyle.Foreground(lipgloss.Color("205")).Bold(true)
	doneStyle    = cellStyle.Foreground(lipgloss.Color("42"))
)

var weekdayLabels = []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}

type Model struct {
	ref    string
	days   []calendar.CalendarDay
	data   calendar.MonthData
	habits models.HabitsByDate
}

// New builds the grid for the month containing ref.
func New(ref string, now time.Time) (Model, error) {
	days, err := calendar.MonthDays(ref, now)
	if err != nil {
		return Model{}, err
	}
	data, err := calendar.GetMonthData(ref, now)
	if err != nil {
		return Model{}, err
	}
	return Model{ref: ref, days: days, data: data}, nil
}

func (m Model) Ref() string {
	return m.ref
}

func (m Model) Days() []calendar.CalendarDay {
	return m.days
}

func (m *Model) SetHabits(h models.HabitsByDate) {
	m.habits = h
}

// Title is the "Month Year" header.
func (m Model) Title() string {
	return m.data.Month + " " + m.data.Year
}

func (m Model) cell(d calendar.CalendarDay) string {
	list := m.habits[d.FullDate]
	done := 0
	for _, h := range list {
		if h.Completed {
			done++
		}
	}

	label := d.Date
	if d.CurrentMonth && len(list) > 0 {
		label = fmt.Sprintf("%s·%d", d.Date, len(list)-done)
		if done == len(list) {
			label = d.Date + "✓"
		}
	}
	switch {
	case !d.CurrentMonth:
		return outsideStyle.Render(label)
	case d.IsToday:
		return todayStyle.Render(label)
	case len(list) > 0 && done == len(list):
		return doneStyle.Render(label)
	default:
		return cellStyle.Render(label)
	}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(m.Title()))
	b.WriteString("\n")

	labels := make([]string, len(weekdayLabels))
	for i, l := range weekdayLabels {
		labels[i] = weekdayStyle.Render(l)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, labels...))

	for i := 0; i < len(m.days); i += 7 {
		row := make([]string, 0, 7)
		for _, d := range m.days[i : i+7] {
			row = append(row, m.cell(d))
		}
		b.WriteString("\n")
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return b.String()
}
