package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habithub/internal/habits"
	"github.com/julianstephens/habithub/internal/models"
)

type reloadMsg struct{}

type weekLoadedMsg struct {
	seq    int
	habits models.HabitsByDate
	err    error
}

type monthLoadedMsg struct {
	seq    int
	ref    string
	habits models.HabitsByDate
	err    error
}

// toggleDoneMsg reports the outcome of persisting an optimistic toggle.
type toggleDoneMsg struct {
	date string
	id   string
	undo habits.Rollback
	err  error
}

type taskCreatedMsg struct {
	task models.Task
	err  error
}

type signedInMsg struct {
	session models.Session
	err     error
}

func loadWeekCmd(tr Tracker, seq int, start, end string) tea.Cmd {
	return func() tea.Msg {
		h, err := tr.HabitsForRange(context.Background(), start, end)
		return weekLoadedMsg{seq: seq, habits: h, err: err}
	}
}

func loadMonthCmd(tr Tracker, seq int, ref string) tea.Cmd {
	return func() tea.Msg {
		h, err := tr.HabitsForMonth(context.Background(), ref)
		return monthLoadedMsg{seq: seq, ref: ref, habits: h, err: err}
	}
}

func persistToggleCmd(tr Tracker, date, id string, completed bool, undo habits.Rollback) tea.Cmd {
	return func() tea.Msg {
		err := tr.SetCompletion(context.Background(), id, completed)
		return toggleDoneMsg{date: date, id: id, undo: undo, err: err}
	}
}

func createTaskCmd(tr Tracker, task models.Task) tea.Cmd {
	return func() tea.Msg {
		created, err := tr.CreateTask(context.Background(), task)
		return taskCreatedMsg{task: created, err: err}
	}
}

func signInCmd(auth Auth, email, password string) tea.Cmd {
	return func() tea.Msg {
		s, err := auth.SignIn(context.Background(), email, password)
		return signedInMsg{session: s, err: err}
	}
}
