package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habithub/internal/calendar"
	"github.com/julianstephens/habithub/internal/constants"
	"github.com/julianstephens/habithub/internal/habits"
	"github.com/julianstephens/habithub/internal/logger"
	"github.com/julianstephens/habithub/internal/tracker"
	"github.com/julianstephens/habithub/internal/tui/components/habitlist"
	"github.com/julianstephens/habithub/internal/tui/components/monthgrid"
	"github.com/julianstephens/habithub/internal/validation"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.habitList.SetSize(max(msg.Width-4, minListWidth), max(msg.Height-12, minListHeight))
		return m, nil

	case reloadMsg:
		return m, m.load()

	case weekLoadedMsg:
		if msg.seq != m.seq {
			logger.Debug("dropping stale week load", "seq", msg.seq, "current", m.seq)
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.setError(msg.err)
			m.habitList.SetLoading(false)
			return m, nil
		}
		m.habits = msg.habits
		m.habitList.SetHabits(m.Selected(), m.habits[m.Selected()])
		return m, nil

	case monthLoadedMsg:
		if msg.seq != m.seq || msg.ref != m.month.Ref() {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.month.SetHabits(msg.habits)
		return m, nil

	case habitlist.ToggleHabitMsg:
		return m, m.toggle(msg.Date, msg.ID)

	case toggleDoneMsg:
		if msg.err != nil {
			logger.Error("failed to update habit status, rolling back", "id", msg.id, "err", msg.err)
			m.habits = msg.undo(m.habits)
			m.syncList()
			m.setError(msg.err)
		}
		return m, nil

	case habitlist.AddTaskMsg:
		return m, m.openNewTask()

	case taskCreatedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.banner = ""
		m.notice = "Added " + msg.task.Name
		return m, m.load()

	case signedInMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.session = &msg.session
		m.banner = ""
		m.notice = "Signed in as " + msg.session.Email
		return m, m.load()
	}

	switch m.state {
	case StateNewTask, StateSignIn:
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	if m.state == StateWeek {
		var cmd tea.Cmd
		m.habitList, cmd = m.habitList.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit, true
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil, true
	case key.Matches(msg, m.keys.Dismiss):
		m.banner = ""
		m.notice = ""
		return nil, true
	case key.Matches(msg, m.keys.Retry) && m.banner != "":
		m.banner = ""
		return m.load(), true
	case key.Matches(msg, m.keys.SignIn):
		return m.openSignIn(), true
	case key.Matches(msg, m.keys.Tab):
		if m.state == StateWeek {
			m.state = StateMonth
			if mg, err := monthgrid.New(m.Selected(), m.tracker.Now()); err == nil {
				m.month = mg
			}
		} else {
			m.state = StateWeek
		}
		return m.load(), true
	case key.Matches(msg, m.keys.Today):
		return m.selectDate(calendar.DateKey(m.tracker.Now())), true
	}

	switch m.state {
	case StateWeek:
		switch {
		case key.Matches(msg, m.keys.Left):
			return m.shiftDays(-1), true
		case key.Matches(msg, m.keys.Right):
			return m.shiftDays(1), true
		}
	case StateMonth:
		switch {
		case key.Matches(msg, m.keys.PrevMonth), key.Matches(msg, m.keys.Left):
			return m.shiftMonth(-1), true
		case key.Matches(msg, m.keys.NextMonth), key.Matches(msg, m.keys.Right):
			return m.shiftMonth(1), true
		}
	}
	return nil, false
}

// load starts a fetch for the active view under a new sequence number.
func (m *Model) load() tea.Cmd {
	m.seq++
	m.loading = true
	if m.state == StateMonth {
		return loadMonthCmd(m.tracker, m.seq, m.month.Ref())
	}
	m.habitList.SetLoading(true)
	start, end := m.week.Range()
	return loadWeekCmd(m.tracker, m.seq, start, end)
}

func (m *Model) setError(err error) {
	if errors.Is(err, tracker.ErrOffline) {
		m.banner = constants.MsgOffline
	} else {
		m.banner = err.Error()
	}
	m.notice = ""
}

func (m *Model) syncList() {
	m.habitList.SetHabits(m.Selected(), m.habits[m.Selected()])
}

func (m *Model) selectDate(date string) tea.Cmd {
	inWeek := m.week.Contains(date)
	m.week.Select(date)
	if m.state == StateMonth {
		if mg, err := monthgrid.New(date, m.tracker.Now()); err == nil {
			m.month = mg
		}
		return m.load()
	}
	if !inWeek {
		return m.load()
	}
	m.syncList()
	return nil
}

func (m *Model) shiftDays(n int) tea.Cmd {
	date, err := calendar.ShiftDays(m.Selected(), n)
	if err != nil {
		m.setError(err)
		return nil
	}
	return m.selectDate(date)
}

func (m *Model) shiftMonth(n int) tea.Cmd {
	ref, err := calendar.ShiftMonth(m.month.Ref(), n)
	if err != nil {
		m.setError(err)
		return nil
	}
	mg, err := monthgrid.New(ref, m.tracker.Now())
	if err != nil {
		m.setError(err)
		return nil
	}
	m.month = mg
	m.week.Select(ref)
	return m.load()
}

// toggle flips the habit locally and persists it in the background. The
// result message rolls the flip back on failure.
func (m *Model) toggle(date, id string) tea.Cmd {
	next, undo, ok := habits.Toggle(m.habits, date, id)
	if !ok {
		return nil
	}
	m.habits = next
	m.syncList()
	h, _ := habits.Find(next, date, id)
	return persistToggleCmd(m.tracker, date, id, h.Completed, undo)
}

func (m *Model) openNewTask() tea.Cmd {
	m.taskForm = &TaskFormModel{
		Date:  m.Selected(),
		Color: constants.DefaultCardColor,
	}
	m.formErrs = validation.NewForm(validation.NewTaskRules, validation.NewTaskMessages)
	m.form = NewTaskForm(m.taskForm, m.formErrs)
	m.prevState = m.state
	m.state = StateNewTask
	return m.form.Init()
}

func (m *Model) openSignIn() tea.Cmd {
	m.signInForm = &SignInFormModel{}
	m.formErrs = validation.NewForm(validation.SignInRules, validation.SignInMessages)
	m.form = NewSignInForm(m.signInForm, m.formErrs)
	m.prevState = m.state
	m.state = StateSignIn
	return m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.prevState
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		cmds = append(cmds, m.submitForm())
	case huh.StateAborted:
		m.state = m.prevState
	}
	return m, tea.Batch(cmds...)
}

// submitForm runs the full rule set once more and starts the request.
func (m *Model) submitForm() tea.Cmd {
	switch m.state {
	case StateNewTask:
		if !m.formErrs.Validate(map[string]string{validation.FieldTaskName: m.taskForm.Name}) {
			m.banner = formSummary(m.formErrs, validation.FieldTaskName)
			m.form.State = huh.StateNormal
			return nil
		}
		task, err := taskFromForm(m.taskForm, m.tracker.Now())
		if err != nil {
			m.setError(err)
			m.form.State = huh.StateNormal
			return nil
		}
		m.state = m.prevState
		return createTaskCmd(m.tracker, task)

	case StateSignIn:
		values := map[string]string{
			validation.FieldEmail:    m.signInForm.Email,
			validation.FieldPassword: m.signInForm.Password,
		}
		if !m.formErrs.Validate(values) {
			m.banner = formSummary(m.formErrs, validation.FieldEmail, validation.FieldPassword)
			m.form.State = huh.StateNormal
			return nil
		}
		m.state = m.prevState
		if m.auth == nil {
			return nil
		}
		return signInCmd(m.auth, m.signInForm.Email, m.signInForm.Password)
	}
	return nil
}
