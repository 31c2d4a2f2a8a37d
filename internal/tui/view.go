package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habithub/internal/calendar"
	"github.com/julianstephens/habithub/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateWeek:
		content = m.viewWeek()
	case StateMonth:
		content = m.viewMonth()
	case StateNewTask, StateSignIn:
		content = m.form.View()
	}

	parts := []string{m.viewTabs()}
	if m.banner != "" {
		parts = append(parts, bannerStyle.Render(m.banner+"  (r: retry, esc: dismiss)"))
	} else if m.notice != "" {
		parts = append(parts, noticeStyle.Render(m.notice))
	}
	parts = append(parts, docStyle.Render(content), m.help.View(m))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Week", "Month"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	who := "not signed in"
	if m.session != nil {
		who = m.session.Email
	}
	tabs = append(tabs, sessionStyle.Render("  "+who))
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewWeek() string {
	title, err := calendar.FormatDateWithDay(m.Selected())
	if err != nil {
		title = m.Selected()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.week.View(),
		"",
		titleStyle.Render(title),
		m.habitList.View(),
	)
}

func (m Model) viewMonth() string {
	if m.loading {
		return lipgloss.JoinVertical(lipgloss.Left, m.month.View(), "", constants.MsgLoading)
	}
	return m.month.View()
}
