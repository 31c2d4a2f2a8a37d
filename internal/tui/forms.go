package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habithub/internal/calendar"
	"github.com/julianstephens/habithub/internal/constants"
	"github.com/julianstephens/habithub/internal/models"
	"github.com/julianstephens/habithub/internal/validation"
)

// NewTaskForm builds the new-task form. Field checks run through fe so the
// same rules apply as on the command line.
func NewTaskForm(fm *TaskFormModel, fe *validation.Form) *huh.Form {
	values := func() map[string]string {
		return map[string]string{validation.FieldTaskName: fm.Name}
	}

	tags := []huh.Option[string]{huh.NewOption("None", "")}
	for _, t := range constants.Tags {
		tags = append(tags, huh.NewOption(t, t))
	}
	colors := make([]huh.Option[string], len(constants.CardColors))
	for i, c := range constants.CardColors {
		colors[i] = huh.NewOption(c, c)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Task name").
				Value(&fm.Name).
				Validate(fe.FieldFunc(validation.FieldTaskName, values)),
			huh.NewText().
				Title("Description").
				Value(&fm.Description),
			huh.NewInput().
				Title("Date (YYYY-MM-DD)").
				Value(&fm.Date).
				Validate(func(s string) error {
					_, err := calendar.ParseDateKey(strings.TrimSpace(s))
					return err
				}),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Tag").
				Options(tags...).
				Value(&fm.Tag),
			huh.NewSelect[string]().
				Title("Card colour").
				Options(colors...).
				Value(&fm.Color),
			huh.NewSelect[string]().
				Title("Repeat").
				Options(
					huh.NewOption("Does not repeat", ""),
					huh.NewOption("Every day", string(models.FrequencyDaily)),
					huh.NewOption("Every week", string(models.FrequencyWeekly)),
					huh.NewOption("Every month", string(models.FrequencyMonthly)),
				).
				Value(&fm.Frequency),
		),
	).WithTheme(huh.ThemeDracula())
}

// taskFromForm converts a completed form. The task keeps now's UTC time of
// day on the chosen date.
func taskFromForm(fm *TaskFormModel, now time.Time) (models.Task, error) {
	day, err := calendar.ParseDateKey(strings.TrimSpace(fm.Date))
	if err != nil {
		return models.Task{}, err
	}
	repeat := ""
	if fm.Frequency != "" {
		f, err := models.ParseFrequency(fm.Frequency)
		if err != nil {
			return models.Task{}, err
		}
		repeat = models.Recurrence{Frequency: f}.String()
	}
	return models.Task{
		Name:        fm.Name,
		Description: fm.Description,
		Tag:         fm.Tag,
		Color:       fm.Color,
		Repeat:      repeat,
		CreatedAt:   calendar.OnDay(day, now),
	}, nil
}

func NewSignInForm(fm *SignInFormModel, fe *validation.Form) *huh.Form {
	values := func() map[string]string {
		return map[string]string{
			validation.FieldEmail:    fm.Email,
			validation.FieldPassword: fm.Password,
		}
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&fm.Email).
				Validate(fe.FieldFunc(validation.FieldEmail, values)),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&fm.Password).
				Validate(fe.FieldFunc(validation.FieldPassword, values)),
		),
	).WithTheme(huh.ThemeDracula())
}

// formSummary lists the errors left on a form after submission.
func formSummary(fe *validation.Form, fields ...string) string {
	var parts []string
	for _, f := range fields {
		if msg, ok := fe.Error(f); ok {
			parts = append(parts, msg)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("⚠ %s", strings.Join(parts, "; "))
}
