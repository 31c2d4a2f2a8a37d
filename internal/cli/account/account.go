// Package account holds the sign-up, sign-in and password reset commands.
package account

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"

	"github.com/julianstephens/habithub/internal/auth"
	"github.com/julianstephens/habithub/internal/cli"
	"github.com/julianstephens/habithub/internal/constants"
	apperrors "github.com/julianstephens/habithub/internal/errors"
	"github.com/julianstephens/habithub/internal/validation"
)

// promptPassword asks for a hidden value on the terminal.
func promptPassword(title string) (string, error) {
	var value string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				EchoMode(huh.EchoModePassword).
				Value(&value),
		),
	).WithTheme(huh.ThemeDracula()).Run()
	if err != nil {
		return "", err
	}
	return value, nil
}

func validate(values map[string]string, rules validation.Rules, messages validation.Messages, order ...string) error {
	res := validation.Validate(values, rules, messages)
	if res.Valid {
		return nil
	}
	return fmt.Errorf("invalid input:\n%s", strings.TrimRight(apperrors.FieldErrors(order, res.Errors), "\n"))
}

type SignUpCmd struct {
	Name            string `arg:"" help:"Full name."`
	Email           string `arg:"" help:"Email address."`
	Password        string `help:"Password (prompted when empty)." env:"HABITHUB_PASSWORD" hidden:""`
	ConfirmPassword string `help:"Password confirmation (prompted when empty)." hidden:""`
}

func (c *SignUpCmd) Run(ctx *cli.Context) error {
	if c.Password == "" {
		p, err := promptPassword("Password")
		if err != nil {
			return err
		}
		c.Password = p
	}
	if c.ConfirmPassword == "" {
		p, err := promptPassword("Confirm password")
		if err != nil {
			return err
		}
		c.ConfirmPassword = p
	}

	values := map[string]string{
		validation.FieldName:            c.Name,
		validation.FieldEmail:           c.Email,
		validation.FieldPassword:        c.Password,
		validation.FieldConfirmPassword: c.ConfirmPassword,
	}
	if err := validate(values, validation.SignUpRules, validation.SignUpMessages,
		validation.FieldName, validation.FieldEmail, validation.FieldPassword, validation.FieldConfirmPassword); err != nil {
		return err
	}

	session, err := ctx.Auth.SignUp(ctx.Context(), c.Name, c.Email, c.Password)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Welcome, %s! Signed in as %s\n", session.Name, session.Email)
	return nil
}

type SignInCmd struct {
	Email    string `arg:"" help:"Email address."`
	Password string `help:"Password (prompted when empty)." env:"HABITHUB_PASSWORD" hidden:""`
}

func (c *SignInCmd) Run(ctx *cli.Context) error {
	if c.Password == "" {
		p, err := promptPassword("Password")
		if err != nil {
			return err
		}
		c.Password = p
	}

	values := map[string]string{
		validation.FieldEmail:    c.Email,
		validation.FieldPassword: c.Password,
	}
	if err := validate(values, validation.SignInRules, validation.SignInMessages,
		validation.FieldEmail, validation.FieldPassword); err != nil {
		return err
	}

	session, err := ctx.Auth.SignIn(ctx.Context(), c.Email, c.Password)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Signed in as %s\n", session.Email)
	return nil
}

type SignOutCmd struct{}

func (c *SignOutCmd) Run(ctx *cli.Context) error {
	if err := ctx.Auth.SignOut(); err != nil {
		return err
	}
	ctx.Println(constants.MsgSignedOut)
	return nil
}

type ForgotPasswordCmd struct {
	Email string `arg:"" help:"Email address of the account."`
}

func (c *ForgotPasswordCmd) Run(ctx *cli.Context) error {
	values := map[string]string{validation.FieldEmail: c.Email}
	if err := validate(values, validation.ForgotPasswordRules, validation.ForgotPasswordMessages, validation.FieldEmail); err != nil {
		return err
	}

	link, err := ctx.Auth.ResetPassword(ctx.Context(), c.Email)
	if err != nil {
		return err
	}
	ctx.Println(constants.MsgResetSent)
	if ctx.Config != nil && ctx.Config.Debug {
		ctx.Printf("Reset link: %s\n", link)
	}
	return nil
}

type WhoAmICmd struct{}

func (c *WhoAmICmd) Run(ctx *cli.Context) error {
	session, err := ctx.Auth.CurrentSession(ctx.Context())
	if errors.Is(err, auth.ErrNotSignedIn) {
		ctx.Println(constants.MsgNotSignedIn)
		return nil
	}
	if err != nil {
		return err
	}
	ctx.Printf("%s <%s>\n", session.Name, session.Email)
	ctx.Printf("Session expires %s\n", humanize.Time(session.ExpiresAt))
	return nil
}
