package system

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/habithub/internal/cli"
	"github.com/julianstephens/habithub/internal/storage/sqlite"
)

type InitCmd struct {
	Force bool `help:"Delete the existing SQLite database before initializing."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if _, ok := ctx.Store.(*sqlite.Store); !ok {
			return errors.New("--force is only supported for SQLite databases")
		}
		path := ctx.Store.GetConfigPath()
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove existing database: %w", err)
		}
		ctx.Println("Removed existing database:", path)
	}

	if err := ctx.Store.Init(ctx.Context()); err != nil {
		return err
	}
	ctx.Printf("✓ Initialized storage at %s\n", ctx.Store.GetConfigPath())
	return nil
}
