package system

import (
	"fmt"

	"github.com/julianstephens/habithub/internal/cli"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Init(ctx.Context()); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	current, latest, err := ctx.Store.SchemaVersion(ctx.Context())
	if err != nil {
		return err
	}
	ctx.Printf("✓ Database schema is at version %d (latest %d)\n", current, latest)
	return nil
}
