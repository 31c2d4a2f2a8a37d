package system

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/habithub/internal/backup"
	"github.com/julianstephens/habithub/internal/cli"
	"github.com/julianstephens/habithub/internal/logger"
	"github.com/julianstephens/habithub/internal/storage/sqlite"
)

var errBackupUnsupported = errors.New("backups are only supported for SQLite databases")

type BackupCmd struct {
	Create  BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
	List    BackupListCmd    `cmd:"" help:"List available backups."`
	Restore BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
}

func manager(ctx *cli.Context) (*backup.Manager, error) {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return nil, errBackupUnsupported
	}
	return backup.NewManager(ctx.Store.GetConfigPath()), nil
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	path, err := mgr.Create(ctx.Context())
	if err != nil {
		return err
	}
	ctx.Printf("✓ Backup created: %s\n", path)
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	list, err := mgr.List()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		ctx.Println("No backups found in", mgr.Dir())
		return nil
	}
	for _, b := range list {
		ctx.Printf("  %s  %8s  %s\n", filepath.Base(b.Path), humanize.Bytes(uint64(b.Size)), humanize.Time(b.Timestamp))
	}
	return nil
}

type BackupRestoreCmd struct {
	Path string `arg:"" help:"Backup file, or its name inside the backup directory."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	path := c.Path
	if filepath.Base(path) == path {
		path = filepath.Join(mgr.Dir(), path)
	}

	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	previous, err := mgr.Restore(ctx.Context(), path)
	if err != nil {
		_ = ctx.Store.Load(ctx.Context())
		return err
	}
	if previous != "" {
		ctx.Printf("Saved current database as %s\n", filepath.Base(previous))
	}
	if err := ctx.Store.Load(ctx.Context()); err != nil {
		return fmt.Errorf("restored database failed to load: %w", err)
	}
	ctx.Printf("✓ Restored from %s\n", filepath.Base(path))
	return nil
}

// autoBackup snapshots a SQLite database before an interactive session.
// Failures are logged and otherwise ignored.
func autoBackup(ctx *cli.Context) {
	mgr, err := manager(ctx)
	if err != nil {
		return
	}
	if _, err := mgr.Create(ctx.Context()); err != nil {
		logger.Warn("automatic backup failed", "err", err)
	}
}
