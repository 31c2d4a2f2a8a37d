package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habithub/internal/auth"
	"github.com/julianstephens/habithub/internal/cli"
	"github.com/julianstephens/habithub/internal/habits"
	"github.com/julianstephens/habithub/internal/keyring"
)

type DoctorCmd struct{}

type check struct {
	name     string
	needsDB  bool
	warnOnly bool
	run      func(*cli.Context) error
}

var checks = []check{
	{name: "Database reachable", run: checkDBReachable},
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Task timestamps", needsDB: true, run: checkTaskTimestamps},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "OS keyring", warnOnly: true, run: checkKeyring},
	{name: "Session", warnOnly: true, run: checkSession},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	failed := false
	dbOK := false
	for i, c := range checks {
		if c.needsDB && !dbOK {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n   %v\n", c.name, err)
		default:
			ctx.Printf("❌ %s: FAIL\n   Error: %v\n", c.name, err)
			failed = true
		}
		if i == 0 {
			dbOK = err == nil
		}
	}

	ctx.Println()
	if failed {
		ctx.Println("Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(ctx.Context()); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	return ctx.Store.Ping(ctx.Context())
}

func checkSchemaVersion(ctx *cli.Context) error {
	current, latest, err := ctx.Store.SchemaVersion(ctx.Context())
	if err != nil {
		return err
	}
	switch {
	case current > latest:
		return fmt.Errorf("schema version %d is newer than supported version %d", current, latest)
	case current < latest:
		return fmt.Errorf("schema version %d is behind %d, run 'habithub migrate'", current, latest)
	}
	return nil
}

// checkTaskTimestamps groups every stored task, which fails on a record
// without a creation timestamp.
func checkTaskTimestamps(ctx *cli.Context) error {
	tasks, err := ctx.Store.GetTasks(ctx.Context(), "")
	if err != nil {
		return err
	}
	_, err = habits.GroupByDate(tasks)
	return err
}

func checkClockTimezone(*cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

func checkKeyring(*cli.Context) error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}

func checkSession(ctx *cli.Context) error {
	if ctx.Auth == nil {
		return auth.ErrNotSignedIn
	}
	_, err := ctx.Auth.CurrentSession(ctx.Context())
	return err
}
