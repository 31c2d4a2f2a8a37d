package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/julianstephens/habithub/internal/auth"
	"github.com/julianstephens/habithub/internal/config"
	"github.com/julianstephens/habithub/internal/constants"
	"github.com/julianstephens/habithub/internal/keyring"
	"github.com/julianstephens/habithub/internal/retry"
	"github.com/julianstephens/habithub/internal/storage"
	"github.com/julianstephens/habithub/internal/tracker"
)

// Context carries the dependencies every command runs against.
type Context struct {
	Config  *config.Config
	Store   storage.Provider
	Auth    *auth.Service
	Tracker *tracker.Tracker
	Out     io.Writer

	ctx context.Context
}

// NewContext wires the auth service and tracker on top of store.
func NewContext(cfg *config.Config, store storage.Provider, secrets keyring.Store) *Context {
	svc := auth.New(store, secrets, cfg.SessionTTL, cfg.ResetRedirect)
	tr := tracker.New(store, svc, tracker.Options{
		Retry: retry.Policy{
			MaxAttempts: cfg.Retry.MaxAttempts,
			BaseDelay:   cfg.Retry.BaseDelay,
			Timeout:     cfg.RequestTimeout,
		},
		RateLimit: cfg.RateLimit,
		RateBurst: constants.DefaultRateBurst,
	})
	return &Context{
		Config:  cfg,
		Store:   store,
		Auth:    svc,
		Tracker: tr,
		Out:     os.Stdout,
	}
}

// Context returns the context commands should pass to blocking calls.
func (c *Context) Context() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

// WithContext returns a copy of c using ctx for blocking calls.
func (c *Context) WithContext(ctx context.Context) *Context {
	cp := *c
	cp.ctx = ctx
	return &cp
}

// Printf writes to the command output.
func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.writer(), format, args...)
}

// Println writes a line to the command output.
func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.writer(), args...)
}

func (c *Context) writer() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Checkbox renders a completion flag.
func Checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// Truncate shortens s to n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
