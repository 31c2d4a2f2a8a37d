package system

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/habithub/internal/cli"
	"github.com/julianstephens/habithub/internal/config"
	"github.com/julianstephens/habithub/internal/keyring"
	"github.com/julianstephens/habithub/internal/storage/sqlite"
)

var testNow = time.Date(2024, 2, 15, 9, 30, 0, 0, time.UTC)

func testConfig(dbPath string) *config.Config {
	return &config.Config{
		Database:       dbPath,
		RequestTimeout: time.Second,
		RateLimit:      1000,
		SessionTTL:     time.Hour,
		Retry:          config.RetryConfig{MaxAttempts: 1, BaseDelay: time.Millisecond},
	}
}

// setupTestContext returns a context over a freshly initialized SQLite store
// with output captured in the returned buffer.
func setupTestContext(t *testing.T) (*cli.Context, *sqlite.Store, *bytes.Buffer) {
	t.Helper()
	gokeyring.MockInit()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := sqlite.NewStore(dbPath)
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := cli.NewContext(testConfig(dbPath), store, keyring.OS{})
	out := &bytes.Buffer{}
	ctx.Out = out
	return ctx, store, out
}
