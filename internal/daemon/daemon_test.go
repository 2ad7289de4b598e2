package daemon

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logmirror/logmirror/internal/blob"
	"github.com/logmirror/logmirror/internal/config"
	"github.com/logmirror/logmirror/internal/workspace"
)

type memStore struct {
	mu     sync.Mutex
	data   []byte
	latest string
}

func (m *memStore) Size(ctx context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.data)), nil
}

func (m *memStore) ReadRange(ctx context.Context, key string, start, end int64) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]byte, end-start+1)
	copy(out, m.data[start:end+1])
	return out, nil
}

func (m *memStore) ResolveLatest(ctx context.Context, prefix string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.latest == "" {
		return "", blob.ErrNoObjects
	}
	return m.latest, nil
}

func newTestDaemon(t *testing.T, cfg *config.Config, store blob.Store) *Daemon {
	t.Helper()
	ws, err := workspace.New(cfg.DataDir)
	require.NoError(t, err)

	d, err := newWithStore(cfg, ws, store)
	require.NoError(t, err)
	return d
}

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		DataDir:      t.TempDir(),
		Key:          "app.log",
		SyncInterval: time.Second,
		S3: blob.S3Config{
			BucketName: "logs",
			Region:     "us-east-1",
		},
	}
}

func TestDaemonInitialCycleAndShutdown(t *testing.T) {
	store := &memStore{data: []byte("a\nb\n")}
	d := newTestDaemon(t, testConfig(t), store)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Start(ctx) }()

	// the initial cycle runs before the loop; poll for its output
	require.Eventually(t, func() bool {
		b, err := os.ReadFile(d.workspace.ReversedPath)
		return err == nil && string(b) == "b\na\n"
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestDaemonSecondInstanceRejected(t *testing.T) {
	cfg := testConfig(t)
	store := &memStore{data: []byte("x\n")}

	d1 := newTestDaemon(t, cfg, store)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- d1.Start(ctx) }()

	require.Eventually(t, func() bool {
		_, err := os.Stat(d1.workspace.CurrentPath)
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)

	d2 := newTestDaemon(t, cfg, store)
	err := d2.Start(context.Background())
	assert.ErrorIs(t, err, workspace.ErrWorkspaceLocked)

	cancel()
	require.NoError(t, <-done)
}

func TestDaemonResolvesLatestKey(t *testing.T) {
	cfg := testConfig(t)
	cfg.Key = ""
	cfg.Prefix = "logs/"

	store := &memStore{data: []byte("x\n"), latest: "logs/2026-08-31.log"}
	d := newTestDaemon(t, cfg, store)

	require.NoError(t, d.resolveKey(context.Background()))
	assert.Equal(t, "logs/2026-08-31.log", d.syncer.Key())
}
