package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/logmirror/logmirror/internal/blob"
	"github.com/logmirror/logmirror/internal/config"
	"github.com/logmirror/logmirror/internal/httpd"
	"github.com/logmirror/logmirror/internal/mirror"
	"github.com/logmirror/logmirror/internal/workspace"
)

// Daemon wires the workspace, remote store, sync engine, journal and HTTP
// server together and owns their lifecycle.
type Daemon struct {
	config    *config.Config
	workspace *workspace.Workspace
	store     blob.Store
	syncer    *mirror.Syncer
	journal   *mirror.CycleJournal
	httpd     *httpd.Server
}

func New(cfg *config.Config) (*Daemon, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ws, err := workspace.New(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}

	store, err := blob.NewS3StoreWithConfig(&cfg.S3)
	if err != nil {
		return nil, fmt.Errorf("create blob store: %w", err)
	}

	return newWithStore(cfg, ws, store)
}

func newWithStore(cfg *config.Config, ws *workspace.Workspace, store blob.Store) (*Daemon, error) {
	journal, err := mirror.NewCycleJournal(ws.JournalPath)
	if err != nil {
		return nil, fmt.Errorf("create cycle journal: %w", err)
	}

	syncer := mirror.NewSyncer(store, cfg.Key, ws.CurrentPath, ws.ReversedPath, journal)

	d := &Daemon{
		config:    cfg,
		workspace: ws,
		store:     store,
		syncer:    syncer,
		journal:   journal,
	}

	if cfg.HTTP.Enabled {
		server, err := httpd.New(httpd.Config{
			Addr:      cfg.HTTP.Addr,
			Token:     cfg.HTTP.Token,
			RateLimit: cfg.HTTP.RateLimit,
		}, syncer, journal)
		if err != nil {
			journal.Close()
			return nil, fmt.Errorf("create http server: %w", err)
		}
		d.httpd = server
	}

	return d, nil
}

// Start runs the daemon until ctx is canceled.
func (d *Daemon) Start(ctx context.Context) error {
	slog.Info("logmirror start",
		"datadir", d.workspace.Root,
		"bucket", d.config.S3.BucketName,
		"key", d.config.Key,
		"prefix", d.config.Prefix,
		"interval", d.config.SyncInterval,
	)

	defer d.journal.Close()

	if err := d.workspace.Lock(); err != nil {
		return err
	}
	defer d.workspace.Unlock()

	// resolve the key up front so the first cycle has one
	if err := d.resolveKey(ctx); err != nil {
		return err
	}

	// run one cycle before the loop and the server come up
	d.runCycle(ctx)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return d.syncLoop(ctx)
	})

	if d.httpd != nil {
		g.Go(func() error {
			return d.httpd.Start(ctx)
		})
	}

	err := g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	slog.Info("logmirror stop")
	return nil
}

// syncLoop runs cycles on a fixed delay. A timer, not a ticker: a slow
// remote must never queue ticks behind an in-flight cycle.
func (d *Daemon) syncLoop(ctx context.Context) error {
	timer := time.NewTimer(d.config.SyncInterval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			if err := d.resolveKey(ctx); err != nil {
				slog.Warn("resolve latest key", "error", err)
			} else {
				d.runCycle(ctx)
			}
			timer.Reset(d.config.SyncInterval)
		}
	}
}

// resolveKey re-resolves the newest object under the configured prefix.
// No-op when a fixed key is configured. Never called mid-cycle.
func (d *Daemon) resolveKey(ctx context.Context) error {
	if d.config.Prefix == "" {
		return nil
	}

	key, err := d.store.ResolveLatest(ctx, d.config.Prefix)
	if err != nil {
		return err
	}
	d.syncer.SetKey(key)
	return nil
}

func (d *Daemon) runCycle(ctx context.Context) {
	_, err := d.syncer.RunCycle(ctx)
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	if errors.Is(err, mirror.ErrCycleInProgress) {
		// a manually triggered cycle is still running; skip this beat
		slog.Debug("cycle already in progress")
		return
	}
	slog.Error("sync cycle failed", "error", err)
}
