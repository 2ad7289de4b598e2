package main

import (
	"fmt"
	"log/slog"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/logmirror/logmirror/internal/blob"
	"github.com/logmirror/logmirror/internal/mirror"
	"github.com/logmirror/logmirror/internal/workspace"
)

func init() {
	rootCmd.AddCommand(newSyncCmd())
}

// newSyncCmd runs exactly one sync cycle and exits. Useful from cron or for
// checking credentials before starting the daemon.
func newSyncCmd() *cobra.Command {
	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Run a single sync cycle and exit",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromViper()
			if err := cfg.Validate(); err != nil {
				return err
			}
			cmd.SilenceUsage = true

			ws, err := workspace.New(cfg.DataDir)
			if err != nil {
				return err
			}
			if err := ws.Lock(); err != nil {
				return err
			}
			defer ws.Unlock()

			store, err := blob.NewS3StoreWithConfig(&cfg.S3)
			if err != nil {
				return err
			}

			key := cfg.Key
			if cfg.Prefix != "" {
				key, err = store.ResolveLatest(cmd.Context(), cfg.Prefix)
				if err != nil {
					return err
				}
				slog.Info("resolved latest key", "key", key)
			}

			journal, err := mirror.NewCycleJournal(ws.JournalPath)
			if err != nil {
				return err
			}
			defer journal.Close()

			syncer := mirror.NewSyncer(store, key, ws.CurrentPath, ws.ReversedPath, journal)
			res, err := syncer.RunCycle(cmd.Context())
			if err != nil {
				return err
			}

			out, _ := json.MarshalIndent(res, "", "  ")
			fmt.Println(string(out))
			return nil
		},
	}

	return syncCmd
}
