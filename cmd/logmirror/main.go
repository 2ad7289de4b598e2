package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/logmirror/logmirror/internal/blob"
	"github.com/logmirror/logmirror/internal/config"
	"github.com/logmirror/logmirror/internal/daemon"
	"github.com/logmirror/logmirror/internal/utils"
	"github.com/logmirror/logmirror/internal/version"
)

var rootCmd = &cobra.Command{
	Use:     "logmirror",
	Short:   "Mirror a remote append-only log and serve it newest-first",
	Version: version.Detailed(),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configFromViper()
		if err := cfg.Validate(); err != nil {
			return err
		}

		cmd.SilenceUsage = true
		showHeader()

		d, err := daemon.New(cfg)
		if err != nil {
			return err
		}

		defer slog.Info("Bye!")
		if err := d.Start(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("daemon", "error", err)
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().SortFlags = false
	rootCmd.Flags().StringP("datadir", "d", config.DefaultDataDir, "Mirror data directory")
	rootCmd.Flags().StringP("key", "k", "", "Remote object key to mirror")
	rootCmd.Flags().StringP("prefix", "p", "", "Remote prefix; the newest object under it is mirrored")
	rootCmd.Flags().StringP("bucket", "b", "", "Bucket holding the remote log")
	rootCmd.Flags().DurationP("interval", "i", config.DefaultSyncInterval, "Delay between sync cycles")
	rootCmd.Flags().String("http-addr", config.DefaultHTTPAddr, "Address for the pagination HTTP server")
	rootCmd.Flags().Bool("no-http", false, "Disable the HTTP server")
	rootCmd.PersistentFlags().StringP("config", "c", config.DefaultConfigPath, "Config file")
}

func main() {
	setupLogging()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func setupLogging() {
	logFile := config.DefaultLogFile
	if err := utils.EnsureParent(logFile); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create log directory: %v\n", err)
		os.Exit(1)
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}

	stdoutHandler := tint.NewHandler(os.Stdout, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.RFC3339,
		NoColor:    !isatty.IsTerminal(os.Stdout.Fd()),
	})
	fileHandler := slog.NewTextHandler(file, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})

	slog.SetDefault(slog.New(utils.NewMultiLogHandler(stdoutHandler, fileHandler)))
}

func loadConfig(cmd *cobra.Command) error {
	// .env is optional, for local development
	_ = godotenv.Load()

	if cmd.Flag("config").Changed {
		configFilePath, _ := cmd.Flags().GetString("config")
		viper.SetConfigFile(configFilePath)
	} else {
		home, _ := os.UserHomeDir()
		viper.AddConfigPath(filepath.Join(home, ".logmirror"))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		enoent := errors.Is(err, os.ErrNotExist)
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !enoent && !notFound {
			return fmt.Errorf("config read %q: %w", viper.ConfigFileUsed(), err)
		}
	}

	viper.BindPFlag("data_dir", cmd.Flags().Lookup("datadir"))
	viper.BindPFlag("key", cmd.Flags().Lookup("key"))
	viper.BindPFlag("prefix", cmd.Flags().Lookup("prefix"))
	viper.BindPFlag("s3.bucket_name", cmd.Flags().Lookup("bucket"))
	viper.BindPFlag("sync_interval", cmd.Flags().Lookup("interval"))
	viper.BindPFlag("http.addr", cmd.Flags().Lookup("http-addr"))

	viper.SetDefault("http.enabled", true)
	if noHTTP, _ := cmd.Flags().GetBool("no-http"); noHTTP {
		viper.Set("http.enabled", false)
	}

	viper.SetEnvPrefix("LOGMIRROR")
	viper.AutomaticEnv()

	return nil
}

func configFromViper() *config.Config {
	return &config.Config{
		Path:         viper.ConfigFileUsed(),
		DataDir:      viper.GetString("data_dir"),
		Key:          viper.GetString("key"),
		Prefix:       viper.GetString("prefix"),
		SyncInterval: viper.GetDuration("sync_interval"),
		S3: blob.S3Config{
			BucketName:    viper.GetString("s3.bucket_name"),
			Region:        viper.GetString("s3.region"),
			Endpoint:      viper.GetString("s3.endpoint"),
			AccessKey:     viper.GetString("s3.access_key"),
			SecretKey:     viper.GetString("s3.secret_key"),
			UseAccelerate: viper.GetBool("s3.use_accelerate"),
		},
		HTTP: config.HTTPConfig{
			Enabled:   viper.GetBool("http.enabled"),
			Addr:      viper.GetString("http.addr"),
			Token:     viper.GetString("http.token"),
			RateLimit: viper.GetString("http.rate_limit"),
		},
	}
}

func showHeader() {
	color.New(color.FgHiCyan, color.Bold).Printf("%s\n", version.AppName)
	fmt.Printf("%s\n\n", version.Detailed())
}
