package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/logmirror/logmirror/internal/blob"
)

var (
	home, _           = os.UserHomeDir()
	DefaultDataDir    = filepath.Join(home, ".logmirror", "mirror")
	DefaultConfigPath = filepath.Join(home, ".logmirror", "config.yaml")
	DefaultLogFile    = filepath.Join(home, ".logmirror", "logs", "logmirror.log")
)

const (
	DefaultSyncInterval = 10 * time.Second
	DefaultHTTPAddr     = "localhost:7380"
)

// Config is the fully resolved daemon configuration.
type Config struct {
	// DataDir is the mirror workspace directory.
	DataDir string `json:"data_dir" mapstructure:"data_dir"`

	// Key is the remote object key to mirror. When Prefix is set instead,
	// the newest key under it is resolved before each cycle.
	Key    string `json:"key" mapstructure:"key"`
	Prefix string `json:"prefix" mapstructure:"prefix"`

	// SyncInterval is the delay between the end of one cycle and the start
	// of the next.
	SyncInterval time.Duration `json:"sync_interval" mapstructure:"sync_interval"`

	S3   blob.S3Config `json:"s3" mapstructure:"s3"`
	HTTP HTTPConfig    `json:"http" mapstructure:"http"`

	// Path is where this config was loaded from, if anywhere.
	Path string `json:"-" mapstructure:"-"`
}

// HTTPConfig configures the pagination/status HTTP server.
type HTTPConfig struct {
	Enabled   bool   `json:"enabled" mapstructure:"enabled"`
	Addr      string `json:"addr" mapstructure:"addr"`
	Token     string `json:"-" mapstructure:"token"`
	RateLimit string `json:"rate_limit" mapstructure:"rate_limit"`
}

func (c *Config) Validate() error {
	if c.DataDir == "" {
		return errors.New("data_dir is required")
	}
	if c.Key == "" && c.Prefix == "" {
		return errors.New("either key or prefix is required")
	}
	if c.Key != "" && c.Prefix != "" {
		return errors.New("key and prefix are mutually exclusive")
	}
	if c.S3.BucketName == "" {
		return errors.New("s3.bucket_name is required")
	}
	if c.S3.Region == "" && c.S3.Endpoint == "" {
		return errors.New("one of s3.region or s3.endpoint is required")
	}
	if c.SyncInterval < time.Second {
		return fmt.Errorf("sync_interval %s is below the 1s floor", c.SyncInterval)
	}
	if c.HTTP.Enabled && c.HTTP.Addr == "" {
		return errors.New("http.addr is required when http is enabled")
	}
	return nil
}
