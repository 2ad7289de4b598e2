package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logmirror/logmirror/internal/blob"
)

func validConfig() *Config {
	return &Config{
		DataDir:      "/tmp/mirror",
		Key:          "logs/app.log",
		SyncInterval: DefaultSyncInterval,
		S3: blob.S3Config{
			BucketName: "logs",
			Region:     "us-east-1",
		},
		HTTP: HTTPConfig{
			Enabled: true,
			Addr:    DefaultHTTPAddr,
		},
	}
}

func TestValidateOK(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidateRequiredFields(t *testing.T) {
	cfg := validConfig()
	cfg.DataDir = ""
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Key = ""
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.S3.BucketName = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateKeyPrefixExclusive(t *testing.T) {
	cfg := validConfig()
	cfg.Prefix = "logs/"
	assert.Error(t, cfg.Validate())

	cfg.Key = ""
	assert.NoError(t, cfg.Validate())
}

func TestValidateIntervalFloor(t *testing.T) {
	cfg := validConfig()
	cfg.SyncInterval = 100 * time.Millisecond
	assert.Error(t, cfg.Validate())
}

func TestValidateEndpointWithoutRegion(t *testing.T) {
	cfg := validConfig()
	cfg.S3.Region = ""
	cfg.S3.Endpoint = "http://localhost:9000"
	assert.NoError(t, cfg.Validate())
}

func TestValidateHTTPAddr(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Addr = ""
	assert.Error(t, cfg.Validate())

	cfg.HTTP.Enabled = false
	assert.NoError(t, cfg.Validate())
}
