package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sorter.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9090"
  read_timeout: 2s
  enable_debug: true
logging:
  level: debug
  format: json
decision_log:
  path: /tmp/decisions.jsonl
  stdout: false
`), 0o600))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 2*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout)
	assert.True(t, cfg.Server.EnableDebug)
	assert.True(t, cfg.Server.EnableMetrics)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "/tmp/decisions.jsonl", cfg.DecisionLog.Path)
	assert.False(t, cfg.DecisionLog.Stdout)
}

func TestLoad_Env(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SORTER_SERVER_ADDR", ":7070")
	t.Setenv("SORTER_SERVER_SHUTDOWN_TIMEOUT", "5s")
	t.Setenv("SORTER_LOGGING_LEVEL", "warn")
	t.Setenv("SORTER_DECISION_LOG_STDOUT", "false")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.False(t, cfg.DecisionLog.Stdout)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		errMsg  string
		wantErr bool
	}{
		{
			name:   "defaults",
			mutate: func(*Config) {},
		},
		{
			name:    "empty addr",
			mutate:  func(c *Config) { c.Server.Addr = "" },
			wantErr: true,
			errMsg:  "Config.Server.Addr",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Server.ReadTimeout = 0 },
			wantErr: true,
			errMsg:  "ReadTimeout",
		},
		{
			name:    "unknown level",
			mutate:  func(c *Config) { c.Logging.Level = "trace" },
			wantErr: true,
			errMsg:  "Level",
		},
		{
			name:    "unknown format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: true,
			errMsg:  "Format",
		},
		{
			name:    "cert without key",
			mutate:  func(c *Config) { c.Server.TLSCertFile = "cert.pem" },
			wantErr: true,
			errMsg:  "TLSKeyFile",
		},
		{
			name: "cert and key",
			mutate: func(c *Config) {
				c.Server.TLSCertFile = "cert.pem"
				c.Server.TLSKeyFile = "key.pem"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLoad_ExampleFileMatchesDefaults(t *testing.T) {
	cfg, err := Load(viper.New(), filepath.Join("..", "..", "configs", "sorter.example.yaml"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}
