package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validCommonYAML = `
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: testdb
gateway:
  api_token: "123456:test-token"
`

func writeConfigFile(t *testing.T, content string) string {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0600))
	return configFile
}

func TestLoadScannerConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError string
		validate    func(*testing.T, *ScannerConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
sentry_dsn: "https://sentry.example.com"
database:
  host: db.internal
  port: 5433
  user: engine
  password: secret
  dbname: rewards
  sslmode: require
gateway:
  api_token: "123456:test-token"
  send_rate_per_sec: 3
scanner:
  interval: "5m"
  scan_depth: 100
  source_ref: "@gift_feed"
`,
			validate: func(t *testing.T, cfg *ScannerConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "https://sentry.example.com", cfg.SentryDSN)
				assert.Equal(t, "db.internal", cfg.Database.Host)
				assert.Equal(t, 5433, cfg.Database.Port)
				assert.Equal(t, "require", cfg.Database.SSLMode)
				assert.Equal(t, "123456:test-token", cfg.Gateway.APIToken)
				assert.Equal(t, float64(3), cfg.Gateway.SendRatePerSec)
				assert.Equal(t, 5*time.Minute, cfg.Scanner.Interval)
				assert.Equal(t, 100, cfg.Scanner.ScanDepth)
				assert.Equal(t, "@gift_feed", cfg.Scanner.SourceRef)
			},
		},
		{
			name: "defaults applied",
			configFile: validCommonYAML + `
scanner:
  source_ref: "@gift_feed"
`,
			validate: func(t *testing.T, cfg *ScannerConfig) {
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, "https://api.telegram.org", cfg.Gateway.APIBaseURL)
				assert.Equal(t, 30*time.Second, cfg.Gateway.HTTPTimeout)
				assert.Equal(t, 2*time.Minute, cfg.Scanner.Interval)
				assert.Equal(t, 200, cfg.Scanner.ScanDepth)
			},
		},
		{
			name:        "missing source ref",
			configFile:  validCommonYAML,
			expectError: "scanner.source_ref is required",
		},
		{
			name: "missing database host",
			configFile: `
database:
  user: testuser
  dbname: testdb
gateway:
  api_token: "123456:test-token"
scanner:
  source_ref: "@gift_feed"
`,
			expectError: "database.host is required",
		},
		{
			name: "missing api token",
			configFile: `
database:
  host: localhost
  dbname: testdb
scanner:
  source_ref: "@gift_feed"
`,
			expectError: "gateway.api_token is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadScannerConfig(writeConfigFile(t, tt.configFile), t.TempDir())

			if tt.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}

func TestLoadDispatcherConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *DispatcherConfig)
	}{
		{
			name: "valid config file",
			configFile: validCommonYAML + `
dispatcher:
  interval: "30s"
  max_attempts: 10
  retry_base: "2m"
  retry_max_interval: "1h"
  stale_attempt_after: "5m"
`,
			validate: func(t *testing.T, cfg *DispatcherConfig) {
				assert.Equal(t, 30*time.Second, cfg.Dispatcher.Interval)
				assert.Equal(t, 10, cfg.Dispatcher.MaxAttempts)
				assert.Equal(t, 2*time.Minute, cfg.Dispatcher.RetryBase)
				assert.Equal(t, time.Hour, cfg.Dispatcher.RetryMaxInterval)
				assert.Equal(t, 5*time.Minute, cfg.Dispatcher.StaleAttemptAfter)
			},
		},
		{
			name:       "defaults applied",
			configFile: validCommonYAML,
			validate: func(t *testing.T, cfg *DispatcherConfig) {
				assert.Equal(t, time.Minute, cfg.Dispatcher.Interval)
				assert.Equal(t, 20, cfg.Dispatcher.MaxAttempts)
				assert.Equal(t, time.Minute, cfg.Dispatcher.RetryBase)
				assert.Equal(t, 30*time.Minute, cfg.Dispatcher.RetryMaxInterval)
				assert.Equal(t, 10*time.Minute, cfg.Dispatcher.StaleAttemptAfter)
			},
		},
		{
			name:        "missing database",
			configFile:  `gateway: {api_token: "t"}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadDispatcherConfig(writeConfigFile(t, tt.configFile), t.TempDir())

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			tt.validate(t, cfg)
		})
	}
}

func TestLoadNotifierConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError string
		validate    func(*testing.T, *NotifierConfig)
	}{
		{
			name: "valid config file",
			configFile: validCommonYAML + `
webapp_base_url: "https://app.example.com"
notifier:
  round_interval: "5s"
  round_batch: 25
  free_spin_interval: "10m"
  free_spin_window: "12h"
  pool_size: 8
`,
			validate: func(t *testing.T, cfg *NotifierConfig) {
				assert.Equal(t, "https://app.example.com", cfg.WebAppBaseURL)
				assert.Equal(t, 5*time.Second, cfg.Notifier.RoundInterval)
				assert.Equal(t, 25, cfg.Notifier.RoundBatch)
				assert.Equal(t, 10*time.Minute, cfg.Notifier.FreeSpinInterval)
				assert.Equal(t, 12*time.Hour, cfg.Notifier.FreeSpinWindow)
				assert.Equal(t, 8, cfg.Notifier.PoolSize)
			},
		},
		{
			name: "defaults applied",
			configFile: validCommonYAML + `
webapp_base_url: "https://app.example.com"
`,
			validate: func(t *testing.T, cfg *NotifierConfig) {
				assert.Equal(t, 10*time.Second, cfg.Notifier.RoundInterval)
				assert.Equal(t, 50, cfg.Notifier.RoundBatch)
				assert.Equal(t, 900*time.Second, cfg.Notifier.FreeSpinInterval)
				assert.Equal(t, 24*time.Hour, cfg.Notifier.FreeSpinWindow)
				assert.Equal(t, 4, cfg.Notifier.PoolSize)
			},
		},
		{
			name:        "missing webapp base url",
			configFile:  validCommonYAML,
			expectError: "webapp_base_url is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadNotifierConfig(writeConfigFile(t, tt.configFile), t.TempDir())

			if tt.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			tt.validate(t, cfg)
		})
	}
}

func TestLoadBinderConfig(t *testing.T) {
	configFile := writeConfigFile(t, validCommonYAML+`
webapp_base_url: "https://app.example.com"
`)

	cfg, err := LoadBinderConfig(configFile, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Binder.PollTimeout)
	assert.Equal(t, "https://app.example.com", cfg.WebAppBaseURL)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "engine",
		Password: "secret",
		DBName:   "rewards",
		SSLMode:  "require",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "host=db.internal")
	assert.Contains(t, dsn, "port=5433")
	assert.Contains(t, dsn, "user=engine")
	assert.Contains(t, dsn, "password=secret")
	assert.Contains(t, dsn, "dbname=rewards")
	assert.Contains(t, dsn, "sslmode=require")
}
