package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds backing store configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// GatewayConfig holds chat platform gateway configuration
type GatewayConfig struct {
	APIBaseURL     string        `mapstructure:"api_base_url"`
	APIToken       string        `mapstructure:"api_token"`
	HTTPTimeout    time.Duration `mapstructure:"http_timeout"`
	SendRatePerSec float64       `mapstructure:"send_rate_per_sec"`
}

// ScannerConfig holds configuration for the inventory scanner process
type ScannerConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	Gateway    GatewayConfig  `mapstructure:"gateway"`

	Scanner struct {
		Interval  time.Duration `mapstructure:"interval"`
		ScanDepth int           `mapstructure:"scan_depth"`
		SourceRef string        `mapstructure:"source_ref"`
	} `mapstructure:"scanner"`
}

// DispatcherConfig holds configuration for the reward dispatcher process
type DispatcherConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	Gateway    GatewayConfig  `mapstructure:"gateway"`

	Dispatcher struct {
		Interval          time.Duration `mapstructure:"interval"`
		MaxAttempts       int           `mapstructure:"max_attempts"`
		RetryBase         time.Duration `mapstructure:"retry_base"`
		RetryMaxInterval  time.Duration `mapstructure:"retry_max_interval"`
		StaleAttemptAfter time.Duration `mapstructure:"stale_attempt_after"`
	} `mapstructure:"dispatcher"`
}

// NotifierConfig holds configuration for the eligibility notifier process
type NotifierConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	Gateway    GatewayConfig  `mapstructure:"gateway"`

	WebAppBaseURL string `mapstructure:"webapp_base_url"`

	Notifier struct {
		RoundInterval    time.Duration `mapstructure:"round_interval"`
		RoundBatch       int           `mapstructure:"round_batch"`
		FreeSpinInterval time.Duration `mapstructure:"free_spin_interval"`
		FreeSpinWindow   time.Duration `mapstructure:"free_spin_window"`
		PoolSize         int           `mapstructure:"pool_size"`
	} `mapstructure:"notifier"`
}

// BinderConfig holds configuration for the referral binder process
type BinderConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	Gateway    GatewayConfig  `mapstructure:"gateway"`

	WebAppBaseURL string `mapstructure:"webapp_base_url"`

	Binder struct {
		PollTimeout time.Duration `mapstructure:"poll_timeout"`
	} `mapstructure:"binder"`
}

// LoadScannerConfig loads configuration for the scanner process
func LoadScannerConfig(configFile string, envPath string) (*ScannerConfig, error) {
	v := configureViper("scanner", configFile, envPath)

	setCommonDefaults(v)
	v.SetDefault("scanner.interval", "2m")
	v.SetDefault("scanner.scan_depth", 200)

	if err := readInConfig(v); err != nil {
		return nil, err
	}

	var cfg ScannerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateCommon(&cfg.Database, &cfg.Gateway); err != nil {
		return nil, err
	}
	if cfg.Scanner.SourceRef == "" {
		return nil, errors.New("scanner.source_ref is required")
	}
	return &cfg, nil
}

// LoadDispatcherConfig loads configuration for the dispatcher process
func LoadDispatcherConfig(configFile string, envPath string) (*DispatcherConfig, error) {
	v := configureViper("dispatcher", configFile, envPath)

	setCommonDefaults(v)
	v.SetDefault("dispatcher.interval", "60s")
	v.SetDefault("dispatcher.max_attempts", 20)
	v.SetDefault("dispatcher.retry_base", "1m")
	v.SetDefault("dispatcher.retry_max_interval", "30m")
	v.SetDefault("dispatcher.stale_attempt_after", "10m")

	if err := readInConfig(v); err != nil {
		return nil, err
	}

	var cfg DispatcherConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateCommon(&cfg.Database, &cfg.Gateway); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadNotifierConfig loads configuration for the notifier process
func LoadNotifierConfig(configFile string, envPath string) (*NotifierConfig, error) {
	v := configureViper("notifier", configFile, envPath)

	setCommonDefaults(v)
	v.SetDefault("notifier.round_interval", "10s")
	v.SetDefault("notifier.round_batch", 50)
	v.SetDefault("notifier.free_spin_interval", "900s")
	v.SetDefault("notifier.free_spin_window", "24h")
	v.SetDefault("notifier.pool_size", 4)

	if err := readInConfig(v); err != nil {
		return nil, err
	}

	var cfg NotifierConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateCommon(&cfg.Database, &cfg.Gateway); err != nil {
		return nil, err
	}
	if cfg.WebAppBaseURL == "" {
		return nil, errors.New("webapp_base_url is required")
	}
	return &cfg, nil
}

// LoadBinderConfig loads configuration for the binder process
func LoadBinderConfig(configFile string, envPath string) (*BinderConfig, error) {
	v := configureViper("binder", configFile, envPath)

	setCommonDefaults(v)
	v.SetDefault("binder.poll_timeout", "30s")

	if err := readInConfig(v); err != nil {
		return nil, err
	}

	var cfg BinderConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateCommon(&cfg.Database, &cfg.Gateway); err != nil {
		return nil, err
	}
	if cfg.WebAppBaseURL == "" {
		return nil, errors.New("webapp_base_url is required")
	}
	return &cfg, nil
}

// setCommonDefaults applies the defaults shared by all four processes
func setCommonDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 5)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
	v.SetDefault("gateway.api_base_url", "https://api.telegram.org")
	v.SetDefault("gateway.http_timeout", "30s")
	v.SetDefault("gateway.send_rate_per_sec", 6)
}

// validateCommon enforces the fields every process needs to start
func validateCommon(db *DatabaseConfig, gw *GatewayConfig) error {
	if db.Host == "" {
		return errors.New("database.host is required")
	}
	if db.DBName == "" {
		return errors.New("database.dbname is required")
	}
	if gw.APIToken == "" {
		return errors.New("gateway.api_token is required")
	}
	return nil
}

// readInConfig reads the config file, tolerating its absence so pure
// environment-variable deployments work
func readInConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment
// variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	loadEnv(envPath, service)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix("REWARD_ENGINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no
// config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		"webapp_base_url",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// Gateway
		"gateway.api_base_url",
		"gateway.api_token",
		"gateway.http_timeout",
		"gateway.send_rate_per_sec",
		// Scanner
		"scanner.interval",
		"scanner.scan_depth",
		"scanner.source_ref",
		// Dispatcher
		"dispatcher.interval",
		"dispatcher.max_attempts",
		"dispatcher.retry_base",
		"dispatcher.retry_max_interval",
		"dispatcher.stale_attempt_after",
		// Notifier
		"notifier.round_interval",
		"notifier.round_batch",
		"notifier.free_spin_interval",
		"notifier.free_spin_window",
		"notifier.pool_size",
		// Binder
		"binder.poll_timeout",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := strings.TrimRight(envPath, "/") + "/" + envFile
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
