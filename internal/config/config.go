package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	DefaultTrailingWindowDays = 30
	DefaultVideoCheckTimeout  = 1500 * time.Millisecond
)

type User struct {
	Username     string `toml:"username"`
	PasswordHash string `toml:"password_hash"`
}

type Config struct {
	Environment string
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// browser origins allowed by CORS, next to the built-in defaults
	AllowedOrigins []string `toml:"allowed_origins"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// redis (login sessions, dashboard session state, rate limiting)
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// prometheus
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// measurements sheet (.csv or .xlsx)
	MeasurementsPath   string `toml:"measurements_path"`
	TrailingWindowDays int    `toml:"trailing_window_days"`
	// auth
	LoginRateLimitAllowedPerMin int    `toml:"login_rate_limit_allowed_per_min"`
	Users                       []User `toml:"users"`
	// ai assistant
	GeminiApiUrl string `toml:"gemini_api_url"`
	GeminiModel  string `toml:"gemini_model"`
	// video hub
	VideoCheckTimeout duration `toml:"video_check_timeout"`
	// google drive backup
	DriveBackupFolder string `toml:"drive_backup_folder"`
	DriveShareWith    string `toml:"drive_share_with"`
	DriveBackupKeep   int    `toml:"drive_backup_keep"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the TOML config file and returns the config for the given environment,
// with defaults applied for the optional values.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env [%s] missing in %s", env, path)
	}

	cfg.Environment = strings.ToLower(env)
	cfg.applyDefaults()

	if cfg.MeasurementsPath == "" {
		return nil, fmt.Errorf("measurements_path not set for env [%s]", env)
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.RedisHost == "" {
		c.RedisHost = "localhost"
	}
	if c.RedisPort == "" {
		c.RedisPort = "6379"
	}
	if c.PrometheusMetricsHost == "" {
		c.PrometheusMetricsHost = "localhost"
	}
	if c.PrometheusMetricsPort == "" {
		c.PrometheusMetricsPort = "2112"
	}
	if c.TrailingWindowDays <= 0 {
		c.TrailingWindowDays = DefaultTrailingWindowDays
	}
	if c.LoginRateLimitAllowedPerMin <= 0 {
		c.LoginRateLimitAllowedPerMin = 15
	}
	if c.GeminiApiUrl == "" {
		c.GeminiApiUrl = "https://generativelanguage.googleapis.com/"
	}
	if c.GeminiModel == "" {
		c.GeminiModel = "gemini-2.5-flash"
	}
	if c.VideoCheckTimeout.Duration <= 0 {
		c.VideoCheckTimeout.Duration = DefaultVideoCheckTimeout
	}
	if c.DriveBackupFolder == "" {
		c.DriveBackupFolder = "healthtracker-backup"
	}
	if c.DriveBackupKeep <= 0 {
		c.DriveBackupKeep = 30
	}
}

// duration lets TOML values like "1500ms" decode into a time.Duration
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}
