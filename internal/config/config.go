package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	// Target settings
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	AssetPath string        `mapstructure:"asset_path"`
	Markers   Markers       `mapstructure:"markers"`

	// Output settings
	Output OutputConfig `mapstructure:"output"`

	// Optional MySQL run history
	History HistoryConfig `mapstructure:"history"`

	Logging LoggingConfig `mapstructure:"logging"`

	// Announced after a successful run
	ReadyAreas []string `mapstructure:"ready_areas"`

	// Command flags
	Flags Flags `mapstructure:"-"`
}

// Markers are the substrings the HTML checks look for
type Markers struct {
	App    string `mapstructure:"app"`
	Root   string `mapstructure:"root"`
	Brand  string `mapstructure:"brand"`
	Script string `mapstructure:"script"`
}

// OutputConfig controls where the JSON report is written
type OutputConfig struct {
	Dir  string `mapstructure:"dir"`
	File string `mapstructure:"file"`
}

// HistoryConfig holds the MySQL connection used by --history.
// DSN wins over the discrete fields when set.
type HistoryConfig struct {
	DSN      string `mapstructure:"dsn"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	Limit    int    `mapstructure:"limit"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
}

// Flags holds command-line flags
type Flags struct {
	BaseURL   string
	Timeout   time.Duration
	Only      string
	FailFast  bool
	Progress  bool
	NoSave    bool
	History   bool
	Plain     bool
	Limit     int
	LogLevel  string
	LogFormat string
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		BaseURL:   DefaultBaseURL,
		Timeout:   DefaultTimeout,
		AssetPath: DefaultAssetPath,
		Markers: Markers{
			App:    DefaultAppMarker,
			Root:   DefaultRootMarker,
			Brand:  DefaultBrandMarker,
			Script: DefaultScriptMarker,
		},
		Output: OutputConfig{
			Dir:  DefaultOutputJSONDir,
			File: DefaultOutputJSONFile,
		},
		History: HistoryConfig{
			Host:     "127.0.0.1",
			Port:     "3306",
			User:     "root",
			Database: "hbsmoke",
			Limit:    DefaultHistoryLimit,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
	cfg.ReadyAreas = make([]string, len(DefaultReadyAreas))
	copy(cfg.ReadyAreas, DefaultReadyAreas)
	return cfg
}

// SetDefaults registers every default on v so env vars resolve for unset keys
func SetDefaults(v *viper.Viper) {
	d := New()
	v.SetDefault("base_url", d.BaseURL)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("asset_path", d.AssetPath)
	v.SetDefault("markers.app", d.Markers.App)
	v.SetDefault("markers.root", d.Markers.Root)
	v.SetDefault("markers.brand", d.Markers.Brand)
	v.SetDefault("markers.script", d.Markers.Script)
	v.SetDefault("output.dir", d.Output.Dir)
	v.SetDefault("output.file", d.Output.File)
	v.SetDefault("history.dsn", "")
	v.SetDefault("history.host", d.History.Host)
	v.SetDefault("history.port", d.History.Port)
	v.SetDefault("history.user", d.History.User)
	v.SetDefault("history.password", "")
	v.SetDefault("history.database", d.History.Database)
	v.SetDefault("history.limit", d.History.Limit)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("ready_areas", d.ReadyAreas)
}

// Load reads the optional .env file, the optional config file and HBSMOKE_* environment
// variables into a Config. An empty configFile searches for .hbsmoke.yaml in the
// working directory; a missing file there is not an error.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(ConfigFileName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := New()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// GetBaseURL returns the base URL, using the flag if provided
func (c *Config) GetBaseURL() string {
	if c.Flags.BaseURL != "" {
		return strings.TrimRight(c.Flags.BaseURL, "/")
	}
	return strings.TrimRight(c.BaseURL, "/")
}

// GetAssetURL returns the URL of the static asset probed by the asset check
func (c *Config) GetAssetURL() string {
	return c.GetBaseURL() + "/" + strings.TrimLeft(c.AssetPath, "/")
}

// GetTimeout returns the per-request timeout, using the flag if provided
func (c *Config) GetTimeout() time.Duration {
	if c.Flags.Timeout > 0 {
		return c.Flags.Timeout
	}
	if c.Timeout > 0 {
		return c.Timeout
	}
	return DefaultTimeout
}

// GetOutputPath returns the absolute path of the JSON report so run and report
// read/write the same file regardless of cwd changes.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.Output.Dir, c.Output.File)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetHistoryLimit returns how many history rows to show
func (c *Config) GetHistoryLimit() int {
	if c.Flags.Limit > 0 {
		return c.Flags.Limit
	}
	if c.History.Limit > 0 {
		return c.History.Limit
	}
	return DefaultHistoryLimit
}

// GetLogging returns logging settings with flag overrides applied
func (c *Config) GetLogging() LoggingConfig {
	lc := c.Logging
	if c.Flags.LogLevel != "" {
		lc.Level = c.Flags.LogLevel
	}
	if c.Flags.LogFormat != "" {
		lc.Format = c.Flags.LogFormat
	}
	return lc
}

// GetHistoryDSN builds the MySQL DSN for the history store
func (c *Config) GetHistoryDSN() string {
	if c.History.DSN != "" {
		return c.History.DSN
	}
	h := c.History
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", h.User, h.Password, h.Host, h.Port, h.Database)
}
