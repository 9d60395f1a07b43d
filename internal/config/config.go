package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Defaults applied when neither the config file nor the environment sets a value.
const (
	DefaultUpdatePeriod = 1
	DefaultTimeRange    = "5s"
	DefaultExporterPort = 9000
	DefaultQueryTimeout = "5s"
	DefaultLogLevel     = "info"
	DefaultNATSSubject  = "slicescope.kpi"
)

// BackendConfig holds the connection settings for the time-series backend.
type BackendConfig struct {
	URL string `yaml:"url"`
	// QueryTimeout is the per-request HTTP timeout as a duration string.
	QueryTimeout string `yaml:"query_timeout"`
}

// CollectorConfig holds the settings for the periodic collection cycle.
type CollectorConfig struct {
	// UpdatePeriod is the interval between collection cycles, in seconds.
	UpdatePeriod int `yaml:"update_period"`
	// TimeRange is the query window string, used verbatim in expressions.
	TimeRange string `yaml:"time_range"`
}

// ExporterConfig holds the settings for the scrape endpoint.
type ExporterConfig struct {
	Port int `yaml:"port"`
}

// NATSConfig holds the settings for the optional KPI event publisher.
type NATSConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// LogConfig holds the logging settings.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Config is the top-level configuration struct for the entire application.
// It is resolved once at startup and immutable afterwards.
type Config struct {
	Backend   BackendConfig   `yaml:"backend"`
	Collector CollectorConfig `yaml:"collector"`
	Exporter  ExporterConfig  `yaml:"exporter"`
	NATS      NATSConfig      `yaml:"nats"`
	Log       LogConfig       `yaml:"log"`

	// queryTimeout is the parsed Backend.QueryTimeout, resolved by Validate.
	queryTimeout time.Duration
}

// LoadConfig resolves the configuration from a YAML file, the environment and
// built-in defaults, in that order of increasing precedence. A missing file is
// not an error; a missing backend URL is.
func LoadConfig(filePath string) (*Config, error) {
	cfg := &Config{
		Backend:   BackendConfig{QueryTimeout: DefaultQueryTimeout},
		Collector: CollectorConfig{UpdatePeriod: DefaultUpdatePeriod, TimeRange: DefaultTimeRange},
		Exporter:  ExporterConfig{Port: DefaultExporterPort},
		NATS:      NATSConfig{Subject: DefaultNATSSubject},
		Log:       LogConfig{Level: DefaultLogLevel},
	}

	data, err := os.ReadFile(filePath)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config YAML: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays environment variables on top of file values, for
// container deployments that configure through the environment.
func applyEnv(cfg *Config) {
	if v := os.Getenv("BACKEND_URL"); v != "" {
		cfg.Backend.URL = v
	}
	if v := os.Getenv("UPDATE_PERIOD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Collector.UpdatePeriod = n
		}
	}
	if v := os.Getenv("TIME_RANGE"); v != "" {
		cfg.Collector.TimeRange = v
	}
	if v := os.Getenv("EXPORTER_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Exporter.Port = n
		}
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
}

// Validate checks the resolved configuration. The backend URL is the single
// fatal requirement; everything else has a usable default.
func (c *Config) Validate() error {
	if c.Backend.URL == "" {
		return fmt.Errorf("backend url is required (set backend.url or BACKEND_URL)")
	}
	if c.Collector.UpdatePeriod < 1 {
		return fmt.Errorf("update_period must be >= 1 second, got %d", c.Collector.UpdatePeriod)
	}
	if c.Collector.TimeRange == "" {
		return fmt.Errorf("time_range must not be empty")
	}
	if c.Exporter.Port <= 0 || c.Exporter.Port > 65535 {
		return fmt.Errorf("invalid exporter port: %d", c.Exporter.Port)
	}
	timeout, err := time.ParseDuration(c.Backend.QueryTimeout)
	if err != nil {
		return fmt.Errorf("invalid query_timeout: %w", err)
	}
	if timeout <= 0 {
		return fmt.Errorf("query_timeout must be positive, got %s", c.Backend.QueryTimeout)
	}
	c.queryTimeout = timeout
	if c.NATS.Enabled && c.NATS.URL == "" {
		return fmt.Errorf("nats.url is required when nats.enabled is true")
	}
	return nil
}

// UpdateInterval returns the collection period as a duration.
func (c *Config) UpdateInterval() time.Duration {
	return time.Duration(c.Collector.UpdatePeriod) * time.Second
}

// QueryTimeoutDuration returns the parsed per-request HTTP timeout.
func (c *Config) QueryTimeoutDuration() time.Duration {
	return c.queryTimeout
}

// LogLevel parses the configured verbosity. The "warning" and "critical"
// spellings are accepted as aliases for warn and fatal.
func (c *Config) LogLevel() (zerolog.Level, error) {
	s := c.Log.Level
	switch s {
	case "warning":
		s = "warn"
	case "critical":
		s = "fatal"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	return lvl, nil
}
