// Package config loads service configuration from an optional YAML file
// with environment-variable overrides.
//
// Precedence, lowest to highest: built-in defaults, YAML file, environment.
// The storage endpoint and credentials are mandatory (except for the
// in-memory provider); a missing value is a startup error, not a runtime
// fallback.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/srishtisingh2026/S3-File-Manager/internal/auditlog"
	"github.com/srishtisingh2026/S3-File-Manager/internal/filestore"
	"go.yaml.in/yaml/v3"
)

// Duration wraps time.Duration so YAML can carry values like "30s".
// Plain integers are read as nanoseconds, matching time.Duration.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw any
	if err := value.Decode(&raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", v, err)
		}
		*d = Duration(parsed)
	case int:
		*d = Duration(v)
	case int64:
		*d = Duration(v)
	default:
		return fmt.Errorf("invalid duration value %v", raw)
	}
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Server holds the HTTP listener settings.
type Server struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `yaml:"addr"`

	ReadTimeout  Duration `yaml:"read_timeout"`
	WriteTimeout Duration `yaml:"write_timeout"`

	// ShutdownTimeout bounds the graceful drain on SIGINT/SIGTERM.
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
}

// Log holds logger settings.
type Log struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// Config is the full service configuration.
type Config struct {
	Server  Server           `yaml:"server"`
	Storage filestore.Config `yaml:"storage"`
	Audit   auditlog.Config  `yaml:"audit"`
	Log     Log              `yaml:"log"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Server: Server{
			Addr:            ":8080",
			ReadTimeout:     Duration(30 * time.Second),
			WriteTimeout:    Duration(60 * time.Second),
			ShutdownTimeout: Duration(10 * time.Second),
		},
		Storage: filestore.Config{
			Provider: filestore.ProviderMinIO,
		},
		Log: Log{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration from the YAML file at path (skipped when
// path is empty or the file does not exist) and the environment, then
// validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// config file is optional; env can carry everything
		case err != nil:
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides fields from the environment.
func (c *Config) applyEnv() {
	setString(&c.Server.Addr, "LISTEN_ADDR")

	if v, ok := os.LookupEnv("STORAGE_PROVIDER"); ok {
		c.Storage.Provider = filestore.Provider(v)
	}
	setString(&c.Storage.Endpoint, "STORAGE_ENDPOINT")
	setString(&c.Storage.AccessKey, "STORAGE_ACCESS_KEY")
	setString(&c.Storage.SecretKey, "STORAGE_SECRET_KEY")
	setString(&c.Storage.Region, "STORAGE_REGION")
	if v, ok := os.LookupEnv("STORAGE_USE_SSL"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Storage.UseSSL = b
		}
	}

	if v, ok := os.LookupEnv("AUDIT_DRIVER"); ok {
		c.Audit.Driver = auditlog.Driver(v)
	}
	setString(&c.Audit.DSN, "AUDIT_DSN")

	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")
}

// validate rejects configurations the service cannot start with.
func (c *Config) validate() error {
	switch c.Storage.Provider {
	case filestore.ProviderMemory:
		// needs no endpoint or credentials
	case filestore.ProviderMinIO:
		if c.Storage.Endpoint == "" {
			return fmt.Errorf("storage endpoint is required: set storage.endpoint or STORAGE_ENDPOINT")
		}
		if c.Storage.AccessKey == "" || c.Storage.SecretKey == "" {
			return fmt.Errorf("storage credentials are required: set storage.access_key/secret_key or STORAGE_ACCESS_KEY/STORAGE_SECRET_KEY")
		}
	default:
		return fmt.Errorf("unknown storage provider %q", c.Storage.Provider)
	}

	switch c.Audit.Driver {
	case auditlog.DriverNone:
	case auditlog.DriverPostgres, auditlog.DriverMySQL:
		if c.Audit.DSN == "" {
			return fmt.Errorf("audit DSN is required when audit driver %q is set", c.Audit.Driver)
		}
	default:
		return fmt.Errorf("unknown audit driver %q", c.Audit.Driver)
	}

	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}
