package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"dvdenrich/internal/services"
)

//go:embed sample_config.ini
var sampleConfigINI string

//go:embed sample_config.toml
var sampleConfigTOML string

// Database holds the connection parameters for the DVD catalogue.
type Database struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	Charset  string
	Table    string
}

// Wikipedia configures the MediaWiki API client.
type Wikipedia struct {
	Endpoint       string
	UserAgent      string
	TimeoutSeconds int
}

// Logging contains configuration for log output.
type Logging struct {
	Format string
	Level  string
	File   string
}

// Config encapsulates all configuration values for a run.
//
// Sections:
//   - Database: catalogue connection (required section)
//   - Wikipedia: lookup endpoint, client identification and timeout
//   - Logging: log format, level and optional log file
type Config struct {
	Database  Database
	Wikipedia Wikipedia
	Logging   Logging
}

// DefaultConfigPath returns the configuration file used when --config is not
// given. It is relative to the working directory, matching the layout where
// the job runs from the scripts directory next to the web API.
func DefaultConfigPath() string {
	return defaultConfigPath
}

// Load reads, normalizes, and validates the configuration file at path. An
// empty path selects DefaultConfigPath. The resolved absolute path is returned
// alongside the config.
func Load(path string) (*Config, string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultConfigPath
	}
	resolved, err := expandPath(path)
	if err != nil {
		return nil, "", configError("resolve path", err)
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, resolved, configError(fmt.Sprintf("config file not found: %s", resolved), nil)
		}
		return nil, resolved, configError(fmt.Sprintf("read %s", resolved), err)
	}

	var file sections
	if isTOML(resolved) {
		file, err = parseTOML(data)
	} else {
		file, err = parseINI(data)
	}
	if err != nil {
		return nil, resolved, configError(fmt.Sprintf("parse %s", resolved), err)
	}

	cfg := Default()
	if err := cfg.apply(file); err != nil {
		return nil, resolved, err
	}
	if err := cfg.normalize(); err != nil {
		return nil, resolved, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, resolved, err
	}
	return &cfg, resolved, nil
}

func (c *Config) apply(file sections) error {
	db, ok := file.section("database")
	if !ok {
		return configError("missing [database] section in config file", nil)
	}
	if value, ok := db.lookup("driver"); ok {
		c.Database.Driver = value
	}
	if value, ok := db.lookup("host"); ok {
		c.Database.Host = value
	}
	if value, ok := db.lookup("port"); ok {
		port, err := parsePositiveInt(value)
		if err != nil {
			return configError("database.port", err)
		}
		c.Database.Port = port
	}
	if value, ok := db.lookup("username", "user"); ok {
		c.Database.User = value
	}
	if value, ok := db.lookup("password", "pass"); ok {
		c.Database.Password = value
	}
	if value, ok := db.lookup("dbname", "database"); ok {
		c.Database.Name = value
	}
	if value, ok := db.lookup("charset"); ok {
		c.Database.Charset = value
	}
	if value, ok := db.lookup("table"); ok {
		c.Database.Table = value
	}

	if wiki, ok := file.section("wikipedia"); ok {
		if value, ok := wiki.lookup("endpoint"); ok {
			c.Wikipedia.Endpoint = value
		}
		if value, ok := wiki.lookup("user_agent"); ok {
			c.Wikipedia.UserAgent = value
		}
		if value, ok := wiki.lookup("timeout_seconds"); ok {
			seconds, err := parsePositiveInt(value)
			if err != nil {
				return configError("wikipedia.timeout_seconds", err)
			}
			c.Wikipedia.TimeoutSeconds = seconds
		}
	}

	if logging, ok := file.section("logging"); ok {
		if value, ok := logging.lookup("format"); ok {
			c.Logging.Format = value
		}
		if value, ok := logging.lookup("level"); ok {
			c.Logging.Level = value
		}
		if value, ok := logging.lookup("file"); ok {
			c.Logging.File = value
		}
	}
	return nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func configError(message string, err error) error {
	return services.Wrap(services.ErrConfiguration, "config", "", message, err)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
// A .toml destination receives the TOML flavour of the sample.
func CreateSample(path string) error {
	sample := sampleConfigINI
	if isTOML(path) {
		sample = sampleConfigTOML
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
