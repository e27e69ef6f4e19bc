package config

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var validTableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateWikipedia(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDatabase() error {
	switch c.Database.Driver {
	case DriverMySQL, DriverPostgres:
		if c.Database.User == "" || c.Database.Name == "" {
			return configError("database config must include username and dbname", nil)
		}
	case DriverSQLite:
		if c.Database.Name == "" {
			return configError("database config must include dbname (sqlite file path)", nil)
		}
	default:
		return configError(fmt.Sprintf("database.driver: unsupported value %q", c.Database.Driver), nil)
	}
	if c.Database.Port < 0 || c.Database.Port > 65535 {
		return configError(fmt.Sprintf("database.port: out of range %d", c.Database.Port), nil)
	}
	if !validTableName.MatchString(c.Database.Table) {
		return configError(fmt.Sprintf("database.table: invalid table name %q", c.Database.Table), nil)
	}
	return nil
}

func (c *Config) validateWikipedia() error {
	parsed, err := url.Parse(c.Wikipedia.Endpoint)
	if err != nil {
		return configError("wikipedia.endpoint", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return configError(fmt.Sprintf("wikipedia.endpoint: unsupported scheme %q", parsed.Scheme), nil)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return configError("wikipedia.endpoint: missing host", nil)
	}
	if c.Wikipedia.TimeoutSeconds <= 0 {
		return configError("wikipedia.timeout_seconds must be positive", nil)
	}
	return nil
}
