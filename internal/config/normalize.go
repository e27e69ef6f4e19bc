package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeDatabase(); err != nil {
		return err
	}
	c.normalizeWikipedia()
	return c.normalizeLogging()
}

func (c *Config) normalizeDatabase() error {
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	switch c.Database.Driver {
	case "", "mariadb":
		c.Database.Driver = DriverMySQL
	case "sqlite3":
		c.Database.Driver = DriverSQLite
	case "postgresql", "pgx":
		c.Database.Driver = DriverPostgres
	}

	c.Database.Host = strings.TrimSpace(c.Database.Host)
	if c.Database.Host == "" {
		c.Database.Host = defaultHost
	}
	if c.Database.Port == 0 {
		switch c.Database.Driver {
		case DriverMySQL:
			c.Database.Port = defaultMySQLPort
		case DriverPostgres:
			c.Database.Port = defaultPostgresPort
		}
	}
	c.Database.User = strings.TrimSpace(c.Database.User)
	c.Database.Name = strings.TrimSpace(c.Database.Name)
	if c.Database.Password == "" {
		if value, ok := os.LookupEnv(passwordEnvVar); ok {
			c.Database.Password = value
		}
	}
	c.Database.Charset = strings.TrimSpace(c.Database.Charset)
	if c.Database.Charset == "" {
		c.Database.Charset = defaultCharset
	}
	c.Database.Table = strings.TrimSpace(c.Database.Table)
	if c.Database.Table == "" {
		c.Database.Table = defaultTable
	}

	if c.Database.Driver == DriverSQLite && c.Database.Name != "" && c.Database.Name != ":memory:" {
		expanded, err := expandPath(c.Database.Name)
		if err != nil {
			return configError(fmt.Sprintf("database.dbname %q", c.Database.Name), err)
		}
		c.Database.Name = expanded
	}
	return nil
}

func (c *Config) normalizeWikipedia() {
	c.Wikipedia.Endpoint = strings.TrimSpace(c.Wikipedia.Endpoint)
	if c.Wikipedia.Endpoint == "" {
		c.Wikipedia.Endpoint = defaultWikipediaEndpoint
	}
	c.Wikipedia.UserAgent = strings.TrimSpace(c.Wikipedia.UserAgent)
	if c.Wikipedia.UserAgent == "" {
		c.Wikipedia.UserAgent = defaultWikipediaUserAgent
	}
	if c.Wikipedia.TimeoutSeconds <= 0 {
		c.Wikipedia.TimeoutSeconds = defaultWikipediaTimeout
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.File = strings.TrimSpace(c.Logging.File)
	if c.Logging.File != "" {
		expanded, err := expandPath(c.Logging.File)
		if err != nil {
			return configError(fmt.Sprintf("logging.file %q", c.Logging.File), err)
		}
		c.Logging.File = expanded
	}
	return nil
}
