package config

const (
	defaultConfigPath         = "../api/config.ini"
	defaultDriver             = "mysql"
	defaultHost               = "127.0.0.1"
	defaultMySQLPort          = 3306
	defaultPostgresPort       = 5432
	defaultCharset            = "utf8mb4"
	defaultTable              = "dvds"
	defaultWikipediaEndpoint  = "https://en.wikipedia.org/w/api.php"
	defaultWikipediaUserAgent = "realmsofsilver-dvds/1.0 (https://realmsofsilver.com)"
	defaultWikipediaTimeout   = 15
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	passwordEnvVar            = "DVDS_DB_PASSWORD"
)

// Driver names accepted in database.driver.
const (
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Default returns a Config populated with repository defaults. The database
// user and name have no defaults and must come from the config file.
func Default() Config {
	return Config{
		Database: Database{
			Driver:  defaultDriver,
			Host:    defaultHost,
			Charset: defaultCharset,
			Table:   defaultTable,
		},
		Wikipedia: Wikipedia{
			Endpoint:       defaultWikipediaEndpoint,
			UserAgent:      defaultWikipediaUserAgent,
			TimeoutSeconds: defaultWikipediaTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
