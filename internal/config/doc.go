// Package config loads, normalizes, and validates fill-directors configuration.
//
// Connection settings live in a `[database]` section of an INI file (the same
// file the catalogue web API reads), so the loader tolerates the alternate key
// spellings that file has accumulated: username/user, password/pass and
// dbname/database. Files ending in .toml are decoded as TOML instead and go
// through the same key resolution. Optional `[wikipedia]` and `[logging]`
// sections tune the lookup client and log output.
//
// Every failure is tagged with services.ErrConfiguration so the CLI can exit
// with the setup status before any row is touched.
package config
