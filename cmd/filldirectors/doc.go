// Package main hosts the filldirectors CLI, a one-off job that backfills the
// director column of the DVD catalogue from Wikipedia.
//
// The root command runs the backfill; `config init` and `config validate`
// scaffold and check the INI or TOML configuration shared with the catalogue
// web API. Configuration is resolved lazily so scaffolding works without a
// config file, and every failure before the first row is touched (bad flags,
// missing config, unreachable database) exits with status 2.
package main
