// Package services defines shared utilities consumed by the enrichment run and
// its external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers and record keys for logging.
//   - Structured error markers plus the Wrap helper that classify failures so
//     the CLI can pick a process exit code (configuration and connection
//     failures exit 2, everything else 1).
//
// Use these helpers when wiring new components so operational behaviour stays
// uniform across the run.
package services
