// Package textutil normalizes free-form catalog text before it is sent to
// remote search endpoints.
//
// Titles typed into the catalog by hand arrive with mixed Unicode forms
// (decomposed accents from macOS clipboards, non-breaking spaces, stray tabs).
// Normalization folds them into NFC and collapses whitespace runs so that the
// same title always yields the same query string.
package textutil
