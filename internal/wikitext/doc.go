// Package wikitext extracts director credits from MediaWiki markup and plain
// text article extracts.
//
// The extraction is deliberately shallow: templates are stripped in a single
// non-recursive pass, so nested templates leave fragments behind. Callers treat
// an empty result as "not found".
package wikitext
