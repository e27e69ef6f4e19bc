// Package wikipedia queries the MediaWiki action API for film articles and
// resolves director credits from them.
//
// Client wraps the three query modes the enrichment run needs (full-text
// search, latest revision markup, plain-text intro extract). Resolver chains
// them: the top search hit is looked up first through its infobox markup and
// then through its intro extract, stopping at the first credit found. Request
// failures are logged and treated as missing data; nothing is retried.
package wikipedia
