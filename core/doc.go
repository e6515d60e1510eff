// Package core contains the search aggregation engine behind the grounding API.
// It has no knowledge of HTTP servers or storage engines; everything external
// is injected through the interfaces package.
//
// The core package is organized into several sub-packages:
//
// - domain: SearchResult, SourceSpec, FetchOutcome, RankedBundle and friends
// - query: decides whether a user message warrants a search and derives the query
// - sources: the static catalog of search backends and their priority ranks
// - parser: the per-source extraction cascade (site selectors, patterns, links, URL harvest)
// - quality: heuristics that flag login, error and navigation pages
// - search: parallel fan-out, dedup and ranking, sequential fallback, context formatting
// - reader: page body retrieval through the page-reading proxy
// - errors: the error taxonomy (transport, parse, no results, low quality)
// - interfaces: contracts for cache, HTTP, logger and settings
//
// # Failure model
//
// A source that times out, errors or answers with junk becomes an empty
// FetchOutcome. Search and FetchPage never return errors; the worst case is a
// bundle holding only fallback placeholder results.
//
// # Usage Example
//
//	import (
//	    "groundsearch-api/core/interfaces"
//	    "groundsearch-api/core/search"
//	)
//
//	deps := interfaces.Dependencies{
//	    Cache:      myCache,      // implements interfaces.Cache, may be nil
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	    Settings:   mySettings,   // implements interfaces.SettingsProvider
//	}
//
//	svc := search.NewSearchService(deps, nil, nil, search.DefaultConfig())
//	bundle := svc.Search(ctx, "golang generics")
//	prompt := search.FormatContext(bundle, true)
package core
