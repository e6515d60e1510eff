// Package api provides the HTTP surface of the search engine.
// It uses the Huma framework on a chi router for OpenAPI documentation and
// request validation.
//
// # Layout
//
//   - server.go: Huma API configuration, CORS, middleware wiring, /health
//   - handlers/: /search, /fetch, /ground, /extract-query, /sources
//   - dto/: request and response shapes plus mappers from domain types
//   - middleware/: request logging with request IDs and per-client rate limiting
//
// # Usage
//
//	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
//	    Logger:     logger,
//	    RateLimit:  100,
//	    RateWindow: time.Minute,
//	    Flags:      flags,
//	})
//	handlers.NewSearchHandler(searchService).RegisterRoutes(humaAPI)
//	http.ListenAndServe(":8000", router)
//
// The OpenAPI document is served at /openapi.json and interactive docs at /docs.
//
// # Errors
//
// Search endpoints never fail because a source failed; a degraded search
// still returns 200 with fallback or empty results. Only request validation
// produces client errors, in RFC 7807 form:
//
//	{
//	    "status": 400,
//	    "title": "Bad Request",
//	    "detail": "validation error on field 'query': must not be blank"
//	}
package api
