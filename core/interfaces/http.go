package interfaces

import (
	"context"
	"io"
)

// HTTPClient defines the interface for making outbound HTTP requests.
// Sources, the reading proxy and page fetches all go through it, so tests can
// swap in a fake and the orchestrator never touches net/http directly.
type HTTPClient interface {
	// Get performs an HTTP GET request to the specified URL.
	// headers may be nil. The request is bound to ctx and must stop when ctx ends.
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)

	// Post performs an HTTP POST request to the specified URL with the given body.
	// headers may be nil; Content-Type defaults to application/json.
	Post(ctx context.Context, url string, body io.Reader, headers map[string]string) (Response, error)
}

// Response defines the interface for HTTP responses.
type Response interface {
	// StatusCode returns the HTTP status code of the response.
	StatusCode() int

	// Body returns the response body as an io.ReadCloser.
	// The caller is responsible for closing the body when done.
	Body() io.ReadCloser

	// Header returns the value of the specified header.
	// Returns an empty string if the header is not present.
	Header(key string) string
}
