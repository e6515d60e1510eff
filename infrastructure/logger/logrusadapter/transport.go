package logrusadapter

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"groundsearch-api/core/interfaces"
)

// RequestIDHeader carries the id of an outbound request.
const RequestIDHeader = "X-Request-ID"

// LoggingRoundTripper logs every outbound request at debug level.
type LoggingRoundTripper struct {
	next   http.RoundTripper
	logger interfaces.Logger
}

// NewLoggingRoundTripper wraps next, or http.DefaultTransport when next is nil.
func NewLoggingRoundTripper(next http.RoundTripper, logger interfaces.Logger) *LoggingRoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &LoggingRoundTripper{next: next, logger: logger}
}

// RoundTrip implements http.RoundTripper.
func (t *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	id := req.Header.Get(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
		req = req.Clone(req.Context())
		req.Header.Set(RequestIDHeader, id)
	}

	start := time.Now()
	resp, err := t.next.RoundTrip(req)

	fields := map[string]interface{}{
		"request_id":  id,
		"method":      req.Method,
		"host":        req.URL.Host,
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if err != nil {
		fields["error"] = err.Error()
		t.logger.Debug("Outbound request failed", fields)
		return nil, err
	}

	fields["status"] = resp.StatusCode
	t.logger.Debug("Outbound request", fields)
	return resp, nil
}
