package rt

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

// loggingTransport stamps outgoing requests with a request ID and logs
// them at debug level so verbose probe runs can be correlated with RT's
// own access logs.
type loggingTransport struct {
	base   http.RoundTripper
	logger *slog.Logger
}

func newLoggingTransport(logger *slog.Logger) *loggingTransport {
	return &loggingTransport{
		base:   http.DefaultTransport,
		logger: logger,
	}
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	requestID := req.Header.Get(requestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
		req.Header.Set(requestIDHeader, requestID)
	}

	started := time.Now()
	resp, err := t.base.RoundTrip(req)
	elapsed := time.Since(started)

	if err != nil {
		t.logger.Debug("rt request failed",
			"method", req.Method,
			"path", req.URL.Path,
			"duration_ms", elapsed.Milliseconds(),
			"request_id", requestID,
			"error", err,
		)
		return nil, err
	}

	t.logger.Debug("rt request",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration_ms", elapsed.Milliseconds(),
		"request_id", requestID,
	)
	return resp, nil
}
