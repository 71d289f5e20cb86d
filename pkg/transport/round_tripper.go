package transport

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/samandr77/microservices/challenge/pkg/logger"
)

const RequestIDHeader = "X-Request-Id"

// LoggingRoundTripper forwards the request id of the incoming call and logs
// every outgoing request. Query strings are never logged since they may carry
// phone numbers.
type LoggingRoundTripper struct {
	Transport http.RoundTripper
}

func NewLoggingRoundTripper(transport http.RoundTripper) *LoggingRoundTripper {
	if transport == nil {
		transport = http.DefaultTransport
	}

	return &LoggingRoundTripper{Transport: transport}
}

func (t *LoggingRoundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	ctx := r.Context()

	if reqID := logger.RequestIDFromCtx(ctx); reqID != "" && r.Header.Get(RequestIDHeader) == "" {
		r = r.Clone(ctx)
		r.Header.Set(RequestIDHeader, reqID)
	}

	target := fmt.Sprintf("%s %s%s", r.Method, r.URL.Host, r.URL.Path)
	start := time.Now()

	resp, err := t.Transport.RoundTrip(r)
	if err != nil {
		slog.WarnContext(ctx, "outgoing request failed", "request", target, "error", err.Error())
		return nil, fmt.Errorf("round trip: %w", err)
	}

	slog.DebugContext(ctx, "outgoing request",
		"request", target,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return resp, nil
}
