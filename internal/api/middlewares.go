package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gofrs/uuid/v5"

	"github.com/samandr77/microservices/challenge/internal/entity"
	"github.com/samandr77/microservices/challenge/pkg/logger"
	"github.com/samandr77/microservices/challenge/pkg/metrics"
)

type Middleware struct {
	trustedProxies []netip.Prefix
}

// NewMiddleware builds the middleware set. Forwarding headers are honored only
// on connections coming from trustedProxies.
func NewMiddleware(trustedProxies ...netip.Prefix) *Middleware {
	return &Middleware{trustedProxies: trustedProxies}
}

func (m *Middleware) Log(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(middleware.RequestIDHeader)
		if requestID == "" {
			requestID = uuid.Must(uuid.NewV4()).String()
		}

		w.Header().Set(middleware.RequestIDHeader, requestID)

		ctx := logger.SetRequestID(r.Context(), requestID)
		ctx = logger.SetMethod(ctx, r.Method)
		ctx = logger.SetURL(ctx, r.URL.Path)
		ctx = logger.SetLogType(ctx, "webrequest")
		ctx = logger.SetIP(ctx, entity.IPFromCtx(ctx))

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r.WithContext(ctx))

		slog.InfoContext(ctx, "request completed",
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// Metrics records request counts and latency labelled by the matched route.
func (m *Middleware) Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		path := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			path = rctx.RoutePattern()
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDurationSeconds.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func (m *Middleware) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func(ctx context.Context) {
			rec := recover()
			if rec == nil {
				return
			}

			if rec == http.ErrAbortHandler { //nolint:errorlint,err113
				panic(rec)
			}

			slog.ErrorContext(ctx, "panic", "error", rec, "stack", string(debug.Stack()))
			sendErr(ctx, w, http.StatusInternalServerError, errors.New(fmt.Sprint(rec)), kindInternal, "Internal error")
		}(r.Context())

		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) WithIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := removePort(r.RemoteAddr)

		if m.isTrustedProxy(ip) {
			ip = m.forwardedIP(r, ip)
		}

		if !isValidIP(ip) {
			slog.Warn("invalid IP detected, using fallback", "ip", ip, "remote_addr", r.RemoteAddr)
			ip = "unknown"
		}

		ctx := context.WithValue(r.Context(), entity.CtxKeyIP{}, ip)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// forwardedIP resolves the client behind a trusted proxy: X-Real-IP first, then
// the rightmost X-Forwarded-For entry that is not itself a trusted proxy.
func (m *Middleware) forwardedIP(r *http.Request, peer string) string {
	if xRealIP := removePort(strings.TrimSpace(r.Header.Get("X-Real-IP"))); isValidIP(xRealIP) {
		return xRealIP
	}

	parts := splitAndTrim(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(parts) - 1; i >= 0; i-- {
		part := removePort(parts[i])
		if !isValidIP(part) {
			break
		}

		if !m.isTrustedProxy(part) {
			return part
		}

		peer = part
	}

	return peer
}

func (m *Middleware) isTrustedProxy(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}

	addr = addr.Unmap()

	for _, prefix := range m.trustedProxies {
		if prefix.Contains(addr) {
			return true
		}
	}

	return false
}

// ipKey keys rate limiting on the address resolved by WithIP.
func ipKey(r *http.Request) (string, error) {
	return entity.IPFromCtx(r.Context()), nil
}

func limitExceeded(w http.ResponseWriter, r *http.Request) {
	sendErr(r.Context(), w, http.StatusTooManyRequests, errors.New("request limit exceeded"),
		kindTooManyRequests, "Too many requests. Try again later")
}

func removePort(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}

	return host
}

func splitAndTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	result := []string{}

	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

func isValidIP(ip string) bool {
	if ip == "" {
		return false
	}

	return net.ParseIP(ip) != nil
}
