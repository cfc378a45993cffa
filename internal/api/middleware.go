// Theatrum - Streaming Front-End View-State Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/theatrum

package api

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/google/uuid"

	"github.com/tomtom215/theatrum/internal/logging"
	"github.com/tomtom215/theatrum/internal/metrics"
)

// Middleware bundles the cross-cutting HTTP middleware built from
// configuration.
type Middleware struct {
	corsOrigins       []string
	rateLimitRequests int
	rateLimitDisabled bool
}

// NewMiddleware builds the middleware factory. A rate limit of zero
// disables rate limiting.
func NewMiddleware(corsOrigins []string, rateLimitRequests int) *Middleware {
	return &Middleware{
		corsOrigins:       corsOrigins,
		rateLimitRequests: rateLimitRequests,
		rateLimitDisabled: rateLimitRequests <= 0,
	}
}

// CORS returns the CORS middleware. OPTIONS preflight must be handled
// globally, so this goes on the router root.
func (m *Middleware) CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   m.corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           86400,
	})
}

// RateLimit returns the per-IP rate limiter for API endpoints.
func (m *Middleware) RateLimit() func(http.Handler) http.Handler {
	if m.rateLimitDisabled {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		m.rateLimitRequests,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
	)
}

// RequestID assigns each request a UUID, echoes it in X-Request-ID,
// and threads it through chi's request-ID context so handlers and
// downstream middleware agree on the id.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		chiRequestID := chimiddleware.RequestID(next)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.NewString()
				r.Header.Set("X-Request-ID", requestID)
			}
			w.Header().Set("X-Request-ID", requestID)
			chiRequestID.ServeHTTP(w, r)
		})
	}
}

// SecurityHeaders adds the baseline security headers to API
// responses.
func SecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			next.ServeHTTP(w, r)
		})
	}
}

// statusResponseWriter captures the status code for metrics and
// request logging.
type statusResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusResponseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// Hijack exposes the underlying connection. WebSocket upgrades go
// through this wrapper, and gorilla's Upgrader requires the writer to
// implement http.Hijacker.
func (w *statusResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("underlying response writer does not implement http.Hijacker")
	}
	return hj.Hijack()
}

// Unwrap exposes the wrapped writer to http.ResponseController.
func (w *statusResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Observe records request duration metrics and emits one structured
// log line per request.
func Observe() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &statusResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(ww, r)

			duration := time.Since(start)
			metrics.ObserveAPIRequest(r.URL.Path, r.Method, strconv.Itoa(ww.statusCode), duration)
			logging.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.statusCode).
				Dur("duration", duration).
				Msg("Request completed")
		})
	}
}
