package httpapi

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/namankhandelwal900-boop/trackify/internal/auth"
)

type ctxKey int

const requestIDKey ctxKey = iota

// RequestID tags each request with an identifier, honoring an inbound
// X-Request-Id so logs can be correlated across a proxy.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Request-Id")
			if id == "" {
				id = newRequestID()
			}
			w.Header().Set("X-Request-Id", id)
			next.ServeHTTP(w, r.WithContext(
				context.WithValue(r.Context(), requestIDKey, id)))
		})
	}
}

// GetRequestID reports the identifier RequestID stored on the context.
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok
}

// RequestLogger emits one line per request: method, path, outcome, and
// whether the caller presented a session cookie. The cookie is not
// verified here; "session" only says the browser sent one.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lw := &loggingWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(lw, r)

			_, cookieErr := r.Cookie(auth.SessionCookieName)
			fields := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", lw.status,
				"bytes", lw.written,
				"duration_ms", time.Since(start).Milliseconds(),
				"session", cookieErr == nil,
			}
			if rid, ok := GetRequestID(r.Context()); ok {
				fields = append(fields, "request_id", rid)
			}
			logger.Info("http request", fields...)
		})
	}
}

// Recoverer turns a handler panic into a 500 instead of tearing down
// the connection. Stack traces are logged only outside prod.
func Recoverer(logger *slog.Logger, isProd bool) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if isProd {
					logger.Error("panic", "panic", rec)
				} else {
					logger.Error("panic", "panic", rec, "stack", string(debug.Stack()))
				}
				WriteError(w, http.StatusInternalServerError, "internal_error", "internal server error")
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// loggingWriter captures the status and byte count a handler produced
// so RequestLogger can report them after the fact.
type loggingWriter struct {
	http.ResponseWriter
	status  int
	written int
}

func (lw *loggingWriter) WriteHeader(statusCode int) {
	lw.status = statusCode
	lw.ResponseWriter.WriteHeader(statusCode)
}

func (lw *loggingWriter) Write(p []byte) (int, error) {
	n, err := lw.ResponseWriter.Write(p)
	lw.written += n
	return n, err
}

func newRequestID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		// rand failing is effectively fatal elsewhere; a timestamp
		// keeps log lines distinguishable if it somehow does.
		return time.Now().UTC().Format("20060102T150405.000000000")
	}
	return hex.EncodeToString(b[:])
}
