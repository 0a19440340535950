package middleware

import (
	"net/http"
	"time"

	"jewel-lending/backend/global"

	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// requestLog wraps the ResponseWriter to capture what the access log needs.
type requestLog struct {
	http.ResponseWriter
	status int
	bytes  int
	route  string
}

func (l *requestLog) WriteHeader(code int) {
	l.status = code
	l.ResponseWriter.WriteHeader(code)
}

func (l *requestLog) Write(b []byte) (int, error) {
	n, err := l.ResponseWriter.Write(b)
	l.bytes += n
	return n, err
}

// WithRoute tags the access log entry with the route template, so /request/4 and
// /request/9 are reported as /request/{jewel_id}.
func WithRoute(pattern string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if l, ok := w.(*requestLog); ok {
			l.route = pattern
		}
		next.ServeHTTP(w, r)
	})
}

// Logging writes one access log line per request. A caller supplied X-Request-ID is
// echoed back, otherwise a fresh one is issued.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		l := &requestLog{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(l, r)

		ev := global.Logger.Info()
		switch {
		case l.status >= 500:
			ev = global.Logger.Error()
		case l.status >= 400:
			ev = global.Logger.Warn()
		}
		ev.Str("request_id", id).
			Str("ip", r.RemoteAddr).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("route", l.route).
			Int("status", l.status).
			Int("bytes", l.bytes).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
