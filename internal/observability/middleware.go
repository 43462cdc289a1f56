package observability

import (
	"context"
	"net"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

const RequestIDHeader = "X-Request-ID"

type ctxKey struct{}

type routeKey struct{}

// routeLabel is filled in by whichever layer resolves the request: the
// router via TagRoute, or an outer handler via SetRoute.
type routeLabel struct {
	path string
}

// statusRecorder captures what the handler wrote.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

func (r *statusRecorder) Status() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

// RequestID reuses an inbound X-Request-ID or mints a UUID, echoes it on
// the response and stores it in the request context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// SetRoute labels the request for the access log and metrics. It is a
// no-op outside RequestLogger.
func SetRoute(ctx context.Context, path string) {
	if label, ok := ctx.Value(routeKey{}).(*routeLabel); ok && label.path == "" {
		label.path = path
	}
}

// TagRoute copies the matched mux template into the request label so a
// RequestLogger outside the router can see it.
func TagRoute(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if path := routePath(r); path != unmatched {
			SetRoute(r.Context(), path)
		}
		next.ServeHTTP(w, r)
	})
}

// RequestLogger logs one line per request and records the HTTP metrics.
// 5xx logs at error, 4xx at warn. It can sit inside a mux router or in
// front of one paired with TagRoute.
func RequestLogger(logger zerolog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w}
			label := &routeLabel{}
			r = r.WithContext(context.WithValue(r.Context(), routeKey{}, label))
			next.ServeHTTP(rec, r)

			status := rec.Status()
			path := label.path
			if path == "" {
				path = routePath(r)
			}
			elapsed := time.Since(start)

			event := logger.Info()
			if status >= 500 {
				event = logger.Error()
			} else if status >= 400 {
				event = logger.Warn()
			}
			event.
				Str("request_id", RequestIDFrom(r.Context())).
				Str("method", r.Method).
				Str("path", path).
				Int("status", status).
				Dur("duration", elapsed).
				Str("client_ip", clientIP(r)).
				Int("bytes", rec.bytes).
				Msg("http_request")

			RecordHTTPRequest(r.Method, path, status, elapsed)
		})
	}
}

// Recover turns a handler panic into a logged 500.
func Recover(logger zerolog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if v := recover(); v != nil {
					if v == http.ErrAbortHandler {
						panic(v)
					}
					logger.Error().
						Str("request_id", RequestIDFrom(r.Context())).
						Interface("panic", v).
						Bytes("stack", debug.Stack()).
						Msg("handler panic")
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_, _ = w.Write([]byte(`{"error":"internal_error"}` + "\n"))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

const unmatched = "unmatched"

// routePath prefers the mux template so ids don't explode label
// cardinality.
func routePath(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return unmatched
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
