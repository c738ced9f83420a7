package logging

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
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

// Middleware assigns a request id, makes the sampling decision for the
// request and logs one event when it completes.
func Middleware(base *zap.Logger, cfg *ParsedEventLoggingConfig) func(http.Handler) http.Handler {
	if cfg == nil {
		cfg = ParseEventLoggingConfig(nil)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Header.Get(RequestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, reqID)

			ctx := SetRequestID(r.Context(), reqID)
			ctx = SetSampled(ctx, HashRequestIDToFloat(reqID) < cfg.SuccessSampleRate)

			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()
			next.ServeHTTP(rec, r.WithContext(ctx))

			path := r.URL.Path
			if cfg.ExcludePaths[path] {
				return
			}
			status := rec.status
			if status == 0 {
				status = http.StatusOK
			}
			if cfg.ErrorOnlyPaths[path] && status < http.StatusBadRequest {
				return
			}

			fields := RedactFields(cfg.RedactRegex,
				zap.String("method", r.Method),
				zap.String("path", path),
				zap.Int("status", status),
				zap.Int("bytes", rec.bytes),
				zap.Duration("duration", time.Since(start)),
				zap.String("remote_addr", r.RemoteAddr),
			)
			Log(ctx, base, EventLevelFromStatusCode(status), "request completed", fields...)
		})
	}
}
