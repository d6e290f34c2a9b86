package chi

import (
	"net/http"
	"time"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	logpkg "github.com/kailas-cloud/metasearch/internal/logger"
)

const mcpSessionHeader = "Mcp-Session-Id"

// jsonRecoverer turns handler panics into a JSON 500. It runs outside the
// wide-event middleware, so the request id is attached explicitly.
func jsonRecoverer(fallback *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				// Aborted streams must keep unwinding so net/http drops the connection.
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}
				fallback.Error("panic recovered",
					zap.Any("panic", rvr),
					zap.String("request_id", chiMiddleware.GetReqID(r.Context())),
					zap.String("path", r.URL.Path),
					zap.Stack("stacktrace"),
				)
				writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware stores a request-scoped logger in the context, echoes
// X-Request-ID and emits one http_request line per request.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			scoped := logger.With(zap.String("request_id", requestID))
			if sid := r.Header.Get(mcpSessionHeader); sid != "" {
				scoped = scoped.With(zap.String("mcp_session", sid))
			}

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(logpkg.ContextWithLogger(r.Context(), scoped)))

			if ce := scoped.Check(levelForStatus(ww.Status()), "http_request"); ce != nil {
				ce.Write(requestFields(r, ww, time.Since(start))...)
			}
		})
	}
}

// levelForStatus logs server errors at error, client errors at warn.
func levelForStatus(status int) zapcore.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zapcore.ErrorLevel
	case status >= http.StatusBadRequest:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}

func requestFields(r *http.Request, ww chiMiddleware.WrapResponseWriter, latency time.Duration) []zap.Field {
	status := ww.Status()
	if status == 0 {
		// Nothing written; net/http answers 200.
		status = http.StatusOK
	}
	return []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.Duration("latency", latency),
		zap.String("ip", r.RemoteAddr),
		zap.String("user_agent", r.UserAgent()),
		zap.Int64("request_bytes", r.ContentLength),
		zap.Int("response_bytes", ww.BytesWritten()),
	}
}
