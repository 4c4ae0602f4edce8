package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

var sugar = zap.NewNop().Sugar()

// SetLogger задаёт логгер для мидлварей пакета.
func SetLogger(l *zap.SugaredLogger) {
	if l != nil {
		sugar = l
	}
}

type responseData struct {
	status int
	size   int
}

type loggingResponseWriter struct {
	http.ResponseWriter
	data *responseData
}

func (r *loggingResponseWriter) Write(b []byte) (int, error) {
	size, err := r.ResponseWriter.Write(b)
	r.data.size += size
	return size, err
}

func (r *loggingResponseWriter) WriteHeader(statusCode int) {
	r.ResponseWriter.WriteHeader(statusCode)
	r.data.status = statusCode
}

// WithLogging пишет строку "request" на каждый запрос. Уровень зависит от
// статуса: 5xx — error, 4xx — warn, остальное — info.
func WithLogging(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		data := &responseData{status: http.StatusOK}
		lw := &loggingResponseWriter{ResponseWriter: w, data: data}

		h.ServeHTTP(lw, r)

		logRequest(data.status)("request",
			"uri", r.RequestURI,
			"method", r.Method,
			"status", data.status,
			"duration", time.Since(start),
			"size", data.size,
			"remote", r.RemoteAddr,
		)
	})
}

func logRequest(status int) func(msg string, kv ...any) {
	switch {
	case status >= http.StatusInternalServerError:
		return sugar.Errorw
	case status >= http.StatusBadRequest:
		return sugar.Warnw
	default:
		return sugar.Infow
	}
}
