package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"flightdesk-service/pkg/logger"
)

// Middleware contains custom middleware functions
type Middleware struct {
	logger logger.Logger
}

// NewMiddleware creates a new middleware
func NewMiddleware(logger logger.Logger) *Middleware {
	return &Middleware{
		logger: logger.With("component", "api-middleware"),
	}
}

// Logger is a middleware that logs HTTP requests
func (m *Middleware) Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			m.logger.Debug("HTTP request",
				"method", r.Method,
				"path", r.URL.Path,
				"requestID", middleware.GetReqID(r.Context()),
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
