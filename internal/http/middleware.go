package http

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/yevhenkap/tixjar/internal/observability"
)

func LoggerMiddleware(logger observability.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := middleware.GetReqID(r.Context())
			logger.WithField("request_id", reqID).
				WithField("method", r.Method).
				WithField("path", r.URL.Path).
				Debug("http request")
			next.ServeHTTP(w, r)
		})
	}
}
