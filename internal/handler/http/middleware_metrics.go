package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// withMetrics records request counters and latency histograms per route.
// The chi route pattern (e.g. "/api/notes/{id}") is used as the label so
// cardinality stays bounded regardless of path parameter values.
func (h *Handler) withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		mw := &responseWriter{
			ResponseWriter: w,
		}

		next.ServeHTTP(mw, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}

		h.metrics.ObserveRequest(r.Method, route, mw.status, time.Since(start))
	})
}
