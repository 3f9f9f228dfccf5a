package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router with every route and middleware.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Get("/healthz", h.health)
	if h.metrics != nil {
		router.Method("GET", "/metrics", h.metrics)
	}

	router.Route("/api", func(r chi.Router) {
		if h.requestTimeout > 0 {
			r.Use(middleware.Timeout(h.requestTimeout))
		}
		r.Use(withGZip)

		r.Get("/version", h.getServerVersion)
		r.Get("/build", h.getBuildInfo)

		r.Get("/runs", h.listRuns)
		r.Post("/runs", h.triggerRun)
		r.Get("/runs/latest", h.latestRun)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
