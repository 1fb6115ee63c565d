package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"flightdesk-service/internal/usecase"
	"flightdesk-service/pkg/logger"
)

// Router is the API router
type Router struct {
	handler    *Handler
	middleware *Middleware
	gatherer   prometheus.Gatherer
}

// NewRouter creates a new API router. Metrics are served from gatherer.
func NewRouter(desk *usecase.FlightDesk, gatherer prometheus.Gatherer, logger logger.Logger) *Router {
	return &Router{
		handler:    NewHandler(desk, logger),
		middleware: NewMiddleware(logger),
		gatherer:   gatherer,
	}
}

// Routes returns the API routes
func (r *Router) Routes() http.Handler {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(r.middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Get("/health", r.handler.GetHealth)
	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{}))

	router.Route("/registries/{name}", func(router chi.Router) {
		router.Get("/flights", r.handler.GetFlights)
		router.Post("/flights", r.handler.InsertFlight)
		router.Get("/flights/{id}/{arrival}", r.handler.GetFlight)
		router.Patch("/flights/{id}/{arrival}", r.handler.UpdateFlight)
		router.Delete("/flights/{id}/{arrival}", r.handler.DeleteFlight)
		router.Post("/deduplicate", r.handler.Deduplicate)
		router.Get("/longest-delay", r.handler.GetLongestDelay)
		router.Get("/summary", r.handler.GetSummary)
	})

	router.Get("/compare/{op}", r.handler.Compare)

	return router
}
