package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/xinran093/synthesisAI-V2/application/ports"
	"github.com/xinran093/synthesisAI-V2/application/services"
	"github.com/xinran093/synthesisAI-V2/interfaces/http/rest/handlers"
	"github.com/xinran093/synthesisAI-V2/interfaces/http/rest/middleware"
	"github.com/xinran093/synthesisAI-V2/pkg/observability"
)

// Router creates and configures the HTTP router
type Router struct {
	datasets       *services.DatasetService
	eventLog       ports.EventLog
	snapshots      ports.GraphSnapshotStore
	completer      ports.ChatCompleter
	metrics        *observability.Collector
	logger         *zap.Logger
	allowedOrigins []string
	staticDir      string
}

// NewRouter creates a new router instance
func NewRouter(
	datasets *services.DatasetService,
	eventLog ports.EventLog,
	snapshots ports.GraphSnapshotStore,
	completer ports.ChatCompleter,
	metrics *observability.Collector,
	logger *zap.Logger,
	allowedOrigins []string,
	staticDir string,
) *Router {
	return &Router{
		datasets:       datasets,
		eventLog:       eventLog,
		snapshots:      snapshots,
		completer:      completer,
		metrics:        metrics,
		logger:         logger,
		allowedOrigins: allowedOrigins,
		staticDir:      staticDir,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	if rt.metrics != nil {
		router.Use(middleware.Metrics(rt.metrics))
	}

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: rt.allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)
	if rt.metrics != nil {
		router.Handle("/metrics", rt.metrics.Handler())
	}

	router.Route("/api", func(r chi.Router) {
		datasetHandler := handlers.NewDatasetHandler(rt.datasets, rt.logger)
		r.Post("/datasets", datasetHandler.UploadDataset)
		r.Get("/graph-data", datasetHandler.GetGraphData)

		eventsHandler := handlers.NewEventsHandler(rt.eventLog, rt.metrics, rt.logger)
		r.Post("/events", eventsHandler.LogEvents)
		r.Get("/events", eventsHandler.GetEvents)

		networkHandler := handlers.NewNetworkHandler(rt.snapshots, rt.logger)
		r.Post("/network", networkHandler.SaveNetwork)
		r.Get("/network", networkHandler.GetNetwork)

		aiHandler := handlers.NewAIHandler(rt.completer, rt.logger)
		r.Post("/ask-ai", aiHandler.AskAI)
	})

	// Frontend assets (menus, theme, rendering glue) are plain static files.
	if rt.staticDir != "" {
		router.Handle("/*", http.FileServer(http.Dir(rt.staticDir)))
	}

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
