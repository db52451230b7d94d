package handler

import (
	"io"
	"net/http"

	"github.com/andybalholm/brotli"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"craftynet/api/internal/service"
)

type Handler struct {
	router    *chi.Mux
	svc       *service.ResourceService
	resources []service.Resource
	log       *logrus.Logger
	docs      map[string]any
}

func NewHandler(svc *service.ResourceService, resources []service.Resource, log *logrus.Logger) *Handler {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: log, NoColor: true}))
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	compressor := middleware.NewCompressor(5, "application/json", "text/plain")
	compressor.SetEncoder("br", func(w io.Writer, level int) io.Writer {
		return brotli.NewWriterLevel(w, level)
	})
	router.Use(compressor.Handler)

	h := &Handler{
		router:    router,
		svc:       svc,
		resources: resources,
		log:       log,
		docs:      openAPIDocument(resources),
	}

	h.registerRoutes()
	return h
}

func (h *Handler) registerRoutes() {
	h.router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api-docs", http.StatusFound)
	})
	h.router.Get("/health", h.HealthCheck)
	h.router.Get("/api-docs", h.APIDocs)

	h.router.Route("/api", func(r chi.Router) {
		for _, res := range h.resources {
			r.Route("/"+res.Path, func(r chi.Router) {
				r.Get("/", h.List(res))
				if res.Lookup {
					r.Get("/{id}", h.Get(res))
				}
				if res.CanCreate() {
					r.Post("/", h.Create(res))
				}
			})
		}
	})
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *Handler) APIDocs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.docs)
}
