package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ayush/goalsetter/internal/auth"
	"github.com/ayush/goalsetter/internal/goals"
	"github.com/ayush/goalsetter/internal/middleware"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Gateway     *auth.Gateway
	Goals       *goals.Service
	Exporter    *goals.Exporter
	CORSOrigins []string
}

// NewRouter maps the public API onto its handlers.
func NewRouter(d Deps) http.Handler {
	authHandler := auth.NewHandler(d.Gateway)
	goalHandler := goals.NewHandler(d.Goals, d.Exporter)
	requireAuth := middleware.RequireAuth(d.Gateway)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogging)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Post("/", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.With(requireAuth).Post("/logout", authHandler.Logout)
		r.With(requireAuth).Get("/me", authHandler.Me)
	})

	r.Route("/api/goals", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", goalHandler.List)
		r.Post("/", goalHandler.Create)
		r.Post("/export", goalHandler.Export)
		r.Get("/export", goalHandler.DownloadExport)
		r.Get("/{id}", goalHandler.Get)
		r.Put("/{id}", goalHandler.Update)
		r.Delete("/{id}", goalHandler.Delete)
	})

	return r
}
