package routes

import (
	"net/http"

	"notes/notes/config"
	"notes/notes/controllers"
	"notes/notes/middlewares"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// NewRouter builds the full HTTP surface: health and notes under
// cfg.APIPrefix, trailing slashes optional on every path.
func NewRouter(cfg config.Config, notesCtrl *controllers.NotesController, healthCtrl *controllers.HealthController) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewares.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	r.Use(cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{middlewares.TraceIDHeader},
	}).Handler)

	r.NotFound(writeNotFound)
	r.MethodNotAllowed(writeMethodNotAllowed)

	mount := func(api chi.Router) {
		api.Mount("/health", HealthRoutes(healthCtrl))
		api.Mount("/notes", NotesRoutes(notesCtrl))
	}
	if cfg.APIPrefix == "" || cfg.APIPrefix == "/" {
		mount(r)
	} else {
		r.Route(cfg.APIPrefix, mount)
	}
	return r
}
