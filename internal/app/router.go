package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/linemk/grouparena/internal/app/handlers"
	"github.com/linemk/grouparena/internal/lib/logger/handlers/urllog"
	"github.com/linemk/grouparena/internal/theme/themecookie"
	staticfiles "github.com/linemk/grouparena/static"
)

// NewRouter собирает маршруты приложения
func NewRouter(a *App) http.Handler {
	router := chi.NewRouter()
	// настройка middleware
	router.Use(middleware.RequestID)
	router.Use(urllog.CustomLoggerMiddleware(a.Logger))
	router.Use(middleware.Recoverer)
	router.Use(themecookie.NewMiddleware(a.Themes))

	// страницы
	router.Get("/", handlers.HomeHandler(a.Logger, a.Renderer, a.Now))
	router.Get("/games", handlers.GamesPageHandler(a.Logger, a.Controller, a.Renderer))
	router.Get("/navbar", handlers.NavbarHandler(a.Logger, a.Renderer))

	// JSON API
	router.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   a.Config.CORS.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))

		r.Post("/actions", handlers.ActionsHandler(a.Logger, a.Controller, a.Renderer))
		r.Get("/categories", handlers.CategoriesHandler(a.Logger, a.Controller))
		r.Get("/games", handlers.ListGamesHandler(a.Logger, a.Controller))
		r.Get("/games/{id}", handlers.GetGameHandler(a.Logger, a.Controller))
		r.Get("/games/{id}/copy", handlers.CopyGameHandler(a.Logger, a.Controller))
		r.Get("/shuffle", handlers.ShuffleHandler(a.Logger, a.Controller))
		r.Get("/theme", handlers.GetThemeHandler(a.Logger, a.Themes))
		r.Post("/theme/toggle", handlers.ToggleThemeHandler(a.Logger, a.Themes))
	})

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticfiles.EmbeddedFS()))))

	return router
}
