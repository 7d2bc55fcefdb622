package handlers

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/linemk/grouparena/internal/catalog"
	sl "github.com/linemk/grouparena/internal/lib/logger"
	"github.com/linemk/grouparena/internal/render"
	"github.com/linemk/grouparena/internal/theme/themecookie"
	"github.com/linemk/grouparena/internal/ui"
)

// HomeHandler обрабатывает GET / - главная страница с приветствием по времени суток
func HomeHandler(log *slog.Logger, renderer *render.Renderer, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.HomeHandler"
		logger := log.With(slog.String("op", op))

		data := render.PageData{
			Page:     render.PageHome,
			Title:    "Home",
			Theme:    themecookie.FromContext(r.Context()),
			Greeting: render.Greeting(now().Hour()),
		}
		writeHTML(logger, w, func(buf *bytes.Buffer) error {
			return renderer.Page(buf, data)
		})
	}
}

// GamesPageHandler обрабатывает GET /games?category=&q=&game=
// Параметры задают активный фильтр, строку поиска и открытое окно.
func GamesPageHandler(log *slog.Logger, ctrl Dispatcher, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GamesPageHandler"
		logger := log.With(slog.String("op", op))

		query := r.URL.Query()
		state := ui.State{
			ActiveFilter: filterParam(query),
			Query:        catalog.NormalizeQuery(query.Get("q")),
		}
		if raw := query.Get("game"); raw != "" {
			if id, err := strconv.Atoi(raw); err == nil {
				state.Overlay = &id
			}
		}

		data := render.PageData{
			Page:  render.PageGames,
			Title: "Games",
			Theme: themecookie.FromContext(r.Context()),
			View:  ctrl.View(state),
		}
		writeHTML(logger, w, func(buf *bytes.Buffer) error {
			return renderer.Page(buf, data)
		})
	}
}

// NavbarHandler обрабатывает GET /navbar - общий фрагмент навигации
func NavbarHandler(log *slog.Logger, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.NavbarHandler"
		logger := log.With(slog.String("op", op))

		t := themecookie.FromContext(r.Context())
		writeHTML(logger, w, func(buf *bytes.Buffer) error {
			return renderer.Navbar(buf, t)
		})
	}
}

// writeHTML отрисовывает в буфер, чтобы при ошибке шаблона не отдать половину страницы
func writeHTML(log *slog.Logger, w http.ResponseWriter, fn func(buf *bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		log.Error("failed to render template", sl.Err(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		log.Error("failed to write response", sl.Err(err))
	}
}
