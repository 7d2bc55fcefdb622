package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/linemk/grouparena/internal/catalog"
	"github.com/linemk/grouparena/internal/domain/models"
	sl "github.com/linemk/grouparena/internal/lib/logger"
	"github.com/linemk/grouparena/internal/ui"
)

// GamesResponse - ответ со списком игр
type GamesResponse struct {
	Games      []models.Game `json:"games"`
	TotalCount int           `json:"total_count"`
}

// CategoriesResponse - ключи фильтров в порядке объявления
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// ListGamesHandler обрабатывает GET /api/games?category=&q=
func ListGamesHandler(log *slog.Logger, ctrl Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListGamesHandler"
		logger := log.With(slog.String("op", op))

		query := r.URL.Query()
		res := ctrl.View(ui.State{
			ActiveFilter: filterParam(query),
			Query:        catalog.NormalizeQuery(query.Get("q")),
		})
		if res.Failed {
			respondError(logger, w, http.StatusServiceUnavailable, msgLoadFailed)
			return
		}

		games := res.Games
		if games == nil {
			games = []models.Game{}
		}
		respondJSON(logger, w, http.StatusOK, GamesResponse{Games: games, TotalCount: len(games)})
	}
}

// CategoriesHandler обрабатывает GET /api/categories
func CategoriesHandler(log *slog.Logger, ctrl Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CategoriesHandler"
		logger := log.With(slog.String("op", op))

		res := ctrl.View(ui.State{})
		if res.Failed {
			respondError(logger, w, http.StatusServiceUnavailable, msgLoadFailed)
			return
		}
		categories := res.Categories
		if categories == nil {
			categories = []string{}
		}
		respondJSON(logger, w, http.StatusOK, CategoriesResponse{Categories: categories})
	}
}

// GetGameHandler обрабатывает GET /api/games/{id} - полная запись без обрезки
func GetGameHandler(log *slog.Logger, ctrl Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetGameHandler"
		logger := log.With(slog.String("op", op))

		res, ok := dispatchForGame(logger, w, r, ctrl, ui.ActionDetails)
		if !ok {
			return
		}
		respondJSON(logger, w, http.StatusOK, res.Overlay)
	}
}

// CopyGameHandler обрабатывает GET /api/games/{id}/copy - текст для буфера обмена
func CopyGameHandler(log *slog.Logger, ctrl Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CopyGameHandler"
		logger := log.With(slog.String("op", op))

		res, ok := dispatchForGame(logger, w, r, ctrl, ui.ActionCopy)
		if !ok {
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if _, err := w.Write([]byte(res.Clipboard.Text)); err != nil {
			logger.Error("failed to write response", sl.Err(err))
		}
	}
}

// ShuffleHandler обрабатывает GET /api/shuffle - случайная игра из всего каталога
func ShuffleHandler(log *slog.Logger, ctrl Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ShuffleHandler"
		logger := log.With(slog.String("op", op))

		res, err := ctrl.Dispatch(ui.State{}, ui.Action{Kind: ui.ActionShuffle})
		if err != nil {
			logger.Error("failed to shuffle", sl.Err(err))
			respondError(logger, w, http.StatusInternalServerError, "internal server error")
			return
		}
		if res.Failed {
			respondError(logger, w, http.StatusServiceUnavailable, msgLoadFailed)
			return
		}
		if res.Overlay == nil {
			respondError(logger, w, http.StatusNotFound, "catalog is empty")
			return
		}
		respondJSON(logger, w, http.StatusOK, res.Overlay)
	}
}

// dispatchForGame разбирает {id} и выполняет действие над записью.
// При ошибке ответ уже записан и ok == false.
func dispatchForGame(logger *slog.Logger, w http.ResponseWriter, r *http.Request, ctrl Dispatcher, kind ui.ActionKind) (*ui.Result, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 0 {
		logger.Error("invalid game id", slog.String("id", chi.URLParam(r, "id")))
		respondError(logger, w, http.StatusBadRequest, "invalid game id")
		return nil, false
	}

	res, err := ctrl.Dispatch(ui.State{}, ui.Action{Kind: kind, GameID: id})
	if err != nil {
		if errors.Is(err, ui.ErrGameNotFound) {
			respondError(logger, w, http.StatusNotFound, msgNotFound)
			return nil, false
		}
		logger.Error("failed to dispatch action", sl.Err(err))
		respondError(logger, w, http.StatusInternalServerError, "internal server error")
		return nil, false
	}
	if res.Failed {
		respondError(logger, w, http.StatusServiceUnavailable, msgLoadFailed)
		return nil, false
	}
	if res.Overlay == nil && res.Clipboard == nil {
		respondError(logger, w, http.StatusNotFound, msgNotFound)
		return nil, false
	}
	return res, true
}
