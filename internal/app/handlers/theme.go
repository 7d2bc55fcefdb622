package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	sl "github.com/linemk/grouparena/internal/lib/logger"
	"github.com/linemk/grouparena/internal/theme"
)

// ThemeRequest - явный выбор темы; пустое тело означает переключение
type ThemeRequest struct {
	Theme string `json:"theme" validate:"omitempty,oneof=dark light"`
}

// ThemeResponse - текущая тема и подпись кнопки
type ThemeResponse struct {
	Theme theme.Theme `json:"theme"`
	Label string      `json:"label"`
}

// GetThemeHandler обрабатывает GET /api/theme
func GetThemeHandler(log *slog.Logger, store ThemeStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetThemeHandler"
		logger := log.With(slog.String("op", op))

		t := store.Read(r)
		respondJSON(logger, w, http.StatusOK, ThemeResponse{Theme: t, Label: theme.Label(t)})
	}
}

// ToggleThemeHandler обрабатывает POST /api/theme/toggle.
// Без тела переключает сохранённую тему, с телом {"theme": "..."} устанавливает указанную.
func ToggleThemeHandler(log *slog.Logger, store ThemeStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ToggleThemeHandler"
		logger := log.With(slog.String("op", op))

		var req ThemeRequest
		// пустое тело (в том числе chunked) - просто переключение
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			logger.Error("invalid request: decoding error", sl.Err(err))
			respondError(logger, w, http.StatusBadRequest, "invalid request")
			return
		}
		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request: validation error", sl.Err(err))
			respondError(logger, w, http.StatusBadRequest, "validation error")
			return
		}

		next := theme.Toggle(store.Read(r))
		if req.Theme != "" {
			next = theme.Theme(req.Theme)
		}

		if err := store.Write(w, next); err != nil {
			logger.Error("failed to save theme", sl.Err(err))
			respondError(logger, w, http.StatusInternalServerError, "internal server error")
			return
		}

		logger.Info("theme changed", slog.String("theme", string(next)))
		respondJSON(logger, w, http.StatusOK, ThemeResponse{Theme: next, Label: theme.Label(next)})
	}
}
