package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"
	sl "github.com/linemk/grouparena/internal/lib/logger"
	"github.com/linemk/grouparena/internal/theme"
	"github.com/linemk/grouparena/internal/ui"
)

const (
	msgLoadFailed = "Failed to load games."
	msgNotFound   = "game not found"
)

var validate = validator.New()

// Dispatcher обрабатывает действия интерфейса
type Dispatcher interface {
	Dispatch(state ui.State, action ui.Action) (*ui.Result, error)
	View(state ui.State) *ui.Result
}

// ThemeStore читает и сохраняет выбранную тему
type ThemeStore interface {
	Read(r *http.Request) theme.Theme
	Write(w http.ResponseWriter, t theme.Theme) error
}

// filterParam читает ?category=; пустое значение означает All
func filterParam(query url.Values) *string {
	if category := query.Get("category"); category != "" {
		return ui.CategoryFilter(category)
	}
	return nil
}

// ErrorResponse - тело ответа с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

func respondJSON(log *slog.Logger, w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("failed to encode response", sl.Err(err))
	}
}

func respondError(log *slog.Logger, w http.ResponseWriter, status int, message string) {
	respondJSON(log, w, status, ErrorResponse{Error: message})
}
