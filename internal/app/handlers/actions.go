package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	sl "github.com/linemk/grouparena/internal/lib/logger"
	"github.com/linemk/grouparena/internal/render"
	"github.com/linemk/grouparena/internal/ui"
)

// ActionRequest - текущее состояние страницы и действие пользователя
type ActionRequest struct {
	State  ui.State  `json:"state"`
	Action ui.Action `json:"action"`
}

// ActionResponse - новое состояние и фрагменты, которые клиент должен подставить.
// Пустой фрагмент означает, что соответствующую часть страницы менять не нужно.
// OverlayOpen == false означает, что окно нужно убрать.
type ActionResponse struct {
	State       ui.State      `json:"state"`
	ListHTML    string        `json:"listHtml,omitempty"`
	FiltersHTML string        `json:"filtersHtml,omitempty"`
	OverlayHTML string        `json:"overlayHtml,omitempty"`
	OverlayOpen bool          `json:"overlayOpen"`
	Clipboard   *ui.Clipboard `json:"clipboard,omitempty"`
	Failed      bool          `json:"failed"`
}

// ActionsHandler обрабатывает POST /api/actions - единая точка для всех действий интерфейса
func ActionsHandler(log *slog.Logger, ctrl Dispatcher, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ActionsHandler"
		logger := log.With(slog.String("op", op))

		var req ActionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", sl.Err(err))
			respondError(logger, w, http.StatusBadRequest, "invalid request")
			return
		}

		// Валидация структуры запроса с использованием validator
		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request: validation error", sl.Err(err))
			respondError(logger, w, http.StatusBadRequest, "validation error")
			return
		}

		res, err := ctrl.Dispatch(req.State, req.Action)
		if err != nil {
			switch {
			case errors.Is(err, ui.ErrGameNotFound):
				respondError(logger, w, http.StatusNotFound, msgNotFound)
			case errors.Is(err, ui.ErrUnknownAction):
				respondError(logger, w, http.StatusBadRequest, err.Error())
			default:
				logger.Error("failed to dispatch action", sl.Err(err))
				respondError(logger, w, http.StatusInternalServerError, "internal server error")
			}
			return
		}

		resp := ActionResponse{
			State:       res.State,
			OverlayOpen: res.Overlay != nil,
			Clipboard:   res.Clipboard,
			Failed:      res.Failed,
		}

		var buf bytes.Buffer
		if res.ListDirty {
			if err := renderer.List(&buf, res); err != nil {
				logger.Error("failed to render list", sl.Err(err))
				respondError(logger, w, http.StatusInternalServerError, "internal server error")
				return
			}
			resp.ListHTML = buf.String()
			buf.Reset()

			if err := renderer.Filters(&buf, res); err != nil {
				logger.Error("failed to render filters", sl.Err(err))
				respondError(logger, w, http.StatusInternalServerError, "internal server error")
				return
			}
			resp.FiltersHTML = buf.String()
			buf.Reset()
		}
		if res.Overlay != nil && opensOverlay(req.Action.Kind) {
			if err := renderer.Modal(&buf, res.Overlay); err != nil {
				logger.Error("failed to render modal", sl.Err(err))
				respondError(logger, w, http.StatusInternalServerError, "internal server error")
				return
			}
			resp.OverlayHTML = buf.String()
		}

		logger.Debug("action dispatched", slog.String("kind", string(req.Action.Kind)))
		respondJSON(logger, w, http.StatusOK, resp)
	}
}

// окно перерисовывается только когда открывается новое
func opensOverlay(kind ui.ActionKind) bool {
	return kind == ui.ActionDetails || kind == ui.ActionShuffle
}
