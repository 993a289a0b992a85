package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/repository"
)

func SendJSON(w http.ResponseWriter, v any) (int, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	w.Header().Set("Content-Type", "application/json")
	return w.Write(payload)
}

func sendJSONOrLog(w http.ResponseWriter, logger *slog.Logger, v any) {
	_, err := SendJSON(w, v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error(
			"unable to send response",
			slog.Any("response", v),
			slog.Any("error", err),
		)
	}
}

func wrapError(err error) map[string]string {
	return map[string]string{
		"error": err.Error(),
	}
}

// statusCode maps engine and store errors onto HTTP statuses.
func statusCode(err error) int {
	switch {
	case errors.Is(err, mines.ErrInvalidConfiguration),
		errors.Is(err, mines.ErrOutOfBounds):
		return http.StatusBadRequest
	case errors.Is(err, mines.ErrGameAlreadyEnded):
		return http.StatusConflict
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func sendError(w http.ResponseWriter, logger *slog.Logger, err error) {
	code := statusCode(err)
	if code == http.StatusInternalServerError {
		logger.Error("request failed", slog.Any("error", err))
	}
	sendErrorStatus(w, logger, code, err)
}

// sendErrorStatus writes err as a JSON body with the given status. Headers
// must be set before WriteHeader or they are lost.
func sendErrorStatus(w http.ResponseWriter, logger *slog.Logger, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, e := SendJSON(w, wrapError(err)); e != nil {
		logger.Error(
			"failed to send error message",
			slog.Any("sent error", err),
			slog.Any("error", e),
		)
	}
}
