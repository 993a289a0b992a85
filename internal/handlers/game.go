package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/middleware"
	"github.com/vancomm/minesweeper-engine/internal/repository"
)

type GameHandler struct {
	logger *slog.Logger
	repo   *repository.Queries
	jwt    *config.JWT
	ws     *config.WebSocket
	limits *config.Game
}

func NewGameHandler(
	logger *slog.Logger,
	repo *repository.Queries,
	jwt *config.JWT,
	ws *config.WebSocket,
	limits *config.Game,
) *GameHandler {
	handler := &GameHandler{
		logger: logger,
		repo:   repo,
		jwt:    jwt,
		ws:     ws,
		limits: limits,
	}
	return handler
}

var errUnauthorized = errors.New("session token missing or issued for another session")

// session resolves the {id} path value. When owned is set the request must
// also carry a token for that session.
func (g GameHandler) session(
	w http.ResponseWriter, r *http.Request, owned bool,
) (*repository.GameSession, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		sendErrorStatus(w, g.logger, http.StatusBadRequest, fmt.Errorf("invalid game session id"))
		return nil, false
	}
	middleware.AnnotateSession(r.Context(), id.String())

	if owned {
		claims, ok := middleware.SessionClaims(r.Context())
		if !ok || claims.SessionID != id.String() {
			sendErrorStatus(w, g.logger, http.StatusUnauthorized, errUnauthorized)
			return nil, false
		}
	}

	session, err := g.repo.GetSession(r.Context(), id)
	if err != nil {
		sendError(w, g.logger, err)
		return nil, false
	}
	return session, true
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseCreateNewGameDTO(r.URL.Query())
	if err != nil {
		sendErrorStatus(w, g.logger, http.StatusBadRequest, err)
		return
	}

	if !g.limits.Fits(dto.Width, dto.Height) {
		sendErrorStatus(w, g.logger, http.StatusBadRequest, fmt.Errorf(
			"board must be at most %dx%d", g.limits.MaxWidth, g.limits.MaxHeight,
		))
		return
	}

	session, err := g.repo.CreateGameSession(
		r.Context(), repository.CreateGameSessionParams(dto),
	)
	if err != nil {
		sendError(w, g.logger, err)
		return
	}

	token, err := g.jwt.SignSession(session.GameSessionID.String())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to sign session token", "error", err)
		return
	}

	middleware.AnnotateSession(r.Context(), session.GameSessionID.String())
	g.logger.Debug(
		"created game session",
		slog.String("id", session.GameSessionID.String()),
		slog.Any("params", dto),
	)

	res := NewGameSessionDTO(session)
	res.Token = token
	sendJSONOrLog(w, g.logger, res)
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	session, ok := g.session(w, r, false)
	if !ok {
		return
	}
	sendJSONOrLog(w, g.logger, NewGameSessionDTO(session))
}

func (g GameHandler) MakeAMove(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	move, err := ParseGameMove(query.Get("move"))
	if err != nil {
		sendErrorStatus(w, g.logger, http.StatusBadRequest, err)
		return
	}

	pos, err := ParsePosition(query)
	if err != nil {
		sendErrorStatus(w, g.logger, http.StatusBadRequest, err)
		return
	}

	session, ok := g.session(w, r, true)
	if !ok {
		return
	}

	if err := session.Play(pos.X, pos.Y, move == Flag); err != nil {
		sendError(w, g.logger, err)
		return
	}

	sendJSONOrLog(w, g.logger, NewGameSessionDTO(session))
}

func (g GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	session, ok := g.session(w, r, true)
	if !ok {
		return
	}
	if err := g.repo.DeleteSession(r.Context(), session.GameSessionID); err != nil {
		sendError(w, g.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
