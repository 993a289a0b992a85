package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vancomm/minesweeper-engine/internal/repository"
)

type wsCommand string

const (
	wsGet  wsCommand = "g"
	wsOpen wsCommand = "o"
	wsFlag wsCommand = "f"
)

func parseXY(args []string) (x, y int, err error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("expected 2 coordinates, got %d", len(args))
	}
	if x, err = strconv.Atoi(args[0]); err != nil {
		return 0, 0, fmt.Errorf("invalid x: %w", err)
	}
	if y, err = strconv.Atoi(args[1]); err != nil {
		return 0, 0, fmt.Errorf("invalid y: %w", err)
	}
	return x, y, nil
}

// execute runs one text command against the session. Commands look like
// "o 3 4" (open), "f 3 4" (flag) or "g" (just send the board).
func execute(session *repository.GameSession, query string) error {
	tokens := strings.Fields(query)
	if len(tokens) == 0 {
		return fmt.Errorf("empty command")
	}
	cmd, args := wsCommand(tokens[0]), tokens[1:]
	switch cmd {
	case wsGet:
		return nil
	case wsOpen, wsFlag:
		x, y, err := parseXY(args)
		if err != nil {
			return err
		}
		return session.Play(x, y, cmd == wsFlag)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	session, ok := g.session(w, r, true)
	if !ok {
		return
	}

	conn, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Error("unable to upgrade connection", slog.Any("error", err))
		return
	}
	defer conn.Close()

	logger := g.logger.With(slog.String("id", session.GameSessionID.String()))
	logger.Debug("websocket connected")

	conn.SetReadLimit(g.ws.ReadLimit)
	for {
		conn.SetReadDeadline(time.Now().Add(g.ws.IdleTimeout))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(
				err, websocket.CloseGoingAway, websocket.CloseNormalClosure,
			) {
				logger.Error("websocket read failed", slog.Any("error", err))
			}
			return
		}

		var reply any
		if err := execute(session, string(msg)); err != nil {
			reply = wrapError(err)
		} else {
			reply = NewGameSessionDTO(session)
		}
		if err := conn.WriteJSON(reply); err != nil {
			logger.Error("websocket write failed", slog.Any("error", err))
			return
		}
	}
}
