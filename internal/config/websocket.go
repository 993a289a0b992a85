package config

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

type WebSocket struct {
	Upgrader websocket.Upgrader
	// ReadLimit caps a single incoming command, IdleTimeout closes
	// connections that stop sending.
	ReadLimit   int64
	IdleTimeout time.Duration
}

func NewWebSocket() (*WebSocket, error) {
	idle, err := lookupDuration("WS_IDLE_TIMEOUT", 10*time.Minute)
	if err != nil {
		return nil, err
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	ws := &WebSocket{
		Upgrader:    upgrader,
		ReadLimit:   512,
		IdleTimeout: idle,
	}

	return ws, nil
}
