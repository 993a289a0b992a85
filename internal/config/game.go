package config

import (
	"fmt"
	"time"
)

// minSessionTTL keeps the prune interval (a quarter of the TTL) well above
// zero.
const minSessionTTL = time.Second

type Game struct {
	MaxWidth   int
	MaxHeight  int
	SessionTTL time.Duration
}

func NewGame() (*Game, error) {
	maxWidth, err := lookupInt("GAME_MAX_WIDTH", 100)
	if err != nil {
		return nil, err
	}
	maxHeight, err := lookupInt("GAME_MAX_HEIGHT", 100)
	if err != nil {
		return nil, err
	}
	if maxWidth <= 0 || maxHeight <= 0 {
		return nil, fmt.Errorf(
			"board limits must be positive (GAME_MAX_WIDTH = %d, GAME_MAX_HEIGHT = %d)",
			maxWidth, maxHeight,
		)
	}
	ttl, err := lookupDuration("GAME_SESSION_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	if ttl < minSessionTTL {
		return nil, fmt.Errorf(
			"GAME_SESSION_TTL must be at least %s (got %s)", minSessionTTL, ttl,
		)
	}

	game := &Game{
		MaxWidth:   maxWidth,
		MaxHeight:  maxHeight,
		SessionTTL: ttl,
	}

	return game, nil
}

func (g Game) Fits(width, height int) bool {
	return width <= g.MaxWidth && height <= g.MaxHeight
}
