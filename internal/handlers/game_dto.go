package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/repository"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

type CreateNewGameDTO struct {
	Width     int `schema:"width,required"`
	Height    int `schema:"height,required"`
	MineCount int `schema:"mine_count,required"`
}

func ParseCreateNewGameDTO(src map[string][]string) (CreateNewGameDTO, error) {
	var dto CreateNewGameDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

type Position struct {
	X int `schema:"x,required"`
	Y int `schema:"y,required"`
}

func ParsePosition(src map[string][]string) (Position, error) {
	var p Position
	err := decoder.Decode(&p, src)
	return p, err
}

type GameMove uint8

const (
	Open GameMove = iota + 1
	Flag
)

func (m GameMove) String() string {
	switch m {
	case Open:
		return "open"
	case Flag:
		return "flag"
	default:
		return fmt.Sprintf("GameMove(%d)", uint8(m))
	}
}

var ErrBadMove = fmt.Errorf("move must be one of 'open', 'flag'")

func ParseGameMove(s string) (GameMove, error) {
	switch strings.ToLower(s) {
	case "open":
		return Open, nil
	case "flag":
		return Flag, nil
	default:
		return 0, ErrBadMove
	}
}

type CellDTO struct {
	Status mines.CellStatus `json:"status"`
	// MineCount is only sent for cells the player can see into.
	MineCount *int `json:"mine_count,omitempty"`
}

type GameSessionDTO struct {
	GameSessionID string    `json:"game_session_id"`
	Token         string    `json:"token,omitempty"`
	Width         int       `json:"width"`
	Height        int       `json:"height"`
	MineCount     int       `json:"mine_count"`
	FlagsUsed     int       `json:"flags_used"`
	Started       bool      `json:"started"`
	Ended         bool      `json:"ended"`
	Won           bool      `json:"won"`
	StartedAt     int64     `json:"started_at"`
	EndedAt       *int64    `json:"ended_at,omitempty"`
	Grid          []CellDTO `json:"grid"`
}

func newCellDTO(c mines.Cell) CellDTO {
	dto := CellDTO{Status: c.Status()}
	switch c.Status() {
	case mines.Hidden, mines.Flagged:
	default:
		n := c.MineCount()
		dto.MineCount = &n
	}
	return dto
}

func NewGameSessionDTO(session *repository.GameSession) *GameSessionDTO {
	dto := &GameSessionDTO{
		GameSessionID: session.GameSessionID.String(),
		StartedAt:     session.StartedAt.UnixMilli(),
	}
	session.View(func(board *mines.Board, endedAt *time.Time) {
		if endedAt != nil {
			e := endedAt.UnixMilli()
			dto.EndedAt = &e
		}
		dto.Width = board.Width()
		dto.Height = board.Height()
		dto.MineCount = board.MinesTotal()
		dto.FlagsUsed = board.FlagsUsed()
		dto.Started = board.Started()
		dto.Ended = board.Ended()
		dto.Won = board.Won()
		dto.Grid = make([]CellDTO, 0, board.Width()*board.Height())
		for _, c := range board.All() {
			dto.Grid = append(dto.Grid, newCellDTO(c))
		}
	})
	return dto
}
