package repository

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

// GameSession is one board plus its bookkeeping. The board is only ever
// touched under mu, which serializes moves coming from HTTP and websocket
// clients alike.
type GameSession struct {
	GameSessionID uuid.UUID
	StartedAt     time.Time

	mu         sync.Mutex
	board      *mines.Board
	endedAt    *time.Time
	lastActive time.Time
	now        func() time.Time
}

type CreateGameSessionParams struct {
	Width, Height, MineCount int
}

func (q *Queries) CreateGameSession(
	ctx context.Context, params CreateGameSessionParams,
) (*GameSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	rnd := rand.New(rand.NewPCG(q.rnd.Uint64(), q.rnd.Uint64()))
	board, err := mines.New(params.Width, params.Height, params.MineCount, rnd)
	if err != nil {
		return nil, err
	}

	now := q.now()
	session := &GameSession{
		GameSessionID: uuid.New(),
		StartedAt:     now,
		board:         board,
		lastActive:    now,
		now:           q.now,
	}
	q.sessions[session.GameSessionID] = session

	return session, nil
}

// Play forwards a move to the board and stamps the end time once the game
// is over.
func (s *GameSession) Play(x, y int, flag bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastActive = s.now()
	if err := s.board.Play(x, y, flag); err != nil {
		return err
	}
	if s.board.Ended() && s.endedAt == nil {
		endedAt := s.now().UTC()
		s.endedAt = &endedAt
	}
	return nil
}

// View runs fn with exclusive access to the board. fn must not keep the
// board after returning.
func (s *GameSession) View(fn func(board *mines.Board, endedAt *time.Time)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.board, s.endedAt)
}

func (s *GameSession) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}
