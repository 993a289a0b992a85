// Package repository keeps game sessions in memory. Nothing outlives the
// process.
package repository

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("game session not found")

type Queries struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*GameSession
	rnd      *rand.Rand
	now      func() time.Time
}

// New returns an empty store. rnd seeds every board created through it and
// is only used under the store lock.
func New(rnd *rand.Rand) *Queries {
	return &Queries{
		sessions: make(map[uuid.UUID]*GameSession),
		rnd:      rnd,
		now:      time.Now,
	}
}

func (q *Queries) Count() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.sessions)
}

func (q *Queries) GetSession(ctx context.Context, id uuid.UUID) (*GameSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q.mu.RLock()
	defer q.mu.RUnlock()
	session, ok := q.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return session, nil
}

func (q *Queries) DeleteSession(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, ok := q.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(q.sessions, id)
	return nil
}

// PruneSessions drops sessions that have not been touched since before
// cutoff and returns how many were removed.
func (q *Queries) PruneSessions(ctx context.Context, cutoff time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	pruned := 0
	for id, session := range q.sessions {
		if session.LastActive().Before(cutoff) {
			delete(q.sessions, id)
			pruned++
		}
	}
	return pruned, nil
}
