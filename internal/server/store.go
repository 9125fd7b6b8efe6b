package server

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/stratum-mining/sv2-wizard/internal/wizard/engine"
	"github.com/stratum-mining/sv2-wizard/internal/wizard/flows"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrTooManySessions = errors.New("too many sessions")
)

// session is one wizard run. mu guards the engine, which is not safe for
// concurrent use.
type session struct {
	mu      sync.Mutex
	id      string
	def     flows.Definition
	engine  *engine.Engine
	created time.Time
}

// store holds the sessions of a server.
type store struct {
	mu       sync.Mutex
	sessions map[string]*session
	max      int
	now      func() time.Time
	newID    func() string
}

// newStore returns a store holding at most max sessions. A max of zero or
// less means no limit.
func newStore(max int) *store {
	return &store{
		sessions: make(map[string]*session),
		max:      max,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Create starts a session of def seeded with data.
func (s *store) Create(def flows.Definition, data engine.Data, log logr.Logger) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.max > 0 && len(s.sessions) >= s.max {
		return nil, fmt.Errorf("%w: limit is %d", ErrTooManySessions, s.max)
	}

	id := s.newID()
	sess := &session{
		id:      id,
		def:     def,
		engine:  engine.New(def.Graph, engine.WithData(data), engine.WithLogger(log.WithValues("session", id))),
		created: s.now(),
	}
	s.sessions[id] = sess
	return sess, nil
}

// Get returns the session with id.
func (s *store) Get(id string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return sess, nil
}

// Delete removes the session with id.
func (s *store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(s.sessions, id)
	return nil
}

// Expire removes sessions created before cutoff and returns how many were
// removed.
func (s *store) Expire(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, sess := range s.sessions {
		if sess.created.Before(cutoff) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// Len returns the number of sessions.
func (s *store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
