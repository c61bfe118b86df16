// Package domain holds the request-scoped state shared by services and adapters.
package domain

import (
	"sync"
	"time"

	"github.com/beka-birhanu/labyrinth-api/maze"
	"github.com/google/uuid"
)

// Session binds one generated maze to the client that requested it, together with the
// directory its images are written to.
type Session struct {
	ID        uuid.UUID
	Grid      *maze.Grid
	CreatedAt time.Time

	directory string
	mu        sync.RWMutex
}

// NewSession wraps grid in a fresh session.
func NewSession(grid *maze.Grid) *Session {
	return &Session{
		ID:        uuid.New(),
		Grid:      grid,
		CreatedAt: time.Now().UTC(),
	}
}

// Directory returns the output directory, empty when none was chosen.
func (s *Session) Directory() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.directory
}

// SetDirectory records the output directory for later renders.
func (s *Session) SetDirectory(dir string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.directory = dir
}
