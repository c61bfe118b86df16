package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	dmn "github.com/beka-birhanu/labyrinth-api/domain"
	"github.com/beka-birhanu/labyrinth-api/maze"
	"github.com/beka-birhanu/labyrinth-api/service/i"
	"github.com/google/uuid"
)

const (
	defaultSessionTTL = time.Hour

	sessionIDClaim = "session_id"

	pathStatusFound    = "found"
	pathStatusRejected = "rejected"
	pathStatusNoPath   = "no_path"
)

var (
	ErrSessionNotFound  = errors.New("maze session not found")
	ErrInvalidToken     = errors.New("invalid session token")
	ErrInvalidDirectory = errors.New("directory is not valid")
	ErrMalformedMaze    = errors.New("generated maze is not perfect")
)

var _ i.MazeSessionManager = &MazeSessionManager{}

// MazeSessionManager owns the in-memory maze sessions. Each session is reached through a
// signed token instead of process-wide state.
type MazeSessionManager struct {
	store       i.SessionStore
	tokenizer   i.Tokenizer
	mazeFactory func(int, int) (*maze.Grid, error)
	sessionTTL  time.Duration
	metrics     i.MetricsRecorder
	logger      i.Logger
}

// Config holds the dependencies of a MazeSessionManager.
type Config struct {
	Store       i.SessionStore
	Tokenizer   i.Tokenizer
	MazeFactory func(height, width int) (*maze.Grid, error) // defaults to maze.New
	SessionTTL  time.Duration
	Metrics     i.MetricsRecorder // optional
	Logger      i.Logger
}

// NewMazeSessionManager validates c and builds the manager.
func NewMazeSessionManager(c *Config) (*MazeSessionManager, error) {
	if c == nil || c.Store == nil || c.Tokenizer == nil || c.Logger == nil {
		return nil, errors.New("session manager requires a store, a tokenizer and a logger")
	}

	m := &MazeSessionManager{
		store:       c.Store,
		tokenizer:   c.Tokenizer,
		mazeFactory: c.MazeFactory,
		sessionTTL:  c.SessionTTL,
		metrics:     c.Metrics,
		logger:      c.Logger,
	}
	if m.mazeFactory == nil {
		m.mazeFactory = func(height, width int) (*maze.Grid, error) {
			return maze.New(height, width)
		}
	}
	if m.sessionTTL <= 0 {
		m.sessionTTL = defaultSessionTTL
	}
	return m, nil
}

// NewSession generates a height x width maze and stores it in a new session.
func (m *MazeSessionManager) NewSession(height, width int) (*dmn.Session, string, error) {
	started := time.Now()
	grid, err := m.mazeFactory(height, width)
	if err != nil {
		m.logger.Warning(fmt.Sprintf("rejected maze request %dx%d: %s", height, width, err))
		return nil, "", err
	}
	if !grid.IsPerfect() {
		m.logger.Error(fmt.Sprintf("generated %dx%d maze is not a spanning tree", height, width))
		return nil, "", ErrMalformedMaze
	}
	if m.metrics != nil {
		m.metrics.ObserveGeneration(height, width, time.Since(started))
	}

	session := dmn.NewSession(grid)
	token, err := m.tokenizer.Generate(map[string]interface{}{
		sessionIDClaim: session.ID.String(),
	}, m.sessionTTL)
	if err != nil {
		m.logger.Error(fmt.Sprintf("signing token for session %s: %s", session.ID, err))
		return nil, "", err
	}

	m.store.Save(session)
	if m.metrics != nil {
		m.metrics.SetSessions(m.store.Len())
	}
	m.logger.Info(fmt.Sprintf("generated %dx%d maze for session %s", height, width, session.ID))
	return session, token, nil
}

// Authenticate implements i.SessionAuthenticator.
func (m *MazeSessionManager) Authenticate(token string) (uuid.UUID, error) {
	claims, err := m.tokenizer.Decode(token)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s", ErrInvalidToken, err)
	}

	raw, ok := claims[sessionIDClaim].(string)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	if _, ok := m.store.ByID(id); !ok {
		return uuid.Nil, ErrSessionNotFound
	}
	return id, nil
}

// Session implements i.MazeSessionManager.
func (m *MazeSessionManager) Session(id uuid.UUID) (*dmn.Session, error) {
	session, ok := m.store.ByID(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Cell implements i.MazeSessionManager.
func (m *MazeSessionManager) Cell(id uuid.UUID, x, y int) (*maze.Cell, error) {
	session, err := m.Session(id)
	if err != nil {
		return nil, err
	}
	return session.Grid.Cell(x, y)
}

// Path implements i.MazeSessionManager.
func (m *MazeSessionManager) Path(id uuid.UUID, x1, y1, x2, y2 int) ([]*maze.Cell, error) {
	session, err := m.Session(id)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	path, err := session.Grid.Path(x1, y1, x2, y2)
	status := pathStatusFound
	switch {
	case errors.Is(err, maze.ErrNoPath):
		status = pathStatusNoPath
		m.logger.Error(fmt.Sprintf("session %s: %s", id, err))
	case err != nil:
		status = pathStatusRejected
	}
	if m.metrics != nil {
		m.metrics.ObservePath(status, len(path), time.Since(started))
	}
	return path, err
}

// SetDirectory implements i.MazeSessionManager.
func (m *MazeSessionManager) SetDirectory(id uuid.UUID, dir string) (string, error) {
	session, err := m.Session(id)
	if err != nil {
		return "", err
	}

	if dir == "" {
		return "", ErrInvalidDirectory
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrInvalidDirectory, dir)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidDirectory, err)
	}

	session.SetDirectory(abs)
	m.logger.Info(fmt.Sprintf("session %s writes images to %s", id, abs))
	return abs, nil
}
