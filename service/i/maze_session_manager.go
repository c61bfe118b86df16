package i

import (
	dmn "github.com/beka-birhanu/labyrinth-api/domain"
	"github.com/beka-birhanu/labyrinth-api/maze"
	"github.com/google/uuid"
)

// SessionAuthenticator resolves a bearer token to a live session ID.
type SessionAuthenticator interface {
	Authenticate(token string) (uuid.UUID, error)
}

// MazeSessionManager creates mazes and answers queries against them.
type MazeSessionManager interface {
	SessionAuthenticator

	// NewSession generates a maze and returns its session with a token that grants access to it.
	NewSession(height, width int) (*dmn.Session, string, error)

	// Session looks up a live session.
	Session(id uuid.UUID) (*dmn.Session, error)

	// Cell returns one cell of the session's maze.
	Cell(id uuid.UUID, x, y int) (*maze.Cell, error)

	// Path returns the cells joining (x1, y1) and (x2, y2).
	Path(id uuid.UUID, x1, y1, x2, y2 int) ([]*maze.Cell, error)

	// SetDirectory validates dir and makes it the session's image directory.
	SetDirectory(id uuid.UUID, dir string) (string, error)
}
