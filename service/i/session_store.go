package i

import (
	dmn "github.com/beka-birhanu/labyrinth-api/domain"
	"github.com/google/uuid"
)

// SessionStore keeps maze sessions in memory between requests.
type SessionStore interface {
	// Save stores the session under its ID, replacing any previous value.
	Save(session *dmn.Session)

	// ByID returns the session, or false when it is unknown or expired.
	ByID(id uuid.UUID) (*dmn.Session, bool)

	// Delete drops the session.
	Delete(id uuid.UUID)

	// Len returns the number of live sessions.
	Len() int
}
