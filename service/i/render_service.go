package i

import (
	"context"

	dmn "github.com/beka-birhanu/labyrinth-api/domain"
)

// RenderService writes images of session mazes.
type RenderService interface {
	// Render writes a PNG of the session's maze into its directory.
	Render(ctx context.Context, session *dmn.Session) (*dmn.RenderRecord, error)

	// History lists the images written for a session.
	History(session *dmn.Session) ([]*dmn.RenderRecord, error)
}
