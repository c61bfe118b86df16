package i

import (
	"context"
	"image"
	"io"

	dmn "github.com/beka-birhanu/labyrinth-api/domain"
	"github.com/beka-birhanu/labyrinth-api/maze"
	"github.com/google/uuid"
)

// Renderer rasterises the wall state of a maze.
type Renderer interface {
	// Draw paints the grid.
	Draw(grid *maze.Grid) image.Image

	// Thumbnail scales img down so that neither side exceeds maxSize pixels.
	Thumbnail(img image.Image, maxSize uint) image.Image

	// Encode writes img to w.
	Encode(w io.Writer, img image.Image) error
}

// RenderRepo defines the persistence of render records.
type RenderRepo interface {
	// Save inserts the record.
	Save(record *dmn.RenderRecord) error

	// BySession returns the records of a session, newest first.
	BySession(sessionID uuid.UUID) ([]*dmn.RenderRecord, error)
}

// SortedQueue is a score ordered queue shared between service instances.
type SortedQueue interface {
	// Enqueue adds member with the given score.
	Enqueue(ctx context.Context, queueKey string, score float64, member string) error

	// DequeTops removes and returns up to amount members with the lowest scores.
	DequeTops(ctx context.Context, queueKey string, amount int64) ([]string, error)

	// Count returns the number of queued members.
	Count(ctx context.Context, queueKey string) int64
}
