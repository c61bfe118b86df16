// Package mazeapi exposes maze sessions over HTTP.
package mazeapi

import (
	"time"

	dmn "github.com/beka-birhanu/labyrinth-api/domain"
	"github.com/beka-birhanu/labyrinth-api/maze"
	"github.com/google/uuid"
)

// NewMazeRequest carries the dimensions of a maze to generate.
type NewMazeRequest struct {
	Width  int `form:"width" binding:"required"`
	Height int `form:"height" binding:"required"`
}

// CellRequest addresses one cell.
type CellRequest struct {
	X *int `form:"x" binding:"required"`
	Y *int `form:"y" binding:"required"`
}

// PathRequest names the two ends of a path.
type PathRequest struct {
	X1 *int `json:"x1" binding:"required"`
	Y1 *int `json:"y1" binding:"required"`
	X2 *int `json:"x2" binding:"required"`
	Y2 *int `json:"y2" binding:"required"`
}

// DirectoryRequest selects where images are written.
type DirectoryRequest struct {
	Dir string `json:"dir" binding:"required"`
}

// CellResponse is the wire form of a cell: its coordinates and which sides are open.
type CellResponse struct {
	X     int  `json:"x"`
	Y     int  `json:"y"`
	North bool `json:"north"`
	South bool `json:"south"`
	East  bool `json:"east"`
	West  bool `json:"west"`
}

// MazeResponse describes a session's maze. Cells are indexed [y][x].
type MazeResponse struct {
	Token     string           `json:"token,omitempty"`
	SessionID uuid.UUID        `json:"session_id"`
	Height    int              `json:"height"`
	Width     int              `json:"width"`
	Cells     [][]CellResponse `json:"cells"`
}

// PathResponse lists the cells from the first end to the second.
type PathResponse struct {
	Length int            `json:"length"`
	Path   []CellResponse `json:"path"`
}

// DirectoryResponse echoes the resolved directory.
type DirectoryResponse struct {
	Dir string `json:"dir"`
}

// RenderResponse describes a written image.
type RenderResponse struct {
	ID            uuid.UUID `json:"id"`
	Path          string    `json:"path"`
	ThumbnailPath string    `json:"thumbnail_path,omitempty"`
	Bytes         int64     `json:"bytes"`
	CreatedAt     time.Time `json:"created_at"`
}

func toCellResponse(c *maze.Cell) CellResponse {
	return CellResponse{
		X:     c.X(),
		Y:     c.Y(),
		North: c.North(),
		South: c.South(),
		East:  c.East(),
		West:  c.West(),
	}
}

func toCellResponses(cells []*maze.Cell) []CellResponse {
	out := make([]CellResponse, 0, len(cells))
	for _, c := range cells {
		out = append(out, toCellResponse(c))
	}
	return out
}

func toMazeResponse(session *dmn.Session, token string) *MazeResponse {
	rows := session.Grid.Rows()
	cells := make([][]CellResponse, 0, len(rows))
	for _, row := range rows {
		cells = append(cells, toCellResponses(row))
	}
	return &MazeResponse{
		Token:     token,
		SessionID: session.ID,
		Height:    session.Grid.Height(),
		Width:     session.Grid.Width(),
		Cells:     cells,
	}
}

func toRenderResponse(r *dmn.RenderRecord) *RenderResponse {
	return &RenderResponse{
		ID:            r.ID,
		Path:          r.Path,
		ThumbnailPath: r.ThumbnailPath,
		Bytes:         r.Bytes,
		CreatedAt:     r.CreatedAt,
	}
}
