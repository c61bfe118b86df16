// Package render rasterises maze walls into PNG images.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/beka-birhanu/labyrinth-api/maze"
	"github.com/beka-birhanu/labyrinth-api/service/i"
	"github.com/nfnt/resize"
)

const (
	DefaultCellSize   = 50
	DefaultBorderSize = 5
)

var _ i.Renderer = &PNGRenderer{}

// PNGRenderer paints every cell as a white block on a black background. A block grows
// into the border on each side that has a passage, so walls remain as black strips.
type PNGRenderer struct {
	cellSize   int
	borderSize int
	encoder    *png.Encoder
}

// Option configures a PNGRenderer.
type Option func(*PNGRenderer)

// WithCellSize sets the side of a cell block in pixels.
func WithCellSize(px int) Option {
	return func(r *PNGRenderer) {
		if px > 0 {
			r.cellSize = px
		}
	}
}

// WithBorderSize sets the wall thickness in pixels.
func WithBorderSize(px int) Option {
	return func(r *PNGRenderer) {
		if px > 0 {
			r.borderSize = px
		}
	}
}

// NewPNGRenderer creates a renderer with 50 px cells and 5 px walls unless overridden.
func NewPNGRenderer(opts ...Option) *PNGRenderer {
	r := &PNGRenderer{
		cellSize:   DefaultCellSize,
		borderSize: DefaultBorderSize,
		encoder:    &png.Encoder{CompressionLevel: png.BestCompression},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Bounds returns the image rectangle for a grid of the given size.
func (r *PNGRenderer) Bounds(height, width int) image.Rectangle {
	step := r.cellSize + r.borderSize
	return image.Rect(0, 0, width*step+r.borderSize, height*step+r.borderSize)
}

// Draw implements i.Renderer. Row y of the grid is painted y blocks from the top edge.
func (r *PNGRenderer) Draw(grid *maze.Grid) image.Image {
	img := image.NewRGBA(r.Bounds(grid.Height(), grid.Width()))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	white := image.NewUniform(color.White)
	step := r.cellSize + r.borderSize
	for _, row := range grid.Rows() {
		for _, c := range row {
			block := image.Rect(0, 0, r.cellSize, r.cellSize).
				Add(image.Pt(c.X()*step+r.borderSize, c.Y()*step+r.borderSize))
			if c.South() {
				block.Min.Y -= r.borderSize
			}
			if c.North() {
				block.Max.Y += r.borderSize
			}
			if c.West() {
				block.Min.X -= r.borderSize
			}
			if c.East() {
				block.Max.X += r.borderSize
			}
			draw.Draw(img, block, white, image.Point{}, draw.Src)
		}
	}
	return img
}

// Thumbnail implements i.Renderer. Images already within maxSize are returned unchanged.
func (r *PNGRenderer) Thumbnail(img image.Image, maxSize uint) image.Image {
	return resize.Thumbnail(maxSize, maxSize, img, resize.Lanczos3)
}

// Encode implements i.Renderer.
func (r *PNGRenderer) Encode(w io.Writer, img image.Image) error {
	return r.encoder.Encode(w, img)
}
