package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"testing"

	"github.com/beka-birhanu/labyrinth-api/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isWhite(img image.Image, x, y int) bool {
	r, g, b, _ := img.At(x, y).RGBA()
	return r == 0xffff && g == 0xffff && b == 0xffff
}

func TestPNGRenderer(t *testing.T) {
	r := NewPNGRenderer()

	t.Run("Bounds", func(t *testing.T) {
		assert.Equal(t, image.Rect(0, 0, 115, 60), r.Bounds(1, 2))
		assert.Equal(t, image.Rect(0, 0, 60, 60), r.Bounds(1, 1))
	})

	t.Run("single cell is a block framed by walls", func(t *testing.T) {
		g, err := maze.New(1, 1)
		require.NoError(t, err)

		img := r.Draw(g)
		assert.Equal(t, image.Rect(0, 0, 60, 60), img.Bounds())
		assert.False(t, isWhite(img, 0, 0))
		assert.False(t, isWhite(img, 4, 30))
		assert.True(t, isWhite(img, 5, 5))
		assert.True(t, isWhite(img, 54, 54))
		assert.False(t, isWhite(img, 55, 30))
	})

	t.Run("open passage removes the wall strip", func(t *testing.T) {
		// a 1x2 maze always joins its two cells east to west
		g, err := maze.New(1, 2)
		require.NoError(t, err)

		img := r.Draw(g)
		for x := 55; x < 60; x++ {
			assert.True(t, isWhite(img, x, 30), "x=%d", x)
		}
		assert.False(t, isWhite(img, 57, 2), "outer wall stays black")
	})

	t.Run("walls follow the passages of a generated maze", func(t *testing.T) {
		g, err := maze.New(6, 7, maze.WithRand(rand.New(rand.NewSource(11))))
		require.NoError(t, err)

		img := r.Draw(g)
		for _, row := range g.Rows() {
			for _, c := range row {
				midX := c.X()*55 + 5 + 25
				midY := c.Y()*55 + 5 + 25
				assert.Equal(t, c.East(), isWhite(img, c.X()*55+57, midY), "east of %v", c)
				assert.Equal(t, c.North(), isWhite(img, midX, c.Y()*55+57), "north of %v", c)
			}
		}
	})

	t.Run("Thumbnail fits within the bound", func(t *testing.T) {
		g, err := maze.New(10, 20)
		require.NoError(t, err)

		thumb := r.Thumbnail(r.Draw(g), 100)
		assert.LessOrEqual(t, thumb.Bounds().Dx(), 100)
		assert.LessOrEqual(t, thumb.Bounds().Dy(), 100)
		assert.Positive(t, thumb.Bounds().Dx())
	})

	t.Run("Encode writes a decodable PNG", func(t *testing.T) {
		g, err := maze.New(3, 3, maze.WithRand(rand.New(rand.NewSource(5))))
		require.NoError(t, err)
		img := r.Draw(g)

		var buf bytes.Buffer
		require.NoError(t, r.Encode(&buf, img))

		decoded, err := png.Decode(&buf)
		require.NoError(t, err)
		assert.Equal(t, img.Bounds(), decoded.Bounds())
		assert.Equal(t, color.RGBAModel.Convert(img.At(30, 30)), color.RGBAModel.Convert(decoded.At(30, 30)))
	})

	t.Run("options change the geometry", func(t *testing.T) {
		small := NewPNGRenderer(WithCellSize(10), WithBorderSize(2))
		assert.Equal(t, image.Rect(0, 0, 26, 14), small.Bounds(1, 2))
	})
}
