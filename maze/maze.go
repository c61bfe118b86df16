/*
Package maze generates perfect mazes and extracts paths through them.

A Grid is a rectangle of Cells separated by walls. Generation runs a randomized
depth-first search (recursive backtracker) that opens exactly rows*cols-1 walls, so the
open passages form a spanning tree and any two cells are joined by one simple path.
Path extraction reruns the same backtracking search restricted to open passages.

Coordinates are (x, y) with x the column in [0, width) and y the row in [0, height).
North is y+1 and east is x+1.
*/
package maze

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/beka-birhanu/labyrinth-api/container"
)

const (
	// DefaultMaxDimension bounds both height and width unless overridden.
	DefaultMaxDimension = 50
)

var (
	ErrInvalidDimension    = errors.New("invalid maze dimension")
	ErrOutOfRange          = errors.New("coordinate out of range")
	ErrNoAvailableNeighbor = errors.New("no available neighbor")
	ErrNoPath              = errors.New("no path between cells")
)

// Option configures a Grid before it is generated.
type Option func(*Grid)

// WithRand makes generation and path search draw from r. Useful for reproducible mazes.
func WithRand(r *rand.Rand) Option {
	return func(g *Grid) {
		g.rng = r
	}
}

// WithMaxDimension overrides DefaultMaxDimension.
func WithMaxDimension(n int) Option {
	return func(g *Grid) {
		g.maxDimension = n
	}
}

// Grid owns the cells of a maze. The wall layout is fixed once New returns; Path and
// IsPerfect may be called concurrently because they serialise on the grid's mutex.
type Grid struct {
	height       int
	width        int
	maxDimension int
	cells        [][]*Cell // indexed [y][x]
	rng          *rand.Rand
	mu           sync.Mutex // guards visited flags
}

// New builds a height x width grid and generates a perfect maze on it.
func New(height, width int, opts ...Option) (*Grid, error) {
	g := &Grid{
		height:       height,
		width:        width,
		maxDimension: DefaultMaxDimension,
	}
	for _, opt := range opts {
		opt(g)
	}

	if min(height, width) <= 0 || max(height, width) > g.maxDimension {
		return nil, fmt.Errorf("%w: %dx%d, each side must be in [1, %d]", ErrInvalidDimension, height, width, g.maxDimension)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	g.cells = make([][]*Cell, height)
	for y := range g.cells {
		g.cells[y] = make([]*Cell, width)
		for x := range g.cells[y] {
			g.cells[y][x] = newCell(x, y)
		}
	}

	g.generate()
	return g, nil
}

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Cell returns the cell at column x, row y.
func (g *Grid) Cell(x, y int) (*Cell, error) {
	c, ok := g.lookup(x, y)
	if !ok {
		return nil, fmt.Errorf("%w: (%d,%d) outside %dx%d grid", ErrOutOfRange, x, y, g.width, g.height)
	}
	return c, nil
}

// Rows returns the cells row by row, starting at y = 0.
func (g *Grid) Rows() [][]*Cell {
	rows := make([][]*Cell, g.height)
	for y := range g.cells {
		rows[y] = slices.Clone(g.cells[y])
	}
	return rows
}

// lookup is the bounded accessor used for neighbour enumeration.
func (g *Grid) lookup(x, y int) (*Cell, bool) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return nil, false
	}
	return g.cells[y][x], true
}

// generate carves the spanning tree with a randomized depth-first search.
func (g *Grid) generate() {
	stack := container.NewStack[*Cell]()
	start := g.cells[g.rng.Intn(g.height)][g.rng.Intn(g.width)]
	start.MarkVisited()
	_ = stack.Push(start)

	for !stack.IsEmpty() {
		cell, _ := stack.Peek()
		if !cell.HasUnvisitedNeighbor(g) {
			// every neighbour is taken, backtrack
			_, _ = stack.Pop()
			continue
		}
		next, err := cell.RandomUnvisitedNeighbor(g)
		if err != nil {
			_, _ = stack.Pop()
			continue
		}
		cell.Visit(g, next)
		_ = stack.Push(next)
	}

	g.resetVisited()
}

// Path returns the cells from (x1, y1) to (x2, y2), both included, following open passages.
func (g *Grid) Path(x1, y1, x2, y2 int) ([]*Cell, error) {
	start, err := g.Cell(x1, y1)
	if err != nil {
		return nil, err
	}
	end, err := g.Cell(x2, y2)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.resetVisited()
	defer g.resetVisited()

	stack := container.NewStack[*Cell]()
	start.MarkVisited()
	_ = stack.Push(start)

	for !stack.IsEmpty() {
		cell, _ := stack.Peek()
		if cell == end {
			path := stack.Slice()
			slices.Reverse(path)
			return path, nil
		}

		if !cell.HasReachableNeighbor(g) {
			_, _ = stack.Pop()
			continue
		}
		next, err := cell.RandomReachableNeighbor(g)
		if err != nil {
			_, _ = stack.Pop()
			continue
		}
		next.MarkVisited()
		_ = stack.Push(next)
	}

	return []*Cell{}, fmt.Errorf("%w: %v -> %v", ErrNoPath, start, end)
}

// PassageCount returns the number of open walls, each shared wall counted once.
func (g *Grid) PassageCount() int {
	count := 0
	for _, row := range g.cells {
		for _, c := range row {
			if c.east {
				count++
			}
			if c.north {
				count++
			}
		}
	}
	return count
}

// IsPerfect reports whether the open passages form a spanning tree of the grid.
func (g *Grid) IsPerfect() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.resetVisited()
	defer g.resetVisited()

	queue := container.NewQueue[*Cell]()
	g.cells[0][0].MarkVisited()
	_ = queue.Enqueue(g.cells[0][0])
	reached := 0

	for !queue.IsEmpty() {
		cell, _ := queue.Dequeue()
		reached++
		for _, n := range cell.Neighbors(g) {
			if n.visited || !cell.HasPassage(cell.DirectionTo(n)) {
				continue
			}
			n.MarkVisited()
			_ = queue.Enqueue(n)
		}
	}

	total := g.height * g.width
	return reached == total && g.PassageCount() == total-1
}

func (g *Grid) resetVisited() {
	for _, row := range g.cells {
		for _, c := range row {
			c.UnmarkVisited()
		}
	}
}

// String draws the maze in ASCII with north at the top.
func (g *Grid) String() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	var sb strings.Builder

	// Top boundary
	sb.WriteString("+" + strings.Repeat("---+", g.width) + "\n")

	for y := g.height - 1; y >= 0; y-- {
		// Cell row
		sb.WriteString("|")
		for _, c := range g.cells[y] {
			if c.east {
				sb.WriteString("    ")
			} else {
				sb.WriteString("   |")
			}
		}
		sb.WriteString("\n")

		// Wall row
		sb.WriteString("+")
		for _, c := range g.cells[y] {
			if c.south {
				sb.WriteString("   +")
			} else {
				sb.WriteString("---+")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
