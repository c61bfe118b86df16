package maze

import (
	"fmt"

	"github.com/beka-birhanu/labyrinth-api/container"
)

// Direction names one of the four sides of a cell.
type Direction int

const (
	North Direction = iota
	South
	East
	West
)

// Opposite returns the side facing d across a shared wall.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	default:
		return East
	}
}

func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case South:
		return "South"
	case East:
		return "East"
	case West:
		return "West"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// neighborOffsets lists candidate neighbours in their canonical order: east, west, north, south.
var neighborOffsets = [4]struct{ dx, dy int }{
	{1, 0},
	{-1, 0},
	{0, 1},
	{0, -1},
}

// Cell is a single grid position. A true passage flag means the wall on that side is open.
//
// Cells do not know the grid they belong to; every neighbour lookup takes the owning
// Grid explicitly.
type Cell struct {
	x, y    int
	north   bool
	south   bool
	east    bool
	west    bool
	visited bool
}

func newCell(x, y int) *Cell {
	return &Cell{x: x, y: y}
}

// X returns the column of the cell.
func (c *Cell) X() int { return c.x }

// Y returns the row of the cell.
func (c *Cell) Y() int { return c.y }

// North reports whether there is a passage on the north side.
func (c *Cell) North() bool { return c.north }

// South reports whether there is a passage on the south side.
func (c *Cell) South() bool { return c.south }

// East reports whether there is a passage on the east side.
func (c *Cell) East() bool { return c.east }

// West reports whether there is a passage on the west side.
func (c *Cell) West() bool { return c.west }

// Visited reports whether the current traversal has reached the cell.
func (c *Cell) Visited() bool { return c.visited }

// MarkVisited flags the cell as reached by the current traversal.
func (c *Cell) MarkVisited() { c.visited = true }

// UnmarkVisited clears the traversal flag.
func (c *Cell) UnmarkVisited() { c.visited = false }

// HasPassage reports whether the wall on side d is open.
func (c *Cell) HasPassage(d Direction) bool {
	switch d {
	case North:
		return c.north
	case South:
		return c.south
	case East:
		return c.east
	case West:
		return c.west
	}
	return false
}

func (c *Cell) setPassage(d Direction) {
	switch d {
	case North:
		c.north = true
	case South:
		c.south = true
	case East:
		c.east = true
	case West:
		c.west = true
	}
}

// Neighbors returns the in-bounds neighbours of c in g, in east, west, north, south order.
func (c *Cell) Neighbors(g *Grid) []*Cell {
	neighbors := make([]*Cell, 0, len(neighborOffsets))
	for _, off := range neighborOffsets {
		if n, ok := g.lookup(c.x+off.dx, c.y+off.dy); ok {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}

// DirectionTo returns the side of c facing other. other is expected to be an adjacent
// cell; for anything else the result falls through to South.
func (c *Cell) DirectionTo(other *Cell) Direction {
	switch {
	case other.x-c.x == 1:
		return East
	case other.x-c.x == -1:
		return West
	case other.y-c.y == 1:
		return North
	default:
		return South
	}
}

// Visit opens the wall between c and n and marks n visited. Nothing happens when n is
// not a neighbour of c in g or has already been visited.
func (c *Cell) Visit(g *Grid, n *Cell) bool {
	if n == nil || n.visited || !c.adjacentTo(g, n) {
		return false
	}
	d := c.DirectionTo(n)
	c.setPassage(d)
	n.setPassage(d.Opposite())
	n.visited = true
	return true
}

// RandomUnvisitedNeighbor picks an unvisited neighbour regardless of walls.
func (c *Cell) RandomUnvisitedNeighbor(g *Grid) (*Cell, error) {
	return c.randomNeighbor(g, func(n *Cell) bool {
		return !n.visited
	})
}

// RandomReachableNeighbor picks an unvisited neighbour behind an open passage.
func (c *Cell) RandomReachableNeighbor(g *Grid) (*Cell, error) {
	return c.randomNeighbor(g, func(n *Cell) bool {
		return !n.visited && c.HasPassage(c.DirectionTo(n))
	})
}

// HasUnvisitedNeighbor reports whether any neighbour of c is still unvisited.
func (c *Cell) HasUnvisitedNeighbor(g *Grid) bool {
	for _, n := range c.Neighbors(g) {
		if !n.visited {
			return true
		}
	}
	return false
}

// HasReachableNeighbor reports whether an unvisited neighbour lies behind an open passage.
func (c *Cell) HasReachableNeighbor(g *Grid) bool {
	for _, n := range c.Neighbors(g) {
		if !n.visited && c.HasPassage(c.DirectionTo(n)) {
			return true
		}
	}
	return false
}

// randomNeighbor draws uniformly from the remaining candidates, dropping each rejected
// one, so every accepted neighbour is equally likely.
func (c *Cell) randomNeighbor(g *Grid, accept func(*Cell) bool) (*Cell, error) {
	candidates, err := container.NewList(c.Neighbors(g)...)
	if err != nil {
		return nil, err
	}
	for !candidates.IsEmpty() {
		n, err := candidates.Get(g.rng.Intn(candidates.Len()))
		if err != nil {
			return nil, err
		}
		if accept(n) {
			return n, nil
		}
		_ = candidates.Remove(n)
	}
	return nil, ErrNoAvailableNeighbor
}

func (c *Cell) adjacentTo(g *Grid, n *Cell) bool {
	for _, candidate := range c.Neighbors(g) {
		if candidate == n {
			return true
		}
	}
	return false
}

func (c *Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.x, c.y)
}
