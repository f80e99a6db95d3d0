package game

import (
	"errors"
	"fmt"
)

// BoardSize is the side of the square array the hex grid is embedded in.
const BoardSize = 13

var (
	ErrOutOfBounds  = errors.New("coordinate out of bounds")
	ErrBadGrid      = errors.New("occupancy grid must be 13x13")
	ErrBadDirection = errors.New("direction must be in [0, 6)")
)

// Cell is an (x, y) index into the embedded hex grid.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns c displaced by o.
func (c Cell) Add(o Cell) Cell {
	return Cell{c.X + o.X, c.Y + o.Y}
}

// Sub returns the displacement from o to c.
func (c Cell) Sub(o Cell) Cell {
	return Cell{c.X - o.X, c.Y - o.Y}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Board is the occupancy mask, indexed [y][x]. It is a value type: assigning
// or passing a Board copies it, so simulations never touch the caller's board.
type Board [BoardSize][BoardSize]bool

// InBounds reports whether c lies inside the diamond-shaped hex region:
// 0 <= x < 13, 0 <= y < 13 and 6 <= x+y < 19.
func InBounds(c Cell) bool {
	return c.X >= 0 && c.X < BoardSize &&
		c.Y >= 0 && c.Y < BoardSize &&
		c.X+c.Y >= BoardSize/2 && c.X+c.Y < BoardSize*3/2
}

// Occupied must only be called for in-bounds cells.
func (b *Board) Occupied(c Cell) bool {
	if !InBounds(c) {
		panic(fmt.Sprintf("game: occupancy read outside bounds at %v", c))
	}
	return b[c.Y][c.X]
}

// Playable reports whether c is inside bounds and free.
func (b *Board) Playable(c Cell) bool {
	return InBounds(c) && !b.Occupied(c)
}

// Set updates the occupancy of c. Returns an error if c is out of bounds.
func (b *Board) Set(c Cell, occupied bool) error {
	if !InBounds(c) {
		return fmt.Errorf("set %v: %w", c, ErrOutOfBounds)
	}
	b[c.Y][c.X] = occupied
	return nil
}

// mark sets an in-bounds cell occupied without the bounds error path.
func (b *Board) mark(c Cell) {
	b[c.Y][c.X] = true
}

// Neighbors returns the playable neighbours of c in direction order.
func (b *Board) Neighbors(c Cell) []Cell {
	result := make([]Cell, 0, len(Directions))
	for _, d := range Directions {
		n := c.Add(d)
		if b.Playable(n) {
			result = append(result, n)
		}
	}
	return result
}

// AllCells returns every in-bounds cell in row-major order.
func AllCells() []Cell {
	cells := make([]Cell, 0, 127)
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if c := (Cell{x, y}); InBounds(c) {
				cells = append(cells, c)
			}
		}
	}
	return cells
}

// CountFree returns the number of playable cells on the board.
func (b *Board) CountFree() int {
	n := 0
	for _, c := range AllCells() {
		if !b.Occupied(c) {
			n++
		}
	}
	return n
}

// HexDist is the hex-grid distance between two cells, ignoring occupancy.
func HexDist(a, b Cell) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	return (abs(dx) + abs(dy) + abs(dx+dy)) / 2
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
