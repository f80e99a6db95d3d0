package game

import (
	"errors"
	"testing"
)

func planes(occupied map[Cell]int) [][][]int {
	cells := make([][][]int, BoardSize)
	for y := range cells {
		cells[y] = make([][]int, BoardSize)
		for x := range cells[y] {
			cells[y][x] = make([]int, 2)
			if p, ok := occupied[Cell{x, y}]; ok {
				cells[y][x][p] = 1
			}
		}
	}
	return cells
}

func TestCollapseOccupancyAnyPlane(t *testing.T) {
	b, err := CollapseOccupancy(planes(map[Cell]int{{6, 6}: 0, {7, 6}: 1}))
	if err != nil {
		t.Fatal(err)
	}
	if !b.Occupied(Cell{6, 6}) || !b.Occupied(Cell{7, 6}) {
		t.Error("occupants on either plane must mark the cell")
	}
	if b.Occupied(Cell{8, 6}) {
		t.Error("empty cell marked occupied")
	}
}

func TestCollapseOccupancyRejectsShape(t *testing.T) {
	cells := planes(nil)
	if _, err := CollapseOccupancy(cells[:12]); !errors.Is(err, ErrBadGrid) {
		t.Errorf("12 rows: got %v, want ErrBadGrid", err)
	}
	cells[3] = cells[3][:5]
	if _, err := CollapseOccupancy(cells); !errors.Is(err, ErrBadGrid) {
		t.Errorf("short row: got %v, want ErrBadGrid", err)
	}
}

func TestNewSnapshotValidates(t *testing.T) {
	cells := planes(map[Cell]int{{6, 10}: 0, {6, 2}: 1})
	s, err := NewSnapshot(cells, [][2]int{{6, 10}, {6, 2}}, []int{0, 3})
	if err != nil {
		t.Fatal(err)
	}
	if s.Self.Pos != (Cell{6, 10}) || s.Opponent.Dir != 3 {
		t.Errorf("snapshot = %+v", s)
	}
	if _, err := NewSnapshot(cells, [][2]int{{0, 0}, {6, 2}}, []int{0, 3}); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("corner outside hex: got %v, want ErrOutOfBounds", err)
	}
	if _, err := NewSnapshot(cells, [][2]int{{6, 10}}, []int{0}); err == nil {
		t.Error("expected an error for a single position")
	}
}

func TestBoardRowsRoundTrip(t *testing.T) {
	gs := NewGameState()
	b, err := BoardFromRows(gs.Board.Rows())
	if err != nil {
		t.Fatal(err)
	}
	if b != gs.Board {
		t.Error("Rows/BoardFromRows lost occupancy")
	}
}
