package game

import (
	"errors"
	"testing"
)

func TestInBoundsDiamond(t *testing.T) {
	count := 0
	for x := 0; x < BoardSize; x++ {
		for y := 0; y < BoardSize; y++ {
			want := x+y >= 6 && x+y < 19
			if got := InBounds(Cell{x, y}); got != want {
				t.Errorf("InBounds(%d,%d) = %v, want %v", x, y, got, want)
			}
			if want {
				count++
			}
		}
	}
	// radius-6 hexagon
	if count != 127 {
		t.Errorf("in-bounds cells = %d, want 127", count)
	}
	if len(AllCells()) != count {
		t.Errorf("AllCells() returned %d cells, want %d", len(AllCells()), count)
	}
	for _, c := range []Cell{{-1, 7}, {7, -1}, {13, 0}, {0, 13}} {
		if InBounds(c) {
			t.Errorf("InBounds(%v) = true outside the array", c)
		}
	}
}

func TestDirectionsClose(t *testing.T) {
	var sum Cell
	for d := Direction(0); d < 6; d++ {
		sum = sum.Add(DirectionOffset(d))
	}
	if sum != (Cell{}) {
		t.Errorf("offsets over one loop sum to %v, want (0,0)", sum)
	}
	for d := Direction(-12); d < 12; d++ {
		if DirectionOffset(d) != Directions[d.Norm()] {
			t.Errorf("DirectionOffset(%d) not taken modulo 6", d)
		}
	}
}

func TestStepTurnsModulo(t *testing.T) {
	pos, dir := Step(Cell{6, 6}, 5, 2)
	if dir != 1 || pos != (Cell{7, 5}) {
		t.Errorf("Step wrapping right: got %v dir %d, want (7,5) dir 1", pos, dir)
	}
	pos, dir = Step(Cell{6, 6}, 0, -2)
	if dir != 4 || pos != (Cell{5, 7}) {
		t.Errorf("Step wrapping left: got %v dir %d, want (5,7) dir 4", pos, dir)
	}
}

func TestOccupiedPanicsOutsideBounds(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic reading occupancy outside bounds")
		}
	}()
	var b Board
	b.Occupied(Cell{0, 0})
}

func TestPlayableShortCircuits(t *testing.T) {
	var b Board
	if b.Playable(Cell{0, 0}) {
		t.Error("(0,0) is outside the hex region and must not be playable")
	}
	_ = b.Set(Cell{6, 6}, true)
	if b.Playable(Cell{6, 6}) {
		t.Error("occupied cell reported playable")
	}
	if err := b.Set(Cell{0, 0}, true); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Set outside bounds: got %v, want ErrOutOfBounds", err)
	}
}

func TestLegalMovesCorner(t *testing.T) {
	var b Board
	// (6,0) is the top corner; facing up only the two sharp turns stay on the grid.
	got := LegalMoves(&b, Cell{6, 0}, 0)
	want := []Move{-2, 2}
	if len(got) != len(want) {
		t.Fatalf("LegalMoves = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("LegalMoves = %v, want %v", got, want)
		}
	}
}
