package game

import (
	"context"
	"errors"
	"math/rand"
	"testing"
)

// randomBoard occupies roughly density of the in-bounds cells.
func randomBoard(r *rand.Rand, density float64) Board {
	var b Board
	for _, c := range AllCells() {
		if r.Float64() < density {
			b.mark(c)
		}
	}
	return b
}

func TestDistanceMatchesHexDistOnEmptyBoard(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	cells := AllCells()
	var b Board
	for i := 0; i < 40; i++ {
		a := cells[r.Intn(len(cells))]
		c := cells[r.Intn(len(cells))]
		got, ok := Distance(&b, a, c)
		if !ok {
			t.Fatalf("Distance(%v, %v) unreachable on an empty board", a, c)
		}
		if want := HexDist(a, c); got != want {
			t.Errorf("Distance(%v, %v) = %d, want %d", a, c, got, want)
		}
	}
	if d, ok := Distance(&b, Cell{6, 6}, Cell{6, 6}); !ok || d != 0 {
		t.Errorf("Distance to itself = %d, %v, want 0", d, ok)
	}
}

func TestDistanceThroughOccupiedEndpoints(t *testing.T) {
	var b Board
	b.mark(Cell{6, 6})
	b.mark(Cell{6, 3})
	// Both endpoints are heads; the search still runs from one to the other.
	got, ok := Distance(&b, Cell{6, 6}, Cell{6, 3})
	if !ok || got != 3 {
		t.Errorf("Distance = %d, %v; want 3, true", got, ok)
	}
	if !b.Occupied(Cell{6, 6}) || !b.Occupied(Cell{6, 3}) {
		t.Error("Distance changed the caller's board")
	}
}

func TestDistanceUnreachable(t *testing.T) {
	var b Board
	// Wall off row 6 completely.
	for _, c := range AllCells() {
		if c.Y == 6 {
			b.mark(c)
		}
	}
	before := b
	if d, ok := Distance(&b, Cell{6, 3}, Cell{6, 9}); ok {
		t.Errorf("Distance across a full wall = %d, want unreachable", d)
	}
	if b != before {
		t.Error("Distance changed the caller's board")
	}
}

func TestReachableAreaEmptyBoard(t *testing.T) {
	var b Board
	if got := ReachableArea(&b, Cell{6, 6}); got != 126 {
		t.Errorf("ReachableArea from centre = %d, want 126", got)
	}
	b.mark(Cell{6, 6})
	if got := ReachableArea(&b, Cell{6, 6}); got != 126 {
		t.Errorf("ReachableArea from occupied centre = %d, want 126", got)
	}
}

func TestReachableAreaEnclosed(t *testing.T) {
	var b Board
	centre := Cell{6, 6}
	for _, n := range b.Neighbors(centre) {
		b.mark(n)
	}
	if got := ReachableArea(&b, centre); got != 0 {
		t.Errorf("ReachableArea of an enclosed cell = %d, want 0", got)
	}
}

func TestFloodFillOrderIndependent(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	ctx := context.Background()
	for i := 0; i < 25; i++ {
		b := randomBoard(r, 0.35)
		for _, c := range AllCells() {
			stack, err := floodFill(ctx, &b, c, stackFrontier)
			if err != nil {
				t.Fatal(err)
			}
			queue, err := floodFill(ctx, &b, c, queueFrontier)
			if err != nil {
				t.Fatal(err)
			}
			if stack != queue {
				t.Fatalf("board %d from %v: stack %d != queue %d", i, c, stack, queue)
			}
		}
	}
}

func TestSearchesHonourCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var b Board
	if _, _, err := DistanceContext(ctx, &b, Cell{6, 0}, Cell{6, 12}); !errors.Is(err, context.Canceled) {
		t.Errorf("DistanceContext error = %v, want context.Canceled", err)
	}
	if _, err := ReachableAreaContext(ctx, &b, Cell{6, 6}); !errors.Is(err, context.Canceled) {
		t.Errorf("ReachableAreaContext error = %v, want context.Canceled", err)
	}
}
