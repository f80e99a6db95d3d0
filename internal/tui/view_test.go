package tui

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"hextrail_go/internal/game"
	"hextrail_go/internal/match"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	s.SetSize(40, 20)
	t.Cleanup(s.Fini)
	return s
}

func runeAt(s tcell.SimulationScreen, col, row int) rune {
	cells, w, _ := s.GetContents()
	c := cells[row*w+col]
	if len(c.Runes) == 0 {
		return ' '
	}
	return c.Runes[0]
}

func TestPositionKeepsNeighboursAdjacent(t *testing.T) {
	seen := map[[2]int]game.Cell{}
	for _, c := range game.AllCells() {
		col, row := Position(c)
		if prev, ok := seen[[2]int{col, row}]; ok {
			t.Fatalf("%v and %v share screen cell (%d,%d)", prev, c, col, row)
		}
		seen[[2]int{col, row}] = c
		for _, d := range game.Directions {
			n := c.Add(d)
			if !game.InBounds(n) {
				continue
			}
			ncol, nrow := Position(n)
			dc, dr := ncol-col, nrow-row
			if dr < -1 || dr > 1 || dc < -2 || dc > 2 || (dr == 0 && dc == 0) {
				t.Errorf("%v -> %v lands %d cols %d rows away", c, n, dc, dr)
			}
		}
	}
}

func TestRenderShowsHeadsAndTrails(t *testing.T) {
	s := newScreen(t)
	gs := game.NewGameState()
	if _, err := gs.MakeMoves(0, 0); err != nil {
		t.Fatal(err)
	}
	Render(s, gs, "hi")
	s.Show()

	checks := []struct {
		c    game.Cell
		want rune
	}{
		{game.Cell{X: 6, Y: 9}, 'A'},
		{game.Cell{X: 6, Y: 3}, 'B'},
		{game.Cell{X: 6, Y: 10}, 'a'},
		{game.Cell{X: 6, Y: 2}, 'b'},
		{game.Cell{X: 6, Y: 6}, '.'},
	}
	for _, tc := range checks {
		col, row := Position(tc.c)
		if got := runeAt(s, col, row); got != tc.want {
			t.Errorf("cell %v shows %q, want %q", tc.c, got, tc.want)
		}
	}
	if got := runeAt(s, originX, originY+game.BoardSize+1); got != 'h' {
		t.Errorf("status line starts with %q", got)
	}
}

func TestViewerQuitsOnQ(t *testing.T) {
	s := newScreen(t)
	v := &Viewer{
		Screen: s,
		Agents: [2]match.Agent{&match.Scripted{}, &match.Scripted{}},
		Delay:  time.Millisecond,
	}
	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	done := make(chan error, 1)
	go func() { done <- v.Run(context.Background()) }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("viewer did not quit")
	}
}
