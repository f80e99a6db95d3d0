package game

import (
	"errors"
	"testing"
)

func TestNewGameStateMarksHeads(t *testing.T) {
	gs := NewGameState()
	for _, s := range []Side{PlayerA, PlayerB} {
		if !gs.Board.Occupied(gs.Player(s).Pos) {
			t.Errorf("head of %v not occupied", s)
		}
	}
	if got := gs.Board.CountFree(); got != 125 {
		t.Errorf("free cells at start = %d, want 125", got)
	}
	snap := gs.Snapshot(PlayerB)
	if snap.Self != StartB || snap.Opponent != StartA {
		t.Errorf("snapshot for B = %+v / %+v, want B first", snap.Self, snap.Opponent)
	}
}

func TestMakeMovesAdvancesBothHeads(t *testing.T) {
	gs := NewGameState()
	rec, err := gs.MakeMoves(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Crashed != [2]bool{} {
		t.Fatalf("nobody should crash on the first straight move, got %v", rec.Crashed)
	}
	if gs.Player(PlayerA).Pos != (Cell{6, 9}) || gs.Player(PlayerB).Pos != (Cell{6, 3}) {
		t.Errorf("heads at %v and %v, want (6,9) and (6,3)",
			gs.Player(PlayerA).Pos, gs.Player(PlayerB).Pos)
	}
	if !gs.Board.Occupied(Cell{6, 9}) || !gs.Board.Occupied(Cell{6, 3}) {
		t.Error("trail cells not marked")
	}
	if gs.Turn != 1 || gs.GameOver {
		t.Errorf("turn=%d over=%v, want 1 false", gs.Turn, gs.GameOver)
	}
}

func TestHeadOnCollisionIsDraw(t *testing.T) {
	gs := NewGameStateFrom(Board{},
		PlayerState{Pos: Cell{6, 7}, Dir: 0},
		PlayerState{Pos: Cell{6, 5}, Dir: 3})
	rec, err := gs.MakeMoves(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Crashed != [2]bool{true, true} {
		t.Errorf("both should crash into (6,6), got %v", rec.Crashed)
	}
	if !gs.GameOver || gs.Winner != NoSide {
		t.Errorf("over=%v winner=%v, want a draw", gs.GameOver, gs.Winner)
	}
	if gs.Board.Occupied(Cell{6, 6}) {
		t.Error("contested cell should stay free")
	}
}

func TestLeavingTheGridLoses(t *testing.T) {
	gs := NewGameStateFrom(Board{},
		PlayerState{Pos: Cell{6, 0}, Dir: 0},
		PlayerState{Pos: Cell{6, 8}, Dir: 3})
	if _, err := gs.MakeMoves(0, 0); err != nil {
		t.Fatal(err)
	}
	if !gs.GameOver || gs.Winner != PlayerB {
		t.Errorf("over=%v winner=%v, want B to win", gs.GameOver, gs.Winner)
	}
	if _, err := gs.MakeMoves(0, 0); !errors.Is(err, ErrGameOver) {
		t.Errorf("move after the end: got %v, want ErrGameOver", err)
	}
}

func TestMakeMovesRejectsBadMove(t *testing.T) {
	gs := NewGameState()
	if _, err := gs.MakeMoves(3, 0); !errors.Is(err, ErrBadMove) {
		t.Errorf("got %v, want ErrBadMove", err)
	}
	if gs.Turn != 0 {
		t.Error("rejected move must not advance the turn")
	}
}

func TestUndoRestoresState(t *testing.T) {
	gs := NewGameState()
	start := *gs
	var recs []TurnRecord
	for _, mv := range [][2]Move{{0, 0}, {1, -1}, {-2, 2}, {0, 0}} {
		if gs.GameOver {
			break
		}
		rec, err := gs.MakeMoves(mv[0], mv[1])
		if err != nil {
			t.Fatal(err)
		}
		recs = append(recs, rec)
	}
	for i := len(recs) - 1; i >= 0; i-- {
		gs.Undo(recs[i])
	}
	if *gs != start {
		t.Error("undoing every turn did not restore the start position")
	}
}

func TestOwnersFollowTrails(t *testing.T) {
	gs := NewGameState()
	if gs.Owner(StartA.Pos) != PlayerA || gs.Owner(StartB.Pos) != PlayerB {
		t.Fatal("start cells should belong to their players")
	}
	rec, err := gs.MakeMoves(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if gs.Owner(Cell{6, 9}) != PlayerA || gs.Owner(Cell{6, 3}) != PlayerB {
		t.Error("new heads should be owned by their movers")
	}
	if gs.Owner(Cell{-1, 4}) != NoSide {
		t.Error("out of bounds cells have no owner")
	}
	gs.Undo(rec)
	if gs.Owner(Cell{6, 9}) != NoSide {
		t.Error("undo should clear ownership")
	}
}
