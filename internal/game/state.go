package game

import (
	"errors"
	"fmt"
)

// Side identifies one of the two players. NoSide marks a draw.
type Side int

const (
	NoSide Side = iota
	PlayerA
	PlayerB
)

var (
	ErrGameOver = errors.New("game is over")
	ErrBadMove  = errors.New("move must be in [-2, 2]")
)

// Opponent returns the other side.
func Opponent(s Side) Side {
	switch s {
	case PlayerA:
		return PlayerB
	case PlayerB:
		return PlayerA
	}
	return NoSide
}

func (s Side) index() int { return int(s) - 1 }

func (s Side) String() string {
	switch s {
	case PlayerA:
		return "A"
	case PlayerB:
		return "B"
	}
	return "draw"
}

// Starting heads: A at the bottom facing up, B at the top facing down.
var (
	StartA = PlayerState{Pos: Cell{6, 10}, Dir: 0}
	StartB = PlayerState{Pos: Cell{6, 2}, Dir: 3}
)

// GameState is a full match: the trail board, both heads and the outcome.
type GameState struct {
	Board Board
	// Owners records which side laid each trail cell; cells occupied before
	// the match started stay NoSide.
	Owners   [BoardSize][BoardSize]Side
	Players  [2]PlayerState
	Alive    [2]bool
	Turn     int
	GameOver bool
	Winner   Side // NoSide together with GameOver means a draw
}

// NewGameState places both players at their start cells.
func NewGameState() *GameState {
	return NewGameStateFrom(Board{}, StartA, StartB)
}

// NewGameStateFrom starts a match on b with the given heads. Head cells are
// marked occupied.
func NewGameStateFrom(b Board, a, bp PlayerState) *GameState {
	gs := &GameState{
		Board:   b,
		Players: [2]PlayerState{a, bp},
		Alive:   [2]bool{true, true},
	}
	for i, p := range gs.Players {
		gs.Board.mark(p.Pos)
		gs.Owners[p.Pos.Y][p.Pos.X] = Side(i + 1)
	}
	return gs
}

// Player returns the head of side s.
func (gs *GameState) Player(s Side) PlayerState {
	return gs.Players[s.index()]
}

// Snapshot is the view the agent of side s decides from.
func (gs *GameState) Snapshot(s Side) Snapshot {
	return Snapshot{
		Board:    gs.Board,
		Self:     gs.Players[s.index()],
		Opponent: gs.Players[Opponent(s).index()],
	}
}

// MakeMoves plays one simultaneous turn. A player crashes when its target is
// off the grid or occupied; both crash when they aim at the same cell.
func (gs *GameState) MakeMoves(a, b Move) (TurnRecord, error) {
	if gs.GameOver {
		return TurnRecord{}, ErrGameOver
	}
	for _, m := range []Move{a, b} {
		if !m.Valid() {
			return TurnRecord{}, fmt.Errorf("move %d: %w", m, ErrBadMove)
		}
	}

	rec := TurnRecord{Moves: [2]Move{a, b}, undo: gs.saveUndo()}
	var targets [2]PlayerState
	for i, m := range rec.Moves {
		pos, dir := Step(gs.Players[i].Pos, gs.Players[i].Dir, m)
		targets[i] = PlayerState{Pos: pos, Dir: dir}
		rec.Crashed[i] = !gs.Board.Playable(pos)
	}
	if targets[0].Pos == targets[1].Pos {
		rec.Crashed = [2]bool{true, true}
	}

	for i := range targets {
		if rec.Crashed[i] {
			gs.Alive[i] = false
			continue
		}
		gs.Board.mark(targets[i].Pos)
		gs.Owners[targets[i].Pos.Y][targets[i].Pos.X] = Side(i + 1)
		rec.undo.marked = append(rec.undo.marked, targets[i].Pos)
		gs.Players[i] = targets[i]
	}
	gs.Turn++
	gs.checkGameOver()
	return rec, nil
}

// checkGameOver ends the match once either player has crashed.
func (gs *GameState) checkGameOver() {
	if gs.Alive[0] && gs.Alive[1] {
		return
	}
	gs.GameOver = true
	switch {
	case gs.Alive[0]:
		gs.Winner = PlayerA
	case gs.Alive[1]:
		gs.Winner = PlayerB
	default:
		gs.Winner = NoSide
	}
}

// Owner returns the side whose trail covers c, NoSide for free or pre-blocked cells.
func (gs *GameState) Owner(c Cell) Side {
	if !InBounds(c) {
		return NoSide
	}
	return gs.Owners[c.Y][c.X]
}

// Clone returns an independent copy.
func (gs *GameState) Clone() *GameState {
	c := *gs
	return &c
}
