package game

// undoInfo holds what one turn changed, enough to roll it back.
type undoInfo struct {
	players  [2]PlayerState
	alive    [2]bool
	turn     int
	gameOver bool
	winner   Side
	marked   []Cell
}

// TurnRecord describes one played turn.
type TurnRecord struct {
	Moves   [2]Move
	Crashed [2]bool
	undo    undoInfo
}

func (gs *GameState) saveUndo() undoInfo {
	return undoInfo{
		players:  gs.Players,
		alive:    gs.Alive,
		turn:     gs.Turn,
		gameOver: gs.GameOver,
		winner:   gs.Winner,
		marked:   make([]Cell, 0, 2),
	}
}

// Undo rolls back the turn described by rec. Turns must be undone in reverse order.
func (gs *GameState) Undo(rec TurnRecord) {
	for i := len(rec.undo.marked) - 1; i >= 0; i-- {
		c := rec.undo.marked[i]
		gs.Board[c.Y][c.X] = false
		gs.Owners[c.Y][c.X] = NoSide
	}
	gs.Players = rec.undo.players
	gs.Alive = rec.undo.alive
	gs.Turn = rec.undo.turn
	gs.GameOver = rec.undo.gameOver
	gs.Winner = rec.undo.winner
}
