package match

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"hextrail_go/internal/game"
)

// Step is one recorded turn.
type Step struct {
	A        game.Move `json:"a"`
	B        game.Move `json:"b"`
	MillisA  float64   `json:"ms_a"`
	MillisB  float64   `json:"ms_b"`
	ForfeitA bool      `json:"forfeit_a,omitempty"`
	ForfeitB bool      `json:"forfeit_b,omitempty"`
}

// Record is a replayable match log.
type Record struct {
	ID     int              `json:"id"`
	AgentA string           `json:"agent_a"`
	AgentB string           `json:"agent_b"`
	StartA game.PlayerState `json:"start_a"`
	StartB game.PlayerState `json:"start_b"`
	Winner string           `json:"winner"`
	Steps  []Step           `json:"steps"`

	// Blocked lists cells occupied before the first turn, heads excluded.
	Blocked []game.Cell `json:"blocked,omitempty"`
}

func (rec *Record) add(d [2]Decision) {
	rec.Steps = append(rec.Steps, Step{
		A:        d[0].Move,
		B:        d[1].Move,
		MillisA:  millis(d[0].Elapsed),
		MillisB:  millis(d[1].Elapsed),
		ForfeitA: d[0].Forfeited(),
		ForfeitB: d[1].Forfeited(),
	})
}

func (rec *Record) finish(gs *game.GameState) {
	if !gs.GameOver {
		rec.Winner = "unfinished"
		return
	}
	rec.Winner = gs.Winner.String()
}

// Forfeits counts forfeited turns for each side.
func (rec *Record) Forfeits() (a, b int) {
	for _, s := range rec.Steps {
		if s.ForfeitA {
			a++
		}
		if s.ForfeitB {
			b++
		}
	}
	return a, b
}

// MaxMillis is the slowest decision of the match.
func (rec *Record) MaxMillis() float64 {
	var worst float64
	for _, s := range rec.Steps {
		worst = max(worst, s.MillisA, s.MillisB)
	}
	return worst
}

// Start returns the position the match began from. A blocked cell or head
// outside the board is an error, as is a bad heading.
func (rec *Record) Start() (*game.GameState, error) {
	var b game.Board
	for _, c := range rec.Blocked {
		if err := b.Set(c, true); err != nil {
			return nil, fmt.Errorf("record %d blocked: %w", rec.ID, err)
		}
	}
	for _, p := range []game.PlayerState{rec.StartA, rec.StartB} {
		if !game.InBounds(p.Pos) {
			return nil, fmt.Errorf("record %d start %v: %w", rec.ID, p.Pos, game.ErrOutOfBounds)
		}
		if !p.Dir.Valid() {
			return nil, fmt.Errorf("record %d start heading %d: %w", rec.ID, p.Dir, game.ErrBadDirection)
		}
	}
	return game.NewGameStateFrom(b, rec.StartA, rec.StartB), nil
}

// blockedCells lists occupied cells of gs other than the two heads.
func blockedCells(gs *game.GameState) []game.Cell {
	var cells []game.Cell
	for _, c := range game.AllCells() {
		if gs.Board.Occupied(c) && c != gs.Players[0].Pos && c != gs.Players[1].Pos {
			cells = append(cells, c)
		}
	}
	return cells
}

// Replay rebuilds the match, returning the final state and the per-turn
// records needed to step back through it.
func (rec *Record) Replay() (*game.GameState, []game.TurnRecord, error) {
	gs, err := rec.Start()
	if err != nil {
		return nil, nil, err
	}
	turns := make([]game.TurnRecord, 0, len(rec.Steps))
	for i, s := range rec.Steps {
		t, err := gs.MakeMoves(s.A, s.B)
		if err != nil {
			return gs, turns, fmt.Errorf("replay step %d: %w", i, err)
		}
		turns = append(turns, t)
	}
	return gs, turns, nil
}

// WriteRecords encodes recs as a JSON array.
func WriteRecords(w io.Writer, recs []*Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	return enc.Encode(recs)
}

// ReadRecords decodes a JSON array written by WriteRecords.
func ReadRecords(r io.Reader) ([]*Record, error) {
	var recs []*Record
	if err := json.NewDecoder(r).Decode(&recs); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return recs, nil
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
