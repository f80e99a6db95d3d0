package game

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"
)

// PlayerState is a player's head cell and facing.
type PlayerState struct {
	Pos Cell      `json:"pos"`
	Dir Direction `json:"dir"`
}

// Snapshot is everything one decision sees: the occupancy and both players,
// the acting player first.
type Snapshot struct {
	Board    Board
	Self     PlayerState
	Opponent PlayerState
}

// Validate rejects snapshots that break the input contract.
func (s *Snapshot) Validate() error {
	for _, p := range []struct {
		name string
		st   PlayerState
	}{{"self", s.Self}, {"opponent", s.Opponent}} {
		if !InBounds(p.st.Pos) {
			return fmt.Errorf("%s position %v: %w", p.name, p.st.Pos, ErrOutOfBounds)
		}
		if !p.st.Dir.Valid() {
			return fmt.Errorf("%s direction %d: %w", p.name, p.st.Dir, ErrBadDirection)
		}
	}
	return nil
}

// Agent picks moves with the ray-casting heuristic.
type Agent struct {
	// Workers > 1 evaluates candidate moves concurrently, each on its own board copy.
	Workers int
	// Logger receives one line per evaluated candidate. Nil is silent.
	Logger *log.Logger
}

// ChooseMove runs the default sequential Agent.
func ChooseMove(ctx context.Context, s Snapshot) (Move, error) {
	var a Agent
	return a.ChooseMove(ctx, s)
}

// ChooseMove returns the move for s.Self. With no legal move it returns 0.
// The only errors are contract violations and ctx cancellation.
func (a *Agent) ChooseMove(ctx context.Context, s Snapshot) (Move, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	moves := LegalMoves(&s.Board, s.Self.Pos, s.Self.Dir)
	if len(moves) == 0 {
		a.logf("no legal move from %v facing %d, going straight", s.Self.Pos, s.Self.Dir)
		return 0, nil
	}
	if len(moves) == 1 {
		return moves[0], nil
	}

	if a.Workers > 1 {
		return a.chooseParallel(ctx, &s, moves)
	}

	var best evaluation
	for i, m := range moves {
		ev, err := evaluateMove(ctx, &s, m)
		if err != nil {
			return 0, err
		}
		a.trace(ev)
		if ev.escape {
			return m, nil
		}
		if i == 0 || better(ev, best) {
			best = ev
		}
	}
	return best.move, nil
}

// chooseParallel evaluates every candidate and resolves them in move order,
// so the result matches the sequential scan.
func (a *Agent) chooseParallel(ctx context.Context, s *Snapshot, moves []Move) (Move, error) {
	results := make([]evaluation, len(moves))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.Workers)
	for i, m := range moves {
		i, m := i, m
		g.Go(func() error {
			ev, err := evaluateMove(gctx, s, m)
			if err != nil {
				return err
			}
			results[i] = ev
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	best := results[0]
	for _, ev := range results {
		a.trace(ev)
		if ev.escape {
			return ev.move, nil
		}
		if better(ev, best) {
			best = ev
		}
	}
	return best.move, nil
}

func (a *Agent) trace(ev evaluation) {
	if ev.escape {
		a.logf("move %+d: escape, opponent sealed with %d cells", ev.move, ev.opponentArea)
		return
	}
	a.logf("move %+d: ray end %v, best %.1f / opp %d = %.3f",
		ev.move, ev.rayEnd, ev.bestArea, ev.opponentArea, ev.score)
}

func (a *Agent) logf(format string, args ...any) {
	if a.Logger != nil {
		a.Logger.Printf(format, args...)
	}
}
