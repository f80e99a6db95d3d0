package match

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"hextrail_go/internal/game"
)

// DefaultBudget is the wall-clock allowance for one decision.
const DefaultBudget = time.Second

var ErrBudgetExceeded = errors.New("decision exceeded time budget")

// Decision is one agent's answer for one turn.
type Decision struct {
	Move    game.Move
	Elapsed time.Duration
	// Err is set when the turn was forfeited; Move is then 0.
	Err error
}

// Forfeited reports whether the agent lost its turn.
func (d Decision) Forfeited() bool { return d.Err != nil }

// Runner plays matches under a per-decision time budget.
type Runner struct {
	Budget time.Duration
	// MaxTurns stops a match early; 0 means play until someone crashes.
	MaxTurns int
	Logger   *log.Logger
}

func (r *Runner) budget() time.Duration {
	if r.Budget <= 0 {
		return DefaultBudget
	}
	return r.Budget
}

// Decide asks agent for a move and enforces the budget. A late answer, an
// error or an out-of-range move forfeits the turn: the player goes straight.
func (r *Runner) Decide(ctx context.Context, agent Agent, s game.Snapshot) Decision {
	budget := r.budget()
	dctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	start := time.Now()
	m, err := agent.Decide(dctx, s)
	d := Decision{Move: m, Elapsed: time.Since(start)}
	switch {
	case err != nil:
		d.Err = fmt.Errorf("%s: %w", agent.Name(), err)
	case d.Elapsed > budget:
		d.Err = fmt.Errorf("%s took %v: %w", agent.Name(), d.Elapsed, ErrBudgetExceeded)
	case !m.Valid():
		d.Err = fmt.Errorf("%s answered %d: %w", agent.Name(), m, game.ErrBadMove)
	}
	if d.Err != nil {
		d.Move = 0
		r.logf("turn forfeited: %v", d.Err)
	}
	return d
}

// Play runs a full match from the standard start.
func (r *Runner) Play(ctx context.Context, a, b Agent) (*Record, *game.GameState, error) {
	return r.PlayFrom(ctx, game.NewGameState(), a, b)
}

// PlayFrom runs a match from gs until it ends, MaxTurns is hit or ctx is done.
// Both agents decide concurrently on their own snapshot.
func (r *Runner) PlayFrom(ctx context.Context, gs *game.GameState, a, b Agent) (*Record, *game.GameState, error) {
	rec := &Record{
		AgentA:  a.Name(),
		AgentB:  b.Name(),
		StartA:  gs.Player(game.PlayerA),
		StartB:  gs.Player(game.PlayerB),
		Blocked: blockedCells(gs),
	}
	agents := [2]Agent{a, b}
	for !gs.GameOver {
		if r.MaxTurns > 0 && gs.Turn >= r.MaxTurns {
			break
		}
		var decisions [2]Decision
		var wg sync.WaitGroup
		for i, side := range []game.Side{game.PlayerA, game.PlayerB} {
			i, side := i, side
			wg.Add(1)
			go func() {
				defer wg.Done()
				decisions[i] = r.Decide(ctx, agents[i], gs.Snapshot(side))
			}()
		}
		wg.Wait()
		if err := ctx.Err(); err != nil {
			return rec, gs, err
		}

		if _, err := gs.MakeMoves(decisions[0].Move, decisions[1].Move); err != nil {
			return rec, gs, err
		}
		rec.add(decisions)
	}
	rec.finish(gs)
	r.logf("%s vs %s: winner %s after %d turns", rec.AgentA, rec.AgentB, rec.Winner, gs.Turn)
	return rec, gs, nil
}

func (r *Runner) logf(format string, args ...any) {
	if r.Logger != nil {
		r.Logger.Printf(format, args...)
	}
}
