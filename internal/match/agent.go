// Package match plays hextrail games between agents and records them.
package match

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sort"
	"sync"

	"hextrail_go/internal/game"
)

// Agent decides a move for the acting player of a snapshot.
type Agent interface {
	Name() string
	Decide(ctx context.Context, s game.Snapshot) (game.Move, error)
}

// RayCaster wraps the ray-casting heuristic.
type RayCaster struct {
	game.Agent
}

func (*RayCaster) Name() string { return "raycast" }

func (r *RayCaster) Decide(ctx context.Context, s game.Snapshot) (game.Move, error) {
	return r.ChooseMove(ctx, s)
}

// Random plays a uniformly random legal move, straight when there is none.
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (*Random) Name() string { return "random" }

func (r *Random) Decide(_ context.Context, s game.Snapshot) (game.Move, error) {
	moves := game.LegalMoves(&s.Board, s.Self.Pos, s.Self.Dir)
	if len(moves) == 0 {
		return 0, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return moves[r.rng.Intn(len(moves))], nil
}

// Scripted replays a fixed list of moves, then goes straight.
type Scripted struct {
	Moves []game.Move

	mu   sync.Mutex
	next int
}

func (*Scripted) Name() string { return "scripted" }

func (a *Scripted) Decide(context.Context, game.Snapshot) (game.Move, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.next >= len(a.Moves) {
		return 0, nil
	}
	m := a.Moves[a.next]
	a.next++
	return m, nil
}

// Opening plays N random legal moves before handing the game to Agent, so
// deterministic agents produce varied self-play.
type Opening struct {
	Agent
	N int

	rnd  *Random
	mu   sync.Mutex
	seen int
}

// WithOpening wraps a with an n-move random opening.
func WithOpening(a Agent, n int, seed int64) *Opening {
	return &Opening{Agent: a, N: n, rnd: NewRandom(seed)}
}

func (o *Opening) Name() string { return fmt.Sprintf("%s+open%d", o.Agent.Name(), o.N) }

func (o *Opening) Decide(ctx context.Context, s game.Snapshot) (game.Move, error) {
	o.mu.Lock()
	early := o.seen < o.N
	o.seen++
	o.mu.Unlock()
	if early {
		return o.rnd.Decide(ctx, s)
	}
	return o.Agent.Decide(ctx, s)
}

// DefaultWorkers is the per-decision candidate parallelism the cmds start with.
// 1 evaluates candidates sequentially.
const DefaultWorkers = 1

// AgentOptions configures agents built by NewAgent.
type AgentOptions struct {
	Seed    int64
	Workers int
	Logger  *log.Logger
}

var agentFactories = map[string]func(AgentOptions) Agent{
	"raycast": func(o AgentOptions) Agent {
		return &RayCaster{game.Agent{Workers: o.Workers, Logger: o.Logger}}
	},
	"random": func(o AgentOptions) Agent { return NewRandom(o.Seed) },
}

// AgentNames lists the names NewAgent accepts.
func AgentNames() []string {
	names := make([]string, 0, len(agentFactories))
	for n := range agentFactories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// NewAgent builds an agent by name.
func NewAgent(name string, opts AgentOptions) (Agent, error) {
	f, ok := agentFactories[name]
	if !ok {
		return nil, fmt.Errorf("unknown agent %q (have %v)", name, AgentNames())
	}
	return f(opts), nil
}
