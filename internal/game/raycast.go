package game

import "context"

// minOpponentArea stands in for an opponent area of zero so the ratio stays finite.
const minOpponentArea = 1e-3

// evaluation is the outcome of ray casting one candidate move.
type evaluation struct {
	move  Move
	score float64
	// escape marks a dominant wall: the opponent is sealed off and we keep at
	// least as much room. It overrides score comparison.
	escape bool

	rayEnd       Cell
	opponentArea int
	bestArea     float64
}

// castRay marks next occupied and keeps walking the same displacement while
// the following cell is playable. It returns the last marked cell.
func castRay(b *Board, from, next Cell) Cell {
	delta := next.Sub(from)
	b.mark(next)
	end := next
	for b.Playable(end.Add(delta)) {
		end = end.Add(delta)
		b.mark(end)
	}
	return end
}

// ratioScore weighs the best follow-up area against the room left to the opponent.
func ratioScore(bestArea float64, opponentArea int) float64 {
	denom := float64(opponentArea)
	if denom < minOpponentArea {
		denom = minOpponentArea
	}
	return bestArea / denom
}

// evaluateMove scores m for the acting player of s. m must be legal.
func evaluateMove(ctx context.Context, s *Snapshot, m Move) (evaluation, error) {
	ev := evaluation{move: m}

	post := s.Board
	newPos, newDir := Step(s.Self.Pos, s.Self.Dir, m)
	ev.rayEnd = castRay(&post, s.Self.Pos, newPos)

	oppArea, err := ReachableAreaContext(ctx, &post, s.Opponent.Pos)
	if err != nil {
		return ev, err
	}
	ev.opponentArea = oppArea

	_, reachable, err := DistanceContext(ctx, &post, newPos, s.Opponent.Pos)
	if err != nil {
		return ev, err
	}
	if !reachable {
		selfArea, err := ReachableAreaContext(ctx, &post, newPos)
		if err != nil {
			return ev, err
		}
		if selfArea >= oppArea {
			ev.escape = true
			return ev, nil
		}
	}

	for _, next := range AllMoves() {
		follow, _ := Step(ev.rayEnd, newDir, next)
		if !post.Playable(follow) {
			continue
		}
		area, err := ReachableAreaContext(ctx, &post, follow)
		if err != nil {
			return ev, err
		}
		_, contested, err := DistanceContext(ctx, &post, follow, s.Opponent.Pos)
		if err != nil {
			return ev, err
		}
		weighted := float64(area)
		if contested {
			weighted /= 2
		}
		if weighted > ev.bestArea {
			ev.bestArea = weighted
		}
	}

	ev.score = ratioScore(ev.bestArea, oppArea)
	return ev, nil
}

// better orders evaluations: higher score first, then the straighter move,
// then the lower move value.
func better(a, b evaluation) bool {
	if a.score != b.score {
		return a.score > b.score
	}
	if abs(int(a.move)) != abs(int(b.move)) {
		return abs(int(a.move)) < abs(int(b.move))
	}
	return a.move < b.move
}
