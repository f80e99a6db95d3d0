package game

import "context"

// frontier selects how the flood fill pops cells. The count does not depend on it.
type frontier int

const (
	stackFrontier frontier = iota
	queueFrontier
)

// Distance returns the number of steps from `from` to `to` through playable
// cells, or ok=false when `to` cannot be reached. The count is 0-based:
// Distance(b, c, c) is 0.
func Distance(b *Board, from, to Cell) (int, bool) {
	d, ok, _ := DistanceContext(context.Background(), b, from, to)
	return d, ok
}

// DistanceContext is Distance with a cancellation check before every expansion.
func DistanceContext(ctx context.Context, b *Board, from, to Cell) (int, bool, error) {
	work := *b
	if InBounds(from) {
		work.mark(from)
	}
	if InBounds(to) {
		work[to.Y][to.X] = false
	}

	type item struct {
		c    Cell
		dist int
	}
	queue := []item{{from, 0}}
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return 0, false, err
		}
		it := queue[0]
		queue = queue[1:]
		if it.c == to {
			return it.dist, true, nil
		}
		for _, d := range Directions {
			n := it.c.Add(d)
			if work.Playable(n) {
				work.mark(n)
				queue = append(queue, item{n, it.dist + 1})
			}
		}
	}
	return 0, false, nil
}

// ReachableArea counts the playable cells reachable from `from`, not counting
// `from` itself. An enclosed start yields 0.
func ReachableArea(b *Board, from Cell) int {
	n, _ := ReachableAreaContext(context.Background(), b, from)
	return n
}

// ReachableAreaContext is ReachableArea with a cancellation check before every expansion.
func ReachableAreaContext(ctx context.Context, b *Board, from Cell) (int, error) {
	return floodFill(ctx, b, from, stackFrontier)
}

func floodFill(ctx context.Context, b *Board, from Cell, order frontier) (int, error) {
	work := *b
	if InBounds(from) {
		work.mark(from)
	}

	count := 0
	pending := []Cell{from}
	for len(pending) > 0 {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		var c Cell
		if order == queueFrontier {
			c, pending = pending[0], pending[1:]
		} else {
			c, pending = pending[len(pending)-1], pending[:len(pending)-1]
		}
		for _, d := range Directions {
			n := c.Add(d)
			if work.Playable(n) {
				work.mark(n)
				count++
				pending = append(pending, n)
			}
		}
	}
	return count, nil
}
