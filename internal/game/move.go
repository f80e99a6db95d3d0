package game

import "fmt"

// Direction is one of the six hex facings, interpreted modulo 6.
type Direction int

// Move is the signed change of facing for one step, in [MinMove, MaxMove].
type Move int

const (
	MinMove Move = -2
	MaxMove Move = 2
)

// Directions holds the unit displacement for each facing.
var Directions = [6]Cell{
	{0, -1}, {1, -1}, {1, 0},
	{0, 1}, {-1, 1}, {-1, 0},
}

// Norm folds d into [0, 6).
func (d Direction) Norm() Direction {
	return ((d % 6) + 6) % 6
}

// Turn returns the facing after applying m.
func (d Direction) Turn(m Move) Direction {
	return (d + Direction(m)).Norm()
}

// Valid reports whether d is already in [0, 6).
func (d Direction) Valid() bool {
	return d >= 0 && d < 6
}

// DirectionOffset returns the unit displacement for d mod 6.
func DirectionOffset(d Direction) Cell {
	return Directions[d.Norm()]
}

// Step takes one step from pos while turning by m.
func Step(pos Cell, dir Direction, m Move) (Cell, Direction) {
	nd := dir.Turn(m)
	return pos.Add(Directions[nd]), nd
}

// AllMoves lists every move in ascending order.
func AllMoves() []Move {
	moves := make([]Move, 0, MaxMove-MinMove+1)
	for m := MinMove; m <= MaxMove; m++ {
		moves = append(moves, m)
	}
	return moves
}

// LegalMoves filters AllMoves to those whose step lands on a playable cell.
func LegalMoves(b *Board, pos Cell, dir Direction) []Move {
	var moves []Move
	for m := MinMove; m <= MaxMove; m++ {
		if next, _ := Step(pos, dir, m); b.Playable(next) {
			moves = append(moves, m)
		}
	}
	return moves
}

// Valid reports whether m is inside [MinMove, MaxMove].
func (m Move) Valid() bool {
	return m >= MinMove && m <= MaxMove
}

func (m Move) String() string {
	switch {
	case m == 0:
		return "straight"
	case m < 0:
		return fmt.Sprintf("left%d", -m)
	default:
		return fmt.Sprintf("right%d", m)
	}
}
