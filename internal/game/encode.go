package game

import "fmt"

// CollapseOccupancy turns per-cell occupant planes, indexed [y][x][plane], into
// an occupancy board: a cell is occupied when any plane is non-zero.
func CollapseOccupancy(cells [][][]int) (Board, error) {
	var b Board
	if len(cells) != BoardSize {
		return b, fmt.Errorf("%d rows: %w", len(cells), ErrBadGrid)
	}
	for y, row := range cells {
		if len(row) != BoardSize {
			return b, fmt.Errorf("row %d has %d columns: %w", y, len(row), ErrBadGrid)
		}
		for x, planes := range row {
			sum := 0
			for _, v := range planes {
				sum += v
			}
			b[y][x] = sum != 0
		}
	}
	return b, nil
}

// BoardFromRows builds a board from a boolean matrix indexed [y][x].
func BoardFromRows(rows [][]bool) (Board, error) {
	var b Board
	if len(rows) != BoardSize {
		return b, fmt.Errorf("%d rows: %w", len(rows), ErrBadGrid)
	}
	for y, row := range rows {
		if len(row) != BoardSize {
			return b, fmt.Errorf("row %d has %d columns: %w", y, len(row), ErrBadGrid)
		}
		copy(b[y][:], row)
	}
	return b, nil
}

// NewSnapshot assembles a validated snapshot from raw inputs. positions and
// rotations list the acting player first, the opponent second.
func NewSnapshot(cells [][][]int, positions [][2]int, rotations []int) (Snapshot, error) {
	var s Snapshot
	if len(positions) != 2 || len(rotations) != 2 {
		return s, fmt.Errorf("want 2 positions and 2 rotations, got %d and %d",
			len(positions), len(rotations))
	}
	b, err := CollapseOccupancy(cells)
	if err != nil {
		return s, err
	}
	s = Snapshot{
		Board:    b,
		Self:     PlayerState{Pos: Cell{positions[0][0], positions[0][1]}, Dir: Direction(rotations[0])},
		Opponent: PlayerState{Pos: Cell{positions[1][0], positions[1][1]}, Dir: Direction(rotations[1])},
	}
	if err := s.Validate(); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

// Rows exports the board as a boolean matrix indexed [y][x].
func (b *Board) Rows() [][]bool {
	rows := make([][]bool, BoardSize)
	for y := range rows {
		rows[y] = append([]bool(nil), b[y][:]...)
	}
	return rows
}
