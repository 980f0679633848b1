package game

import "fmt"

// Move is either a stone placement at (Row, Col) for the side to move,
// or a pass. A Move is a value: Apply consumes it and returns a new state.
type Move struct {
	Row, Col int
	IsPass   bool
}

// Pass returns the pass move.
func Pass() Move {
	return Move{Row: -1, Col: -1, IsPass: true}
}

// Place returns a placement move at the given point.
func Place(row, col int) Move {
	return Move{Row: row, Col: col}
}

func (m Move) String() string {
	if m.IsPass {
		return "pass"
	}
	return fmt.Sprintf("(%d,%d)", m.Row, m.Col)
}
