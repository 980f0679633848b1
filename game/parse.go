package game

import "fmt"

// Parse builds a position from a row-per-string diagram using the same
// symbols Render emits: 'X' black, 'O' white, '.' empty. Spaces are
// ignored. The diagram must be square. The parsed state has no move
// history, so ko cannot constrain the first move played on it.
func Parse(toMove Color, rows ...string) (*BoardState, error) {
	s, err := NewBoard(len(rows))
	if err != nil {
		return nil, err
	}
	s.ToMove = toMove

	for r, row := range rows {
		col := 0
		for _, ch := range row {
			if ch == ' ' {
				continue
			}
			if col >= s.Size {
				return nil, fmt.Errorf("row %d is wider than %d columns", r, s.Size)
			}
			switch ch {
			case 'X':
				s.grid[r*s.Size+col] = Black
			case 'O':
				s.grid[r*s.Size+col] = White
			case '.':
			default:
				return nil, fmt.Errorf("row %d: unknown symbol %q", r, ch)
			}
			col++
		}
		if col != s.Size {
			return nil, fmt.Errorf("row %d has %d columns, want %d", r, col, s.Size)
		}
	}
	return s, nil
}
