package game

// LegalMoves enumerates every move the given side may play: all empty
// points that are neither suicide nor ko, plus the pass move. The order
// is deterministic (row-major scan, pass last), so seeded strategies
// replay identically.
func LegalMoves(s *BoardState, side Color) []Move {
	moves := make([]Move, 0, len(s.grid)+1)
	for row := 0; row < s.Size; row++ {
		for col := 0; col < s.Size; col++ {
			m := Place(row, col)
			if _, err := applyAs(s, m, side); err == nil {
				moves = append(moves, m)
			}
		}
	}
	return append(moves, Pass())
}

// HasPlacement reports whether the given side has any legal non-pass move.
func HasPlacement(s *BoardState, side Color) bool {
	for row := 0; row < s.Size; row++ {
		for col := 0; col < s.Size; col++ {
			if _, err := applyAs(s, Place(row, col), side); err == nil {
				return true
			}
		}
	}
	return false
}

// Apply plays a move for the side to move and returns the resulting
// state. The input state is never mutated. Placements that are occupied,
// suicidal or violate simple ko fail with *IllegalMoveError; suicide and
// ko are enforced here authoritatively, so search strategies may call
// Apply directly and treat a failure as a pruned branch.
func Apply(s *BoardState, m Move) (*BoardState, error) {
	return applyAs(s, m, s.ToMove)
}

func applyAs(s *BoardState, m Move, side Color) (*BoardState, error) {
	next := s.Copy()
	next.ToMove = side.Opponent()
	next.MoveNumber++
	next.prev = s.grid

	if m.IsPass {
		next.Passes++
		return next, nil
	}

	if !s.onBoard(m.Row, m.Col) {
		return nil, &IllegalMoveError{Move: m, Reason: ReasonOffBoard}
	}
	idx := m.Row*s.Size + m.Col
	if s.grid[idx] != Empty {
		return nil, &IllegalMoveError{Move: m, Reason: ReasonOccupied}
	}

	next.Passes = 0
	next.grid[idx] = side

	// Capture every adjacent opponent group left without liberties.
	captured := false
	var nbuf [][2]int
	nbuf = next.neighbors(m.Row, m.Col, nbuf)
	for _, n := range nbuf {
		if next.At(n[0], n[1]) != side.Opponent() {
			continue
		}
		stones, liberties := next.group(n[0], n[1])
		if liberties == 0 {
			for _, sidx := range stones {
				next.grid[sidx] = Empty
			}
			captured = true
		}
	}

	// A placement that captures nothing and leaves its own group without
	// liberties is suicide.
	if !captured {
		if _, liberties := next.group(m.Row, m.Col); liberties == 0 {
			return nil, &IllegalMoveError{Move: m, Reason: ReasonSuicide}
		}
	}

	// Simple ko: the new position must not repeat the position that stood
	// before the opponent's last move.
	if s.prev != nil && sameGrid(next.grid, s.prev) {
		return nil, &IllegalMoveError{Move: m, Reason: ReasonKo}
	}

	return next, nil
}

// IsTerminal reports whether the game is over: two consecutive passes, or
// no side has any legal placement left.
func IsTerminal(s *BoardState) bool {
	if s.Passes >= 2 {
		return true
	}
	return !HasPlacement(s, Black) && !HasPlacement(s, White)
}
