package game

// Evaluate maps a position to a scalar utility from one side's
// perspective. Implementations are total and bounded by ±Size², so the
// minimax family can alternate maximize/minimize over them meaningfully.
type Evaluate func(s *BoardState, side Color) float64

// ScoreMargin is the default evaluator: the area score differential for
// the given side. Exact but expensive, since it runs full territory
// scoring.
func ScoreMargin(s *BoardState, side Color) float64 {
	black, white := Score(s)
	if side == Black {
		return float64(black - white)
	}
	return float64(white - black)
}

// Heuristic trades accuracy for speed at non-terminal search leaves:
// stone differential plus a quarter point per liberty of difference.
// Bounded by ±Size² like ScoreMargin.
func Heuristic(s *BoardState, side Color) float64 {
	opponent := side.Opponent()
	stones := float64(s.Stones(side) - s.Stones(opponent))
	liberties := float64(totalLiberties(s, side) - totalLiberties(s, opponent))

	value := stones + 0.25*liberties
	bound := float64(s.Size * s.Size)
	if value > bound {
		return bound
	}
	if value < -bound {
		return -bound
	}
	return value
}

// totalLiberties sums the liberty counts over all groups of one color.
func totalLiberties(s *BoardState, color Color) int {
	counted := make([]bool, len(s.grid))
	total := 0
	for idx, c := range s.grid {
		if c != color || counted[idx] {
			continue
		}
		stones, liberties := s.group(idx/s.Size, idx%s.Size)
		for _, sidx := range stones {
			counted[sidx] = true
		}
		total += liberties
	}
	return total
}
