package game

// Territory tags an empty region by the stone colors bordering it.
// Regions bordered exclusively by one color belong to that color;
// everything else (mixed borders, or a fully empty board) is neutral.

// Region is a maximal connected set of empty points plus the color it
// scores for (Empty means neutral). Produced at game end, never persisted.
type Region struct {
	Points []int // row-major indices
	Owner  Color
}

// Territory partitions the empty points of s into tagged regions.
func Territory(s *BoardState) []Region {
	seen := make([]bool, len(s.grid))
	var regions []Region

	var nbuf [][2]int
	for start := range s.grid {
		if s.grid[start] != Empty || seen[start] {
			continue
		}

		var points []int
		borders := map[Color]bool{}
		stack := []int{start}
		seen[start] = true
		for len(stack) > 0 {
			idx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			points = append(points, idx)

			nbuf = s.neighbors(idx/s.Size, idx%s.Size, nbuf)
			for _, n := range nbuf {
				nidx := n[0]*s.Size + n[1]
				if c := s.grid[nidx]; c == Empty {
					if !seen[nidx] {
						seen[nidx] = true
						stack = append(stack, nidx)
					}
				} else {
					borders[c] = true
				}
			}
		}

		owner := Empty
		if borders[Black] && !borders[White] {
			owner = Black
		} else if borders[White] && !borders[Black] {
			owner = White
		}
		regions = append(regions, Region{Points: points, Owner: owner})
	}
	return regions
}

// Score returns the area score for both sides: live stones plus empty
// regions bordered exclusively by that side. Neutral regions count for
// neither, so blackScore + whiteScore + neutral always equals Size².
// Equal scores are a draw; no komi is applied.
func Score(s *BoardState) (blackScore, whiteScore int) {
	blackScore = s.Stones(Black)
	whiteScore = s.Stones(White)
	for _, region := range Territory(s) {
		switch region.Owner {
		case Black:
			blackScore += len(region.Points)
		case White:
			whiteScore += len(region.Points)
		}
	}
	return blackScore, whiteScore
}

// Winner returns the side with the strictly greater area score, or Empty
// on a draw.
func Winner(s *BoardState) Color {
	black, white := Score(s)
	switch {
	case black > white:
		return Black
	case white > black:
		return White
	default:
		return Empty
	}
}
