package strategy

import (
	"math"

	"golang.org/x/exp/rand"

	"baduk/game"
)

// Greedy looks exactly one ply ahead: it applies every legal placement,
// evaluates the result, and picks a maximum. Ties break by a seeded
// uniform draw among the best moves.
type Greedy struct {
	rng      *rand.Rand
	evaluate game.Evaluate
}

func NewGreedy(seed uint64, evaluate game.Evaluate) *Greedy {
	if evaluate == nil {
		evaluate = game.Heuristic
	}
	return &Greedy{
		rng:      rand.New(rand.NewSource(seed)),
		evaluate: evaluate,
	}
}

func (g *Greedy) SelectMove(s *game.BoardState, side game.Color) game.Move {
	s = aligned(s, side)
	best := math.Inf(-1)
	var bestMoves []game.Move

	for _, m := range placements(s, side) {
		next, err := game.Apply(s, m)
		if err != nil {
			continue // pruned branch
		}
		score := g.evaluate(next, side)
		if score > best {
			best = score
			bestMoves = bestMoves[:0]
		}
		if score == best {
			bestMoves = append(bestMoves, m)
		}
	}

	if len(bestMoves) == 0 {
		return game.Pass()
	}
	return bestMoves[g.rng.Intn(len(bestMoves))]
}
