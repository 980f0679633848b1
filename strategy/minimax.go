package strategy

import (
	"math"

	"baduk/game"
)

// memoKey identifies a search position: the board fingerprint, the side
// to move at the node, and the remaining depth.
type memoKey struct {
	hash  game.StateHash
	side  game.Color
	depth int
}

// Minimax searches full width to a fixed depth, alternating between
// maximizing its own side and minimizing for the opponent. Leaf values
// come from the evaluator, always from the root side's perspective.
type Minimax struct {
	depth    int
	evaluate game.Evaluate
	leaves   int
}

func NewMinimax(depth int, evaluate game.Evaluate) (*Minimax, error) {
	if depth <= 0 {
		return nil, &game.ConfigurationError{Setting: "minimax depth", Value: depth}
	}
	if evaluate == nil {
		evaluate = game.ScoreMargin
	}
	return &Minimax{depth: depth, evaluate: evaluate}, nil
}

func (m *Minimax) SelectMove(s *game.BoardState, side game.Color) game.Move {
	s = aligned(s, side)
	m.leaves = 0
	memo := make(map[memoKey]float64)

	best := math.Inf(-1)
	bestMove := game.Pass()
	for _, mv := range placements(s, side) {
		next, err := game.Apply(s, mv)
		if err != nil {
			continue
		}
		value := m.search(next, side, m.depth-1, false, memo)
		if value > best {
			best = value
			bestMove = mv
		}
	}
	return bestMove
}

func (m *Minimax) search(s *game.BoardState, rootSide game.Color, depth int, maximizing bool, memo map[memoKey]float64) float64 {
	key := memoKey{hash: s.Hash(), side: s.ToMove, depth: depth}
	if value, ok := memo[key]; ok {
		return value
	}

	moves := placements(s, s.ToMove)
	if depth == 0 || len(moves) == 0 {
		m.leaves++
		value := m.evaluate(s, rootSide)
		memo[key] = value
		return value
	}

	var best float64
	if maximizing {
		best = math.Inf(-1)
		for _, mv := range moves {
			next, err := game.Apply(s, mv)
			if err != nil {
				continue
			}
			best = math.Max(best, m.search(next, rootSide, depth-1, false, memo))
		}
	} else {
		best = math.Inf(1)
		for _, mv := range moves {
			next, err := game.Apply(s, mv)
			if err != nil {
				continue
			}
			best = math.Min(best, m.search(next, rootSide, depth-1, true, memo))
		}
	}
	memo[key] = best
	return best
}

// LeafEvals reports how many leaves the last SelectMove evaluated.
func (m *Minimax) LeafEvals() int {
	return m.leaves
}
