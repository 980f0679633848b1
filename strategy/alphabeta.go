package strategy

import (
	"math"

	"baduk/game"
)

// AlphaBeta is minimax with alpha/beta pruning. For any tie-free
// evaluator it returns a move of the same value as Minimax at the same
// depth while evaluating no more leaves. Only leaf values are memoized:
// interior values computed under a narrowed window are bounds, not exact,
// so caching them would change the result.
type AlphaBeta struct {
	depth    int
	evaluate game.Evaluate
	leaves   int
}

func NewAlphaBeta(depth int, evaluate game.Evaluate) (*AlphaBeta, error) {
	if depth <= 0 {
		return nil, &game.ConfigurationError{Setting: "alpha_beta depth", Value: depth}
	}
	if evaluate == nil {
		evaluate = game.ScoreMargin
	}
	return &AlphaBeta{depth: depth, evaluate: evaluate}, nil
}

func (a *AlphaBeta) SelectMove(s *game.BoardState, side game.Color) game.Move {
	s = aligned(s, side)
	a.leaves = 0
	memo := make(map[memoKey]float64)

	alpha := math.Inf(-1)
	beta := math.Inf(1)
	bestMove := game.Pass()
	for _, mv := range placements(s, side) {
		next, err := game.Apply(s, mv)
		if err != nil {
			continue
		}
		value := a.search(next, side, a.depth-1, alpha, beta, false, memo)
		if value > alpha {
			alpha = value
			bestMove = mv
		}
	}
	return bestMove
}

func (a *AlphaBeta) search(s *game.BoardState, rootSide game.Color, depth int, alpha, beta float64, maximizing bool, memo map[memoKey]float64) float64 {
	moves := placements(s, s.ToMove)
	if depth == 0 || len(moves) == 0 {
		key := memoKey{hash: s.Hash(), side: s.ToMove, depth: depth}
		if value, ok := memo[key]; ok {
			return value
		}
		a.leaves++
		value := a.evaluate(s, rootSide)
		memo[key] = value
		return value
	}

	if maximizing {
		best := math.Inf(-1)
		for _, mv := range moves {
			next, err := game.Apply(s, mv)
			if err != nil {
				continue
			}
			value := a.search(next, rootSide, depth-1, alpha, beta, false, memo)
			best = math.Max(best, value)
			alpha = math.Max(alpha, value)
			if beta <= alpha {
				break // beta cut-off
			}
		}
		return best
	}

	best := math.Inf(1)
	for _, mv := range moves {
		next, err := game.Apply(s, mv)
		if err != nil {
			continue
		}
		value := a.search(next, rootSide, depth-1, alpha, beta, true, memo)
		best = math.Min(best, value)
		beta = math.Min(beta, value)
		if beta <= alpha {
			break // alpha cut-off
		}
	}
	return best
}

// LeafEvals reports how many leaves the last SelectMove evaluated.
func (a *AlphaBeta) LeafEvals() int {
	return a.leaves
}
