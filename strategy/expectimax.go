package strategy

import (
	"math"

	"baduk/game"
)

// WeightedMove is one entry of an opponent's move distribution. Weights
// are relative; the chance node normalizes them.
type WeightedMove struct {
	Move   game.Move
	Weight float64
}

// OpponentModel describes how a known, non-adversarial opponent actually
// plays from a position: a distribution over its legal moves. Expectimax
// values the opponent's ply by expectation under this distribution
// instead of an adversarial minimum.
type OpponentModel func(s *game.BoardState, side game.Color) []WeightedMove

// UniformModel models a uniformly random opponent.
func UniformModel() OpponentModel {
	return func(s *game.BoardState, side game.Color) []WeightedMove {
		moves := placements(s, side)
		if len(moves) == 0 {
			return []WeightedMove{{Move: game.Pass(), Weight: 1}}
		}
		weighted := make([]WeightedMove, len(moves))
		for i, m := range moves {
			weighted[i] = WeightedMove{Move: m, Weight: 1}
		}
		return weighted
	}
}

// DeterministicModel models an opponent that plays a fixed strategy: the
// distribution is a point mass on that strategy's choice.
func DeterministicModel(opponent Strategy) OpponentModel {
	return func(s *game.BoardState, side game.Color) []WeightedMove {
		return []WeightedMove{{Move: opponent.SelectMove(s, side), Weight: 1}}
	}
}

// Expectimax searches to a fixed depth, maximizing on its own plies and
// taking the expectation over the opponent model on the opponent's plies.
type Expectimax struct {
	depth    int
	model    OpponentModel
	evaluate game.Evaluate
}

func NewExpectimax(depth int, model OpponentModel, evaluate game.Evaluate) (*Expectimax, error) {
	if depth <= 0 {
		return nil, &game.ConfigurationError{Setting: "expectimax depth", Value: depth}
	}
	if model == nil {
		model = UniformModel()
	}
	if evaluate == nil {
		evaluate = game.ScoreMargin
	}
	return &Expectimax{depth: depth, model: model, evaluate: evaluate}, nil
}

func (e *Expectimax) SelectMove(s *game.BoardState, side game.Color) game.Move {
	s = aligned(s, side)
	memo := make(map[memoKey]float64)

	best := math.Inf(-1)
	bestMove := game.Pass()
	for _, mv := range placements(s, side) {
		next, err := game.Apply(s, mv)
		if err != nil {
			continue
		}
		value := e.search(next, side, e.depth-1, memo)
		if value > best {
			best = value
			bestMove = mv
		}
	}
	return bestMove
}

func (e *Expectimax) search(s *game.BoardState, rootSide game.Color, depth int, memo map[memoKey]float64) float64 {
	key := memoKey{hash: s.Hash(), side: s.ToMove, depth: depth}
	if value, ok := memo[key]; ok {
		return value
	}

	if depth == 0 {
		value := e.evaluate(s, rootSide)
		memo[key] = value
		return value
	}

	var value float64
	if s.ToMove == rootSide {
		moves := placements(s, s.ToMove)
		if len(moves) == 0 {
			value = e.evaluate(s, rootSide)
			memo[key] = value
			return value
		}
		value = math.Inf(-1)
		for _, mv := range moves {
			next, err := game.Apply(s, mv)
			if err != nil {
				continue
			}
			value = math.Max(value, e.search(next, rootSide, depth-1, memo))
		}
	} else {
		// Chance node: expectation under the opponent's declared policy.
		var total, weights float64
		for _, wm := range e.model(s, s.ToMove) {
			next, err := game.Apply(s, wm.Move)
			if err != nil {
				continue
			}
			total += wm.Weight * e.search(next, rootSide, depth-1, memo)
			weights += wm.Weight
		}
		if weights == 0 {
			value = e.evaluate(s, rootSide)
		} else {
			value = total / weights
		}
	}
	memo[key] = value
	return value
}
