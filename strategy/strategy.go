package strategy

import (
	"time"

	"baduk/game"
)

// Strategy selects a move for one side. Implementations never return an
// illegal move: when no placement is legal they return pass, which is the
// normal end-of-game signal rather than an error.
type Strategy interface {
	SelectMove(s *game.BoardState, side game.Color) game.Move
}

// Params collects every tunable a strategy constructor may need. Zero
// values mean "use the default". New validates the fields the named
// strategy actually uses.
type Params struct {
	Seed       uint64
	Depth      int
	Iterations int
	Duration   time.Duration
	Goroutines int
	Cutoff     int
	C          float64 // MCTS exploration constant
	Epsilon    float64
	Alpha      float64
	Gamma      float64
	Evaluate   game.Evaluate
	Table      *QTable
}

// Strategy names accepted by New.
const (
	NameRandom     = "random"
	NameGreedy     = "greedy"
	NameMinimax    = "minimax"
	NameAlphaBeta  = "alpha_beta"
	NameExpectimax = "expectimax"
	NameMonteCarlo = "monte_carlo"
	NameQLearn     = "qlearn"
)

// Names lists every strategy New accepts, in a stable order.
func Names() []string {
	return []string{
		NameRandom, NameGreedy, NameMinimax, NameAlphaBeta,
		NameExpectimax, NameMonteCarlo, NameQLearn,
	}
}

// New maps a configuration string to a strategy. Unknown names and
// invalid parameters fail with *game.ConfigurationError before any game
// starts.
func New(name string, p Params) (Strategy, error) {
	evaluate := p.Evaluate
	if evaluate == nil {
		evaluate = game.ScoreMargin
	}

	switch name {
	case NameRandom:
		return NewRandom(p.Seed), nil
	case NameGreedy:
		return NewGreedy(p.Seed, game.Heuristic), nil
	case NameMinimax:
		return NewMinimax(orDepth(p.Depth), evaluate)
	case NameAlphaBeta:
		return NewAlphaBeta(orDepth(p.Depth), evaluate)
	case NameExpectimax:
		return NewExpectimax(orDepth(p.Depth), UniformModel(), evaluate)
	case NameMonteCarlo:
		opts := []MonteCarloOption{WithSeed(p.Seed)}
		if p.Iterations > 0 {
			opts = append(opts, WithIterations(p.Iterations))
		}
		if p.Duration > 0 {
			opts = append(opts, WithDuration(p.Duration))
		}
		if p.Goroutines > 0 {
			opts = append(opts, WithGoroutines(p.Goroutines))
		}
		if p.Cutoff > 0 {
			opts = append(opts, WithCutoff(p.Cutoff))
		}
		if p.C > 0 {
			opts = append(opts, WithExploration(p.C))
		}
		return NewMonteCarlo(opts...)
	case NameQLearn:
		table := p.Table
		if table == nil {
			table = NewQTable()
		}
		opts := []LearnerOption{WithLearnerSeed(p.Seed)}
		if p.Epsilon > 0 {
			opts = append(opts, WithEpsilon(p.Epsilon))
		}
		if p.Alpha > 0 {
			opts = append(opts, WithAlpha(p.Alpha))
		}
		if p.Gamma > 0 {
			opts = append(opts, WithGamma(p.Gamma))
		}
		return NewLearner(table, opts...)
	default:
		return nil, &game.ConfigurationError{Setting: "strategy", Value: name}
	}
}

const defaultDepth = 2

func orDepth(depth int) int {
	if depth == 0 {
		return defaultDepth
	}
	return depth
}

// placements returns the legal non-pass moves for side.
func placements(s *game.BoardState, side game.Color) []game.Move {
	moves := game.LegalMoves(s, side)
	return moves[:len(moves)-1] // LegalMoves always appends pass last
}

// aligned returns a state where side is to move, copying only when the
// caller asks a strategy to move out of turn. Keeps game.Apply usable for
// lookahead regardless of the driver's bookkeeping.
func aligned(s *game.BoardState, side game.Color) *game.BoardState {
	if s.ToMove == side {
		return s
	}
	c := s.Copy()
	c.ToMove = side
	return c
}
