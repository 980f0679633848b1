package strategy

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"baduk/game"
)

const (
	defaultIterations  = 50
	defaultCutoff      = 50
	defaultExploration = 1.5
)

// MonteCarloOption tunes a MonteCarlo strategy.
type MonteCarloOption func(*MonteCarlo)

// WithIterations sets the rollout budget per move.
func WithIterations(iterations int) MonteCarloOption {
	return func(m *MonteCarlo) {
		if iterations > 0 {
			m.iterations = iterations
		}
	}
}

// WithDuration sets a wall-clock budget per move instead of a fixed
// iteration count. The deadline is only checked between rollouts, never
// mid-rollout, so every backed-up outcome is fully evaluated.
func WithDuration(duration time.Duration) MonteCarloOption {
	return func(m *MonteCarlo) {
		if duration > 0 {
			m.duration = duration
			m.iterations = 0
		}
	}
}

// WithGoroutines sets the number of parallel rollout workers.
func WithGoroutines(goroutines int) MonteCarloOption {
	return func(m *MonteCarlo) {
		if goroutines > 0 {
			m.goroutines = goroutines
		}
	}
}

// WithCutoff bounds rollout length in plies; positions at the cutoff are
// scored by the evaluator instead of playing to the end.
func WithCutoff(plies int) MonteCarloOption {
	return func(m *MonteCarlo) {
		if plies > 0 {
			m.cutoff = plies
		}
	}
}

// WithExploration sets the UCB exploration constant.
func WithExploration(c float64) MonteCarloOption {
	return func(m *MonteCarlo) {
		if c > 0 {
			m.c = c
		}
	}
}

// WithSeed seeds the rollout RNG; each worker derives its own stream.
func WithSeed(seed uint64) MonteCarloOption {
	return func(m *MonteCarlo) {
		m.seed = seed
	}
}

// WithRolloutEvaluate replaces the evaluator used at rollout cutoffs.
func WithRolloutEvaluate(evaluate game.Evaluate) MonteCarloOption {
	return func(m *MonteCarlo) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

// MonteCarlo runs upper-confidence-bound tree search: repeated
// select/expand/rollout/backup cycles within an iteration or time budget,
// then returns the most visited root move. Lookahead happens entirely on
// forward copies produced by game.Apply; the given state is never touched.
type MonteCarlo struct {
	iterations int
	duration   time.Duration
	goroutines int
	cutoff     int
	c          float64
	seed       uint64
	evaluate   game.Evaluate
}

func NewMonteCarlo(options ...MonteCarloOption) (*MonteCarlo, error) {
	m := &MonteCarlo{
		iterations: defaultIterations,
		goroutines: 1,
		cutoff:     defaultCutoff,
		c:          defaultExploration,
		evaluate:   game.Heuristic,
	}
	for _, option := range options {
		option(m)
	}
	if m.iterations <= 0 && m.duration <= 0 {
		return nil, &game.ConfigurationError{Setting: "monte_carlo budget", Value: m.iterations}
	}
	return m, nil
}

func (m *MonteCarlo) SelectMove(s *game.BoardState, side game.Color) game.Move {
	s = aligned(s, side)
	if len(placements(s, side)) == 0 {
		return game.Pass()
	}

	root := newNode(nil, s, side.Opponent())
	if m.iterations > 0 {
		m.iterate(root, s)
	} else {
		m.countdown(root, s)
	}

	move, ok := root.bestMove()
	if !ok {
		log.Warn().Msg("search explored no moves, passing")
		return game.Pass()
	}
	return move
}

func (m *MonteCarlo) iterate(root *node, state *game.BoardState) {
	task := make(chan struct{}, m.iterations)
	for i := 0; i < m.iterations; i++ {
		task <- struct{}{}
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		rng := rand.New(rand.NewSource(m.seed + uint64(i)))
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range task {
				m.simulate(root, state, rng)
			}
		}()
	}
	wg.Wait()
}

func (m *MonteCarlo) countdown(root *node, state *game.BoardState) {
	deadline := time.Now().Add(m.duration)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		rng := rand.New(rand.NewSource(m.seed + uint64(i)))
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(deadline) {
				m.simulate(root, state, rng)
			}
		}()
	}
	wg.Wait()
}

func (m *MonteCarlo) simulate(root *node, state *game.BoardState, rng *rand.Rand) {
	leaf, leafState := descend(root, state, m.c)
	reward := m.rollout(leafState, rng)
	for n := leaf; n != nil; {
		n = n.backup(reward)
	}
}

func descend(root *node, state *game.BoardState, c float64) (*node, *game.BoardState) {
	parent := root
	child, state, selected := parent.selectOrExpand(state, c)
	for selected && child != parent {
		parent = child
		child, state, selected = parent.selectOrExpand(state, c)
	}
	return child, state
}

// rollout plays uniformly random placements (passing when none are left)
// until the game ends or the cutoff is reached, and returns the outcome
// as a per-side reward function.
func (m *MonteCarlo) rollout(state *game.BoardState, rng *rand.Rand) func(game.Color) float64 {
	for depth := 0; depth < m.cutoff && state.Passes < 2; depth++ {
		moves := placements(state, state.ToMove)
		move := game.Pass()
		if len(moves) > 0 {
			move = moves[rng.Intn(len(moves))]
		}
		next, err := game.Apply(state, move)
		if err != nil {
			break
		}
		state = next
	}

	if game.IsTerminal(state) {
		winner := game.Winner(state)
		return func(side game.Color) float64 {
			switch winner {
			case side:
				return win
			case game.Empty:
				return draw
			default:
				return loss
			}
		}
	}

	// Cutoff state: squash the evaluation margin into [0, 1].
	margin := m.evaluate(state, game.Black)
	bound := float64(state.Size * state.Size)
	blackValue := 0.5 + margin/(2*bound)
	if blackValue > 1 {
		blackValue = 1
	} else if blackValue < 0 {
		blackValue = 0
	}
	return func(side game.Color) float64 {
		if side == game.Black {
			return blackValue
		}
		return 1 - blackValue
	}
}
