package strategy

import (
	"golang.org/x/exp/rand"

	"baduk/game"
)

// Q-learning defaults.
const (
	defaultAlpha        = 0.3
	defaultGamma        = 0.9
	defaultEpsilon      = 1.0
	defaultEpsilonDecay = 0.99
	defaultMinEpsilon   = 0.1

	// Non-terminal rewards are the heuristic margin shrunk into
	// roughly the same range as the terminal win/loss signal.
	rewardScale = 10.0
)

// LearnerOption tunes a Learner.
type LearnerOption func(*Learner)

func WithLearnerSeed(seed uint64) LearnerOption {
	return func(l *Learner) {
		l.rng = rand.New(rand.NewSource(seed))
	}
}

// WithAlpha sets the learning rate.
func WithAlpha(alpha float64) LearnerOption {
	return func(l *Learner) {
		if alpha > 0 {
			l.alpha = alpha
		}
	}
}

// WithGamma sets the discount factor.
func WithGamma(gamma float64) LearnerOption {
	return func(l *Learner) {
		if gamma > 0 {
			l.gamma = gamma
		}
	}
}

// WithEpsilon sets the initial exploration rate. Zero disables
// exploration entirely, for evaluation play with a trained table.
func WithEpsilon(epsilon float64) LearnerOption {
	return func(l *Learner) {
		l.epsilon = epsilon
	}
}

// WithEpsilonDecay sets the per-episode decay factor and floor.
func WithEpsilonDecay(decay, floor float64) LearnerOption {
	return func(l *Learner) {
		if decay > 0 && decay <= 1 {
			l.epsilonDecay = decay
		}
		if floor >= 0 {
			l.minEpsilon = floor
		}
	}
}

// Learner is a tabular Q-learning strategy: epsilon-greedy move choice
// over the Q-values of the legal placements, with temporal-difference
// updates fed in by a trainer through Observe. The table is injected, so
// several learners may share (and concurrently improve) one table while
// tests isolate theirs.
type Learner struct {
	table        *QTable
	rng          *rand.Rand
	alpha        float64
	gamma        float64
	epsilon      float64
	epsilonDecay float64
	minEpsilon   float64
}

func NewLearner(table *QTable, options ...LearnerOption) (*Learner, error) {
	if table == nil {
		return nil, &game.ConfigurationError{Setting: "qlearn table", Value: nil}
	}
	l := &Learner{
		table:        table,
		rng:          rand.New(rand.NewSource(0)),
		alpha:        defaultAlpha,
		gamma:        defaultGamma,
		epsilon:      defaultEpsilon,
		epsilonDecay: defaultEpsilonDecay,
		minEpsilon:   defaultMinEpsilon,
	}
	for _, option := range options {
		option(l)
	}
	return l, nil
}

// Table exposes the injected store, e.g. for saving after a run.
func (l *Learner) Table() *QTable {
	return l.table
}

// Epsilon returns the current exploration rate.
func (l *Learner) Epsilon() float64 {
	return l.epsilon
}

func (l *Learner) SelectMove(s *game.BoardState, side game.Color) game.Move {
	s = aligned(s, side)
	moves := placements(s, side)
	if len(moves) == 0 {
		return game.Pass()
	}

	if l.rng.Float64() < l.epsilon {
		return moves[l.rng.Intn(len(moves))]
	}

	best := l.qValue(s, moves[0], side)
	bestMoves := moves[:1]
	for _, m := range moves[1:] {
		q := l.qValue(s, m, side)
		if q > best {
			best = q
			bestMoves = bestMoves[:0]
		}
		if q == best {
			bestMoves = append(bestMoves, m)
		}
	}
	return bestMoves[l.rng.Intn(len(bestMoves))]
}

// qValue looks up Q(s, m); unseen pairs default to a one-ply heuristic
// estimate rather than zero, which gives the greedy arm something to
// rank before the table fills in.
func (l *Learner) qValue(s *game.BoardState, m game.Move, side game.Color) float64 {
	if value, ok := l.table.Get(s, m); ok {
		return value
	}
	next, err := game.Apply(s, m)
	if err != nil {
		return 0
	}
	return game.Heuristic(next, side)
}

// Observe applies the temporal-difference update for one transition:
// Q(s,a) += alpha * (r + gamma*max_a' Q(s',a') - Q(s,a)).
func (l *Learner) Observe(prev *game.BoardState, move game.Move, next *game.BoardState, side game.Color) {
	prev = aligned(prev, side)

	maxFuture := 0.0
	if !game.IsTerminal(next) {
		futureState := aligned(next, side)
		for i, m := range placements(futureState, side) {
			q := l.qValue(futureState, m, side)
			if i == 0 || q > maxFuture {
				maxFuture = q
			}
		}
	}

	reward := l.Reward(next, side)
	current := l.qValue(prev, move, side)
	updated := current + l.alpha*(reward+l.gamma*maxFuture-current)
	l.table.Set(prev, move, updated)
}

// Reward scores the position reached by the learner's move: the full
// win/draw/loss signal at terminal states, a shaped heuristic margin
// otherwise.
func (l *Learner) Reward(s *game.BoardState, side game.Color) float64 {
	if game.IsTerminal(s) {
		switch game.Winner(s) {
		case side:
			return 1
		case game.Empty:
			return 0
		default:
			return -1
		}
	}
	return game.Heuristic(s, side) / rewardScale
}

// EndEpisode decays the exploration rate towards its floor. Called once
// per finished game.
func (l *Learner) EndEpisode() {
	l.epsilon *= l.epsilonDecay
	if l.epsilon < l.minEpsilon {
		l.epsilon = l.minEpsilon
	}
}
