package engine

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"baduk/game"
	"baduk/strategy"
)

// Trainer runs Q-learning self-play: every move a learner makes feeds a
// temporal-difference update, and exploration decays once per episode.
// Either side may be a learner; a non-learner side just plays.
type Trainer struct {
	black    strategy.Strategy
	white    strategy.Strategy
	size     int
	episodes int
}

func NewTrainer(black, white strategy.Strategy, size, episodes int) (*Trainer, error) {
	if episodes <= 0 {
		return nil, &game.ConfigurationError{Setting: "training episodes", Value: episodes}
	}
	if _, err := game.NewBoard(size); err != nil {
		return nil, err
	}
	return &Trainer{black: black, white: white, size: size, episodes: episodes}, nil
}

// Run plays all episodes and returns their results.
func (t *Trainer) Run() ([]Result, error) {
	results := make([]Result, 0, t.episodes)
	for episode := 1; episode <= t.episodes; episode++ {
		result, err := t.playEpisode()
		if err != nil {
			return results, fmt.Errorf("episode %d: %w", episode, err)
		}
		results = append(results, result)

		t.endEpisode()
		log.Info().
			Int("episode", episode).
			Int("black", result.BlackScore).
			Int("white", result.WhiteScore).
			Str("winner", result.Winner.String()).
			Msg("training episode finished")
	}
	return results, nil
}

func (t *Trainer) playEpisode() (Result, error) {
	state, err := game.NewBoard(t.size)
	if err != nil {
		return Result{}, err
	}

	for state.MoveNumber < MaxMoves && !game.IsTerminal(state) {
		side := state.ToMove
		strat := t.strategyFor(side)

		move := strat.SelectMove(state, side)
		next, err := game.Apply(state, move)
		if err != nil {
			return Result{}, fmt.Errorf("strategy for %s returned %s: %w", side, move, err)
		}

		if learner, ok := strat.(*strategy.Learner); ok {
			learner.Observe(state, move, next, side)
		}
		state = next
	}

	black, white := game.Score(state)
	return Result{
		Winner:     game.Winner(state),
		BlackScore: black,
		WhiteScore: white,
		Moves:      state.MoveNumber,
	}, nil
}

func (t *Trainer) endEpisode() {
	for _, strat := range []strategy.Strategy{t.black, t.white} {
		if learner, ok := strat.(*strategy.Learner); ok {
			learner.EndEpisode()
		}
	}
}

func (t *Trainer) strategyFor(side game.Color) strategy.Strategy {
	if side == game.Black {
		return t.black
	}
	return t.white
}
