package engine

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"baduk/game"
	"baduk/strategy"
)

// MaxMoves guards against strategies that never pass; no sensible game on
// a legal board size runs this long.
const MaxMoves = 10000

// Result summarizes one finished game.
type Result struct {
	Winner     game.Color // Empty on a draw
	BlackScore int
	WhiteScore int
	Moves      int
}

// Engine drives one game between two strategies: per turn it asks the
// side to move for a move, applies it through the rules, and stops when
// the rules report a terminal position. It holds the only authoritative
// BoardState; strategies only ever see it read-only.
type Engine struct {
	state *game.BoardState
	black strategy.Strategy
	white strategy.Strategy
}

// Local creates an engine for a fresh size x size game.
func Local(black, white strategy.Strategy, size int) (*Engine, error) {
	state, err := game.NewBoard(size)
	if err != nil {
		return nil, err
	}
	return &Engine{state: state, black: black, white: white}, nil
}

// State returns the current authoritative position.
func (e *Engine) State() *game.BoardState {
	return e.state
}

// Step plays a single turn and reports whether the game is still going.
// An illegal move from a strategy is a strategy bug, not a game event,
// and fails the game.
func (e *Engine) Step() (bool, error) {
	if game.IsTerminal(e.state) {
		return false, nil
	}

	side := e.state.ToMove
	move := e.strategyFor(side).SelectMove(e.state, side)
	next, err := game.Apply(e.state, move)
	if err != nil {
		return false, fmt.Errorf("strategy for %s returned %s: %w", side, move, err)
	}
	e.state = next

	return !game.IsTerminal(e.state), nil
}

// Run plays the game to the end and scores it.
func (e *Engine) Run() (Result, error) {
	log.Debug().Int("size", e.state.Size).Msg("game starting")

	for e.state.MoveNumber < MaxMoves {
		ongoing, err := e.Step()
		if err != nil {
			return Result{}, err
		}
		if !ongoing {
			break
		}
	}
	if !game.IsTerminal(e.state) {
		log.Warn().Int("moves", e.state.MoveNumber).Msg("game stopped before a terminal position, scoring as is")
	}

	black, white := game.Score(e.state)
	result := Result{
		Winner:     game.Winner(e.state),
		BlackScore: black,
		WhiteScore: white,
		Moves:      e.state.MoveNumber,
	}

	log.Info().
		Int("moves", result.Moves).
		Int("black", result.BlackScore).
		Int("white", result.WhiteScore).
		Str("winner", result.Winner.String()).
		Msg("game over")

	return result, nil
}

func (e *Engine) strategyFor(side game.Color) strategy.Strategy {
	if side == game.Black {
		return e.black
	}
	return e.white
}
