package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"baduk/display"
	"baduk/engine"
	"baduk/game"
	"baduk/strategy"
)

func main() {
	black := flag.String("black", "random", "black strategy: "+strings.Join(strategy.Names(), ", "))
	white := flag.String("white", "random", "white strategy: "+strings.Join(strategy.Names(), ", "))
	size := flag.Int("size", 5, "board size")
	games := flag.Int("games", 1, "number of games to play")
	seed := flag.Uint64("seed", 1, "RNG seed for stochastic strategies")
	depth := flag.Int("depth", 4, "search depth for minimax, alpha_beta and expectimax")
	iterations := flag.Int("iterations", 50, "rollout budget per move for monte_carlo")
	duration := flag.Duration("duration", 0, "time budget per move for monte_carlo (overrides -iterations)")
	goroutines := flag.Int("goroutines", 1, "parallel rollout workers for monte_carlo")
	train := flag.Int("train", 0, "run this many qlearn training episodes instead of playing")
	qtable := flag.String("qtable", "", "q-table file to load before and save after a qlearn run")
	show := flag.Bool("display", false, "render the final board of every game")
	verbose := flag.Bool("verbose", false, "per-game debug logging")

	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := run(*black, *white, *size, *games, *seed, *depth, *iterations, *duration, *goroutines, *train, *qtable, *show); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(black, white string, size, games int, seed uint64, depth, iterations int, duration time.Duration, goroutines, train int, qtablePath string, show bool) error {
	if games < 1 {
		return &game.ConfigurationError{Setting: "games", Value: games}
	}

	table := strategy.NewQTable()
	if qtablePath != "" {
		if err := table.Load(qtablePath); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				log.Warn().Err(err).Msg("starting with an empty q-table")
			}
		} else {
			log.Info().Int("entries", table.Len()).Msg("loaded q-table")
		}
	}

	params := strategy.Params{
		Seed:       seed,
		Depth:      depth,
		Iterations: iterations,
		Duration:   duration,
		Goroutines: goroutines,
		Table:      table,
	}

	blackStrategy, err := strategy.New(black, params)
	if err != nil {
		return err
	}
	// Offset the seed so mirror matchups don't share RNG streams.
	whiteParams := params
	whiteParams.Seed = seed + 1
	whiteStrategy, err := strategy.New(white, whiteParams)
	if err != nil {
		return err
	}

	if train > 0 {
		return runTraining(blackStrategy, whiteStrategy, size, train, qtablePath, table)
	}

	blackWins, whiteWins, draws := 0, 0, 0
	for i := 0; i < games; i++ {
		e, err := engine.Local(blackStrategy, whiteStrategy, size)
		if err != nil {
			return err
		}
		result, err := e.Run()
		if err != nil {
			return err
		}

		switch result.Winner {
		case game.Black:
			blackWins++
		case game.White:
			whiteWins++
		default:
			draws++
		}
		fmt.Printf("Game %d: BLACK %d, WHITE %d\n", i+1, result.BlackScore, result.WhiteScore)
		if show {
			fmt.Print(display.RenderColor(e.State(), termenv.ColorProfile()))
		}
	}

	fmt.Printf("%s (black) %d - %s (white) %d - draws %d\n", black, blackWins, white, whiteWins, draws)
	return nil
}

func runTraining(black, white strategy.Strategy, size, episodes int, qtablePath string, table *strategy.QTable) error {
	trainer, err := engine.NewTrainer(black, white, size, episodes)
	if err != nil {
		return err
	}
	results, err := trainer.Run()
	if err != nil {
		return err
	}

	blackWins := 0
	for _, r := range results {
		if r.Winner == game.Black {
			blackWins++
		}
	}
	fmt.Printf("trained %d episodes, black won %d, q-table entries: %d\n",
		len(results), blackWins, table.Len())

	if qtablePath != "" {
		if err := table.Save(qtablePath); err != nil {
			return err
		}
		log.Info().Str("path", qtablePath).Msg("saved q-table")
	}
	return nil
}
