// Package experiments pits configured strategies against each other over
// a series of games and records the outcomes as CSV for offline analysis.
package experiments

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"baduk/engine"
	"baduk/experiments/metrics"
	"baduk/strategy"
)

// Matchup pairs two agent configs: Black plays the first, White the second.
type Matchup struct {
	Black metrics.AgentConfig
	White metrics.AgentConfig
}

// Run plays every matchup for the given number of games on the given
// board size, writing configs and per-game records under a timestamped
// directory. Returns the records so callers can tally in-process too.
func Run(name string, size, numGames int, matchups []Matchup) ([]metrics.GameRecord, error) {
	log.Info().Msgf("starting %s experiment...", name)

	seen := map[int]metrics.AgentConfig{}
	var records []metrics.GameRecord
	count := 0

	for mi, matchup := range matchups {
		seen[matchup.Black.ID] = matchup.Black
		seen[matchup.White.ID] = matchup.White

		log.Info().Msgf("starting matchup %d of %d: %s vs %s...",
			mi+1, len(matchups), matchup.Black.Name, matchup.White.Name)

		// One strategy pair per matchup: RNG state advances from game to
		// game, so a seeded matchup plays varied games yet replays as a
		// whole.
		black, err := newStrategy(matchup.Black)
		if err != nil {
			return records, fmt.Errorf("matchup %d: %w", mi+1, err)
		}
		white, err := newStrategy(matchup.White)
		if err != nil {
			return records, fmt.Errorf("matchup %d: %w", mi+1, err)
		}

		for i := 0; i < numGames; i++ {
			result, err := runGame(black, white, size)
			if err != nil {
				return records, fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			count++
			records = append(records, metrics.GameRecord{
				ID:         count,
				Black:      matchup.Black.ID,
				White:      matchup.White.ID,
				BlackScore: result.BlackScore,
				WhiteScore: result.WhiteScore,
				Winner:     result.Winner.String(),
				Moves:      result.Moves,
			})
			log.Info().Msgf("completed matchup %d of %d game %d of %d, winner: %s",
				mi+1, len(matchups), i+1, numGames, result.Winner)
		}
	}

	log.Info().Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(name)
	if err != nil {
		return records, fmt.Errorf("failed to create experiment writer: %w", err)
	}

	configs := make([]metrics.AgentConfig, 0, len(seen))
	for _, c := range seen {
		configs = append(configs, c)
	}
	sort.Slice(configs, func(i, j int) bool { return configs[i].ID < configs[j].ID })
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return records, fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(records); err != nil {
		return records, fmt.Errorf("failed to store game records: %w", err)
	}
	log.Info().Msgf("stored %d game records in %s", len(records), writer.Dir())

	return records, nil
}

func runGame(black, white strategy.Strategy, size int) (engine.Result, error) {
	e, err := engine.Local(black, white, size)
	if err != nil {
		return engine.Result{}, err
	}
	return e.Run()
}

func newStrategy(config metrics.AgentConfig) (strategy.Strategy, error) {
	return strategy.New(config.Name, strategy.Params{
		Seed:       config.Seed,
		Depth:      config.Depth,
		Iterations: config.Iterations,
		Duration:   config.Duration,
		Goroutines: config.Goroutines,
	})
}
