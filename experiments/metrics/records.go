package metrics

import "time"

// AgentConfig describes one configured strategy in an experiment, so
// result rows can reference it by ID.
type AgentConfig struct {
	ID         int
	Name       string
	Depth      int
	Iterations int
	Duration   time.Duration
	Goroutines int
	Seed       uint64
}

// GameRecord is one finished game in an experiment.
type GameRecord struct {
	ID         int
	Black      int // AgentConfig.ID
	White      int // AgentConfig.ID
	BlackScore int
	WhiteScore int
	Winner     string
	Moves      int
}
